package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                          // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                                 // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                                  // 订单状态
	OriginalAmount  Money          `gorm:"type:decimal(20,0);not null;default:0" json:"original_amount"` // 商品小计
	DiscountAmount  Money          `gorm:"type:decimal(20,0);not null;default:0" json:"discount_amount"` // 优惠金额
	TotalAmount     Money          `gorm:"type:decimal(20,0);not null;default:0" json:"total_amount"`    // 实付金额
	VoucherID       *uint          `gorm:"index" json:"voucher_id,omitempty"`                             // 优惠券ID
	VoucherCode     string         `gorm:"type:varchar(64)" json:"voucher_code,omitempty"`                // 优惠码快照
	PaymentMethod   string         `gorm:"type:varchar(32);not null" json:"payment_method"`               // 支付方式（仅记录）
	ReceiverName    string         `gorm:"type:varchar(100);not null" json:"receiver_name"`               // 收货人姓名快照
	ReceiverPhone   string         `gorm:"type:varchar(30);not null" json:"receiver_phone"`               // 收货人电话快照
	ReceiverAddress string         `gorm:"type:varchar(500);not null" json:"receiver_address"`            // 收货地址快照
	Note            string         `gorm:"type:varchar(500)" json:"note"`                                 // 订单备注
	CancelReason    string         `gorm:"type:varchar(500)" json:"cancel_reason,omitempty"`              // 取消原因（原样保存）
	CancelledBy     string         `gorm:"type:varchar(20)" json:"cancelled_by,omitempty"`                // 取消操作角色
	ConfirmedAt     *time.Time     `gorm:"index" json:"confirmed_at"`                                     // 接单时间
	CompletedAt     *time.Time     `gorm:"index" json:"completed_at"`                                     // 完成时间
	CanceledAt      *time.Time     `gorm:"index" json:"canceled_at"`                                      // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
