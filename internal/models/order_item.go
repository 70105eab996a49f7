package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（字段均为下单时快照）
type OrderItem struct {
	ID           uint                `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID      uint                `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID    uint                `gorm:"index;not null" json:"product_id"`                         // 商品ID
	ProductName  string              `gorm:"not null" json:"product_name"`                             // 商品名称快照
	ProductImage string              `gorm:"type:varchar(500)" json:"product_image"`                   // 商品主图快照
	SizeIndex    int                 `gorm:"not null;default:0" json:"size_index"`                     // 杯型档位
	SizeName     string              `gorm:"type:varchar(20)" json:"size_name"`                        // 杯型名称快照
	SugarLevel   string              `gorm:"type:varchar(10)" json:"sugar_level"`                      // 甜度
	IceLevel     string              `gorm:"type:varchar(10)" json:"ice_level"`                        // 冰量
	Note         string              `gorm:"type:varchar(500)" json:"note"`                            // 行备注
	Toppings     ToppingSnapshotList `gorm:"type:json" json:"toppings"`                                // 配料快照
	UnitPrice    Money               `gorm:"type:decimal(20,0);not null;default:0" json:"unit_price"` // 单杯价格
	Quantity     int                 `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice   Money               `gorm:"type:decimal(20,0);not null;default:0" json:"total_price"` // 行小计
	CreatedAt    time.Time           `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt    time.Time           `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
