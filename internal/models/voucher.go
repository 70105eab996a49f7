package models

import (
	"time"

	"gorm.io/gorm"
)

// Voucher 优惠券
type Voucher struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`                              // 优惠码
	Title         string         `gorm:"not null" json:"title"`                                         // 展示标题
	Type          string         `gorm:"not null" json:"type"`                                          // 类型（fixed/percent）
	Value         Money          `gorm:"type:decimal(20,0);not null" json:"value"`                      // 数值（固定金额或百分比）
	MinOrderValue Money          `gorm:"type:decimal(20,0);not null;default:0" json:"min_order_value"` // 使用门槛（0 表示不限制）
	ForNewUser    bool           `gorm:"not null;default:false" json:"for_new_user"`                    // 仅限新用户
	StartHour     *int           `json:"start_hour,omitempty"`                                          // 可用起始小时（含）
	EndHour       *int           `json:"end_hour,omitempty"`                                            // 可用结束小时（不含）
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`                        // 是否启用
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (Voucher) TableName() string {
	return "vouchers"
}
