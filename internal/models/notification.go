package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification 站内通知
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`                       // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`              // 用户ID
	BizType   string         `gorm:"type:varchar(32);not null" json:"biz_type"` // 业务类型
	OrderID   *uint          `gorm:"index" json:"order_id,omitempty"`            // 关联订单ID
	Title     string         `gorm:"not null" json:"title"`                      // 标题
	Body      string         `gorm:"type:varchar(1000)" json:"body"`             // 内容
	IsRead    bool           `gorm:"not null;default:false;index" json:"is_read"` // 是否已读
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                    // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
