package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项（同商品不同规格视为不同行）
type CartItem struct {
	ID         uint                `gorm:"primarykey" json:"id"`                                     // 主键
	UserID     uint                `gorm:"not null;index" json:"user_id"`                            // 用户ID
	ProductID  uint                `gorm:"not null;index" json:"product_id"`                         // 商品ID
	SizeIndex  int                 `gorm:"not null;default:0" json:"size_index"`                     // 杯型档位（0 为最小杯）
	SugarLevel string              `gorm:"type:varchar(10);not null;default:'100%'" json:"sugar_level"` // 甜度
	IceLevel   string              `gorm:"type:varchar(10);not null;default:'100%'" json:"ice_level"`   // 冰量
	Note       string              `gorm:"type:varchar(500)" json:"note"`                            // 备注
	Quantity   int                 `gorm:"not null" json:"quantity"`                                 // 数量
	BasePrice  Money               `gorm:"type:decimal(20,0);not null;default:0" json:"base_price"` // 加入时生效单价快照（不含杯型/配料）
	Toppings   ToppingSnapshotList `gorm:"type:json" json:"toppings"`                                // 配料快照
	UnitPrice  Money               `gorm:"type:decimal(20,0);not null;default:0" json:"unit_price"` // 单杯价格（含杯型加价与配料）
	LineTotal  Money               `gorm:"type:decimal(20,0);not null;default:0" json:"line_total"` // 行小计
	CreatedAt  time.Time           `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time           `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt  gorm.DeletedAt      `gorm:"index" json:"-"`                                           // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
