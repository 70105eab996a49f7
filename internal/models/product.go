package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（饮品）
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                     // 主键
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                        // 分类ID
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                         // 唯一标识
	Name        string         `gorm:"not null" json:"name"`                                     // 商品名称
	Description string         `gorm:"type:text" json:"description"`                             // 商品描述
	BasePrice   Money          `gorm:"type:decimal(20,0);not null;default:0" json:"base_price"` // 标准杯型价格
	SalePrice   *Money         `gorm:"type:decimal(20,0)" json:"sale_price,omitempty"`           // 促销价（为空表示无促销）
	Sizes       StringArray    `gorm:"type:json" json:"sizes"`                                   // 杯型名称（按档位顺序，如 S/M/L）
	Image       string         `gorm:"type:varchar(500)" json:"image"`                           // 主图
	Images      StringArray    `gorm:"type:json" json:"images"`                                  // 图片数组
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                      // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                        // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	// 关联
	Category Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`   // 分类信息
	Toppings []Topping `gorm:"many2many:product_toppings" json:"toppings,omitempty"` // 可选配料
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// EffectivePrice 返回生效单价（有促销价时取促销价）
func (p *Product) EffectivePrice() Money {
	if p.SalePrice != nil && p.SalePrice.IsPositive() && p.SalePrice.LessThan(p.BasePrice.Decimal) {
		return *p.SalePrice
	}
	return p.BasePrice
}
