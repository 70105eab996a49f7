package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Topping 配料表
type Topping struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                // 主键
	Name      string         `gorm:"not null" json:"name"`                                // 配料名称
	Price     Money          `gorm:"type:decimal(20,0);not null;default:0" json:"price"` // 配料单价
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`                 // 是否可选
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`                   // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (Topping) TableName() string {
	return "toppings"
}

// ToppingSnapshot 配料快照（写入购物车/订单后不再随目录变动）
type ToppingSnapshot struct {
	ToppingID uint   `json:"topping_id"` // 配料ID
	Name      string `json:"name"`       // 名称快照
	Price     Money  `json:"price"`      // 单价快照
}

// ToppingSnapshotList 配料快照数组类型
type ToppingSnapshotList []ToppingSnapshot

// Value 实现 driver.Valuer 接口
func (l ToppingSnapshotList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner 接口
func (l *ToppingSnapshotList) Scan(value interface{}) error {
	if value == nil {
		*l = ToppingSnapshotList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}
