package models

import "time"

// Category 消费类别
// 静态参考数据，首次迁移时预置，运行期只读
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Color     string    `json:"color" gorm:"size:20;not null;default:#64748b"` // 颜色代码，如 #ef4444
	Sort      int       `json:"sort" gorm:"default:0;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}
