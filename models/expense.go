package models

import (
	"time"
)

// Expense 消费记录模型
// 删除为物理删除，不保留墓碑记录，删除后不再计入任何统计
type Expense struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CategoryID  uint      `json:"category_id" gorm:"index;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description string    `json:"description" gorm:"size:255;not null"`
	Date        time.Time `json:"date" gorm:"type:date;not null"`
	CreatedAt   time.Time `json:"created_at"` // 同一天内按录入时间倒序排列
	User        User      `json:"-" gorm:"foreignKey:UserID"`
	Category    Category  `json:"-" gorm:"foreignKey:CategoryID"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}
