package models

import (
	"time"
)

// Expense 消费记录模型
// 记录写入后不可修改，也不提供删除，所以没有软删除字段
type Expense struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"-" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category    Category  `json:"category" gorm:"size:50;not null;index"`
	ExpenseDate Date      `json:"date" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// Category 消费类别，封闭集合，不接受自由文本
type Category string

// 消费类别常量
const (
	CategoryCar       Category = "Car"
	CategoryInsurance Category = "Insurance"
	CategoryFood      Category = "Food"
	CategoryHobbies   Category = "Hobbies"
	CategoryHome      Category = "Home"
	CategoryOther     Category = "Other"
)

// Categories 获取所有消费类别
func Categories() []Category {
	return []Category{
		CategoryCar,
		CategoryInsurance,
		CategoryFood,
		CategoryHobbies,
		CategoryHome,
		CategoryOther,
	}
}

// Valid 判断类别是否属于封闭集合
func (c Category) Valid() bool {
	switch c {
	case CategoryCar, CategoryInsurance, CategoryFood, CategoryHobbies, CategoryHome, CategoryOther:
		return true
	}
	return false
}

// ParseCategory 解析类别字符串，非法值返回 false
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}
