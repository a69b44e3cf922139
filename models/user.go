package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
// 只通过 Google 登录创建，首次见到某个 google_id 时自动建档
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	GoogleID    string         `json:"-" gorm:"uniqueIndex;size:64;not null"` // Google ID token 中的 sub
	DisplayName string         `json:"display_name" gorm:"size:100;not null"`
	Email       string         `json:"email" gorm:"size:100"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
