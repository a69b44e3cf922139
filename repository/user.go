package repository

import (
	"context"
	"errors"

	"ispend/models"

	"gorm.io/gorm"
)

// UserRepo 用户查找/建档契约，供登录流程使用
// 未命中返回 (nil, nil)，不算错误
type UserRepo interface {
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 构造函数
func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("find_user_by_google_id", err)
	}
	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("find_user_by_id", err)
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return storageErr("create_user", err)
	}
	return nil
}
