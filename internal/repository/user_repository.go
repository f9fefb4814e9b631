package repository

import (
	"context"
	"time"

	"secquest_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create 创建用户，进度字段以零值初始化
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	user.Points = 0
	user.Level = 1
	user.CompletedRooms = 0
	user.CompletedLabs = 0
	user.CurrentStreak = 0
	user.LongestStreak = 0
	user.LastStreakDate = nil
	user.Version = 0
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

// UpdateLastLogin 不修改 version，登录不与进度写入竞争
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_login", at).
		Error
}

func (r *UserRepository) UpdateLastSeen(ctx context.Context, userID uint, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_seen", at).
		Error
}

func (r *UserRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.User{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// CountWithMorePoints 积分严格高于 points 的用户数
func (r *UserRepository) CountWithMorePoints(ctx context.Context, points int) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("points > ?", points).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) FindTopByPoints(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Order("points DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
