package repository

import (
	"context"

	"secquest_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) CreateRoom(ctx context.Context, room *model.Room) error {
	return r.DB.WithContext(ctx).Create(room).Error
}

func (r *ContentRepository) FindRoom(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&room).Error
	return &room, err
}

func (r *ContentRepository) ListRooms(ctx context.Context, page, limit int) ([]model.Room, int64, error) {
	var rooms []model.Room
	var total int64
	db := r.DB.WithContext(ctx).Model(&model.Room{}).Session(&gorm.Session{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("created_at ASC").Offset((page - 1) * limit).Limit(limit).Find(&rooms).Error
	return rooms, total, err
}

func (r *ContentRepository) CreateLab(ctx context.Context, lab *model.Lab) error {
	return r.DB.WithContext(ctx).Create(lab).Error
}

func (r *ContentRepository) FindLab(ctx context.Context, id string) (*model.Lab, error) {
	var lab model.Lab
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&lab).Error
	return &lab, err
}

func (r *ContentRepository) ListLabs(ctx context.Context, page, limit int) ([]model.Lab, int64, error) {
	var labs []model.Lab
	var total int64
	db := r.DB.WithContext(ctx).Model(&model.Lab{}).Session(&gorm.Session{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("created_at ASC").Offset((page - 1) * limit).Limit(limit).Find(&labs).Error
	return labs, total, err
}
