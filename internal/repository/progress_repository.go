package repository

import (
	"context"
	"fmt"

	"secquest_backend/internal/model"
	"secquest_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository 读写用户进度聚合
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// LoadRecord 加载用户及其全部进度子记录
func (r *ProgressRepository) LoadRecord(ctx context.Context, userID uint) (*model.ProgressRecord, error) {
	db := r.DB.WithContext(ctx)

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	var rooms []model.RoomProgress
	if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("load room progress: %w", err)
	}

	var labs []model.LabProgress
	if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&labs).Error; err != nil {
		return nil, fmt.Errorf("load lab progress: %w", err)
	}

	var activities []model.StreakActivity
	if err := db.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("load streak activities: %w", err)
	}

	return model.NewProgressRecord(&user, rooms, labs, activities), nil
}

// SaveRecord 在一个事务内写回聚合。用户行按 version 条件更新，版本不匹配时返回 util.ErrVersionConflict，
// 调用方需重新加载后重试。调用前必须已执行 progress.FinalizeBeforePersist。
func (r *ProgressRepository) SaveRecord(ctx context.Context, rec *model.ProgressRecord) error {
	u := rec.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ? AND version = ?", u.ID, u.Version).
			Updates(map[string]interface{}{
				"points":           u.Points,
				"level":            u.Level,
				"completed_rooms":  u.CompletedRooms,
				"completed_labs":   u.CompletedLabs,
				"current_streak":   u.CurrentStreak,
				"longest_streak":   u.LongestStreak,
				"last_streak_date": u.LastStreakDate,
				"is_premium":       u.IsPremium,
				"premium_since":    u.PremiumSince,
				"version":          u.Version + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("update user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return util.ErrVersionConflict
		}

		for _, p := range rec.DirtyRooms() {
			if err := tx.Save(p).Error; err != nil {
				return fmt.Errorf("save room progress %s: %w", p.RoomID, err)
			}
		}
		for _, p := range rec.DirtyLabs() {
			if err := tx.Save(p).Error; err != nil {
				return fmt.Errorf("save lab progress %s: %w", p.LabID, err)
			}
		}

		acts, replaced := rec.NewActivities()
		if replaced {
			if err := tx.Where("user_id = ?", u.ID).Delete(&model.StreakActivity{}).Error; err != nil {
				return fmt.Errorf("clear streak activities: %w", err)
			}
		}
		if len(acts) > 0 {
			if err := tx.Create(&acts).Error; err != nil {
				return fmt.Errorf("append streak activities: %w", err)
			}
		}

		if completions := rec.PendingCompletions(); len(completions) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "item_kind"}, {Name: "item_id"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"completed_at", "score", "updated_at"}),
			}).Create(&completions).Error
			if err != nil {
				return fmt.Errorf("upsert item completions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.Version++
	rec.MarkPersisted()
	return nil
}

// FindItemCompletions 条目侧的完成记录（completedBy）
func (r *ProgressRepository) FindItemCompletions(ctx context.Context, userID uint, kind model.ItemKind) ([]model.ItemCompletion, error) {
	var list []model.ItemCompletion
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND item_kind = ?", userID, kind).
		Order("completed_at ASC, id ASC").
		Find(&list).Error
	return list, err
}

// CountCompletions 某条目被多少用户完成
func (r *ProgressRepository) CountCompletions(ctx context.Context, kind model.ItemKind, itemID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ItemCompletion{}).
		Where("item_kind = ? AND item_id = ?", kind, itemID).
		Count(&count).Error
	return count, err
}
