package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"secquest_backend/internal/model"
	"secquest_backend/internal/progress"
	"secquest_backend/internal/util"
	"secquest_backend/pkg/logger"
	"secquest_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecordStore 进度聚合的存取，由 repository.ProgressRepository 实现
type RecordStore interface {
	LoadRecord(ctx context.Context, userID uint) (*model.ProgressRecord, error)
	SaveRecord(ctx context.Context, rec *model.ProgressRecord) error
}

// mutateFunc 在内存中修改聚合，返回 false 表示无需写回
type mutateFunc func(rec *model.ProgressRecord, now time.Time) (bool, error)

// recordWriter 所有进度写入的唯一入口：加载、修改、派生字段重算、条件写回，版本冲突时重试
type recordWriter struct {
	store    RecordStore
	settings *SettingsStore
	clock    func() time.Time
}

func newRecordWriter(store RecordStore, settings *SettingsStore) *recordWriter {
	return &recordWriter{store: store, settings: settings, clock: time.Now}
}

// now 平台时区下的当前时间
func (w *recordWriter) now() time.Time {
	return w.clock().In(w.settings.Load().Location)
}

func (w *recordWriter) load(ctx context.Context, userID uint) (*model.ProgressRecord, error) {
	rec, err := w.store.LoadRecord(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError(util.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load progress of user %d: %w", userID, err)
	}
	return rec, nil
}

func (w *recordWriter) mutate(ctx context.Context, userID uint, fn mutateFunc) (*model.ProgressRecord, error) {
	retries := w.settings.Load().MaxRetries
	for attempt := 1; attempt <= retries; attempt++ {
		rec, err := w.load(ctx, userID)
		if err != nil {
			return nil, err
		}

		now := w.now()
		changed, err := fn(rec, now)
		if err != nil {
			return nil, err
		}
		if !changed {
			return rec, nil
		}

		progress.FinalizeBeforePersist(rec, now)
		err = w.store.SaveRecord(ctx, rec)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, util.ErrVersionConflict) {
			return nil, fmt.Errorf("save progress of user %d: %w", userID, err)
		}

		monitoring.VersionConflicts.Inc()
		logger.Log.Warn("进度写入版本冲突，重新加载",
			zap.Uint("user_id", userID),
			zap.Int("attempt", attempt))
	}
	return nil, util.ConflictError(util.ErrVersionConflict)
}
