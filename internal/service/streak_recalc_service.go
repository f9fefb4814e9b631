package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"secquest_backend/internal/model"
	"secquest_backend/internal/progress"
	"secquest_backend/internal/util"
	"secquest_backend/pkg/lock"
	"secquest_backend/pkg/logger"
	"secquest_backend/pkg/monitoring"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const recalcLockKey = "streak-recalc"

// RecalcStore 批量重算所需的存储能力
type RecalcStore interface {
	RecordStore
	FindItemCompletions(ctx context.Context, userID uint, kind model.ItemKind) ([]model.ItemCompletion, error)
}

// UserLister 列出全部用户 id
type UserLister interface {
	ListIDs(ctx context.Context) ([]uint, error)
}

// RecalcFailure 单个用户的失败原因
type RecalcFailure struct {
	UserID uint   `json:"userId"`
	Error  string `json:"error"`
}

// RecalcSummary 批量重算汇总
// swagger:model RecalcSummary
type RecalcSummary struct {
	TotalUsers   int             `json:"totalUsers"`
	UpdatedUsers int             `json:"updatedUsers"`
	Failures     []RecalcFailure `json:"failures"`
	StartedAt    time.Time       `json:"startedAt"`
	Duration     string          `json:"duration"`
}

// StreakRecalcService 从历史完成时间重建所有用户的连续学习状态。
// 单个用户失败不会中断整批；同一时刻只允许一个实例运行。
type StreakRecalcService struct {
	users    UserLister
	store    RecalcStore
	locker   lock.Locker
	writer   *recordWriter
	settings *SettingsStore
}

func NewStreakRecalcService(users UserLister, store RecalcStore, locker lock.Locker, settings *SettingsStore) *StreakRecalcService {
	return &StreakRecalcService{
		users:    users,
		store:    store,
		locker:   locker,
		writer:   newRecordWriter(store, settings),
		settings: settings,
	}
}

func (s *StreakRecalcService) SetClock(clock func() time.Time) {
	s.writer.clock = clock
}

func (s *StreakRecalcService) RecalculateAll(ctx context.Context) (*RecalcSummary, error) {
	settings := s.settings.Load()

	release, err := s.locker.TryLock(ctx, recalcLockKey, settings.RecalcLockTTL)
	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, util.ConflictError(util.ErrJobRunning)
	}
	if err != nil {
		return nil, fmt.Errorf("acquire recalc lock: %w", err)
	}
	defer release()

	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	start := time.Now()
	now := s.writer.now()
	summary := &RecalcSummary{TotalUsers: len(ids), Failures: []RecalcFailure{}, StartedAt: now}
	logger.Log.Info("开始重算连续学习天数", zap.Int("users", len(ids)), zap.Int("workers", settings.RecalcWorkers))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settings.RecalcWorkers)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			updated, err := s.recalcUser(gctx, id, now)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				summary.Failures = append(summary.Failures, RecalcFailure{UserID: id, Error: err.Error()})
				monitoring.StreakRecalcUsers.WithLabelValues("failed").Inc()
				logger.Log.Warn("重算用户连续学习天数失败", zap.Uint("user_id", id), zap.Error(err))
			case updated:
				summary.UpdatedUsers++
				monitoring.StreakRecalcUsers.WithLabelValues("updated").Inc()
			default:
				monitoring.StreakRecalcUsers.WithLabelValues("unchanged").Inc()
			}
			// 单个用户的错误只记录，不取消其他任务
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].UserID < summary.Failures[j].UserID
	})
	elapsed := time.Since(start)
	summary.Duration = elapsed.String()
	monitoring.StreakRecalcDuration.Observe(elapsed.Seconds())

	logger.Log.Info("连续学习天数重算完成",
		zap.Int("total", summary.TotalUsers),
		zap.Int("updated", summary.UpdatedUsers),
		zap.Int("failed", len(summary.Failures)),
		zap.Duration("elapsed", elapsed))

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// recalcUser 重建单个用户，结果与现有数据一致时不写回
func (s *StreakRecalcService) recalcUser(ctx context.Context, userID uint, now time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	updated := false
	_, err := s.writer.mutate(ctx, userID, func(rec *model.ProgressRecord, _ time.Time) (bool, error) {
		// 每次重试都重新读取，冲突往往来自同时发生的实验完成
		labCompletions, err := s.store.FindItemCompletions(ctx, userID, model.KindLab)
		if err != nil {
			return false, fmt.Errorf("load lab completions: %w", err)
		}

		res := progress.RebuildStreak(completionEvents(rec, labCompletions, now.Location()), now)
		if res.Matches(rec) {
			updated = false
			return false, nil
		}
		res.ApplyTo(rec)
		updated = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

// completionEvents 房间事件取已完成且有完成时间的房间进度；实验事件以条目侧完成记录为准，
// 缺少记录的已完成实验进度也计入，同一实验不重复。已有的连续学习日志（如练习答对）同样作为事件，
// 与完成事件同日同条目的只保留一条
func completionEvents(rec *model.ProgressRecord, labCompletions []model.ItemCompletion, loc *time.Location) []progress.CompletionEvent {
	events := make([]progress.CompletionEvent, 0, len(rec.Rooms)+len(labCompletions)+len(rec.Activities))
	logged := make(map[string]bool, len(rec.Activities))
	add := func(e progress.CompletionEvent) {
		logged[activityKey(e.Date, e.Kind, e.ItemID, loc)] = true
		events = append(events, e)
	}

	for _, p := range rec.Rooms {
		if p.Completed && p.CompletedAt != nil && p.RoomID != "" {
			add(progress.CompletionEvent{Date: *p.CompletedAt, Kind: model.KindRoom, ItemID: p.RoomID})
		}
	}

	seen := make(map[string]bool, len(labCompletions))
	for _, c := range labCompletions {
		if seen[c.ItemID] {
			continue
		}
		seen[c.ItemID] = true
		add(progress.CompletionEvent{Date: c.CompletedAt, Kind: model.KindLab, ItemID: c.ItemID})
	}
	for _, p := range rec.Labs {
		if p.Completed && p.CompletedAt != nil && p.LabID != "" && !seen[p.LabID] {
			seen[p.LabID] = true
			add(progress.CompletionEvent{Date: *p.CompletedAt, Kind: model.KindLab, ItemID: p.LabID})
		}
	}

	for _, a := range rec.Activities {
		if logged[activityKey(a.Date, a.ActivityType, a.ItemID, loc)] {
			continue
		}
		add(progress.CompletionEvent{Date: a.Date, Kind: a.ActivityType, ItemID: a.ItemID})
	}
	return events
}

func activityKey(at time.Time, kind model.ItemKind, itemID string, loc *time.Location) string {
	return progress.Day(at.In(loc)).Format("2006-01-02") + "|" + string(kind) + "|" + itemID
}
