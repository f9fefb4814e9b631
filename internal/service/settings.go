package service

import (
	"sync/atomic"
	"time"

	"secquest_backend/internal/config"
)

// ProgressSettings 进度引擎运行参数，来自配置文件的 progress 段
type ProgressSettings struct {
	Location         *time.Location
	ExercisePoints   int
	QuizPassingScore int
	MaxRetries       int
	RecalcWorkers    int
	RecalcLockTTL    time.Duration
}

func NewProgressSettings(cfg config.ProgressConfig) (ProgressSettings, error) {
	loc, err := cfg.Location()
	if err != nil {
		return ProgressSettings{}, err
	}
	ps := ProgressSettings{
		Location:         loc,
		ExercisePoints:   cfg.ExercisePoints,
		QuizPassingScore: cfg.QuizPassingScore,
		MaxRetries:       cfg.MaxRetries,
		RecalcWorkers:    cfg.RecalcWorkers,
		RecalcLockTTL:    cfg.RecalcLockTTL,
	}
	return ps.withDefaults(), nil
}

func (ps ProgressSettings) withDefaults() ProgressSettings {
	if ps.Location == nil {
		ps.Location = time.UTC
	}
	if ps.MaxRetries < 1 {
		ps.MaxRetries = 3
	}
	if ps.RecalcWorkers < 1 {
		ps.RecalcWorkers = 4
	}
	if ps.RecalcLockTTL <= 0 {
		ps.RecalcLockTTL = 30 * time.Minute
	}
	return ps
}

// SettingsStore 在各服务间共享，配置热更新时整体替换
type SettingsStore struct {
	p atomic.Pointer[ProgressSettings]
}

func NewSettingsStore(ps ProgressSettings) *SettingsStore {
	s := &SettingsStore{}
	s.Store(ps)
	return s
}

func (s *SettingsStore) Load() ProgressSettings {
	return *s.p.Load()
}

func (s *SettingsStore) Store(ps ProgressSettings) {
	ps = ps.withDefaults()
	s.p.Store(&ps)
}
