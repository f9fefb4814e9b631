// Package progress 包含进度、积分与连续学习天数的纯计算逻辑，不做任何 I/O。
// 自然日以传入时间自身的时区为准，调用方负责先转换到平台时区。
package progress

import (
	"time"

	"secquest_backend/internal/model"

	"github.com/jinzhu/now"
)

// StreakState 连续学习状态
type StreakState struct {
	CurrentStreak  int
	LongestStreak  int
	LastStreakDate *time.Time
	Activities     []model.StreakActivity
}

// Day 归一化为当天零点
func Day(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

// DaysBetween 返回 from 到 to 之间相差的自然日数，按 to 所在时区计算
func DaysBetween(from, to time.Time) int {
	f := from.In(to.Location())
	a := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// StateOf 从聚合中读取连续学习状态
func StateOf(rec *model.ProgressRecord) StreakState {
	return StreakState{
		CurrentStreak:  rec.User.CurrentStreak,
		LongestStreak:  rec.User.LongestStreak,
		LastStreakDate: rec.User.LastStreakDate,
		Activities:     rec.Activities,
	}
}

// applyState 写回聚合，ApplyActivity 只会追加日志
func applyState(rec *model.ProgressRecord, state StreakState) {
	rec.User.CurrentStreak = state.CurrentStreak
	rec.User.LongestStreak = state.LongestStreak
	rec.User.LastStreakDate = state.LastStreakDate
	for i := len(rec.Activities); i < len(state.Activities); i++ {
		rec.AppendActivity(state.Activities[i])
	}
}

// ApplyActivity 计入一次学习活动。同一自然日内重复调用不产生变化，第二个返回值表示是否计入
func ApplyActivity(state StreakState, activityDate time.Time, kind model.ItemKind, itemID string) (StreakState, bool) {
	today := Day(activityDate)
	for _, a := range state.Activities {
		if DaysBetween(a.Date, today) == 0 {
			return state, false
		}
	}

	acts := make([]model.StreakActivity, len(state.Activities), len(state.Activities)+1)
	copy(acts, state.Activities)
	state.Activities = append(acts, model.StreakActivity{
		Date:         today,
		ActivityType: kind,
		ItemID:       itemID,
	})

	if state.LastStreakDate == nil {
		state.CurrentStreak = 1
	} else {
		diff := DaysBetween(*state.LastStreakDate, today)
		switch {
		case diff == 1:
			state.CurrentStreak++
		case diff > 1:
			state.CurrentStreak = 1
		case diff < 0:
			// 补录的历史活动不移动 lastStreakDate
			return state, true
		}
	}

	state.LastStreakDate = &today
	if state.CurrentStreak > state.LongestStreak {
		state.LongestStreak = state.CurrentStreak
	}
	return state, true
}

// CheckStreakStatus 被动衰减：距离上次活动超过一天则当前连续天数归零，最长纪录不变
func CheckStreakStatus(state StreakState, today time.Time) StreakState {
	if state.LastStreakDate == nil {
		return state
	}
	if DaysBetween(*state.LastStreakDate, today) > 1 {
		state.CurrentStreak = 0
	}
	return state
}

// RecordActivity 先衰减检查再计入活动，顺序不可颠倒
func RecordActivity(rec *model.ProgressRecord, at time.Time, kind model.ItemKind, itemID string) bool {
	state := CheckStreakStatus(StateOf(rec), at)
	state, applied := ApplyActivity(state, at, kind, itemID)
	applyState(rec, state)
	return applied
}
