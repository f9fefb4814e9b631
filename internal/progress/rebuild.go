package progress

import (
	"sort"
	"time"

	"secquest_backend/internal/model"
)

// CompletionEvent 历史完成事件
type CompletionEvent struct {
	Date   time.Time
	Kind   model.ItemKind
	ItemID string
}

type RebuildResult struct {
	CurrentStreak  int
	LongestStreak  int
	LastStreakDate *time.Time
	Activities     []model.StreakActivity
}

// RebuildStreak 从历史完成事件重建连续学习状态。同一天的多个事件只算一天，
// 日志则每个事件保留一条。now 决定时区与最终的衰减检查。
func RebuildStreak(events []CompletionEvent, now time.Time) RebuildResult {
	loc := now.Location()
	sorted := make([]CompletionEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.ItemID < b.ItemID
	})

	var res RebuildResult
	res.Activities = make([]model.StreakActivity, 0, len(sorted))
	var prev *time.Time
	for _, e := range sorted {
		day := Day(e.Date.In(loc))
		res.Activities = append(res.Activities, model.StreakActivity{
			Date:         day,
			ActivityType: e.Kind,
			ItemID:       e.ItemID,
		})

		if prev != nil {
			diff := DaysBetween(*prev, day)
			if diff == 0 {
				continue
			}
			if diff == 1 {
				res.CurrentStreak++
			} else {
				res.CurrentStreak = 1
			}
		} else {
			res.CurrentStreak = 1
		}
		d := day
		prev = &d
		if res.CurrentStreak > res.LongestStreak {
			res.LongestStreak = res.CurrentStreak
		}
	}

	if prev != nil && DaysBetween(*prev, now) > 1 {
		res.CurrentStreak = 0
	}
	res.LastStreakDate = prev
	return res
}

// Matches 判断重建结果与当前记录是否一致
func (r RebuildResult) Matches(rec *model.ProgressRecord) bool {
	u := rec.User
	if u.CurrentStreak != r.CurrentStreak || u.LongestStreak != r.LongestStreak {
		return false
	}
	if (u.LastStreakDate == nil) != (r.LastStreakDate == nil) {
		return false
	}
	if u.LastStreakDate != nil && !u.LastStreakDate.Equal(*r.LastStreakDate) {
		return false
	}
	if len(rec.Activities) != len(r.Activities) {
		return false
	}
	for i, a := range rec.Activities {
		b := r.Activities[i]
		if !a.Date.Equal(b.Date) || a.ActivityType != b.ActivityType || a.ItemID != b.ItemID {
			return false
		}
	}
	return true
}

// ApplyTo 用重建结果覆盖记录
func (r RebuildResult) ApplyTo(rec *model.ProgressRecord) {
	rec.User.CurrentStreak = r.CurrentStreak
	rec.User.LongestStreak = r.LongestStreak
	rec.User.LastStreakDate = r.LastStreakDate
	rec.ReplaceActivities(r.Activities)
}
