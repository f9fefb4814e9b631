package progress

import (
	"testing"
	"time"

	"secquest_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyActivity_FreshStreak(t *testing.T) {
	state, applied := ApplyActivity(StreakState{}, at(2024, 1, 10, 15), model.KindLab, "lab-1")

	require.True(t, applied)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 1, state.LongestStreak)
	require.NotNil(t, state.LastStreakDate)
	assert.True(t, state.LastStreakDate.Equal(at(2024, 1, 10, 0)))
	require.Len(t, state.Activities, 1)
	assert.Equal(t, model.KindLab, state.Activities[0].ActivityType)
	assert.Equal(t, "lab-1", state.Activities[0].ItemID)
}

func TestApplyActivity_SameDayIsIdempotent(t *testing.T) {
	first, _ := ApplyActivity(StreakState{}, at(2024, 1, 10, 9), model.KindRoom, "room-1")
	second, applied := ApplyActivity(first, at(2024, 1, 10, 21), model.KindLab, "lab-1")

	assert.False(t, applied)
	assert.Equal(t, first.CurrentStreak, second.CurrentStreak)
	assert.Equal(t, first.LongestStreak, second.LongestStreak)
	assert.Len(t, second.Activities, 1)
	assert.Equal(t, "room-1", second.Activities[0].ItemID, "first activity of the day wins")
}

func TestApplyActivity_DayGaps(t *testing.T) {
	base := StreakState{
		CurrentStreak:  3,
		LongestStreak:  3,
		LastStreakDate: dayPtr(2024, 1, 10),
		Activities:     []model.StreakActivity{{Date: at(2024, 1, 10, 0), ActivityType: model.KindRoom, ItemID: "r"}},
	}

	tests := []struct {
		name        string
		when        time.Time
		wantCurrent int
		wantLongest int
	}{
		{"next day extends", at(2024, 1, 11, 8), 4, 4},
		{"two days later resets", at(2024, 1, 12, 8), 1, 3},
		{"a week later resets", at(2024, 1, 17, 23), 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, applied := ApplyActivity(base, tt.when, model.KindRoom, "r2")
			require.True(t, applied)
			assert.Equal(t, tt.wantCurrent, got.CurrentStreak)
			assert.Equal(t, tt.wantLongest, got.LongestStreak)
			assert.True(t, got.LastStreakDate.Equal(Day(tt.when)))
			assert.Len(t, base.Activities, 1, "input state must not be mutated")
		})
	}
}

func TestRecordActivity_BreakAndRestart(t *testing.T) {
	rec := newRecord()
	rec.User.CurrentStreak = 5
	rec.User.LongestStreak = 5
	rec.User.LastStreakDate = dayPtr(2024, 1, 10)

	applied := RecordActivity(rec, at(2024, 1, 15, 12), model.KindLab, "lab-9")

	require.True(t, applied)
	assert.Equal(t, 1, rec.User.CurrentStreak)
	assert.Equal(t, 5, rec.User.LongestStreak)
	assert.True(t, rec.User.LastStreakDate.Equal(at(2024, 1, 15, 0)))
	acts, replaced := rec.NewActivities()
	assert.False(t, replaced)
	assert.Len(t, acts, 1)
}

func TestCheckStreakStatus(t *testing.T) {
	state := StreakState{CurrentStreak: 4, LongestStreak: 7, LastStreakDate: dayPtr(2024, 1, 10)}

	assert.Equal(t, 4, CheckStreakStatus(state, at(2024, 1, 10, 23)).CurrentStreak)
	assert.Equal(t, 4, CheckStreakStatus(state, at(2024, 1, 11, 23)).CurrentStreak)

	decayed := CheckStreakStatus(state, at(2024, 1, 12, 0))
	assert.Equal(t, 0, decayed.CurrentStreak)
	assert.Equal(t, 7, decayed.LongestStreak)

	assert.Equal(t, 0, CheckStreakStatus(StreakState{}, at(2024, 1, 12, 0)).CurrentStreak)
}

func TestLongestStreakNeverDecreases(t *testing.T) {
	rec := newRecord()
	days := []time.Time{
		at(2024, 3, 1, 10), at(2024, 3, 2, 10), at(2024, 3, 2, 18), at(2024, 3, 3, 7),
		at(2024, 3, 8, 10), at(2024, 3, 9, 10), at(2024, 3, 20, 10),
	}

	longest := 0
	for _, d := range days {
		RecordActivity(rec, d, model.KindRoom, "room")
		FinalizeBeforePersist(rec, d)
		require.GreaterOrEqual(t, rec.User.LongestStreak, longest)
		longest = rec.User.LongestStreak
	}
	assert.Equal(t, 3, longest)
	assert.Equal(t, 1, rec.User.CurrentStreak)
}

func TestDaysBetween_UsesTargetLocation(t *testing.T) {
	cst := time.FixedZone("CST", 8*3600)

	// 2024-01-10 16:30 UTC 已是北京时间 1 月 11 日
	from := time.Date(2024, 1, 10, 16, 30, 0, 0, time.UTC)
	to := time.Date(2024, 1, 11, 20, 0, 0, 0, cst)
	assert.Equal(t, 0, DaysBetween(from, to))
	assert.Equal(t, 1, DaysBetween(from, to.AddDate(0, 0, 1)))

	assert.True(t, Day(from.In(cst)).Equal(time.Date(2024, 1, 11, 0, 0, 0, 0, cst)))
}
