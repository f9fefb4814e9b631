package progress

import (
	"time"

	"secquest_backend/internal/model"
)

const PointsPerLevel = 1000

// LevelFor level = floor(points/1000) + 1
func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// FinalizeBeforePersist 每次写回前调用：从进度数组与积分重新计算派生字段，并执行连续天数衰减检查。
// 幂等，与触发写回的操作无关。
func FinalizeBeforePersist(rec *model.ProgressRecord, today time.Time) {
	u := rec.User
	if u.Points < 0 {
		u.Points = 0
	}

	rooms := 0
	for _, p := range rec.Rooms {
		if p.Completed && p.RoomID != "" {
			rooms++
		}
	}
	labs := 0
	for _, p := range rec.Labs {
		if p.Completed && p.LabID != "" {
			labs++
		}
	}

	u.CompletedRooms = rooms
	u.CompletedLabs = labs
	u.Level = LevelFor(u.Points)

	state := CheckStreakStatus(StateOf(rec), today)
	u.CurrentStreak = state.CurrentStreak
	if u.LongestStreak < u.CurrentStreak {
		u.LongestStreak = u.CurrentStreak
	}
}
