package progress

import (
	"strings"
	"time"

	"secquest_backend/internal/model"
)

// ReplayPolicy 已完成条目再次提交时的处理方式
type ReplayPolicy int

const (
	// ReplayDelta 仅计入新旧分数差
	ReplayDelta ReplayPolicy = iota
	// ReplayReject 直接拒绝
	ReplayReject
)

// Completion 一次完成请求
type Completion struct {
	Kind       model.ItemKind
	ItemID     string
	Score      int
	Policy     ReplayPolicy
	TotalTasks int // 仅房间使用
}

type CompletionResult struct {
	PointsAwarded     int
	LeveledUp         bool
	IsFirstCompletion bool
	StreakCounted     bool
}

// completedTasks 只统计当前任务列表范围内的已完成任务，房间任务减少后遗留的序号不计入
func completedTasks(p *model.RoomProgress, totalTasks int) int {
	if p == nil {
		return 0
	}
	done := 0
	for _, idx := range p.CompletedLectures {
		if idx >= 0 && idx < totalTasks {
			done++
		}
	}
	return done
}

// checkTasks 测验与房间完成共用的任务检查
func checkTasks(p *model.RoomProgress, roomID string, totalTasks int) error {
	done := completedTasks(p, totalTasks)
	if done < totalTasks {
		quiz := p != nil && p.QuizCompleted
		return &GateError{RoomID: roomID, CompletedTasks: done, TotalTasks: totalTasks, QuizCompleted: quiz}
	}
	return nil
}

// CheckRoomGate 房间只有在全部任务完成且测验通过后才能标记完成
func CheckRoomGate(p *model.RoomProgress, roomID string, totalTasks int) error {
	if err := checkTasks(p, roomID, totalTasks); err != nil {
		return err
	}
	if p == nil || !p.QuizCompleted {
		return &GateError{RoomID: roomID, CompletedTasks: totalTasks, TotalTasks: totalTasks}
	}
	return nil
}

// CompleteActivity 完成处理器：首次完成计入全部分数，重复完成只计入分差（可为负），
// 随后执行连续天数的衰减检查与当天活动计入。派生字段由 FinalizeBeforePersist 负责。
func CompleteActivity(rec *model.ProgressRecord, c Completion, at time.Time) (CompletionResult, error) {
	if strings.TrimSpace(c.ItemID) == "" {
		return CompletionResult{}, ErrInvalidItem
	}
	if c.Score < 0 {
		return CompletionResult{}, ErrInvalidScore
	}

	var prevCompleted bool
	var prevScore int
	switch c.Kind {
	case model.KindRoom:
		p := rec.Room(c.ItemID)
		if err := CheckRoomGate(p, c.ItemID, c.TotalTasks); err != nil {
			return CompletionResult{}, err
		}
		prevCompleted, prevScore = p.Completed, p.Score
	case model.KindLab:
		if p := rec.Lab(c.ItemID); p != nil {
			prevCompleted, prevScore = p.Completed, p.Score
		}
	default:
		return CompletionResult{}, ErrInvalidKind
	}

	if prevCompleted && c.Policy == ReplayReject {
		return CompletionResult{}, ErrAlreadyCompleted
	}

	delta := c.Score
	if prevCompleted {
		delta = c.Score - prevScore
	}

	oldPoints := rec.User.Points
	rec.User.Points += delta

	completedAt := at
	switch c.Kind {
	case model.KindRoom:
		p := rec.MutableRoom(c.ItemID)
		score := c.Score
		p.Completed = true
		p.CompletedAt = &completedAt
		p.Score = c.Score
		p.FinalScore = &score
	case model.KindLab:
		p := rec.MutableLab(c.ItemID)
		p.Completed = true
		p.CompletedAt = &completedAt
		p.Score = c.Score
	}
	rec.RecordCompletion(c.Kind, c.ItemID, completedAt, c.Score)

	counted := RecordActivity(rec, at, c.Kind, c.ItemID)

	return CompletionResult{
		PointsAwarded:     delta,
		LeveledUp:         LevelFor(oldPoints) != LevelFor(rec.User.Points),
		IsFirstCompletion: !prevCompleted,
		StreakCounted:     counted,
	}, nil
}
