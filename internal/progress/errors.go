package progress

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCompleted = errors.New("item already completed")
	ErrInvalidItem      = errors.New("item id is required")
	ErrInvalidKind      = errors.New("unknown item kind")
	ErrInvalidScore     = errors.New("score must be a non-negative integer")
	ErrTaskOutOfRange   = errors.New("task index out of range")
)

// GateError 房间完成条件未满足
type GateError struct {
	RoomID         string
	CompletedTasks int
	TotalTasks     int
	QuizCompleted  bool
}

func (e *GateError) Error() string {
	if e.CompletedTasks != e.TotalTasks {
		return fmt.Sprintf("room tasks incomplete: %d/%d", e.CompletedTasks, e.TotalTasks)
	}
	return "room quiz not completed"
}

// Missing 返回缺失的前置条件：tasks 或 quiz
func (e *GateError) Missing() string {
	if e.CompletedTasks != e.TotalTasks {
		return "tasks"
	}
	return "quiz"
}
