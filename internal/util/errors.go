package util

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrInvalidPassword  = errors.New("邮箱或密码错误")
	ErrRoomNotFound     = errors.New("room not found")
	ErrLabNotFound      = errors.New("lab not found")
	ErrVersionConflict  = errors.New("progress record was modified concurrently")
	ErrJobRunning       = errors.New("streak recalculation already running")
)

// ErrorKind 稳定的机器可读错误类型，前端据此区分“重试”和“先完成前置条件”
type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindPreconditionFailed ErrorKind = "precondition_failed"
	KindConflict           ErrorKind = "conflict"
	KindValidation         ErrorKind = "validation_error"
	KindInternal           ErrorKind = "internal"
)

// AppError 业务错误
type AppError struct {
	Kind    ErrorKind
	Message string
	Data    interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NotFoundError(err error) *AppError {
	return NewAppError(KindNotFound, err.Error(), err)
}

func ValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func ConflictError(err error) *AppError {
	return NewAppError(KindConflict, err.Error(), err)
}

// PreconditionError data 携带缺失条件的细节，例如 completedTasks/totalTasks
func PreconditionError(err error, data interface{}) *AppError {
	return &AppError{Kind: KindPreconditionFailed, Message: err.Error(), Data: data, Err: err}
}

// KindOf 提取错误类型，未标注的错误视为 internal
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	return KindInternal
}

// IsKind 判断 err 是否属于指定类型
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
