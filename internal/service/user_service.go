package service

import (
	"context"
	"errors"
	"time"

	"secquest_backend/internal/model"
	"secquest_backend/internal/repository"
	"secquest_backend/internal/util"
	"secquest_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 处理用户资料与会员状态
type UserService struct {
	UserRepo *repository.UserRepository
	writer   *recordWriter
}

func NewUserService(userRepo *repository.UserRepository, store RecordStore, settings *SettingsStore) *UserService {
	return &UserService{
		UserRepo: userRepo,
		writer:   newRecordWriter(store, settings),
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError(util.ErrUserNotFound)
	}
	return user, err
}

// SetPremium 支付回调设置会员状态，与进度写入走同一条带版本校验的路径
func (s *UserService) SetPremium(ctx context.Context, userID uint, premium bool) (*model.User, error) {
	rec, err := s.writer.mutate(ctx, userID, func(rec *model.ProgressRecord, now time.Time) (bool, error) {
		u := rec.User
		if u.IsPremium == premium {
			return false, nil
		}
		u.IsPremium = premium
		if premium {
			since := now
			u.PremiumSince = &since
		} else {
			u.PremiumSince = nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("会员状态更新", zap.Uint("user_id", userID), zap.Bool("premium", premium))
	return rec.User, nil
}
