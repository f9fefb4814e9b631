package service

import (
	"context"
	"errors"

	"secquest_backend/internal/model"
	"secquest_backend/internal/repository"
	"secquest_backend/internal/util"

	"gorm.io/gorm"
)

// LeaderboardEntry 排行榜条目
// swagger:model LeaderboardEntry
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        uint   `json:"userId"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	Level         int    `json:"level"`
	CurrentStreak int    `json:"currentStreak"`
}

// LeaderboardService 排名为积分严格更高的用户数 + 1，同分同名次，每次实时查询
type LeaderboardService struct {
	UserRepo *repository.UserRepository
}

func NewLeaderboardService(userRepo *repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{UserRepo: userRepo}
}

func (s *LeaderboardService) GetRank(ctx context.Context, userID uint) (int, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, util.NotFoundError(util.ErrUserNotFound)
	}
	if err != nil {
		return 0, err
	}
	return s.rankForPoints(ctx, user.Points)
}

func (s *LeaderboardService) rankForPoints(ctx context.Context, points int) (int, error) {
	higher, err := s.UserRepo.CountWithMorePoints(ctx, points)
	if err != nil {
		return 0, err
	}
	return int(higher) + 1, nil
}

// GetLeaderboard limit 缺省为 10，上限 100
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = util.DefaultLeaderboardLimit
	}
	if limit > util.MaxLeaderboardLimit {
		limit = util.MaxLeaderboardLimit
	}

	users, err := s.UserRepo.FindTopByPoints(ctx, limit)
	if err != nil {
		return nil, err
	}
	return rankUsers(users), nil
}

// rankUsers 输入按积分降序；所有积分更高的用户都排在前面，因此首个同分条目的位置即名次
func rankUsers(users []model.User) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(users))
	rank := 0
	for i, u := range users {
		if i == 0 || u.Points != users[i-1].Points {
			rank = i + 1
		}
		entries[i] = LeaderboardEntry{
			Rank:          rank,
			UserID:        u.ID,
			Name:          u.Name,
			Points:        u.Points,
			Level:         u.Level,
			CurrentStreak: u.CurrentStreak,
		}
	}
	return entries
}
