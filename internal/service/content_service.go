package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"secquest_backend/internal/model"
	"secquest_backend/internal/repository"
	"secquest_backend/internal/util"
	"secquest_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	roomCacheKeyPrefix = "room:"
	roomCacheTTL       = 10 * time.Minute
)

// TaskView 对外展示的任务，不包含答案
type TaskView struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Question string `json:"question"`
	Points   int    `json:"points"`
}

// RoomView 房间详情
// swagger:model RoomView
type RoomView struct {
	*model.Room
	Tasks       []TaskView `json:"tasks"`
	TotalTasks  int        `json:"totalTasks"`
	CompletedBy int64      `json:"completedBy"`
}

// LabView 实验详情
// swagger:model LabView
type LabView struct {
	*model.Lab
	CompletedBy int64 `json:"completedBy"`
}

// CreateRoomRequest 创建房间
// swagger:model CreateRoomRequest
type CreateRoomRequest struct {
	Title            string           `json:"title" binding:"required"`
	Description      string           `json:"description"`
	Difficulty       string           `json:"difficulty"`
	QuizPassingScore int              `json:"quizPassingScore"`
	Tasks            []model.RoomTask `json:"tasks" binding:"required,min=1,dive"`
}

// CreateLabRequest 创建实验
// swagger:model CreateLabRequest
type CreateLabRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Points      int    `json:"points"`
}

// ContentService 房间与实验目录。房间按 id 缓存在 Redis（未配置时直接查库）
type ContentService struct {
	ContentRepo  *repository.ContentRepository
	ProgressRepo *repository.ProgressRepository
	Redis        *redis.Client
}

func NewContentService(contentRepo *repository.ContentRepository, progressRepo *repository.ProgressRepository, rdb *redis.Client) *ContentService {
	return &ContentService{
		ContentRepo:  contentRepo,
		ProgressRepo: progressRepo,
		Redis:        rdb,
	}
}

func (s *ContentService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*model.Room, error) {
	if strings.TrimSpace(req.Title) == "" || len(req.Tasks) == 0 {
		return nil, util.ValidationError("title and at least one task are required")
	}
	for _, t := range req.Tasks {
		if strings.TrimSpace(t.Answer) == "" || t.Points < 0 {
			return nil, util.ValidationError("every task needs an answer and non-negative points")
		}
	}
	if req.QuizPassingScore < 0 || req.QuizPassingScore > 100 {
		return nil, util.ValidationError("quizPassingScore must be between 0 and 100")
	}

	room := &model.Room{
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Difficulty:       req.Difficulty,
		QuizPassingScore: req.QuizPassingScore,
		Tasks:            datatypes.JSONSlice[model.RoomTask](req.Tasks),
	}
	if room.Difficulty == "" {
		room.Difficulty = "easy"
	}
	if err := s.ContentRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// FindRoom 供进度服务使用，包含答案
func (s *ContentService) FindRoom(ctx context.Context, id string) (*model.Room, error) {
	if s.Redis != nil {
		if data, err := s.Redis.Get(ctx, roomCacheKeyPrefix+id).Bytes(); err == nil {
			var room model.Room
			if err := json.Unmarshal(data, &cachedRoom{&room}); err == nil {
				return &room, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("读取房间缓存失败", zap.String("room_id", id), zap.Error(err))
		}
	}

	room, err := s.ContentRepo.FindRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(cachedRoom{room}); err == nil {
			if err := s.Redis.Set(ctx, roomCacheKeyPrefix+id, data, roomCacheTTL).Err(); err != nil {
				logger.Log.Warn("写入房间缓存失败", zap.String("room_id", id), zap.Error(err))
			}
		}
	}
	return room, nil
}

// cachedRoom 缓存时需要保留 Tasks（对外 JSON 中隐藏）
type cachedRoom struct {
	*model.Room
}

type cachedRoomJSON struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Difficulty       string           `json:"difficulty"`
	QuizPassingScore int              `json:"quizPassingScore"`
	Tasks            []model.RoomTask `json:"tasks"`
}

func (c cachedRoom) MarshalJSON() ([]byte, error) {
	return json.Marshal(cachedRoomJSON{
		ID:               c.ID,
		Title:            c.Title,
		Description:      c.Description,
		Difficulty:       c.Difficulty,
		QuizPassingScore: c.QuizPassingScore,
		Tasks:            c.Tasks,
	})
}

func (c *cachedRoom) UnmarshalJSON(data []byte) error {
	var v cachedRoomJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c.ID = v.ID
	c.Title = v.Title
	c.Description = v.Description
	c.Difficulty = v.Difficulty
	c.QuizPassingScore = v.QuizPassingScore
	c.Tasks = v.Tasks
	return nil
}

func (s *ContentService) FindLab(ctx context.Context, id string) (*model.Lab, error) {
	return s.ContentRepo.FindLab(ctx, id)
}

func (s *ContentService) GetRoom(ctx context.Context, id string) (*RoomView, error) {
	room, err := s.FindRoom(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError(util.ErrRoomNotFound)
	}
	if err != nil {
		return nil, err
	}
	count, err := s.ProgressRepo.CountCompletions(ctx, model.KindRoom, id)
	if err != nil {
		return nil, err
	}
	return newRoomView(room, count), nil
}

func newRoomView(room *model.Room, completedBy int64) *RoomView {
	tasks := make([]TaskView, len(room.Tasks))
	for i, t := range room.Tasks {
		tasks[i] = TaskView{Index: i, Title: t.Title, Question: t.Question, Points: t.Points}
	}
	return &RoomView{Room: room, Tasks: tasks, TotalTasks: len(tasks), CompletedBy: completedBy}
}

func (s *ContentService) ListRooms(ctx context.Context, page, limit int) ([]*RoomView, int64, error) {
	rooms, total, err := s.ContentRepo.ListRooms(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]*RoomView, len(rooms))
	for i := range rooms {
		views[i] = newRoomView(&rooms[i], 0)
	}
	return views, total, nil
}

func (s *ContentService) CreateLab(ctx context.Context, req CreateLabRequest) (*model.Lab, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, util.ValidationError("title is required")
	}
	if req.Points < 0 {
		return nil, util.ValidationError("points must be non-negative")
	}
	lab := &model.Lab{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Points:      req.Points,
	}
	if lab.Difficulty == "" {
		lab.Difficulty = "easy"
	}
	if err := s.ContentRepo.CreateLab(ctx, lab); err != nil {
		return nil, err
	}
	return lab, nil
}

func (s *ContentService) GetLab(ctx context.Context, id string) (*LabView, error) {
	lab, err := s.FindLab(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError(util.ErrLabNotFound)
	}
	if err != nil {
		return nil, err
	}
	count, err := s.ProgressRepo.CountCompletions(ctx, model.KindLab, id)
	if err != nil {
		return nil, err
	}
	return &LabView{Lab: lab, CompletedBy: count}, nil
}

func (s *ContentService) ListLabs(ctx context.Context, page, limit int) ([]model.Lab, int64, error) {
	return s.ContentRepo.ListLabs(ctx, page, limit)
}
