package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"secquest_backend/internal/model"
	"secquest_backend/internal/progress"
	"secquest_backend/internal/util"
	"secquest_backend/pkg/logger"
	"secquest_backend/pkg/monitoring"
	"secquest_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentFinder 查询房间与实验内容
type ContentFinder interface {
	FindRoom(ctx context.Context, id string) (*model.Room, error)
	FindLab(ctx context.Context, id string) (*model.Lab, error)
}

// RoomCompletionResponse 房间完成结果
// swagger:model RoomCompletionResponse
type RoomCompletionResponse struct {
	PointsEarned  int  `json:"pointsEarned"`
	TotalPoints   int  `json:"totalPoints"`
	Level         int  `json:"level"`
	CurrentStreak int  `json:"currentStreak"`
	LongestStreak int  `json:"longestStreak"`
	LeveledUp     bool `json:"leveledUp"`
}

// LabCompletionResponse 实验完成结果
// swagger:model LabCompletionResponse
type LabCompletionResponse struct {
	PointsEarned     int  `json:"pointsEarned"`
	TotalPoints      int  `json:"totalPoints"`
	Level            int  `json:"level"`
	CurrentStreak    int  `json:"currentStreak"`
	LongestStreak    int  `json:"longestStreak"`
	LeveledUp        bool `json:"leveledUp"`
	AlreadyCompleted bool `json:"alreadyCompleted"`
}

// ExerciseResponse 练习题提交结果
// swagger:model ExerciseResponse
type ExerciseResponse struct {
	Correct       bool `json:"correct"`
	PointsEarned  int  `json:"pointsEarned"`
	TotalPoints   int  `json:"totalPoints"`
	CurrentStreak int  `json:"currentStreak"`
}

// QuizResponse 测验提交结果
// swagger:model QuizResponse
type QuizResponse struct {
	Passed        bool `json:"passed"`
	PointsEarned  int  `json:"pointsEarned"`
	PassingScore  int  `json:"passingScore"`
	TotalPoints   int  `json:"totalPoints"`
	LeveledUp     bool `json:"leveledUp"`
	CurrentStreak int  `json:"currentStreak"`
}

// ItemProgress 单个条目的进度，未开始时返回空进度
// swagger:model ItemProgress
type ItemProgress struct {
	Kind   model.ItemKind      `json:"kind"`
	ItemID string              `json:"itemId"`
	Room   *model.RoomProgress `json:"room,omitempty"`
	Lab    *model.LabProgress  `json:"lab,omitempty"`
}

// ProgressStats 用户进度汇总
// swagger:model ProgressStats
type ProgressStats struct {
	UserID           uint                   `json:"userId"`
	Points           int                    `json:"points"`
	Level            int                    `json:"level"`
	PointsToNext     int                    `json:"pointsToNextLevel"`
	CompletedRooms   int                    `json:"completedRooms"`
	CompletedLabs    int                    `json:"completedLabs"`
	CurrentStreak    int                    `json:"currentStreak"`
	LongestStreak    int                    `json:"longestStreak"`
	LastStreakDate   *time.Time             `json:"lastStreakDate"`
	IsPremium        bool                   `json:"isPremium"`
	RecentActivities []model.StreakActivity `json:"recentActivities"`
}

const recentActivityLimit = 30

type ProgressService struct {
	writer   *recordWriter
	content  ContentFinder
	settings *SettingsStore
}

func NewProgressService(store RecordStore, content ContentFinder, settings *SettingsStore) *ProgressService {
	return &ProgressService{
		writer:   newRecordWriter(store, settings),
		content:  content,
		settings: settings,
	}
}

// SetClock 测试注入时钟
func (s *ProgressService) SetClock(clock func() time.Time) {
	s.writer.clock = clock
}

func (s *ProgressService) findRoom(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := s.content.FindRoom(ctx, roomID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError(util.ErrRoomNotFound)
	}
	return room, err
}

func (s *ProgressService) findLab(ctx context.Context, labID string) (*model.Lab, error) {
	lab, err := s.content.FindLab(ctx, labID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError(util.ErrLabNotFound)
	}
	return lab, err
}

// domainError 将引擎错误映射为带类型的业务错误
func domainError(err error) error {
	var gate *progress.GateError
	switch {
	case errors.As(err, &gate):
		return util.PreconditionError(gate, map[string]interface{}{
			"roomId":         gate.RoomID,
			"missing":        gate.Missing(),
			"completedTasks": gate.CompletedTasks,
			"totalTasks":     gate.TotalTasks,
			"quizCompleted":  gate.QuizCompleted,
		})
	case errors.Is(err, progress.ErrAlreadyCompleted):
		return util.ConflictError(err)
	case errors.Is(err, progress.ErrInvalidItem),
		errors.Is(err, progress.ErrInvalidKind),
		errors.Is(err, progress.ErrInvalidScore),
		errors.Is(err, progress.ErrTaskOutOfRange):
		return util.ValidationError(err.Error())
	}
	return err
}

func validateItem(itemID string, score int) error {
	if strings.TrimSpace(itemID) == "" {
		return util.ValidationError(progress.ErrInvalidItem.Error())
	}
	if score < 0 {
		return util.ValidationError(progress.ErrInvalidScore.Error())
	}
	return nil
}

func completionOutcome(err error, res progress.CompletionResult) string {
	switch {
	case err == nil && res.IsFirstCompletion:
		return "first"
	case err == nil:
		return "replay"
	case util.IsKind(err, util.KindPreconditionFailed):
		return "precondition"
	case util.IsKind(err, util.KindConflict):
		return "rejected"
	default:
		return "error"
	}
}

// CompleteRoom 完成房间：要求全部任务完成且测验通过，重复完成只计分差
func (s *ProgressService) CompleteRoom(ctx context.Context, userID uint, roomID string, finalScore int) (resp *RoomCompletionResponse, err error) {
	ctx, end := tracing.StartSpan(ctx, "progress.CompleteRoom",
		attribute.Int64("user_id", int64(userID)), attribute.String("room_id", roomID))
	defer func() { end(err) }()

	if err := validateItem(roomID, finalScore); err != nil {
		return nil, err
	}
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var res progress.CompletionResult
	rec, err := s.writer.mutate(ctx, userID, func(rec *model.ProgressRecord, now time.Time) (bool, error) {
		r, err := progress.CompleteActivity(rec, progress.Completion{
			Kind:       model.KindRoom,
			ItemID:     roomID,
			Score:      finalScore,
			Policy:     progress.ReplayDelta,
			TotalTasks: room.TotalTasks(),
		}, now)
		if err != nil {
			return false, domainError(err)
		}
		res = r
		return true, nil
	})
	monitoring.CompletionTotal.WithLabelValues(string(model.KindRoom), completionOutcome(err, res)).Inc()
	if err != nil {
		return nil, err
	}
	s.observeCompletion(userID, model.KindRoom, roomID, res)

	u := rec.User
	return &RoomCompletionResponse{
		PointsEarned:  res.PointsAwarded,
		TotalPoints:   u.Points,
		Level:         u.Level,
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
		LeveledUp:     res.LeveledUp,
	}, nil
}

// CompleteLabStrict 实验已完成时返回 Conflict
func (s *ProgressService) CompleteLabStrict(ctx context.Context, userID uint, labID string, score int) (*LabCompletionResponse, error) {
	return s.completeLab(ctx, userID, labID, score, progress.ReplayReject)
}

// CompleteLabWithReplay 实验重复完成时按分差计分
func (s *ProgressService) CompleteLabWithReplay(ctx context.Context, userID uint, labID string, score int) (*LabCompletionResponse, error) {
	return s.completeLab(ctx, userID, labID, score, progress.ReplayDelta)
}

func (s *ProgressService) completeLab(ctx context.Context, userID uint, labID string, score int, policy progress.ReplayPolicy) (resp *LabCompletionResponse, err error) {
	ctx, end := tracing.StartSpan(ctx, "progress.CompleteLab",
		attribute.Int64("user_id", int64(userID)),
		attribute.String("lab_id", labID),
		attribute.Bool("strict", policy == progress.ReplayReject))
	defer func() { end(err) }()

	if err := validateItem(labID, score); err != nil {
		return nil, err
	}
	if _, err := s.findLab(ctx, labID); err != nil {
		return nil, err
	}

	var res progress.CompletionResult
	rec, err := s.writer.mutate(ctx, userID, func(rec *model.ProgressRecord, now time.Time) (bool, error) {
		r, err := progress.CompleteActivity(rec, progress.Completion{
			Kind:   model.KindLab,
			ItemID: labID,
			Score:  score,
			Policy: policy,
		}, now)
		if err != nil {
			return false, domainError(err)
		}
		res = r
		return true, nil
	})
	monitoring.CompletionTotal.WithLabelValues(string(model.KindLab), completionOutcome(err, res)).Inc()
	if err != nil {
		return nil, err
	}
	s.observeCompletion(userID, model.KindLab, labID, res)

	u := rec.User
	return &LabCompletionResponse{
		PointsEarned:     res.PointsAwarded,
		TotalPoints:      u.Points,
		Level:            u.Level,
		CurrentStreak:    u.CurrentStreak,
		LongestStreak:    u.LongestStreak,
		LeveledUp:        res.LeveledUp,
		AlreadyCompleted: !res.IsFirstCompletion,
	}, nil
}

func (s *ProgressService) observeCompletion(userID uint, kind model.ItemKind, itemID string, res progress.CompletionResult) {
	if res.PointsAwarded > 0 {
		monitoring.PointsAwarded.WithLabelValues(string(kind)).Add(float64(res.PointsAwarded))
	}
	logger.Log.Info("完成学习条目",
		zap.Uint("user_id", userID),
		zap.String("kind", string(kind)),
		zap.String("item_id", itemID),
		zap.Int("points", res.PointsAwarded),
		zap.Bool("first", res.IsFirstCompletion),
		zap.Bool("streak_counted", res.StreakCounted),
		zap.Bool("leveled_up", res.LeveledUp))
}

// SubmitExercise 提交房间内某个任务的练习答案。
// 房间已完成后答错不会清除任务完成标记，也不记录答案，只返回 correct=false。
func (s *ProgressService) SubmitExercise(ctx context.Context, userID uint, roomID string, taskIndex int, answer string) (resp *ExerciseResponse, err error) {
	ctx, end := tracing.StartSpan(ctx, "progress.SubmitExercise",
		attribute.Int64("user_id", int64(userID)),
		attribute.String("room_id", roomID),
		attribute.Int("task_index", taskIndex))
	defer func() { end(err) }()

	if strings.TrimSpace(roomID) == "" {
		return nil, util.ValidationError(progress.ErrInvalidItem.Error())
	}
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if taskIndex < 0 || taskIndex >= room.TotalTasks() {
		return nil, util.ValidationError(progress.ErrTaskOutOfRange.Error())
	}

	t := room.Tasks[taskIndex]
	task := progress.ExerciseTask{
		Index:         taskIndex,
		Expected:      t.Answer,
		CaseSensitive: t.CaseSensitive,
		Points:        t.Points,
	}
	if task.Points <= 0 {
		task.Points = s.settings.Load().ExercisePoints
	}

	var res progress.ExerciseResult
	rec, err := s.writer.mutate(ctx, userID, func(rec *model.ProgressRecord, now time.Time) (bool, error) {
		r, err := progress.SubmitExercise(rec, roomID, task, answer, now)
		if err != nil {
			return false, domainError(err)
		}
		res = r
		return rec.Dirty(), nil
	})
	if err != nil {
		return nil, err
	}
	if res.PointsEarned > 0 {
		monitoring.PointsAwarded.WithLabelValues("exercise").Add(float64(res.PointsEarned))
	}

	return &ExerciseResponse{
		Correct:       res.Correct,
		PointsEarned:  res.PointsEarned,
		TotalPoints:   rec.User.Points,
		CurrentStreak: rec.User.CurrentStreak,
	}, nil
}

// SubmitQuiz 提交房间测验，通过后直接完成房间
func (s *ProgressService) SubmitQuiz(ctx context.Context, userID uint, roomID string, score int) (resp *QuizResponse, err error) {
	ctx, end := tracing.StartSpan(ctx, "progress.SubmitQuiz",
		attribute.Int64("user_id", int64(userID)), attribute.String("room_id", roomID))
	defer func() { end(err) }()

	if err := validateItem(roomID, score); err != nil {
		return nil, err
	}
	if score > 100 {
		return nil, util.ValidationError("quiz score must be between 0 and 100")
	}
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	passing := room.QuizPassingScore
	if passing <= 0 {
		passing = s.settings.Load().QuizPassingScore
	}

	var res progress.QuizResult
	rec, err := s.writer.mutate(ctx, userID, func(rec *model.ProgressRecord, now time.Time) (bool, error) {
		r, err := progress.SubmitQuiz(rec, roomID, room.TotalTasks(), passing, score, now)
		if err != nil {
			return false, domainError(err)
		}
		res = r
		return r.Passed, nil
	})
	if err != nil {
		return nil, err
	}
	if res.Completion != nil {
		monitoring.CompletionTotal.WithLabelValues(string(model.KindRoom), completionOutcome(nil, *res.Completion)).Inc()
		s.observeCompletion(userID, model.KindRoom, roomID, *res.Completion)
	}

	out := &QuizResponse{
		Passed:        res.Passed,
		PointsEarned:  res.PointsEarned,
		PassingScore:  passing,
		TotalPoints:   rec.User.Points,
		CurrentStreak: rec.User.CurrentStreak,
	}
	if res.Completion != nil {
		out.LeveledUp = res.Completion.LeveledUp
	}
	return out, nil
}

// JoinRoom 加入房间，重复加入不产生变化
func (s *ProgressService) JoinRoom(ctx context.Context, userID uint, roomID string) (*model.RoomProgress, error) {
	if strings.TrimSpace(roomID) == "" {
		return nil, util.ValidationError(progress.ErrInvalidItem.Error())
	}
	if _, err := s.findRoom(ctx, roomID); err != nil {
		return nil, err
	}

	rec, err := s.writer.mutate(ctx, userID, func(rec *model.ProgressRecord, _ time.Time) (bool, error) {
		if p := rec.Room(roomID); p != nil && p.Joined {
			return false, nil
		}
		rec.MutableRoom(roomID).Joined = true
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return rec.Room(roomID), nil
}

// UpdateLecture 记录当前阅读到的任务
func (s *ProgressService) UpdateLecture(ctx context.Context, userID uint, roomID string, lecture int) (*model.RoomProgress, error) {
	if strings.TrimSpace(roomID) == "" {
		return nil, util.ValidationError(progress.ErrInvalidItem.Error())
	}
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if lecture < 0 || lecture >= room.TotalTasks() {
		return nil, util.ValidationError(progress.ErrTaskOutOfRange.Error())
	}

	rec, err := s.writer.mutate(ctx, userID, func(rec *model.ProgressRecord, _ time.Time) (bool, error) {
		if p := rec.Room(roomID); p != nil && p.CurrentLecture == lecture {
			return false, nil
		}
		rec.MutableRoom(roomID).CurrentLecture = lecture
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return rec.Room(roomID), nil
}

// GetProgress 读取单个条目的进度
func (s *ProgressService) GetProgress(ctx context.Context, userID uint, kind model.ItemKind, itemID string) (*ItemProgress, error) {
	if !kind.Valid() {
		return nil, util.ValidationError(progress.ErrInvalidKind.Error())
	}
	if strings.TrimSpace(itemID) == "" {
		return nil, util.ValidationError(progress.ErrInvalidItem.Error())
	}

	rec, err := s.writer.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &ItemProgress{Kind: kind, ItemID: itemID}
	switch kind {
	case model.KindRoom:
		out.Room = rec.Room(itemID)
		if out.Room == nil {
			out.Room = &model.RoomProgress{
				UserID:            userID,
				RoomID:            itemID,
				CompletedLectures: datatypes.JSONSlice[int]{},
				ExerciseAnswers:   datatypes.NewJSONType(map[int]model.AnswerRecord{}),
			}
		}
	case model.KindLab:
		out.Lab = rec.Lab(itemID)
		if out.Lab == nil {
			out.Lab = &model.LabProgress{UserID: userID, LabID: itemID}
		}
	}
	return out, nil
}

// GetStats 进度汇总，展示前先做连续天数衰减（不写回）
func (s *ProgressService) GetStats(ctx context.Context, userID uint) (*ProgressStats, error) {
	rec, err := s.writer.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := progress.CheckStreakStatus(progress.StateOf(rec), s.writer.now())
	u := rec.User

	recent := rec.Activities
	if len(recent) > recentActivityLimit {
		recent = recent[len(recent)-recentActivityLimit:]
	}

	return &ProgressStats{
		UserID:           u.ID,
		Points:           u.Points,
		Level:            progress.LevelFor(u.Points),
		PointsToNext:     progress.PointsPerLevel - u.Points%progress.PointsPerLevel,
		CompletedRooms:   u.CompletedRooms,
		CompletedLabs:    u.CompletedLabs,
		CurrentStreak:    state.CurrentStreak,
		LongestStreak:    u.LongestStreak,
		LastStreakDate:   u.LastStreakDate,
		IsPremium:        u.IsPremium,
		RecentActivities: recent,
	}, nil
}
