package service

import (
	"context"
	"testing"

	"secquest_backend/internal/model"
	"secquest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProgressService_RoomFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(t, "flow@example.com")

	joined, err := f.svc.JoinRoom(ctx, user.ID, f.room.ID)
	require.NoError(t, err)
	assert.True(t, joined.Joined)

	ex, err := f.svc.SubmitExercise(ctx, user.ID, f.room.ID, 0, " 22 ")
	require.NoError(t, err)
	assert.True(t, ex.Correct)
	assert.Equal(t, 10, ex.PointsEarned, "task without points uses the configured default")

	ex, err = f.svc.SubmitExercise(ctx, user.ID, f.room.ID, 1, "tcp")
	require.NoError(t, err)
	assert.False(t, ex.Correct)

	ex, err = f.svc.SubmitExercise(ctx, user.ID, f.room.ID, 1, "TCP")
	require.NoError(t, err)
	assert.True(t, ex.Correct)
	assert.Equal(t, 15, ex.PointsEarned)
	assert.Equal(t, 25, ex.TotalPoints)

	quiz, err := f.svc.SubmitQuiz(ctx, user.ID, f.room.ID, 80)
	require.NoError(t, err)
	assert.True(t, quiz.Passed)
	assert.Equal(t, 80, quiz.PointsEarned)
	assert.Equal(t, 105, quiz.TotalPoints)

	rec := f.reload(t, user.ID)
	assert.Equal(t, 1, rec.User.CompletedRooms)
	assert.Equal(t, 1, rec.User.CurrentStreak)
	assert.Len(t, rec.Activities, 1, "one streak entry per day")
	room := rec.Room(f.room.ID)
	assert.True(t, room.Completed)
	assert.True(t, room.QuizCompleted)
	require.NotNil(t, room.FinalScore)
	assert.Equal(t, 80, *room.FinalScore)

	replay, err := f.svc.CompleteRoom(ctx, user.ID, f.room.ID, 95)
	require.NoError(t, err)
	assert.Equal(t, 15, replay.PointsEarned)
	assert.Equal(t, 120, replay.TotalPoints)

	rec = f.reload(t, user.ID)
	assert.Equal(t, 1, rec.User.CompletedRooms)
	assert.Equal(t, 95, rec.Room(f.room.ID).Score)
}

func TestProgressService_CompleteRoomPrecondition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(t, "gate@example.com")

	_, err := f.svc.SubmitExercise(ctx, user.ID, f.room.ID, 0, "22")
	require.NoError(t, err)

	_, err = f.svc.CompleteRoom(ctx, user.ID, f.room.ID, 100)
	require.Error(t, err)
	assert.Equal(t, util.KindPreconditionFailed, util.KindOf(err))

	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	data := appErr.Data.(map[string]interface{})
	assert.Equal(t, "tasks", data["missing"])
	assert.Equal(t, 1, data["completedTasks"])
	assert.Equal(t, 2, data["totalTasks"])

	_, err = f.svc.SubmitQuiz(ctx, user.ID, f.room.ID, 100)
	assert.Equal(t, util.KindPreconditionFailed, util.KindOf(err))

	rec := f.reload(t, user.ID)
	assert.False(t, rec.Room(f.room.ID).Completed)
	assert.Equal(t, 10, rec.User.Points)
}

func TestProgressService_QuizFailLeavesRecordUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(t, "fail@example.com")
	f.finishTasks(t, user.ID)
	before := f.reload(t, user.ID)

	quiz, err := f.svc.SubmitQuiz(ctx, user.ID, f.room.ID, 40)
	require.NoError(t, err)
	assert.False(t, quiz.Passed)
	assert.Zero(t, quiz.PointsEarned)
	assert.Equal(t, 70, quiz.PassingScore)

	after := f.reload(t, user.ID)
	assert.Equal(t, before.User.Version, after.User.Version)
	assert.False(t, after.Room(f.room.ID).QuizCompleted)
}

func TestProgressService_LabPolicies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(t, "lab@example.com")

	first, err := f.svc.CompleteLabStrict(ctx, user.ID, f.lab.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, first.PointsEarned)
	assert.False(t, first.AlreadyCompleted)

	_, err = f.svc.CompleteLabStrict(ctx, user.ID, f.lab.ID, 120)
	assert.Equal(t, util.KindConflict, util.KindOf(err))

	replay, err := f.svc.CompleteLabWithReplay(ctx, user.ID, f.lab.ID, 120)
	require.NoError(t, err)
	assert.True(t, replay.AlreadyCompleted)
	assert.Equal(t, 20, replay.PointsEarned)
	assert.Equal(t, 120, replay.TotalPoints)

	rec := f.reload(t, user.ID)
	assert.Equal(t, 1, rec.User.CompletedLabs)

	view, err := f.content.GetLab(ctx, f.lab.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, view.CompletedBy)
}

func TestProgressService_LevelUp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(t, "lvl@example.com")
	require.NoError(t, f.db.Model(&model.User{}).Where("id = ?", user.ID).UpdateColumn("points", 950).Error)

	res, err := f.svc.CompleteLabWithReplay(ctx, user.ID, f.lab.ID, 100)
	require.NoError(t, err)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, res.Level)
}

func TestProgressService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(t, "err@example.com")

	_, err := f.svc.CompleteRoom(ctx, user.ID, "missing", 10)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))

	_, err = f.svc.CompleteLabStrict(ctx, user.ID, "missing", 10)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))

	_, err = f.svc.CompleteLabStrict(ctx, 9999, f.lab.ID, 10)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))

	_, err = f.svc.CompleteLabStrict(ctx, user.ID, f.lab.ID, -5)
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	_, err = f.svc.CompleteRoom(ctx, user.ID, "", 5)
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	_, err = f.svc.SubmitExercise(ctx, user.ID, f.room.ID, 7, "x")
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	_, err = f.svc.SubmitQuiz(ctx, user.ID, f.room.ID, 101)
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	_, err = f.svc.UpdateLecture(ctx, user.ID, f.room.ID, 2)
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	_, err = f.svc.GetProgress(ctx, user.ID, "course", "x")
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	rec := f.reload(t, user.ID)
	assert.Zero(t, rec.User.Version, "rejected requests never write")
}

func TestProgressService_StreakAcrossDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(t, "streak@example.com")

	f.clock.Set(2024, 3, 1, 9)
	_, err := f.svc.CompleteLabWithReplay(ctx, user.ID, f.lab.ID, 50)
	require.NoError(t, err)

	f.clock.Set(2024, 3, 2, 23)
	res, err := f.svc.CompleteLabWithReplay(ctx, user.ID, f.lab.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 2, res.CurrentStreak)

	f.clock.Set(2024, 3, 5, 8)
	stats, err := f.svc.GetStats(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
	assert.Equal(t, 60, stats.Points)
	assert.Equal(t, 940, stats.PointsToNext)
	assert.Len(t, stats.RecentActivities, 2)

	f.clock.Set(2024, 3, 5, 9)
	res, err = f.svc.CompleteLabWithReplay(ctx, user.ID, f.lab.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CurrentStreak)
	assert.Equal(t, 2, res.LongestStreak)
}

func TestProgressService_GetProgressDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(t, "read@example.com")

	p, err := f.svc.GetProgress(ctx, user.ID, model.KindRoom, f.room.ID)
	require.NoError(t, err)
	require.NotNil(t, p.Room)
	assert.False(t, p.Room.Joined)
	assert.Empty(t, p.Room.CompletedLectures)

	_, err = f.svc.UpdateLecture(ctx, user.ID, f.room.ID, 1)
	require.NoError(t, err)

	p, err = f.svc.GetProgress(ctx, user.ID, model.KindRoom, f.room.ID)
	require.NoError(t, err)
	assert.True(t, p.Room.Joined)
	assert.Equal(t, 1, p.Room.CurrentLecture)

	p, err = f.svc.GetProgress(ctx, user.ID, model.KindLab, f.lab.ID)
	require.NoError(t, err)
	require.NotNil(t, p.Lab)
	assert.False(t, p.Lab.Completed)
}

// conflictingStore 在前 n 次写回前模拟另一个请求抢先写入
type conflictingStore struct {
	RecordStore
	db *gorm.DB
	n  int
}

func (s *conflictingStore) SaveRecord(ctx context.Context, rec *model.ProgressRecord) error {
	if s.n > 0 {
		s.n--
		if err := s.db.Model(&model.User{}).Where("id = ?", rec.User.ID).
			UpdateColumn("version", gorm.Expr("version + 1")).Error; err != nil {
			return err
		}
	}
	return s.RecordStore.SaveRecord(ctx, rec)
}

func TestProgressService_RetriesOnVersionConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(t, "race@example.com")

	store := &conflictingStore{RecordStore: f.progress, db: f.db, n: 2}
	svc := NewProgressService(store, f.content, f.settings)
	svc.SetClock(f.clock.Now)

	res, err := svc.CompleteLabStrict(ctx, user.ID, f.lab.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, res.TotalPoints)

	rec := f.reload(t, user.ID)
	assert.Equal(t, 100, rec.User.Points)
	assert.Equal(t, 3, rec.User.Version)

	store.n = 10
	_, err = svc.CompleteLabWithReplay(ctx, user.ID, f.lab.ID, 150)
	assert.Equal(t, util.KindConflict, util.KindOf(err))
	assert.Equal(t, 100, f.reload(t, user.ID).User.Points)
}
