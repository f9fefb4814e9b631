package service

import (
	"context"
	"testing"
	"time"

	"secquest_backend/internal/model"
	"secquest_backend/internal/repository"
	"secquest_backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    *repository.UserRepository
	progress *repository.ProgressRepository
	content  *ContentService
	settings *SettingsStore
	svc      *ProgressService
	clock    *testClock
	room     *model.Room
	lab      *model.Lab
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Set(y, m, d, h int) {
	c.now = time.Date(y, time.Month(m), d, h, 0, 0, 0, time.UTC)
}

func testSettings() ProgressSettings {
	return ProgressSettings{
		Location:         time.UTC,
		ExercisePoints:   10,
		QuizPassingScore: 70,
		MaxRetries:       3,
		RecalcWorkers:    2,
		RecalcLockTTL:    time.Minute,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		progress: repository.NewProgressRepository(db),
		settings: NewSettingsStore(testSettings()),
		clock:    &testClock{},
	}
	f.clock.Set(2024, 3, 1, 10)
	contentRepo := repository.NewContentRepository(db)
	f.content = NewContentService(contentRepo, f.progress, nil)
	f.svc = NewProgressService(f.progress, f.content, f.settings)
	f.svc.SetClock(f.clock.Now)

	ctx := context.Background()
	room, err := f.content.CreateRoom(ctx, CreateRoomRequest{
		Title:            "Network Basics",
		QuizPassingScore: 70,
		Tasks: []model.RoomTask{
			{Title: "ports", Question: "SSH port?", Answer: "22"},
			{Title: "proto", Question: "HTTP runs over?", Answer: "TCP", CaseSensitive: true, Points: 15},
		},
	})
	require.NoError(t, err)
	f.room = room

	lab, err := f.content.CreateLab(ctx, CreateLabRequest{Title: "Recon", Points: 100})
	require.NoError(t, err)
	f.lab = lab
	return f
}

func (f *fixture) newUser(t *testing.T, email string) *model.User {
	t.Helper()
	u := &model.User{Name: email, Email: email, Password: "x", Role: model.Student}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) reload(t *testing.T, userID uint) *model.ProgressRecord {
	t.Helper()
	rec, err := f.progress.LoadRecord(context.Background(), userID)
	require.NoError(t, err)
	return rec
}

// finishTasks 答对房间内全部练习题
func (f *fixture) finishTasks(t *testing.T, userID uint) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.SubmitExercise(ctx, userID, f.room.ID, 0, "22")
	require.NoError(t, err)
	_, err = f.svc.SubmitExercise(ctx, userID, f.room.ID, 1, "TCP")
	require.NoError(t, err)
}
