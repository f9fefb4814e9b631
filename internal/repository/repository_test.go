package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"secquest_backend/internal/model"
	"secquest_backend/internal/testutil"
	"secquest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, email string, points int) *model.User {
	t.Helper()
	u := &model.User{Name: email, Email: email, Password: "x", Role: model.Student}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	if points != 0 {
		require.NoError(t, db.Model(u).UpdateColumn("points", points).Error)
		u.Points = points
	}
	return u
}

func TestProgressRepository_SaveAndLoad(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "a@example.com", 0)

	rec, err := repo.LoadRecord(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, rec.Rooms)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	done := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	p := rec.MutableRoom("room-1")
	p.AddLecture(1)
	p.AddLecture(0)
	p.SetAnswer(0, model.AnswerRecord{Answer: "pwd", Correct: true})
	p.QuizCompleted = true
	p.Completed = true
	p.CompletedAt = &done
	p.Score = 80

	lab := rec.MutableLab("lab-1")
	lab.Completed = true
	lab.CompletedAt = &done
	lab.Score = 100

	rec.AppendActivity(model.StreakActivity{Date: day, ActivityType: model.KindRoom, ItemID: "room-1"})
	rec.RecordCompletion(model.KindRoom, "room-1", done, 80)
	rec.RecordCompletion(model.KindLab, "lab-1", done, 100)

	rec.User.Points = 180
	rec.User.CompletedRooms = 1
	rec.User.CompletedLabs = 1
	rec.User.CurrentStreak = 1
	rec.User.LongestStreak = 1
	rec.User.LastStreakDate = &day

	require.NoError(t, repo.SaveRecord(ctx, rec))
	assert.Equal(t, 1, rec.User.Version)
	assert.Empty(t, rec.DirtyRooms())

	loaded, err := repo.LoadRecord(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 180, loaded.User.Points)
	assert.Equal(t, 1, loaded.User.Version)
	assert.Equal(t, 1, loaded.User.CurrentStreak)
	require.NotNil(t, loaded.User.LastStreakDate)
	assert.True(t, loaded.User.LastStreakDate.Equal(day))

	room := loaded.Room("room-1")
	require.NotNil(t, room)
	assert.Equal(t, []int{0, 1}, []int(room.CompletedLectures))
	assert.Equal(t, "pwd", room.Answers()[0].Answer)
	assert.True(t, room.Completed)
	assert.Equal(t, 80, room.Score)

	require.NotNil(t, loaded.Lab("lab-1"))
	assert.True(t, loaded.Lab("lab-1").Completed)
	require.Len(t, loaded.Activities, 1)
	assert.Equal(t, "room-1", loaded.Activities[0].ItemID)

	labs, err := repo.FindItemCompletions(ctx, user.ID, model.KindLab)
	require.NoError(t, err)
	require.Len(t, labs, 1)
	assert.Equal(t, 100, labs[0].Score)
}

func TestProgressRepository_VersionConflict(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "b@example.com", 0)

	first, err := repo.LoadRecord(ctx, user.ID)
	require.NoError(t, err)
	second, err := repo.LoadRecord(ctx, user.ID)
	require.NoError(t, err)

	first.User.Points = 10
	first.MutableLab("lab-1").Completed = true
	require.NoError(t, repo.SaveRecord(ctx, first))

	second.User.Points = 99
	second.MutableLab("lab-2").Completed = true
	err = repo.SaveRecord(ctx, second)
	require.ErrorIs(t, err, util.ErrVersionConflict)

	loaded, err := repo.LoadRecord(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.User.Points)
	assert.Nil(t, loaded.Lab("lab-2"), "rejected save must not leave partial rows")
}

func TestProgressRepository_ReplaceActivitiesAndUpsertCompletion(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "c@example.com", 0)

	rec, err := repo.LoadRecord(ctx, user.ID)
	require.NoError(t, err)
	for d := 1; d <= 3; d++ {
		rec.AppendActivity(model.StreakActivity{
			Date:         time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC),
			ActivityType: model.KindLab,
			ItemID:       fmt.Sprintf("lab-%d", d),
		})
	}
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	rec.RecordCompletion(model.KindLab, "lab-1", at, 50)
	require.NoError(t, repo.SaveRecord(ctx, rec))

	rec.ReplaceActivities([]model.StreakActivity{
		{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ActivityType: model.KindRoom, ItemID: "room-9"},
	})
	rec.RecordCompletion(model.KindLab, "lab-1", at.Add(time.Hour), 70)
	require.NoError(t, repo.SaveRecord(ctx, rec))

	loaded, err := repo.LoadRecord(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Activities, 1)
	assert.Equal(t, "room-9", loaded.Activities[0].ItemID)

	list, err := repo.FindItemCompletions(ctx, user.ID, model.KindLab)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 70, list[0].Score)

	count, err := repo.CountCompletions(ctx, model.KindLab, "lab-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUserRepository_RankQueriesWithTies(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	a := createUser(t, db, "a@example.com", 100)
	b := createUser(t, db, "b@example.com", 100)
	c := createUser(t, db, "c@example.com", 50)

	for _, u := range []*model.User{a, b} {
		n, err := repo.CountWithMorePoints(ctx, u.Points)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	}
	n, err := repo.CountWithMorePoints(ctx, c.Points)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	top, err := repo.FindTopByPoints(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, a.ID, top[0].ID)
	assert.Equal(t, b.ID, top[1].ID)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID, c.ID}, ids)
}

func TestUserRepository_CreateZeroesProgress(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{Name: "n", Email: "z@example.com", Password: "x", Points: 500, CurrentStreak: 4}
	require.NoError(t, repo.Create(ctx, u))

	loaded, err := repo.FindByEmail(ctx, "z@example.com")
	require.NoError(t, err)
	assert.Zero(t, loaded.Points)
	assert.Equal(t, 1, loaded.Level)
	assert.Zero(t, loaded.CurrentStreak)
	assert.Equal(t, model.Student, loaded.Role)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestContentRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	room := &model.Room{Title: "Web", Tasks: []model.RoomTask{{Question: "q", Answer: "a", Points: 5}}}
	require.NoError(t, repo.CreateRoom(ctx, room))
	assert.NotEmpty(t, room.ID)

	found, err := repo.FindRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.TotalTasks())
	assert.Equal(t, "a", found.Tasks[0].Answer)

	rooms, total, err := repo.ListRooms(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, rooms, 1)

	_, err = repo.FindLab(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
