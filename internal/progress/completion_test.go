package progress

import (
	"testing"

	"secquest_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteActivity_RoomReplayAddsOnlyDelta(t *testing.T) {
	rec := newRecord()
	readyRoom(rec, "room-1", 3)

	first, err := CompleteActivity(rec, Completion{Kind: model.KindRoom, ItemID: "room-1", Score: 80, TotalTasks: 3}, at(2024, 2, 1, 10))
	require.NoError(t, err)
	FinalizeBeforePersist(rec, at(2024, 2, 1, 10))
	assert.True(t, first.IsFirstCompletion)
	assert.Equal(t, 80, first.PointsAwarded)
	assert.Equal(t, 80, rec.User.Points)
	assert.Equal(t, 1, rec.User.CompletedRooms)

	replay, err := CompleteActivity(rec, Completion{Kind: model.KindRoom, ItemID: "room-1", Score: 95, TotalTasks: 3}, at(2024, 2, 2, 10))
	require.NoError(t, err)
	FinalizeBeforePersist(rec, at(2024, 2, 2, 10))
	assert.False(t, replay.IsFirstCompletion)
	assert.Equal(t, 15, replay.PointsAwarded)
	assert.Equal(t, 95, rec.User.Points)
	assert.Equal(t, 1, rec.User.CompletedRooms)

	p := rec.Room("room-1")
	assert.Equal(t, 95, p.Score)
	assert.True(t, p.CompletedAt.Equal(at(2024, 2, 2, 10)))
}

func TestCompleteActivity_ReplayDeltaCanBeNegative(t *testing.T) {
	rec := newRecord()

	_, err := CompleteActivity(rec, Completion{Kind: model.KindLab, ItemID: "lab-1", Score: 90}, at(2024, 2, 1, 10))
	require.NoError(t, err)
	res, err := CompleteActivity(rec, Completion{Kind: model.KindLab, ItemID: "lab-1", Score: 60}, at(2024, 2, 1, 11))
	require.NoError(t, err)

	assert.Equal(t, -30, res.PointsAwarded)
	assert.Equal(t, 60, rec.User.Points)
}

func TestCompleteActivity_RoomGate(t *testing.T) {
	t.Run("tasks incomplete", func(t *testing.T) {
		rec := newRecord()
		p := rec.MutableRoom("room-1")
		p.AddLecture(0)
		p.AddLecture(1)
		p.QuizCompleted = true

		_, err := CompleteActivity(rec, Completion{Kind: model.KindRoom, ItemID: "room-1", Score: 100, TotalTasks: 3}, at(2024, 2, 1, 10))

		var gate *GateError
		require.ErrorAs(t, err, &gate)
		assert.Equal(t, "tasks", gate.Missing())
		assert.Equal(t, 2, gate.CompletedTasks)
		assert.Equal(t, 3, gate.TotalTasks)
		assert.False(t, rec.Room("room-1").Completed)
		assert.Zero(t, rec.User.Points)
		assert.Zero(t, rec.User.CurrentStreak)
	})

	t.Run("quiz not completed", func(t *testing.T) {
		rec := newRecord()
		readyRoom(rec, "room-1", 2)
		rec.Room("room-1").QuizCompleted = false

		_, err := CompleteActivity(rec, Completion{Kind: model.KindRoom, ItemID: "room-1", Score: 100, TotalTasks: 2}, at(2024, 2, 1, 10))

		var gate *GateError
		require.ErrorAs(t, err, &gate)
		assert.Equal(t, "quiz", gate.Missing())
	})

	t.Run("never joined", func(t *testing.T) {
		rec := newRecord()
		_, err := CompleteActivity(rec, Completion{Kind: model.KindRoom, ItemID: "room-x", Score: 10, TotalTasks: 1}, at(2024, 2, 1, 10))

		var gate *GateError
		require.ErrorAs(t, err, &gate)
		assert.Nil(t, rec.Room("room-x"))
	})
}

func TestCompleteActivity_StrictLabRejectsReplay(t *testing.T) {
	rec := newRecord()
	c := Completion{Kind: model.KindLab, ItemID: "lab-1", Score: 100, Policy: ReplayReject}

	_, err := CompleteActivity(rec, c, at(2024, 2, 1, 10))
	require.NoError(t, err)

	c.Score = 150
	_, err = CompleteActivity(rec, c, at(2024, 2, 2, 10))
	require.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, 100, rec.User.Points)
	assert.Equal(t, 100, rec.Lab("lab-1").Score)
}

func TestCompleteActivity_LevelUp(t *testing.T) {
	rec := newRecord()
	rec.User.Points = 950

	res, err := CompleteActivity(rec, Completion{Kind: model.KindLab, ItemID: "lab-1", Score: 100}, at(2024, 2, 1, 10))
	require.NoError(t, err)
	FinalizeBeforePersist(rec, at(2024, 2, 1, 10))

	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, rec.User.Level)

	res, err = CompleteActivity(rec, Completion{Kind: model.KindLab, ItemID: "lab-2", Score: 10}, at(2024, 2, 1, 11))
	require.NoError(t, err)
	assert.False(t, res.LeveledUp)
}

func TestCompleteActivity_LevelFlagMatchesClampedPoints(t *testing.T) {
	rec := newRecord()
	done := at(2024, 2, 1, 9)
	lab := rec.MutableLab("lab-1")
	lab.Completed = true
	lab.CompletedAt = &done
	lab.Score = 1500

	res, err := CompleteActivity(rec, Completion{Kind: model.KindLab, ItemID: "lab-1", Score: 0}, at(2024, 2, 1, 10))
	require.NoError(t, err)
	FinalizeBeforePersist(rec, at(2024, 2, 1, 10))

	assert.Equal(t, -1500, res.PointsAwarded)
	assert.False(t, res.LeveledUp)
	assert.Zero(t, rec.User.Points)
	assert.Equal(t, 1, rec.User.Level)
}

func TestCompleteActivity_IgnoresTasksBeyondShrunkList(t *testing.T) {
	rec := newRecord()
	readyRoom(rec, "room-1", 5)

	res, err := CompleteActivity(rec, Completion{Kind: model.KindRoom, ItemID: "room-1", Score: 80, TotalTasks: 3}, at(2024, 2, 1, 10))
	require.NoError(t, err)
	assert.True(t, res.IsFirstCompletion)
	assert.True(t, rec.Room("room-1").Completed)
}

func TestCompleteActivity_StreakCountedOncePerDay(t *testing.T) {
	rec := newRecord()

	first, err := CompleteActivity(rec, Completion{Kind: model.KindLab, ItemID: "lab-1", Score: 10}, at(2024, 2, 1, 9))
	require.NoError(t, err)
	second, err := CompleteActivity(rec, Completion{Kind: model.KindLab, ItemID: "lab-2", Score: 20}, at(2024, 2, 1, 22))
	require.NoError(t, err)

	assert.True(t, first.StreakCounted)
	assert.False(t, second.StreakCounted)
	assert.Equal(t, 30, rec.User.Points)
	assert.Equal(t, 1, rec.User.CurrentStreak)
	assert.Len(t, rec.Activities, 1)
	assert.Len(t, rec.PendingCompletions(), 2)
}

func TestCompleteActivity_RejectsMalformedInput(t *testing.T) {
	rec := newRecord()

	_, err := CompleteActivity(rec, Completion{Kind: model.KindLab, ItemID: " ", Score: 10}, at(2024, 2, 1, 9))
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = CompleteActivity(rec, Completion{Kind: model.KindLab, ItemID: "lab", Score: -1}, at(2024, 2, 1, 9))
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = CompleteActivity(rec, Completion{Kind: "course", ItemID: "x", Score: 1}, at(2024, 2, 1, 9))
	assert.ErrorIs(t, err, ErrInvalidKind)

	assert.Empty(t, rec.DirtyLabs())
	assert.Zero(t, rec.User.Points)
}
