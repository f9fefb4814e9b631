package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchAnswer(t *testing.T) {
	assert.True(t, MatchAnswer("  nmap ", "NMAP", false))
	assert.False(t, MatchAnswer("nmap", "NMAP", true))
	assert.True(t, MatchAnswer("NMAP", "NMAP", true))
	assert.False(t, MatchAnswer("", "x", false))
}

func TestSubmitExercise_CorrectAnswerAwardsPointsOnce(t *testing.T) {
	rec := newRecord()
	task := ExerciseTask{Index: 1, Expected: "22", Points: 10}

	res, err := SubmitExercise(rec, "room-1", task, "22", at(2024, 2, 1, 9))
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 10, res.PointsEarned)
	assert.True(t, res.StreakCounted)

	res, err = SubmitExercise(rec, "room-1", task, "22", at(2024, 2, 1, 10))
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Zero(t, res.PointsEarned)
	assert.False(t, res.StreakCounted)

	p := rec.Room("room-1")
	assert.True(t, p.Joined)
	assert.Equal(t, []int{1}, []int(p.CompletedLectures))
	assert.Equal(t, 10, rec.User.Points)
	assert.Equal(t, 1, rec.User.CurrentStreak)
}

func TestSubmitExercise_IncorrectAnswerClearsTask(t *testing.T) {
	rec := newRecord()
	task := ExerciseTask{Index: 0, Expected: "root", Points: 10}

	_, err := SubmitExercise(rec, "room-1", task, "root", at(2024, 2, 1, 9))
	require.NoError(t, err)

	res, err := SubmitExercise(rec, "room-1", task, "admin", at(2024, 2, 1, 10))
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Zero(t, res.PointsEarned)

	p := rec.Room("room-1")
	assert.Empty(t, p.CompletedLectures)
	assert.Equal(t, "admin", p.Answers()[0].Answer)
	assert.False(t, p.Answers()[0].Correct)
	assert.Equal(t, 10, rec.User.Points, "clearing a task does not take points back")

	res, err = SubmitExercise(rec, "room-1", task, "ROOT", at(2024, 2, 1, 11))
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, []int{0}, []int(rec.Room("room-1").CompletedLectures))
}

func TestSubmitExercise_CompletedRoomIsFrozen(t *testing.T) {
	rec := newRecord()
	readyRoom(rec, "room-1", 2)
	rec.Room("room-1").Completed = true
	rec.MarkPersisted()

	res, err := SubmitExercise(rec, "room-1", ExerciseTask{Index: 0, Expected: "a", Points: 5}, "b", at(2024, 2, 1, 9))
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Len(t, rec.Room("room-1").CompletedLectures, 2)
	assert.Empty(t, rec.DirtyRooms())
}

func TestSubmitExercise_RejectsNegativeIndex(t *testing.T) {
	rec := newRecord()
	_, err := SubmitExercise(rec, "room-1", ExerciseTask{Index: -1}, "x", at(2024, 2, 1, 9))
	assert.ErrorIs(t, err, ErrTaskOutOfRange)
}

func TestSubmitQuiz(t *testing.T) {
	t.Run("tasks incomplete", func(t *testing.T) {
		rec := newRecord()
		rec.MutableRoom("room-1").AddLecture(0)

		_, err := SubmitQuiz(rec, "room-1", 2, 70, 100, at(2024, 2, 1, 9))
		var gate *GateError
		require.ErrorAs(t, err, &gate)
		assert.Equal(t, 1, gate.CompletedTasks)
		assert.Equal(t, 2, gate.TotalTasks)
	})

	t.Run("task list shrank", func(t *testing.T) {
		rec := newRecord()
		p := rec.MutableRoom("room-1")
		for i := 0; i < 5; i++ {
			p.AddLecture(i)
		}

		res, err := SubmitQuiz(rec, "room-1", 3, 70, 90, at(2024, 2, 1, 9))
		require.NoError(t, err)
		assert.True(t, res.Passed)
		assert.True(t, rec.Room("room-1").Completed)
	})

	t.Run("below passing score", func(t *testing.T) {
		rec := newRecord()
		p := rec.MutableRoom("room-1")
		p.AddLecture(0)
		rec.MarkPersisted()

		res, err := SubmitQuiz(rec, "room-1", 1, 70, 50, at(2024, 2, 1, 9))
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Zero(t, res.PointsEarned)
		assert.False(t, rec.Room("room-1").QuizCompleted)
		assert.Empty(t, rec.DirtyRooms())
	})

	t.Run("pass completes the room", func(t *testing.T) {
		rec := newRecord()
		p := rec.MutableRoom("room-1")
		p.AddLecture(0)
		p.AddLecture(1)

		res, err := SubmitQuiz(rec, "room-1", 2, 70, 85, at(2024, 2, 1, 9))
		require.NoError(t, err)
		FinalizeBeforePersist(rec, at(2024, 2, 1, 9))

		assert.True(t, res.Passed)
		assert.Equal(t, 85, res.PointsEarned)
		require.NotNil(t, res.Completion)
		assert.True(t, res.Completion.IsFirstCompletion)

		room := rec.Room("room-1")
		assert.True(t, room.QuizCompleted)
		assert.True(t, room.Completed)
		require.NotNil(t, room.FinalScore)
		assert.Equal(t, 85, *room.FinalScore)
		assert.Equal(t, 1, rec.User.CompletedRooms)
	})
}
