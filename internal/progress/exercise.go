package progress

import (
	"strings"
	"time"

	"secquest_backend/internal/model"
)

// ExerciseTask 练习题的判分信息，由房间内容提供
type ExerciseTask struct {
	Index         int
	Expected      string
	CaseSensitive bool
	Points        int
}

type ExerciseResult struct {
	Correct       bool
	PointsEarned  int
	StreakCounted bool
}

type QuizResult struct {
	Passed       bool
	PointsEarned int
	Completion   *CompletionResult
}

func MatchAnswer(answer, expected string, caseSensitive bool) bool {
	a := strings.TrimSpace(answer)
	e := strings.TrimSpace(expected)
	if caseSensitive {
		return a == e
	}
	return strings.EqualFold(a, e)
}

// SubmitExercise 提交练习答案。答对：记录答案并标记任务完成（不重复），任务首次完成时加分；
// 答错：覆盖之前的答案并清除该任务的完成标记，不加分。已完成的房间答错时不修改任何进度。
func SubmitExercise(rec *model.ProgressRecord, roomID string, task ExerciseTask, answer string, at time.Time) (ExerciseResult, error) {
	if strings.TrimSpace(roomID) == "" {
		return ExerciseResult{}, ErrInvalidItem
	}
	if task.Index < 0 {
		return ExerciseResult{}, ErrTaskOutOfRange
	}

	correct := MatchAnswer(answer, task.Expected, task.CaseSensitive)
	if existing := rec.Room(roomID); existing != nil && existing.Completed && !correct {
		return ExerciseResult{}, nil
	}

	p := rec.MutableRoom(roomID)
	p.Joined = true
	p.SetAnswer(task.Index, model.AnswerRecord{Answer: answer, Correct: correct})
	if !correct {
		p.RemoveLecture(task.Index)
		return ExerciseResult{}, nil
	}

	res := ExerciseResult{Correct: true}
	if p.AddLecture(task.Index) {
		rec.User.Points += task.Points
		res.PointsEarned = task.Points
	}
	res.StreakCounted = RecordActivity(rec, at, model.KindRoom, roomID)
	return res, nil
}

// SubmitQuiz 提交房间测验。任务未全部完成时拒绝；未达及格线不修改进度；
// 通过后标记测验完成并走完成处理器（允许分差重放）。
func SubmitQuiz(rec *model.ProgressRecord, roomID string, totalTasks, passingScore, score int, at time.Time) (QuizResult, error) {
	if strings.TrimSpace(roomID) == "" {
		return QuizResult{}, ErrInvalidItem
	}
	if score < 0 {
		return QuizResult{}, ErrInvalidScore
	}

	if err := checkTasks(rec.Room(roomID), roomID, totalTasks); err != nil {
		return QuizResult{}, err
	}
	if score < passingScore {
		return QuizResult{}, nil
	}

	p := rec.MutableRoom(roomID)
	p.QuizCompleted = true
	final := score
	p.FinalScore = &final

	res, err := CompleteActivity(rec, Completion{
		Kind:       model.KindRoom,
		ItemID:     roomID,
		Score:      score,
		Policy:     ReplayDelta,
		TotalTasks: totalTasks,
	}, at)
	if err != nil {
		return QuizResult{}, err
	}
	return QuizResult{Passed: true, PointsEarned: res.PointsAwarded, Completion: &res}, nil
}
