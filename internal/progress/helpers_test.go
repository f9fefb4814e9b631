package progress

import (
	"time"

	"secquest_backend/internal/model"
)

func newRecord() *model.ProgressRecord {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Level: 1}
	return model.NewProgressRecord(user, nil, nil, nil)
}

func at(y, m, d, h int) time.Time {
	return time.Date(y, time.Month(m), d, h, 0, 0, 0, time.UTC)
}

func dayPtr(y, m, d int) *time.Time {
	t := at(y, m, d, 0)
	return &t
}

// readyRoom 完成全部任务并通过测验，使房间满足完成条件
func readyRoom(rec *model.ProgressRecord, roomID string, total int) {
	p := rec.MutableRoom(roomID)
	for i := 0; i < total; i++ {
		p.AddLecture(i)
	}
	p.QuizCompleted = true
}
