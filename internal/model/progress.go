package model

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

// ItemKind 学习条目类型
type ItemKind string

const (
	KindRoom ItemKind = "room"
	KindLab  ItemKind = "lab"
)

func (k ItemKind) Valid() bool {
	return k == KindRoom || k == KindLab
}

// StreakActivity 连续学习日志，每个自然日最多一条（由批量重算写入时为每个完成事件一条）
// swagger:model StreakActivity
type StreakActivity struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID       uint      `gorm:"index;not null" json:"-"`
	Date         time.Time `gorm:"index;not null" json:"date"`
	ActivityType ItemKind  `gorm:"size:10;not null" json:"activityType"`
	ItemID       string    `gorm:"size:36;not null" json:"itemId"`
	CreatedAt    time.Time `json:"-"`
}

func (StreakActivity) TableName() string {
	return "streak_activities"
}

// AnswerRecord 单个练习题的最近一次作答
type AnswerRecord struct {
	Answer  string `json:"answer"`
	Correct bool   `json:"correct"`
}

// RoomProgress 用户在某个房间内的进度
// swagger:model RoomProgress
type RoomProgress struct {
	BaseModel
	UserID            uint                                     `gorm:"uniqueIndex:idx_user_room;not null" json:"-"`
	RoomID            string                                   `gorm:"size:36;uniqueIndex:idx_user_room;not null" json:"roomId"`
	Joined            bool                                     `gorm:"default:false" json:"joined"`
	CurrentLecture    int                                      `gorm:"default:0" json:"currentLecture"`
	CompletedLectures datatypes.JSONSlice[int]                 `json:"completedLectures"`
	ExerciseAnswers   datatypes.JSONType[map[int]AnswerRecord] `json:"exerciseAnswers"`
	QuizCompleted     bool                                     `gorm:"default:false" json:"quizCompleted"`
	FinalScore        *int                                     `json:"finalScore"`
	Completed         bool                                     `gorm:"default:false;index" json:"completed"`
	CompletedAt       *time.Time                               `json:"completedAt"`
	Score             int                                      `gorm:"default:0" json:"score"`
}

func (RoomProgress) TableName() string {
	return "room_progress"
}

// HasLecture 判断任务是否已完成
func (p *RoomProgress) HasLecture(idx int) bool {
	for _, v := range p.CompletedLectures {
		if v == idx {
			return true
		}
	}
	return false
}

// AddLecture 标记任务完成，返回是否为新增
func (p *RoomProgress) AddLecture(idx int) bool {
	if p.HasLecture(idx) {
		return false
	}
	lectures := append(datatypes.JSONSlice[int]{}, p.CompletedLectures...)
	lectures = append(lectures, idx)
	sort.Ints(lectures)
	p.CompletedLectures = lectures
	return true
}

// RemoveLecture 清除任务完成标记
func (p *RoomProgress) RemoveLecture(idx int) bool {
	if !p.HasLecture(idx) {
		return false
	}
	lectures := make(datatypes.JSONSlice[int], 0, len(p.CompletedLectures))
	for _, v := range p.CompletedLectures {
		if v != idx {
			lectures = append(lectures, v)
		}
	}
	p.CompletedLectures = lectures
	return true
}

// Answers 返回作答记录的副本
func (p *RoomProgress) Answers() map[int]AnswerRecord {
	src := p.ExerciseAnswers.Data()
	out := make(map[int]AnswerRecord, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// SetAnswer 覆盖某题的作答记录
func (p *RoomProgress) SetAnswer(idx int, rec AnswerRecord) {
	answers := p.Answers()
	answers[idx] = rec
	p.ExerciseAnswers = datatypes.NewJSONType(answers)
}

// LabProgress 用户在某个靶场实验的进度
// swagger:model LabProgress
type LabProgress struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_lab;not null" json:"-"`
	LabID       string     `gorm:"size:36;uniqueIndex:idx_user_lab;not null" json:"labId"`
	Completed   bool       `gorm:"default:false;index" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	Score       int        `gorm:"default:0" json:"score"`
}

func (LabProgress) TableName() string {
	return "lab_progress"
}

// ItemCompletion 房间/实验侧的完成记录（completedBy），批量重算连续天数时用于交叉核对
type ItemCompletion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	ItemKind    ItemKind  `gorm:"size:10;uniqueIndex:idx_item_user;not null" json:"itemKind"`
	ItemID      string    `gorm:"size:36;uniqueIndex:idx_item_user;not null" json:"itemId"`
	UserID      uint      `gorm:"uniqueIndex:idx_item_user;index;not null" json:"userId"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
	Score       int       `gorm:"default:0" json:"score"`
	UpdatedAt   time.Time `json:"-"`
}

func (ItemCompletion) TableName() string {
	return "item_completions"
}
