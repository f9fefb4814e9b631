package model

import (
	"gorm.io/datatypes"
)

// RoomTask 房间内的单个任务（讲解 + 练习题）
type RoomTask struct {
	Title         string `json:"title"`
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	CaseSensitive bool   `json:"caseSensitive"`
	Points        int    `json:"points"`
}

// Room 引导式课程，由若干任务和最终测验组成
// swagger:model Room
type Room struct {
	UUIDBase
	Title            string                        `gorm:"size:200;not null" json:"title"`
	Description      string                        `gorm:"type:text" json:"description"`
	Difficulty       string                        `gorm:"size:20;default:'easy'" json:"difficulty"`
	Tasks            datatypes.JSONSlice[RoomTask] `json:"-"`
	QuizPassingScore int                           `gorm:"default:0" json:"quizPassingScore"`
}

func (Room) TableName() string {
	return "rooms"
}

func (r *Room) TotalTasks() int {
	return len(r.Tasks)
}

// Lab 独立的技术挑战
// swagger:model Lab
type Lab struct {
	UUIDBase
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Difficulty  string `gorm:"size:20;default:'easy'" json:"difficulty"`
	Points      int    `gorm:"default:100" json:"points"`
}

func (Lab) TableName() string {
	return "labs"
}
