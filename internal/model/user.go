package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// User 用户账户，同时承载用户的学习进度聚合（积分、等级、完成数、连续学习天数）
// Level、CompletedRooms、CompletedLabs 为派生字段，只能由 progress.FinalizeBeforePersist 计算
// swagger:model User
type User struct {
	BaseModel
	Name           string     `gorm:"size:100;not null" json:"name"`
	Email          string     `gorm:"size:100;unique;not null" json:"email"`
	Password       string     `gorm:"size:100;not null" json:"-"`
	Role           UserRole   `gorm:"size:20;default:'student'" json:"role"`
	IsPremium      bool       `gorm:"default:false" json:"isPremium"`
	PremiumSince   *time.Time `json:"premiumSince,omitempty"`
	Points         int        `gorm:"default:0;index" json:"points"`
	Level          int        `gorm:"default:1" json:"level"`
	CompletedRooms int        `gorm:"default:0" json:"completedRooms"`
	CompletedLabs  int        `gorm:"default:0" json:"completedLabs"`
	CurrentStreak  int        `gorm:"default:0" json:"currentStreak"`
	LongestStreak  int        `gorm:"default:0" json:"longestStreak"`
	LastStreakDate *time.Time `json:"lastStreakDate"`
	Version        int        `gorm:"default:0;not null" json:"-"` // 乐观锁版本号
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	LastSeen       *time.Time `json:"lastSeen,omitempty"`
}

func (User) TableName() string {
	return "users"
}
