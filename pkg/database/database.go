package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"secquest_backend/internal/config"
	"secquest_backend/internal/model"
	applog "secquest_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 建立数据库连接，不做迁移
func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case "sqlite":
		if !strings.HasPrefix(cfg.Path, "file:") && cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), os.ModePerm); err != nil {
				return nil, err
			}
		}
		dialector = sqlite.Open(cfg.Path)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	if cfg.Type == "sqlite" {
		// sqlite 单写者
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	applog.Log.Info("Database connection established", zap.String("type", cfg.Type))
	return db, nil
}

// Models 需要迁移的全部模型
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.StreakActivity{},
		&model.RoomProgress{},
		&model.LabProgress{},
		&model.ItemCompletion{},
		&model.Room{},
		&model.Lab{},
	}
}

// Migrate 自动迁移并写入示例内容
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	applog.Log.Info("Database migration completed")
	return seed(db)
}

// seed 内容表为空时插入示例房间和实验
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Room{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		room := &model.Room{
			Title:            "Linux Fundamentals",
			Description:      "Navigate the filesystem and inspect permissions",
			Difficulty:       "easy",
			QuizPassingScore: 70,
			Tasks: datatypes.JSONSlice[model.RoomTask]{
				{Title: "Where am I", Question: "Which command prints the current directory?", Answer: "pwd", Points: 10},
				{Title: "Listing", Question: "Which flag of ls shows hidden files?", Answer: "-a", CaseSensitive: true, Points: 10},
				{Title: "Permissions", Question: "Octal mode for rwxr-xr-x?", Answer: "755", Points: 20},
			},
		}
		if err := db.Create(room).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&model.Lab{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		lab := &model.Lab{
			Title:       "Port Scanning 101",
			Description: "Find the open services on the target host",
			Difficulty:  "easy",
			Points:      100,
		}
		if err := db.Create(lab).Error; err != nil {
			return err
		}
	}
	return nil
}
