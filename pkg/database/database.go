package database

import (
	"courtside_backend/internal/config"
	"courtside_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Sport{},
		&model.Skill{},
		&model.VideoLesson{},
		&model.ReviewVideo{},
		&model.ReviewNote{},
		&model.Quiz{},
		&model.Question{},
		&model.QuizSubmission{},
		&model.Curriculum{},
		&model.CurriculumItem{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed default sports so coaches can publish content on a fresh install.
	var count int64
	db.Model(&model.Sport{}).Count(&count)
	if count == 0 {
		defaultSports := []model.Sport{
			{Name: "Tennis", Slug: "tennis", Enabled: true},
			{Name: "Basketball", Slug: "basketball", Enabled: true},
			{Name: "Soccer", Slug: "soccer", Enabled: true},
			{Name: "Golf", Slug: "golf", Enabled: true},
		}
		for _, s := range defaultSports {
			db.Create(&s)
		}
	}

	return db, nil
}
