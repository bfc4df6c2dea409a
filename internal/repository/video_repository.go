package repository

import (
	"courtside_backend/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	DB *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

func (r *VideoRepository) CreateLesson(v *model.VideoLesson) error {
	return r.DB.Create(v).Error
}

func (r *VideoRepository) FindLessonByID(id uint) (*model.VideoLesson, error) {
	var v model.VideoLesson
	err := r.DB.First(&v, id).Error
	return &v, err
}

func (r *VideoRepository) ListLessonsBySkill(skillID uint, publishedOnly bool) ([]model.VideoLesson, error) {
	var vs []model.VideoLesson
	query := r.DB.Model(&model.VideoLesson{}).Where("skill_id = ?", skillID)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	err := query.Order("created_at desc").Find(&vs).Error
	return vs, err
}

func (r *VideoRepository) UpdateLesson(v *model.VideoLesson) error {
	return r.DB.Save(v).Error
}

func (r *VideoRepository) DeleteLesson(id uint) error {
	return r.DB.Delete(&model.VideoLesson{}, id).Error
}

func (r *VideoRepository) CreateReview(v *model.ReviewVideo) error {
	return r.DB.Create(v).Error
}

func (r *VideoRepository) FindReviewByID(id uint) (*model.ReviewVideo, error) {
	var v model.ReviewVideo
	err := r.DB.Preload("Notes", func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp asc")
	}).First(&v, id).Error
	return &v, err
}

func (r *VideoRepository) ListReviewsByStudent(studentID uint) ([]model.ReviewVideo, error) {
	var vs []model.ReviewVideo
	err := r.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&vs).Error
	return vs, err
}

func (r *VideoRepository) ListPendingReviews(page, limit int) ([]model.ReviewVideo, int64, error) {
	var vs []model.ReviewVideo
	var total int64
	query := r.DB.Model(&model.ReviewVideo{}).Where("status = ?", "pending")
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at asc").Offset(offset).Limit(limit).Find(&vs).Error
	return vs, total, err
}

func (r *VideoRepository) UpdateReview(v *model.ReviewVideo) error {
	return r.DB.Save(v).Error
}

func (r *VideoRepository) CreateNote(n *model.ReviewNote) error {
	return r.DB.Create(n).Error
}
