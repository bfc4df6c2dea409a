package repository

import (
	"courtside_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(sub *model.QuizSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.QuizSubmission, error) {
	var s model.QuizSubmission
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *SubmissionRepository) ListByUser(userID uint, page, limit int) ([]model.QuizSubmission, int64, error) {
	var subs []model.QuizSubmission
	var total int64
	query := r.DB.Model(&model.QuizSubmission{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&subs).Error
	return subs, total, err
}

func (r *SubmissionRepository) ListByQuiz(quizID uint, page, limit int) ([]model.QuizSubmission, int64, error) {
	var subs []model.QuizSubmission
	var total int64
	query := r.DB.Model(&model.QuizSubmission{}).Where("quiz_id = ?", quizID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&subs).Error
	return subs, total, err
}

// PassedSkillIDs returns the distinct skills the user has passed at least one
// quiz for.
func (r *SubmissionRepository) PassedSkillIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.QuizSubmission{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Distinct("skill_id").
		Pluck("skill_id", &ids).Error
	return ids, err
}
