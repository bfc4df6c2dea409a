package repository

import (
	"courtside_backend/internal/model"

	"gorm.io/gorm"
)

type CurriculumRepository struct {
	DB *gorm.DB
}

func NewCurriculumRepository(db *gorm.DB) *CurriculumRepository {
	return &CurriculumRepository{DB: db}
}

func (r *CurriculumRepository) Create(c *model.Curriculum) error {
	return r.DB.Create(c).Error
}

func (r *CurriculumRepository) FindByID(id uint) (*model.Curriculum, error) {
	var c model.Curriculum
	err := r.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc, id asc")
	}).First(&c, id).Error
	return &c, err
}

func (r *CurriculumRepository) FindByStudent(studentID uint) ([]model.Curriculum, error) {
	var cs []model.Curriculum
	err := r.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc, id asc")
	}).Where("student_id = ?", studentID).Order("created_at desc").Find(&cs).Error
	return cs, err
}

func (r *CurriculumRepository) ListByCoach(coachID uint, page, limit int) ([]model.Curriculum, int64, error) {
	var cs []model.Curriculum
	var total int64
	query := r.DB.Model(&model.Curriculum{}).Where("coach_id = ?", coachID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Items").Order("created_at desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

// SaveItemStatuses persists the statuses computed by the progress engine in
// one transaction.
func (r *CurriculumRepository) SaveItemStatuses(items []model.CurriculumItem) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Model(&model.CurriculumItem{}).
				Where("id = ?", items[i].ID).
				Update("status", items[i].Status).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindStudentItemsByContent returns the student's curriculum items pointing at
// the given content, used to advance progress after a quiz pass.
func (r *CurriculumRepository) FindStudentItemsByContent(studentID uint, itemTypes []model.CurriculumItemType, contentID uint) ([]model.CurriculumItem, error) {
	var items []model.CurriculumItem
	err := r.DB.
		Joins("JOIN curricula ON curricula.id = curriculum_items.curriculum_id").
		Where("curricula.student_id = ? AND curriculum_items.type IN ? AND curriculum_items.content_id = ?",
			studentID, itemTypes, contentID).
		Find(&items).Error
	return items, err
}

func (r *CurriculumRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("curriculum_id = ?", id).Delete(&model.CurriculumItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Curriculum{}, id).Error
	})
}
