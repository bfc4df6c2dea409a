package repository

import (
	"courtside_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) ListSports() ([]model.Sport, error) {
	var sports []model.Sport
	err := r.DB.Where("enabled = ?", true).Order("name asc").Find(&sports).Error
	return sports, err
}

func (r *SkillRepository) FindSportByID(id uint) (*model.Sport, error) {
	var s model.Sport
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *SkillRepository) CreateSkill(skill *model.Skill) error {
	return r.DB.Create(skill).Error
}

func (r *SkillRepository) FindSkillByID(id uint) (*model.Skill, error) {
	var s model.Skill
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *SkillRepository) ListSkills(sportID uint, publishedOnly bool, page, limit int) ([]model.Skill, int64, error) {
	var skills []model.Skill
	var total int64
	query := r.DB.Model(&model.Skill{})
	if sportID > 0 {
		query = query.Where("sport_id = ?", sportID)
	}
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("level asc, created_at desc").Offset(offset).Limit(limit).Find(&skills).Error
	return skills, total, err
}

func (r *SkillRepository) UpdateSkill(skill *model.Skill) error {
	return r.DB.Save(skill).Error
}

func (r *SkillRepository) DeleteSkill(id uint) error {
	return r.DB.Delete(&model.Skill{}, id).Error
}
