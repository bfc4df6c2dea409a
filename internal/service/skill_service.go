package service

import (
	"courtside_backend/internal/model"
	"courtside_backend/internal/repository"
	"encoding/json"
)

type SkillService struct {
	SkillRepo      *repository.SkillRepository
	SubmissionRepo *repository.SubmissionRepository
}

func NewSkillService(skillRepo *repository.SkillRepository, submissionRepo *repository.SubmissionRepository) *SkillService {
	return &SkillService{SkillRepo: skillRepo, SubmissionRepo: submissionRepo}
}

func (s *SkillService) ListSports() ([]model.Sport, error) {
	return s.SkillRepo.ListSports()
}

type SkillRequest struct {
	SportID       uint   `json:"sportId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Level         int    `json:"level"`
	Prerequisites []uint `json:"prerequisites"`
	Published     bool   `json:"published"`
}

func (s *SkillService) CreateSkill(coachID uint, req SkillRequest) (*model.Skill, error) {
	if _, err := s.SkillRepo.FindSportByID(req.SportID); err != nil {
		return nil, err
	}

	prereqs, _ := json.Marshal(req.Prerequisites)
	skill := &model.Skill{
		SportID:       req.SportID,
		CoachID:       coachID,
		Name:          req.Name,
		Description:   req.Description,
		Level:         req.Level,
		Prerequisites: prereqs,
		Published:     req.Published,
	}
	if err := s.SkillRepo.CreateSkill(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) GetSkill(id uint) (*model.Skill, error) {
	return s.SkillRepo.FindSkillByID(id)
}

func (s *SkillService) UpdateSkill(id uint, req SkillRequest) (*model.Skill, error) {
	skill, err := s.SkillRepo.FindSkillByID(id)
	if err != nil {
		return nil, err
	}

	prereqs, _ := json.Marshal(req.Prerequisites)
	skill.SportID = req.SportID
	skill.Name = req.Name
	skill.Description = req.Description
	skill.Level = req.Level
	skill.Prerequisites = prereqs
	skill.Published = req.Published

	if err := s.SkillRepo.UpdateSkill(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) DeleteSkill(id uint) error {
	return s.SkillRepo.DeleteSkill(id)
}

func (s *SkillService) ListSkills(sportID uint, publishedOnly bool, page, limit int) ([]model.Skill, int64, error) {
	return s.SkillRepo.ListSkills(sportID, publishedOnly, page, limit)
}

// StudentSkillResponse carries the advisory prerequisite warning. Missing
// prerequisites never block anything; the client shows them as a hint.
type StudentSkillResponse struct {
	model.Skill
	MissingPrerequisites []uint `json:"missingPrerequisites,omitempty"`
}

// ListSkillsForStudent annotates published skills with the prerequisite
// skills the student has not yet passed a quiz for.
func (s *SkillService) ListSkillsForStudent(studentID, sportID uint, page, limit int) ([]StudentSkillResponse, int64, error) {
	skills, total, err := s.SkillRepo.ListSkills(sportID, true, page, limit)
	if err != nil {
		return nil, 0, err
	}

	passed, _ := s.SubmissionRepo.PassedSkillIDs(studentID)
	passedSet := make(map[uint]bool, len(passed))
	for _, id := range passed {
		passedSet[id] = true
	}

	res := make([]StudentSkillResponse, len(skills))
	for i, sk := range skills {
		res[i] = StudentSkillResponse{Skill: sk}
		for _, pre := range sk.PrerequisiteIDs() {
			if !passedSet[pre] {
				res[i].MissingPrerequisites = append(res[i].MissingPrerequisites, pre)
			}
		}
	}
	return res, total, nil
}
