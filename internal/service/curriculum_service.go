package service

import (
	"courtside_backend/internal/model"
	"courtside_backend/internal/repository"
	"courtside_backend/internal/util"
	"courtside_backend/pkg/logger"
	"errors"

	"go.uber.org/zap"
)

// CurriculumService persists what the pure progress engine computes.
type CurriculumService struct {
	Repo *repository.CurriculumRepository
}

func NewCurriculumService(repo *repository.CurriculumRepository) *CurriculumService {
	return &CurriculumService{Repo: repo}
}

type CurriculumItemRequest struct {
	Type      model.CurriculumItemType `json:"type" binding:"required"`
	ContentID uint                     `json:"contentId" binding:"required"`
	Order     int                      `json:"order"`
}

type CreateCurriculumRequest struct {
	StudentID uint                    `json:"studentId" binding:"required"`
	SportID   uint                    `json:"sportId"`
	Title     string                  `json:"title" binding:"required"`
	Items     []CurriculumItemRequest `json:"items" binding:"required"`
}

// CreateCurriculum assigns the ordered item list to a student. Items start
// locked; ComputeUnlocks opens the first of them before the initial save.
func (s *CurriculumService) CreateCurriculum(coachID uint, req CreateCurriculumRequest) (*model.Curriculum, error) {
	c := &model.Curriculum{
		StudentID: req.StudentID,
		CoachID:   coachID,
		SportID:   req.SportID,
		Title:     req.Title,
	}
	for i, item := range req.Items {
		order := item.Order
		if order == 0 {
			order = i + 1
		}
		c.Items = append(c.Items, model.CurriculumItem{
			Type:      item.Type,
			ContentID: item.ContentID,
			Order:     order,
			Status:    model.ItemLocked,
		})
	}
	c.Items = ComputeUnlocks(c.Items)

	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CurriculumService) GetCurriculum(id uint) (*model.Curriculum, error) {
	return s.Repo.FindByID(id)
}

func (s *CurriculumService) ListByCoach(coachID uint, page, limit int) ([]model.Curriculum, int64, error) {
	return s.Repo.ListByCoach(coachID, page, limit)
}

// GetStudentCurricula returns the student's curricula with statuses
// normalized through the progress engine; drifted persisted state is
// repaired on read.
func (s *CurriculumService) GetStudentCurricula(studentID uint) ([]model.Curriculum, error) {
	curricula, err := s.Repo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	for i := range curricula {
		normalized := ComputeUnlocks(curricula[i].Items)
		if statusesChanged(curricula[i].Items, normalized) {
			if err := s.Repo.SaveItemStatuses(normalized); err != nil {
				logger.Log.Error("failed to persist normalized curriculum statuses",
					zap.Uint("curriculumId", curricula[i].ID), zap.Error(err))
			}
		}
		curricula[i].Items = normalized
	}
	return curricula, nil
}

func statusesChanged(before, after []model.CurriculumItem) bool {
	for i := range before {
		if before[i].Status != after[i].Status {
			return true
		}
	}
	return false
}

// StartItem marks an unlocked item in_progress for the owning student.
func (s *CurriculumService) StartItem(studentID, curriculumID, itemID uint) (*model.Curriculum, error) {
	c, err := s.Repo.FindByID(curriculumID)
	if err != nil {
		return nil, util.ErrCurriculumNotFound
	}
	if c.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}

	items, err := StartItem(c.Items, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveItemStatuses(items); err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}

// CompleteItem records a completion event (explicit "mark complete" for
// lesson items) and persists the re-derived unlock state.
func (s *CurriculumService) CompleteItem(studentID, curriculumID, itemID uint) (*model.Curriculum, error) {
	c, err := s.Repo.FindByID(curriculumID)
	if err != nil {
		return nil, util.ErrCurriculumNotFound
	}
	if c.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}

	items, err := RecordCompletion(c.Items, itemID)
	if err != nil && !errors.Is(err, util.ErrCurriculumItemCompleted) {
		return nil, err
	}
	completedErr := err

	if err := s.Repo.SaveItemStatuses(items); err != nil {
		return nil, err
	}
	c.Items = items
	return c, completedErr
}

// CompleteQuizContent marks every curriculum item of the student that points
// at the passed quiz as completed. Called from the submission flow.
func (s *CurriculumService) CompleteQuizContent(studentID, quizID uint) error {
	items, err := s.Repo.FindStudentItemsByContent(studentID,
		[]model.CurriculumItemType{model.ItemQuiz, model.ItemCustomQuiz}, quizID)
	if err != nil {
		return err
	}

	for _, it := range items {
		c, err := s.Repo.FindByID(it.CurriculumID)
		if err != nil {
			continue
		}
		updated, err := RecordCompletion(c.Items, it.ID)
		if err != nil && !errors.Is(err, util.ErrCurriculumItemCompleted) {
			logger.Log.Warn("quiz pass could not complete curriculum item",
				zap.Uint("itemId", it.ID), zap.Error(err))
			continue
		}
		if err := s.Repo.SaveItemStatuses(updated); err != nil {
			return err
		}
	}
	return nil
}

// NextItem reports the student's next unlocked item in a curriculum.
func (s *CurriculumService) NextItem(studentID, curriculumID uint) (*model.CurriculumItem, error) {
	c, err := s.Repo.FindByID(curriculumID)
	if err != nil {
		return nil, util.ErrCurriculumNotFound
	}
	if c.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}

	next, ok := NextItem(ComputeUnlocks(c.Items))
	if !ok {
		return nil, nil
	}
	return next, nil
}

func (s *CurriculumService) DeleteCurriculum(coachID, id uint) error {
	c, err := s.Repo.FindByID(id)
	if err != nil {
		return util.ErrCurriculumNotFound
	}
	if c.CoachID != coachID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(id)
}
