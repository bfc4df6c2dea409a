package service

import (
	"context"
	"courtside_backend/internal/model"
	"courtside_backend/internal/repository"
	"courtside_backend/internal/util"
	"courtside_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	studentQuizKeyPrefix = "student_quiz:"
	studentQuizCacheTTL  = 10 * time.Minute
)

// curriculumAdvancer is the part of the curriculum service the submission
// flow needs to unlock items after a passed quiz.
type curriculumAdvancer interface {
	CompleteQuizContent(studentID, quizID uint) error
}

type QuizService struct {
	QuizRepo       *repository.QuizRepository
	SubmissionRepo *repository.SubmissionRepository
	Curriculum     curriculumAdvancer
	Evaluator      *AnswerEvaluator
	Redis          *redis.Client
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	submissionRepo *repository.SubmissionRepository,
	curriculum curriculumAdvancer,
	evaluator *AnswerEvaluator,
	rdb *redis.Client,
) *QuizService {
	return &QuizService{
		QuizRepo:       quizRepo,
		SubmissionRepo: submissionRepo,
		Curriculum:     curriculum,
		Evaluator:      evaluator,
		Redis:          rdb,
	}
}

type QuizRequest struct {
	SkillID     uint               `json:"skillId" binding:"required"`
	SportID     uint               `json:"sportId" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Settings    model.QuizSettings `json:"settings"`
	Published   bool               `json:"published"`
}

func (s *QuizService) CreateQuiz(coachID uint, req QuizRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{
		SkillID:     req.SkillID,
		SportID:     req.SportID,
		CoachID:     coachID,
		Title:       req.Title,
		Description: req.Description,
		Settings:    req.Settings,
		Published:   req.Published,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) GetQuiz(id uint) (*model.Quiz, error) {
	return s.QuizRepo.FindWithQuestions(id)
}

func (s *QuizService) UpdateQuiz(id uint, req QuizRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	quiz.SkillID = req.SkillID
	quiz.SportID = req.SportID
	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.Settings = req.Settings
	quiz.Published = req.Published

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	s.invalidateStudentQuiz(id)
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(id uint) error {
	if err := s.QuizRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateStudentQuiz(id)
	return nil
}

func (s *QuizService) ListBySkill(skillID uint, publishedOnly bool) ([]model.Quiz, error) {
	return s.QuizRepo.ListBySkill(skillID, publishedOnly)
}

type QuestionRequest struct {
	QuizID      uint               `json:"quizId" binding:"required"`
	Type        model.QuestionType `json:"type" binding:"required"`
	Title       string             `json:"title"`
	Content     string             `json:"content" binding:"required"`
	Points      int                `json:"points"`
	Order       int                `json:"order"`
	Explanation string             `json:"explanation"`
	Payload     json.RawMessage    `json:"payload" binding:"required"`
}

// validatePayload rejects payloads that do not decode as the declared type,
// so bad question data is caught at authoring time instead of scoring time.
func validatePayload(qType model.QuestionType, payload json.RawMessage) error {
	probe := model.Question{Type: qType, Payload: payload}
	var err error
	switch qType {
	case model.QuestionMultipleChoice:
		var p *model.MultipleChoicePayload
		if p, err = probe.MultipleChoice(); err == nil && len(p.Options) == 0 {
			err = fmt.Errorf("multiple_choice question needs options")
		}
	case model.QuestionTrueFalse:
		_, err = probe.TrueFalse()
	case model.QuestionFillInBlank:
		var p *model.FillInBlankPayload
		if p, err = probe.FillInBlank(); err == nil && len(p.CorrectAnswers) == 0 {
			err = fmt.Errorf("fill_in_blank question needs correct answers")
		}
	case model.QuestionDescriptive:
		_, err = probe.Descriptive()
	default:
		err = fmt.Errorf("unknown question type %q", qType)
	}
	return err
}

func (s *QuizService) CreateQuestion(req QuestionRequest) (*model.Question, error) {
	if err := validatePayload(req.Type, req.Payload); err != nil {
		return nil, err
	}

	q := &model.Question{
		QuizID:      req.QuizID,
		Type:        req.Type,
		Title:       req.Title,
		Content:     req.Content,
		Points:      req.Points,
		Order:       req.Order,
		Explanation: req.Explanation,
		Payload:     req.Payload,
	}
	if err := s.QuizRepo.CreateQuestion(q); err != nil {
		return nil, err
	}
	s.invalidateStudentQuiz(req.QuizID)
	return q, nil
}

func (s *QuizService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	if err := validatePayload(req.Type, req.Payload); err != nil {
		return nil, err
	}

	q, err := s.QuizRepo.FindQuestionByID(id)
	if err != nil {
		return nil, err
	}

	q.Type = req.Type
	q.Title = req.Title
	q.Content = req.Content
	q.Points = req.Points
	q.Order = req.Order
	q.Explanation = req.Explanation
	q.Payload = req.Payload

	if err := s.QuizRepo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	s.invalidateStudentQuiz(q.QuizID)
	return q, nil
}

func (s *QuizService) DeleteQuestion(id uint) error {
	q, err := s.QuizRepo.FindQuestionByID(id)
	if err != nil {
		return err
	}
	if err := s.QuizRepo.DeleteQuestion(id); err != nil {
		return err
	}
	s.invalidateStudentQuiz(q.QuizID)
	return nil
}

// StudentQuestion is a question with its answer key stripped.
type StudentQuestion struct {
	ID      uint               `json:"id"`
	Type    model.QuestionType `json:"type"`
	Title   string             `json:"title"`
	Content string             `json:"content"`
	Points  int                `json:"points"`
	Order   int                `json:"order"`
	Payload json.RawMessage    `json:"payload"`
}

type StudentQuizResponse struct {
	ID          uint               `json:"id"`
	SkillID     uint               `json:"skillId"`
	SportID     uint               `json:"sportId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Settings    model.QuizSettings `json:"settings"`
	Questions   []StudentQuestion  `json:"questions"`
}

// stripAnswerKey removes correctness data from a question payload before it
// reaches a student.
func stripAnswerKey(q *model.Question) json.RawMessage {
	switch q.Type {
	case model.QuestionMultipleChoice:
		p, err := q.MultipleChoice()
		if err != nil {
			return nil
		}
		type safeOption struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		}
		safe := struct {
			Options              []safeOption `json:"options"`
			AllowMultipleAnswers bool         `json:"allowMultipleAnswers"`
		}{AllowMultipleAnswers: p.AllowMultipleAnswers}
		for _, o := range p.Options {
			safe.Options = append(safe.Options, safeOption{ID: o.ID, Text: o.Text})
		}
		out, _ := json.Marshal(safe)
		return out
	case model.QuestionFillInBlank:
		p, err := q.FillInBlank()
		if err != nil {
			return nil
		}
		safe := struct {
			Blanks        int  `json:"blanks"`
			CaseSensitive bool `json:"caseSensitive"`
		}{Blanks: len(p.CorrectAnswers), CaseSensitive: p.CaseSensitive}
		out, _ := json.Marshal(safe)
		return out
	case model.QuestionDescriptive:
		p, err := q.Descriptive()
		if err != nil {
			return nil
		}
		safe := struct {
			MinWords int `json:"minWords,omitempty"`
			MaxWords int `json:"maxWords,omitempty"`
		}{MinWords: p.MinWords, MaxWords: p.MaxWords}
		out, _ := json.Marshal(safe)
		return out
	default: // true_false carries nothing safe to show
		return json.RawMessage(`{}`)
	}
}

// GetQuizForStudent serves the answer-key-free view, cached in redis with an
// explicit TTL; every quiz or question mutation deletes the cache entry.
func (s *QuizService) GetQuizForStudent(ctx context.Context, quizID uint) (*StudentQuizResponse, error) {
	cacheKey := fmt.Sprintf("%s%d", studentQuizKeyPrefix, quizID)

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached StudentQuizResponse
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	quiz, err := s.QuizRepo.FindWithQuestions(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if !quiz.Published {
		return nil, util.ErrQuizNotPublished
	}

	res := &StudentQuizResponse{
		ID:          quiz.ID,
		SkillID:     quiz.SkillID,
		SportID:     quiz.SportID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Settings:    quiz.Settings,
	}
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		res.Questions = append(res.Questions, StudentQuestion{
			ID:      q.ID,
			Type:    q.Type,
			Title:   q.Title,
			Content: q.Content,
			Points:  q.Points,
			Order:   q.Order,
			Payload: stripAnswerKey(q),
		})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(res); err == nil {
			s.Redis.Set(ctx, cacheKey, data, studentQuizCacheTTL)
		}
	}
	return res, nil
}

func (s *QuizService) invalidateStudentQuiz(quizID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), fmt.Sprintf("%s%d", studentQuizKeyPrefix, quizID))
}

type SubmitQuizRequest struct {
	Answers   []SubmittedAnswer `json:"answers" binding:"required"`
	TimeSpent int               `json:"timeSpent"`
}

// SubmitQuiz scores the attempt and persists it. Grading-service failures
// degrade individual answers to zero credit; they never fail the submission.
// A passing score completes the student's matching curriculum items.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID, quizID uint, req SubmitQuizRequest) (*model.QuizSubmission, error) {
	quiz, err := s.QuizRepo.FindWithQuestions(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if !quiz.Published {
		return nil, util.ErrQuizNotPublished
	}

	answers := s.Evaluator.EvaluateAll(ctx, quiz.Questions, req.Answers)
	score := ScoreQuiz(quiz.Questions, answers, quiz.Settings.PassingScore)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	submission := &model.QuizSubmission{
		UserID:      userID,
		QuizID:      quiz.ID,
		SkillID:     quiz.SkillID,
		SportID:     quiz.SportID,
		Answers:     answersJSON,
		Score:       score.Score,
		MaxScore:    score.MaxScore,
		Percentage:  score.Percentage,
		Passed:      score.Passed,
		TimeSpent:   req.TimeSpent,
		CompletedAt: time.Now(),
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}

	if score.Passed {
		s.advanceCurriculum(userID, quiz.ID)
	}

	return submission, nil
}

// advanceCurriculum unlocks curriculum items tied to a passed quiz. The
// submission stands either way; a failed advance only loses unlock progress,
// so it is surfaced in the log rather than the response.
func (s *QuizService) advanceCurriculum(userID, quizID uint) {
	if s.Curriculum == nil {
		return
	}
	if err := s.Curriculum.CompleteQuizContent(userID, quizID); err != nil {
		logger.Log.Error("failed to advance curriculum after passed quiz",
			zap.Uint("userId", userID),
			zap.Uint("quizId", quizID),
			zap.Error(err))
	}
}

func (s *QuizService) GetSubmission(id uint) (*model.QuizSubmission, error) {
	return s.SubmissionRepo.FindByID(id)
}

func (s *QuizService) ListSubmissionsByUser(userID uint, page, limit int) ([]model.QuizSubmission, int64, error) {
	return s.SubmissionRepo.ListByUser(userID, page, limit)
}

func (s *QuizService) ListSubmissionsByQuiz(quizID uint, page, limit int) ([]model.QuizSubmission, int64, error) {
	return s.SubmissionRepo.ListByQuiz(quizID, page, limit)
}
