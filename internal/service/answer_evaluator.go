package service

import (
	"context"
	"courtside_backend/internal/model"
	"courtside_backend/pkg/monitoring"
	"encoding/json"
	"strings"
)

// AnswerEvaluator scores a submitted answer against its question definition.
// It fails closed: malformed or missing input is scored incorrect with zero
// points, never returned as an error, so a quiz can always be scored.
type AnswerEvaluator struct {
	grader Grader
}

func NewAnswerEvaluator(grader Grader) *AnswerEvaluator {
	return &AnswerEvaluator{grader: grader}
}

// SubmittedAnswer is a student's raw answer to one question. The Answer
// encoding depends on the question type: an option id or array of ids for
// multiple choice, a boolean for true/false, an array of strings for
// fill-in-blank, free text for descriptive.
type SubmittedAnswer struct {
	QuestionID uint            `json:"questionId"`
	Answer     json.RawMessage `json:"answer"`
	TimeSpent  int             `json:"timeSpent"`
}

func (e *AnswerEvaluator) Evaluate(ctx context.Context, q *model.Question, ans SubmittedAnswer) model.QuestionAnswer {
	res := model.QuestionAnswer{
		QuestionID:   q.ID,
		QuestionType: q.Type,
		Answer:       ans.Answer,
		TimeSpent:    ans.TimeSpent,
	}

	if len(ans.Answer) == 0 {
		return res
	}

	switch q.Type {
	case model.QuestionMultipleChoice:
		e.evaluateMultipleChoice(q, ans.Answer, &res)
	case model.QuestionTrueFalse:
		e.evaluateTrueFalse(q, ans.Answer, &res)
	case model.QuestionFillInBlank:
		e.evaluateFillInBlank(ctx, q, ans.Answer, &res)
	case model.QuestionDescriptive:
		e.evaluateDescriptive(ctx, q, ans.Answer, &res)
	}

	if res.PointsEarned > float64(q.Points) {
		res.PointsEarned = float64(q.Points)
	}
	if res.PointsEarned < 0 {
		res.PointsEarned = 0
	}
	return res
}

func (e *AnswerEvaluator) evaluateMultipleChoice(q *model.Question, raw json.RawMessage, res *model.QuestionAnswer) {
	p, err := q.MultipleChoice()
	if err != nil {
		return
	}
	correct := p.CorrectOptionIDs()

	if p.AllowMultipleAnswers {
		var selected []string
		if err := json.Unmarshal(raw, &selected); err != nil {
			return
		}
		// Exact set equality: same cardinality, no extras, no omissions.
		if len(selected) != len(correct) {
			return
		}
		remaining := make(map[string]bool, len(correct))
		for _, id := range correct {
			remaining[id] = true
		}
		for _, id := range selected {
			if !remaining[id] {
				return
			}
			delete(remaining, id)
		}
		res.IsCorrect = true
		res.PointsEarned = float64(q.Points)
		return
	}

	var selected string
	if err := json.Unmarshal(raw, &selected); err != nil {
		// Some clients wrap the single choice in a one-element array.
		var arr []string
		if err := json.Unmarshal(raw, &arr); err != nil || len(arr) != 1 {
			return
		}
		selected = arr[0]
	}
	// Membership test: when the data erroneously marks more than one option
	// correct, any of them is accepted.
	for _, id := range correct {
		if id == selected {
			res.IsCorrect = true
			res.PointsEarned = float64(q.Points)
			return
		}
	}
}

func (e *AnswerEvaluator) evaluateTrueFalse(q *model.Question, raw json.RawMessage, res *model.QuestionAnswer) {
	p, err := q.TrueFalse()
	if err != nil {
		return
	}
	var answer bool
	if err := json.Unmarshal(raw, &answer); err != nil {
		return
	}
	if answer == p.CorrectAnswer {
		res.IsCorrect = true
		res.PointsEarned = float64(q.Points)
	}
}

func (e *AnswerEvaluator) evaluateFillInBlank(ctx context.Context, q *model.Question, raw json.RawMessage, res *model.QuestionAnswer) {
	p, err := q.FillInBlank()
	if err != nil {
		return
	}

	var blanks []string
	if err := json.Unmarshal(raw, &blanks); err != nil {
		// A single blank may arrive as a bare string.
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return
		}
		blanks = []string{s}
	}

	if p.AIGraded && e.grader != nil {
		result, err := e.grader.Grade(ctx, GradingRequest{
			QuestionText:    q.Title,
			QuestionContent: q.Content,
			UserAnswer:      blanks,
			CorrectAnswer:   p.CorrectAnswers,
			MaxPoints:       float64(q.Points),
		})
		if err == nil {
			// Fill-in-blank has no partial credit even via the grader.
			if result.IsCorrect {
				res.IsCorrect = true
				res.PointsEarned = result.PointsEarned
			}
			return
		}
		monitoring.GradingFallbacks.Inc()
		// Grader unavailable: fall through to exact matching.
	}

	if matchBlanks(p, blanks) {
		res.IsCorrect = true
		res.PointsEarned = float64(q.Points)
	}
}

// matchBlanks requires every expected blank to match at its index after
// trimming surrounding whitespace; comparison folds case unless the question
// is case sensitive. A missing blank at any index fails the whole question.
func matchBlanks(p *model.FillInBlankPayload, blanks []string) bool {
	if len(p.CorrectAnswers) == 0 {
		return false
	}
	for i, want := range p.CorrectAnswers {
		if i >= len(blanks) {
			return false
		}
		got := strings.TrimSpace(blanks[i])
		want = strings.TrimSpace(want)
		if p.CaseSensitive {
			if got != want {
				return false
			}
		} else if !strings.EqualFold(got, want) {
			return false
		}
	}
	return true
}

func (e *AnswerEvaluator) evaluateDescriptive(ctx context.Context, q *model.Question, raw json.RawMessage, res *model.QuestionAnswer) {
	p, err := q.Descriptive()
	if err != nil {
		return
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return
	}
	if strings.TrimSpace(text) == "" {
		return
	}

	// Descriptive answers are never auto-scored locally. No grader, or a
	// failed grading call, means zero credit: never award credit that cannot
	// be verified.
	if e.grader == nil {
		return
	}
	result, err := e.grader.Grade(ctx, GradingRequest{
		QuestionText:    q.Title,
		QuestionContent: q.Content,
		UserAnswer:      text,
		SampleAnswer:    p.SampleAnswer,
		Rubric:          p.Rubric,
		MaxPoints:       float64(q.Points),
	})
	if err != nil {
		monitoring.GradingFallbacks.Inc()
		return
	}

	// Partial credit is allowed here without a boolean match.
	res.IsCorrect = result.IsCorrect
	res.PointsEarned = result.PointsEarned
}

// QuizScore is the aggregate of all scored answers for one attempt.
type QuizScore struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage float64 `json:"percentage"`
	Passed     bool    `json:"passed"`
}

// EvaluateAll scores every question of the quiz in order. Questions without a
// submitted answer are scored incorrect with zero points. One question's
// grading failure never aborts the rest.
func (e *AnswerEvaluator) EvaluateAll(ctx context.Context, questions []model.Question, submitted []SubmittedAnswer) []model.QuestionAnswer {
	byQuestion := make(map[uint]SubmittedAnswer, len(submitted))
	for _, s := range submitted {
		byQuestion[s.QuestionID] = s
	}

	answers := make([]model.QuestionAnswer, len(questions))
	for i := range questions {
		q := &questions[i]
		answers[i] = e.Evaluate(ctx, q, byQuestion[q.ID])
	}
	return answers
}

// ScoreQuiz sums earned and attainable points. A quiz whose questions carry
// zero total points scores 0%, not a division error.
func ScoreQuiz(questions []model.Question, answers []model.QuestionAnswer, passingScore float64) QuizScore {
	var max float64
	for _, q := range questions {
		max += float64(q.Points)
	}
	var total float64
	for _, a := range answers {
		total += a.PointsEarned
	}

	var pct float64
	if max > 0 {
		pct = 100 * total / max
	}

	return QuizScore{
		Score:      total,
		MaxScore:   max,
		Percentage: pct,
		Passed:     pct >= passingScore,
	}
}
