package service

import (
	"context"
	"courtside_backend/internal/model"
	"encoding/json"
	"errors"
	"testing"
)

type fakeGrader struct {
	result *GradingResult
	err    error
	calls  int
	last   GradingRequest
}

func (g *fakeGrader) Grade(ctx context.Context, req GradingRequest) (*GradingResult, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func mcQuestion(t *testing.T, id uint, points int, multi bool, options []model.QuestionOption) model.Question {
	t.Helper()
	payload, err := json.Marshal(model.MultipleChoicePayload{Options: options, AllowMultipleAnswers: multi})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return model.Question{
		BaseModel: model.BaseModel{ID: id},
		Type:      model.QuestionMultipleChoice,
		Points:    points,
		Payload:   payload,
	}
}

func rawJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal answer: %v", err)
	}
	return b
}

func TestEvaluateMultipleChoiceSingle(t *testing.T) {
	e := NewAnswerEvaluator(nil)
	q := mcQuestion(t, 1, 5, false, []model.QuestionOption{
		{ID: "a", Text: "Forehand"},
		{ID: "b", Text: "Backhand", IsCorrect: true},
		{ID: "c", Text: "Volley"},
	})

	tests := []struct {
		name    string
		answer  json.RawMessage
		correct bool
	}{
		{"correct option", rawJSON(t, "b"), true},
		{"wrong option", rawJSON(t, "a"), false},
		{"correct in one-element array", rawJSON(t, []string{"b"}), true},
		{"two-element array rejected", rawJSON(t, []string{"a", "b"}), false},
		{"unknown option id", rawJSON(t, "z"), false},
		{"malformed answer", json.RawMessage(`{"oops":`), false},
		{"missing answer", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 1, Answer: tt.answer})
			if res.IsCorrect != tt.correct {
				t.Fatalf("IsCorrect = %v, want %v", res.IsCorrect, tt.correct)
			}
			wantPoints := 0.0
			if tt.correct {
				wantPoints = 5
			}
			if res.PointsEarned != wantPoints {
				t.Fatalf("PointsEarned = %v, want %v", res.PointsEarned, wantPoints)
			}
		})
	}
}

func TestEvaluateMultipleChoiceMultiRequiresExactSet(t *testing.T) {
	e := NewAnswerEvaluator(nil)
	q := mcQuestion(t, 2, 4, true, []model.QuestionOption{
		{ID: "a", IsCorrect: true},
		{ID: "b", IsCorrect: true},
		{ID: "c"},
		{ID: "d"},
	})

	tests := []struct {
		name    string
		answer  []string
		correct bool
	}{
		{"exact set", []string{"a", "b"}, true},
		{"exact set reordered", []string{"b", "a"}, true},
		{"subset", []string{"a"}, false},
		{"superset", []string{"a", "b", "c"}, false},
		{"disjoint", []string{"c", "d"}, false},
		{"duplicate selection", []string{"a", "a"}, false},
		{"empty selection", []string{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 2, Answer: rawJSON(t, tt.answer)})
			if res.IsCorrect != tt.correct {
				t.Fatalf("IsCorrect = %v, want %v", res.IsCorrect, tt.correct)
			}
		})
	}
}

func TestEvaluateTrueFalse(t *testing.T) {
	e := NewAnswerEvaluator(nil)
	q := model.Question{
		BaseModel: model.BaseModel{ID: 3},
		Type:      model.QuestionTrueFalse,
		Points:    2,
		Payload:   json.RawMessage(`{"correctAnswer":true}`),
	}

	res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 3, Answer: rawJSON(t, true)})
	if !res.IsCorrect || res.PointsEarned != 2 {
		t.Fatalf("true answer: got correct=%v points=%v", res.IsCorrect, res.PointsEarned)
	}

	res = e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 3, Answer: rawJSON(t, false)})
	if res.IsCorrect || res.PointsEarned != 0 {
		t.Fatalf("false answer: got correct=%v points=%v", res.IsCorrect, res.PointsEarned)
	}

	res = e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 3, Answer: json.RawMessage(`"true"`)})
	if res.IsCorrect {
		t.Fatal("string answer should not score")
	}
}

func fibQuestion(id uint, points int, p model.FillInBlankPayload) model.Question {
	payload, _ := json.Marshal(p)
	return model.Question{
		BaseModel: model.BaseModel{ID: id},
		Type:      model.QuestionFillInBlank,
		Points:    points,
		Payload:   payload,
	}
}

func TestEvaluateFillInBlankMatching(t *testing.T) {
	e := NewAnswerEvaluator(nil)

	q := fibQuestion(4, 3, model.FillInBlankPayload{CorrectAnswers: []string{"topspin", "Slice"}})

	res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 4, Answer: rawJSON(t, []string{" Topspin ", "slice"})})
	if !res.IsCorrect || res.PointsEarned != 3 {
		t.Fatalf("case-folded trimmed match failed: correct=%v points=%v", res.IsCorrect, res.PointsEarned)
	}

	res = e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 4, Answer: rawJSON(t, []string{"topspin"})})
	if res.IsCorrect {
		t.Fatal("missing second blank must fail the whole question")
	}

	sensitive := fibQuestion(5, 3, model.FillInBlankPayload{CorrectAnswers: []string{"Topspin"}, CaseSensitive: true})
	res = e.Evaluate(context.Background(), &sensitive, SubmittedAnswer{QuestionID: 5, Answer: rawJSON(t, []string{"topspin"})})
	if res.IsCorrect {
		t.Fatal("case sensitive question must not fold case")
	}

	single := fibQuestion(6, 1, model.FillInBlankPayload{CorrectAnswers: []string{"net"}})
	res = e.Evaluate(context.Background(), &single, SubmittedAnswer{QuestionID: 6, Answer: json.RawMessage(`"net"`)})
	if !res.IsCorrect {
		t.Fatal("bare string answer should match a single blank")
	}

	empty := fibQuestion(7, 1, model.FillInBlankPayload{})
	res = e.Evaluate(context.Background(), &empty, SubmittedAnswer{QuestionID: 7, Answer: rawJSON(t, []string{"anything"})})
	if res.IsCorrect {
		t.Fatal("question with no answer key must never score")
	}
}

func TestEvaluateFillInBlankAIGradedFallsBackToMatching(t *testing.T) {
	grader := &fakeGrader{err: errors.New("grading service down")}
	e := NewAnswerEvaluator(grader)

	q := fibQuestion(8, 2, model.FillInBlankPayload{CorrectAnswers: []string{"racket"}, AIGraded: true})
	res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 8, Answer: rawJSON(t, []string{"Racket"})})
	if grader.calls != 1 {
		t.Fatalf("grader calls = %d, want 1", grader.calls)
	}
	if !res.IsCorrect || res.PointsEarned != 2 {
		t.Fatalf("local fallback should score the exact match: correct=%v points=%v", res.IsCorrect, res.PointsEarned)
	}
}

func TestEvaluateFillInBlankAIGradedNoPartialCredit(t *testing.T) {
	grader := &fakeGrader{result: &GradingResult{IsCorrect: false, PointsEarned: 1.5}}
	e := NewAnswerEvaluator(grader)

	q := fibQuestion(9, 2, model.FillInBlankPayload{CorrectAnswers: []string{"racket"}, AIGraded: true})
	res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 9, Answer: rawJSON(t, []string{"paddle"})})
	if res.IsCorrect || res.PointsEarned != 0 {
		t.Fatalf("incorrect AI verdict must earn nothing: correct=%v points=%v", res.IsCorrect, res.PointsEarned)
	}
}

func descQuestion(id uint, points int) model.Question {
	payload, _ := json.Marshal(model.DescriptivePayload{SampleAnswer: "Bend the knees.", Rubric: "Mentions stance and balance."})
	return model.Question{
		BaseModel: model.BaseModel{ID: id},
		Type:      model.QuestionDescriptive,
		Points:    points,
		Payload:   payload,
	}
}

func TestEvaluateDescriptive(t *testing.T) {
	q := descQuestion(10, 10)
	answer := rawJSON(t, "Keep a wide stance and bend the knees for balance.")

	t.Run("partial credit from grader", func(t *testing.T) {
		grader := &fakeGrader{result: &GradingResult{IsCorrect: false, PointsEarned: 6}}
		e := NewAnswerEvaluator(grader)
		res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 10, Answer: answer})
		if res.IsCorrect {
			t.Fatal("grader said not fully correct")
		}
		if res.PointsEarned != 6 {
			t.Fatalf("PointsEarned = %v, want 6", res.PointsEarned)
		}
		if grader.last.Rubric == "" || grader.last.SampleAnswer == "" {
			t.Fatal("grading request must carry the rubric and sample answer")
		}
	})

	t.Run("grader failure is zero credit", func(t *testing.T) {
		e := NewAnswerEvaluator(&fakeGrader{err: errors.New("timeout")})
		res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 10, Answer: answer})
		if res.IsCorrect || res.PointsEarned != 0 {
			t.Fatalf("got correct=%v points=%v, want zero credit", res.IsCorrect, res.PointsEarned)
		}
	})

	t.Run("no grader configured is zero credit", func(t *testing.T) {
		e := NewAnswerEvaluator(nil)
		res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 10, Answer: answer})
		if res.IsCorrect || res.PointsEarned != 0 {
			t.Fatalf("got correct=%v points=%v, want zero credit", res.IsCorrect, res.PointsEarned)
		}
	})

	t.Run("blank text never reaches the grader", func(t *testing.T) {
		grader := &fakeGrader{result: &GradingResult{IsCorrect: true, PointsEarned: 10}}
		e := NewAnswerEvaluator(grader)
		res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 10, Answer: rawJSON(t, "   ")})
		if grader.calls != 0 {
			t.Fatal("whitespace-only answer should not be graded")
		}
		if res.PointsEarned != 0 {
			t.Fatalf("PointsEarned = %v, want 0", res.PointsEarned)
		}
	})

	t.Run("excess grader points clamp to question points", func(t *testing.T) {
		grader := &fakeGrader{result: &GradingResult{IsCorrect: true, PointsEarned: 25}}
		e := NewAnswerEvaluator(grader)
		res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 10, Answer: answer})
		if res.PointsEarned != 10 {
			t.Fatalf("PointsEarned = %v, want clamp to 10", res.PointsEarned)
		}
	})
}

func TestEvaluateAllScoresEveryQuestion(t *testing.T) {
	e := NewAnswerEvaluator(nil)
	questions := []model.Question{
		mcQuestion(t, 1, 5, false, []model.QuestionOption{{ID: "a", IsCorrect: true}, {ID: "b"}}),
		{BaseModel: model.BaseModel{ID: 2}, Type: model.QuestionTrueFalse, Points: 5, Payload: json.RawMessage(`{"correctAnswer":false}`)},
		fibQuestion(3, 10, model.FillInBlankPayload{CorrectAnswers: []string{"serve"}}),
	}
	submitted := []SubmittedAnswer{
		{QuestionID: 1, Answer: rawJSON(t, "a")},
		{QuestionID: 2, Answer: rawJSON(t, false)},
		// question 3 unanswered
	}

	answers := e.EvaluateAll(context.Background(), questions, submitted)
	if len(answers) != 3 {
		t.Fatalf("len(answers) = %d, want 3", len(answers))
	}
	if !answers[0].IsCorrect || !answers[1].IsCorrect {
		t.Fatalf("answered questions should be correct: %+v", answers[:2])
	}
	if answers[2].IsCorrect || answers[2].PointsEarned != 0 {
		t.Fatalf("unanswered question must score zero: %+v", answers[2])
	}

	score := ScoreQuiz(questions, answers, 70)
	if score.Score != 10 || score.MaxScore != 20 {
		t.Fatalf("score = %v/%v, want 10/20", score.Score, score.MaxScore)
	}
	if score.Percentage != 50 {
		t.Fatalf("percentage = %v, want 50", score.Percentage)
	}
	if score.Passed {
		t.Fatal("50% must not pass at a 70 threshold")
	}
}

func TestEvaluateAllMixedOutcomePasses(t *testing.T) {
	e := NewAnswerEvaluator(nil)
	questions := []model.Question{
		mcQuestion(t, 1, 5, false, []model.QuestionOption{{ID: "a", IsCorrect: true}, {ID: "b"}}),
		{BaseModel: model.BaseModel{ID: 2}, Type: model.QuestionTrueFalse, Points: 5, Payload: json.RawMessage(`{"correctAnswer":false}`)},
		fibQuestion(3, 10, model.FillInBlankPayload{CorrectAnswers: []string{"serve"}}),
	}
	submitted := []SubmittedAnswer{
		{QuestionID: 1, Answer: rawJSON(t, "a")},
		{QuestionID: 2, Answer: rawJSON(t, true)}, // wrong
		{QuestionID: 3, Answer: rawJSON(t, "  SERVE ")},
	}

	answers := e.EvaluateAll(context.Background(), questions, submitted)
	if !answers[0].IsCorrect || answers[1].IsCorrect || !answers[2].IsCorrect {
		t.Fatalf("correctness = [%v %v %v], want [true false true]",
			answers[0].IsCorrect, answers[1].IsCorrect, answers[2].IsCorrect)
	}

	score := ScoreQuiz(questions, answers, 70)
	if score.Score != 15 || score.MaxScore != 20 {
		t.Fatalf("score = %v/%v, want 15/20", score.Score, score.MaxScore)
	}
	if score.Percentage != 75 {
		t.Fatalf("percentage = %v, want 75", score.Percentage)
	}
	if !score.Passed {
		t.Fatal("75% must pass at a 70 threshold")
	}
}

func TestScoreQuizPassBoundary(t *testing.T) {
	questions := []model.Question{
		{BaseModel: model.BaseModel{ID: 1}, Points: 10},
		{BaseModel: model.BaseModel{ID: 2}, Points: 10},
	}
	answers := []model.QuestionAnswer{
		{QuestionID: 1, PointsEarned: 10, IsCorrect: true},
		{QuestionID: 2, PointsEarned: 4},
	}

	score := ScoreQuiz(questions, answers, 70)
	if score.Percentage != 70 {
		t.Fatalf("percentage = %v, want 70", score.Percentage)
	}
	if !score.Passed {
		t.Fatal("exactly the passing score must pass")
	}
}

func TestScoreQuizZeroMaxScore(t *testing.T) {
	score := ScoreQuiz(nil, nil, 70)
	if score.Percentage != 0 {
		t.Fatalf("percentage = %v, want 0", score.Percentage)
	}
	if score.Passed {
		t.Fatal("an empty quiz must not pass")
	}
}

func TestEvaluateWrongPayloadTypeScoresZero(t *testing.T) {
	e := NewAnswerEvaluator(nil)
	q := model.Question{
		BaseModel: model.BaseModel{ID: 11},
		Type:      model.QuestionMultipleChoice,
		Points:    5,
		Payload:   json.RawMessage(`"not an object"`),
	}
	res := e.Evaluate(context.Background(), &q, SubmittedAnswer{QuestionID: 11, Answer: rawJSON(t, "a")})
	if res.IsCorrect || res.PointsEarned != 0 {
		t.Fatalf("broken payload must fail closed: %+v", res)
	}
}
