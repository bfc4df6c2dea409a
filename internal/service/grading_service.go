package service

import (
	"bytes"
	"context"
	"courtside_backend/internal/config"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GradingRequest is the outbound contract for the external answer-grading
// service. UserAnswer is a string for descriptive questions and a []string
// for fill-in-blank; CorrectAnswer is set only for fill-in-blank, SampleAnswer
// and Rubric only for descriptive.
type GradingRequest struct {
	QuestionText    string      `json:"questionText"`
	QuestionContent string      `json:"questionContent"`
	UserAnswer      interface{} `json:"userAnswer"`
	CorrectAnswer   []string    `json:"correctAnswer,omitempty"`
	SampleAnswer    string      `json:"sampleAnswer,omitempty"`
	Rubric          string      `json:"rubric,omitempty"`
	MaxPoints       float64     `json:"maxPoints"`
}

type GradingResult struct {
	IsCorrect    bool    `json:"isCorrect"`
	PointsEarned float64 `json:"pointsEarned"`
}

// Grader is what the evaluator depends on; GradingService is the HTTP
// implementation and tests substitute fakes.
type Grader interface {
	Grade(ctx context.Context, req GradingRequest) (*GradingResult, error)
}

type GradingService struct {
	config config.GradingConfig
	client *http.Client
}

func NewGradingService(cfg config.GradingConfig) *GradingService {
	return &GradingService{
		config: cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// Grade posts the request and returns an error on any transport failure,
// non-2xx status, or response body that does not carry both fields. Callers
// treat every error identically: fall back to conservative local scoring.
func (s *GradingService) Grade(ctx context.Context, req GradingRequest) (*GradingResult, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/grade", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("grading service error (status %d): %s", resp.StatusCode, string(body))
	}

	// Decode through pointers so a body that merely omits the fields is
	// rejected instead of silently scoring as incorrect/zero.
	var raw struct {
		IsCorrect    *bool    `json:"isCorrect"`
		PointsEarned *float64 `json:"pointsEarned"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("malformed grading response: %v", err)
	}
	if raw.IsCorrect == nil || raw.PointsEarned == nil {
		return nil, fmt.Errorf("malformed grading response: missing fields in %s", string(body))
	}
	if *raw.PointsEarned < 0 {
		return nil, fmt.Errorf("malformed grading response: negative points %v", *raw.PointsEarned)
	}

	return &GradingResult{
		IsCorrect:    *raw.IsCorrect,
		PointsEarned: *raw.PointsEarned,
	}, nil
}
