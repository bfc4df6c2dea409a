package model

import (
	"encoding/json"
	"time"
)

// QuestionAnswer is one scored answer inside a submission.
// Invariants: PointsEarned <= question points; PointsEarned > 0 implies
// IsCorrect for every type except descriptive, where the grading service may
// award partial credit without a boolean match.
type QuestionAnswer struct {
	QuestionID   uint            `json:"questionId"`
	QuestionType QuestionType    `json:"questionType"`
	Answer       json.RawMessage `json:"answer"`
	IsCorrect    bool            `json:"isCorrect"`
	PointsEarned float64         `json:"pointsEarned"`
	TimeSpent    int             `json:"timeSpent"` // seconds
}

// QuizSubmission stores a fully scored quiz attempt.
type QuizSubmission struct {
	BaseModel
	UserID      uint            `gorm:"index;not null" json:"userId"`
	QuizID      uint            `gorm:"index;not null" json:"quizId"`
	SkillID     uint            `gorm:"index" json:"skillId"`
	SportID     uint            `gorm:"index" json:"sportId"`
	Answers     json.RawMessage `gorm:"type:json" json:"answers"` // []QuestionAnswer
	Score       float64         `gorm:"not null" json:"score"`
	MaxScore    float64         `gorm:"not null" json:"maxScore"`
	Percentage  float64         `gorm:"not null" json:"percentage"`
	Passed      bool            `gorm:"default:false" json:"passed"`
	TimeSpent   int             `gorm:"default:0" json:"timeSpent"`
	CompletedAt time.Time       `json:"completedAt"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

func (s *QuizSubmission) ScoredAnswers() ([]QuestionAnswer, error) {
	var answers []QuestionAnswer
	if len(s.Answers) == 0 {
		return answers, nil
	}
	err := json.Unmarshal(s.Answers, &answers)
	return answers, err
}
