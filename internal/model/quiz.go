package model

import (
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionFillInBlank    QuestionType = "fill_in_blank"
	QuestionDescriptive    QuestionType = "descriptive"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	SkillID     uint         `gorm:"index;not null" json:"skillId"`
	SportID     uint         `gorm:"index;not null" json:"sportId"`
	CoachID     uint         `gorm:"index" json:"coachId"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Settings    QuizSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
	Published   bool         `gorm:"default:false" json:"published"`
	Questions   []Question   `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizSettings struct {
	TimeLimit        int     `gorm:"default:0" json:"timeLimit"` // minutes, 0 = none
	PassingScore     float64 `gorm:"default:70" json:"passingScore"`
	ShuffleQuestions bool    `gorm:"default:false" json:"shuffleQuestions"`
	ShowExplanations bool    `gorm:"default:true" json:"showExplanations"`
}

// Question is a tagged union over the four question types. The variant data
// lives in Payload as JSON and is decoded through the typed accessors below;
// the accessor for a mismatched Type returns an error.
type Question struct {
	BaseModel
	QuizID      uint            `gorm:"index;not null" json:"quizId"`
	Type        QuestionType    `gorm:"type:enum('multiple_choice','true_false','fill_in_blank','descriptive');not null" json:"type"`
	Title       string          `gorm:"size:255" json:"title"`
	Content     string          `gorm:"type:text;not null" json:"content"`
	Points      int             `gorm:"default:1" json:"points"`
	Order       int             `gorm:"default:0" json:"order"`
	Explanation string          `gorm:"type:text" json:"explanation"`
	Payload     json.RawMessage `gorm:"type:json" json:"payload"`
}

func (Question) TableName() string {
	return "questions"
}

type QuestionOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type MultipleChoicePayload struct {
	Options              []QuestionOption `json:"options"`
	AllowMultipleAnswers bool             `json:"allowMultipleAnswers"`
}

// CorrectOptionIDs returns the IDs of all options marked correct, in option order.
func (p *MultipleChoicePayload) CorrectOptionIDs() []string {
	var ids []string
	for _, o := range p.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

type TrueFalsePayload struct {
	CorrectAnswer bool `json:"correctAnswer"`
}

type FillInBlankPayload struct {
	CorrectAnswers []string `json:"correctAnswers"`
	CaseSensitive  bool     `json:"caseSensitive"`
	// AIGraded routes the answer through the external grading service first,
	// with exact string matching as the fallback.
	AIGraded bool `json:"aiGraded"`
}

type DescriptivePayload struct {
	SampleAnswer string `json:"sampleAnswer,omitempty"`
	Rubric       string `json:"rubric,omitempty"`
	// MinWords/MaxWords are shown to the student but not enforced in scoring.
	MinWords int `json:"minWords,omitempty"`
	MaxWords int `json:"maxWords,omitempty"`
}

func (q *Question) MultipleChoice() (*MultipleChoicePayload, error) {
	if q.Type != QuestionMultipleChoice {
		return nil, fmt.Errorf("question %d is %s, not multiple_choice", q.ID, q.Type)
	}
	var p MultipleChoicePayload
	if err := json.Unmarshal(q.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (q *Question) TrueFalse() (*TrueFalsePayload, error) {
	if q.Type != QuestionTrueFalse {
		return nil, fmt.Errorf("question %d is %s, not true_false", q.ID, q.Type)
	}
	var p TrueFalsePayload
	if err := json.Unmarshal(q.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (q *Question) FillInBlank() (*FillInBlankPayload, error) {
	if q.Type != QuestionFillInBlank {
		return nil, fmt.Errorf("question %d is %s, not fill_in_blank", q.ID, q.Type)
	}
	var p FillInBlankPayload
	if err := json.Unmarshal(q.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (q *Question) Descriptive() (*DescriptivePayload, error) {
	if q.Type != QuestionDescriptive {
		return nil, fmt.Errorf("question %d is %s, not descriptive", q.ID, q.Type)
	}
	var p DescriptivePayload
	if err := json.Unmarshal(q.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
