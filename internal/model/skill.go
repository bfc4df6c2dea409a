package model

import (
	"encoding/json"
)

// Skill is a trainable technique within a sport. Prerequisites are advisory:
// they drive UI warnings only and are never enforced as a progression gate.
type Skill struct {
	BaseModel
	SportID       uint            `gorm:"index;not null" json:"sportId"`
	CoachID       uint            `gorm:"index" json:"coachId"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Level         int             `gorm:"default:1" json:"level"`
	Prerequisites json.RawMessage `gorm:"type:json" json:"prerequisites"` // []uint of skill IDs
	Published     bool            `gorm:"default:false" json:"published"`
}

func (Skill) TableName() string {
	return "skills"
}

func (s *Skill) PrerequisiteIDs() []uint {
	if len(s.Prerequisites) == 0 {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(s.Prerequisites, &ids); err != nil {
		return nil
	}
	return ids
}
