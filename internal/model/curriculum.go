package model

type CurriculumItemType string

const (
	ItemLesson       CurriculumItemType = "lesson"
	ItemQuiz         CurriculumItemType = "quiz"
	ItemCustomLesson CurriculumItemType = "custom_lesson"
	ItemCustomQuiz   CurriculumItemType = "custom_quiz"
)

type CurriculumItemStatus string

const (
	ItemLocked     CurriculumItemStatus = "locked"
	ItemUnlocked   CurriculumItemStatus = "unlocked"
	ItemInProgress CurriculumItemStatus = "in_progress"
	ItemCompleted  CurriculumItemStatus = "completed"
)

// Curriculum is a coach-assigned ordered sequence of lessons and quizzes for
// one student. Progression through its items is strictly linear.
type Curriculum struct {
	BaseModel
	StudentID uint             `gorm:"index;not null" json:"studentId"`
	CoachID   uint             `gorm:"index;not null" json:"coachId"`
	SportID   uint             `gorm:"index" json:"sportId"`
	Title     string           `gorm:"size:255;not null" json:"title"`
	Items     []CurriculumItem `gorm:"foreignKey:CurriculumID" json:"items,omitempty"`
}

func (Curriculum) TableName() string {
	return "curricula"
}

// CurriculumItem points at a lesson or quiz by ContentID. Order is unique
// within a curriculum and defines the unlock sequence; uniqueness is an
// upstream invariant that the progress engine assumes but does not enforce.
type CurriculumItem struct {
	BaseModel
	CurriculumID uint                 `gorm:"index;not null" json:"curriculumId"`
	Type         CurriculumItemType   `gorm:"type:enum('lesson','quiz','custom_lesson','custom_quiz');not null" json:"type"`
	ContentID    uint                 `gorm:"index;not null" json:"contentId"`
	Order        int                  `gorm:"not null" json:"order"`
	Status       CurriculumItemStatus `gorm:"type:enum('locked','unlocked','in_progress','completed');default:'locked'" json:"status"`
}

func (CurriculumItem) TableName() string {
	return "curriculum_items"
}
