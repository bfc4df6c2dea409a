package model

// VideoLesson is coach-published training footage attached to a skill.
type VideoLesson struct {
	BaseModel
	SkillID     uint    `gorm:"index;not null" json:"skillId"`
	SportID     uint    `gorm:"index" json:"sportId"`
	CoachID     uint    `gorm:"index" json:"coachId"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	VideoURL    string  `gorm:"size:512;not null" json:"videoUrl"`
	Thumbnail   string  `gorm:"size:512" json:"thumbnail"`
	Duration    float64 `gorm:"default:0" json:"duration"` // seconds
	Width       int     `gorm:"default:0" json:"width"`
	Height      int     `gorm:"default:0" json:"height"`
	Published   bool    `gorm:"default:false" json:"published"`
}

func (VideoLesson) TableName() string {
	return "video_lessons"
}

// ReviewVideo is student footage submitted for coach feedback.
type ReviewVideo struct {
	BaseModel
	StudentID uint         `gorm:"index;not null" json:"studentId"`
	SkillID   uint         `gorm:"index;not null" json:"skillId"`
	VideoURL  string       `gorm:"size:512;not null" json:"videoUrl"`
	Thumbnail string       `gorm:"size:512" json:"thumbnail"`
	Duration  float64      `gorm:"default:0" json:"duration"`
	Status    string       `gorm:"size:20;default:'pending'" json:"status"` // pending, reviewed
	Notes     []ReviewNote `gorm:"foreignKey:ReviewVideoID" json:"notes,omitempty"`
}

func (ReviewVideo) TableName() string {
	return "review_videos"
}

// ReviewNote is a coach comment anchored to a timestamp in the review video.
type ReviewNote struct {
	BaseModel
	ReviewVideoID uint    `gorm:"index;not null" json:"reviewVideoId"`
	CoachID       uint    `gorm:"index;not null" json:"coachId"`
	Timestamp     float64 `gorm:"default:0" json:"timestamp"` // seconds into the video
	Comment       string  `gorm:"type:text;not null" json:"comment"`
}

func (ReviewNote) TableName() string {
	return "review_notes"
}
