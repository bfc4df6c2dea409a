package model

type Sport struct {
	BaseModel
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Slug        string `gorm:"size:100;unique;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`
}

func (Sport) TableName() string {
	return "sports"
}
