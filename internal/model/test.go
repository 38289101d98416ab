package model

import "time"

type Test struct {
	ID             uint                  `gorm:"primarykey" json:"id"`
	Title          string                `json:"title" gorm:"not null"`
	PassingScore   int                   `json:"passing_score" gorm:"not null"`
	Description    string                `json:"description,omitempty"`
	TimeToComplete int                   `json:"time_to_complete" gorm:"not null"` // minutes
	Questions      []Question            `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	Results        []TestResult          `json:"-" gorm:"foreignKey:TestID;constraint:OnDelete:SET NULL"`
	Requests       []TestDeletionRequest `json:"-" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}
