package model

import "time"

type Question struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	TestID       uint      `json:"test_id" gorm:"not null;index"`
	QuestionText string    `json:"question_text" gorm:"type:text;not null"`
	Image        []byte    `json:"-" gorm:"type:bytea"`
	Answers      []Answer  `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
