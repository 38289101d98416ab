package model

import "time"

// Answer is one option for a Question. At most one answer per question may
// carry IsCorrect=true: the service checks it inside a transaction for a
// readable error, and the partial unique index on question_id holds the
// invariant against concurrent writers.
type Answer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;index;uniqueIndex:uniq_correct_answer_per_question,where:is_correct"`
	AnswerText string    `json:"answer_text" gorm:"type:text;not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"default:false"`
	Image      []byte    `json:"-" gorm:"type:bytea"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
