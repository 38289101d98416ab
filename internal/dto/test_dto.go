package dto

import "time"

type TestRequest struct {
	Title          string `json:"title" binding:"required" validate:"required"`
	PassingScore   int    `json:"passing_score" validate:"gte=0"`
	Description    string `json:"description,omitempty"`
	TimeToComplete int    `json:"time_to_complete" binding:"required" validate:"required,gt=0"`
}

type QuestionRequest struct {
	QuestionText string `json:"question_text" binding:"required" validate:"required"`
	Image        []byte `json:"image,omitempty"`
}

type AnswerRequest struct {
	AnswerText string `json:"answer_text" binding:"required" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
	Image      []byte `json:"image,omitempty"`
}

type AnswerResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
}

type QuestionResponse struct {
	ID           uint             `json:"id"`
	TestID       uint             `json:"test_id"`
	QuestionText string           `json:"question_text"`
	Answers      []AnswerResponse `json:"answers,omitempty"`
}

type TestResponse struct {
	ID             uint               `json:"id"`
	Title          string             `json:"title"`
	PassingScore   int                `json:"passing_score"`
	Description    string             `json:"description,omitempty"`
	TimeToComplete int                `json:"time_to_complete"`
	Questions      []QuestionResponse `json:"questions,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// TestSummaryResponse is used for listing tests, with a question count
// instead of the full question tree.
type TestSummaryResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	PassingScore   int       `json:"passing_score"`
	Description    string    `json:"description,omitempty"`
	TimeToComplete int       `json:"time_to_complete"`
	QuestionCount  int       `json:"question_count"`
	CreatedAt      time.Time `json:"created_at"`
}
