package dto

import "time"

// SubmitAttemptRequest is a user's full submission for a test: the ids of
// the answers they picked, at most one per question.
type SubmitAttemptRequest struct {
	AnswerIDs []uint `json:"answer_ids" binding:"required"`
}

type TestResultResponse struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	TestID        *uint     `json:"test_id,omitempty"`
	TestTitle     string    `json:"test_title,omitempty"`
	EmployeeID    *uint     `json:"employee_id,omitempty"`
	TestDate      string    `json:"test_date"`
	ScoreAchieved int       `json:"score_achieved"`
	Status        string    `json:"status"`
	AttemptNumber int       `json:"attempt_number"`
	Approved      *bool     `json:"approved"`
	CreatedAt     time.Time `json:"created_at"`
}

type DeletionRequestResponse struct {
	ID            uint      `json:"id"`
	TestID        uint      `json:"test_id"`
	TestTitle     string    `json:"test_title,omitempty"`
	RequestedByID uint      `json:"requested_by_id"`
	RequestedAt   time.Time `json:"requested_at"`
	Approved      *bool     `json:"approved"`
}

// LoginRequest selects a role and the identity to act as. Role "user"
// requires UserID; roles "employee" and "admin" require EmployeeID
// (admin may omit it to have an Administrator provisioned).
type LoginRequest struct {
	Role       string `json:"role" binding:"required"`
	UserID     *uint  `json:"user_id,omitempty"`
	EmployeeID *uint  `json:"employee_id,omitempty"`
}

type SessionResponse struct {
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
	UserID      *uint  `json:"user_id,omitempty"`
	EmployeeID  *uint  `json:"employee_id,omitempty"`
}
