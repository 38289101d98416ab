package model

import (
	"time"

	"gorm.io/datatypes"
)

// Attempt statuses derived from score vs the test's passing score.
const (
	StatusPassed     = "passed"
	StatusFailed     = "failed"
	StatusInProgress = "in_progress"
)

// TestResult records one scored attempt of a Test by an AppUser.
//
// TestID is nullable: results outlive deletion of the test they were taken
// on. EmployeeID is set by the employee who approves the result. Approved
// is the tri-state of the approval workflow: nil = pending, true = approved;
// a declined result is deleted outright, so false is never persisted here.
// The (user, test, attempt) unique index keeps attempt numbers distinct
// under concurrent submissions; the service retries on a collision.
type TestResult struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `json:"user_id" gorm:"not null;index;uniqueIndex:uniq_user_test_attempt"`
	User          AppUser        `json:"-" gorm:"foreignKey:UserID"`
	TestID        *uint          `json:"test_id,omitempty" gorm:"index;uniqueIndex:uniq_user_test_attempt"`
	Test          *Test          `json:"-" gorm:"foreignKey:TestID"`
	EmployeeID    *uint          `json:"employee_id,omitempty"`
	Employee      *Employee      `json:"-" gorm:"foreignKey:EmployeeID"`
	TestDate      datatypes.Date `json:"test_date"`
	ScoreAchieved int            `json:"score_achieved" gorm:"not null"`
	Status        string         `json:"status" gorm:"type:varchar(20);not null"`
	AttemptNumber int            `json:"attempt_number" gorm:"not null;uniqueIndex:uniq_user_test_attempt"`
	Approved      *bool          `json:"approved"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
