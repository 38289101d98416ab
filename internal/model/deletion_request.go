package model

import "time"

// TestDeletionRequest is an employee's request to remove a test, resolved
// only by an admin. Approved mirrors TestResult's tri-state, with the
// opposite decline behaviour: a declined request is kept with
// Approved=false as an auditable trace, while an approved one disappears
// together with the test it cascades from.
type TestDeletionRequest struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TestID        uint      `json:"test_id" gorm:"not null;index"`
	Test          *Test     `json:"-" gorm:"foreignKey:TestID"`
	RequestedByID uint      `json:"requested_by_id" gorm:"not null"`
	RequestedBy   AppUser   `json:"-" gorm:"foreignKey:RequestedByID"`
	RequestedAt   time.Time `json:"requested_at" gorm:"autoCreateTime"`
	Approved      *bool     `json:"approved"`
}
