package model

import "time"

// Employee is an independent staff identity record. It duplicates the
// person fields rather than extending AppUser; AppUserID optionally links
// the two identities so an employee can also act as a test taker.
//
// IsFired is a one-way flag: once set it is never cleared, and it gates
// eligibility for hard deletion.
type Employee struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	FullName          string    `json:"full_name" gorm:"not null"`
	Email             string    `json:"email" gorm:"not null;uniqueIndex"`
	Age               int       `json:"age" gorm:"not null"`
	Role              Role      `json:"role" gorm:"type:varchar(10);default:'employee'"`
	YearsOfExperience int       `json:"years_of_experience" gorm:"not null"`
	Position          string    `json:"position" gorm:"not null"`
	Salary            float64   `json:"salary" gorm:"type:numeric(10,2);not null"`
	Photo             []byte    `json:"-" gorm:"type:bytea"`
	IsFired           bool      `json:"is_fired" gorm:"default:false"`
	AppUserID         *uint     `json:"app_user_id,omitempty" gorm:"uniqueIndex"`
	AppUser           *AppUser  `json:"-" gorm:"foreignKey:AppUserID"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
