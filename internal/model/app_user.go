package model

import "time"

// AppUser is a plain application user identity. Employees are a separate
// identity table; see Employee.AppUserID for the optional link between them.
type AppUser struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FullName  string    `json:"full_name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	Age       int       `json:"age" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(10);default:'user'"`
	// No column default: gorm would treat an explicit false as unset.
	// The service defaults new users to active.
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
