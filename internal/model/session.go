package model

import "time"

// Session is one login-selection session. Exactly one of UserID/EmployeeID
// is set, matching the chosen role: user sessions reference an AppUser,
// employee and admin sessions reference an Employee.
type Session struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Token      string    `json:"-" gorm:"not null;uniqueIndex"`
	Role       Role      `json:"role" gorm:"type:varchar(10);not null"`
	UserID     *uint     `json:"user_id,omitempty"`
	User       *AppUser  `json:"-" gorm:"foreignKey:UserID"`
	EmployeeID *uint     `json:"employee_id,omitempty"`
	Employee   *Employee `json:"-" gorm:"foreignKey:EmployeeID"`
	CreatedAt  time.Time `json:"created_at"`
}
