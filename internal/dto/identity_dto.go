package dto

import "time"

// UserRequest carries AppUser create/update input. Photo-less identity.
type UserRequest struct {
	FullName string `json:"full_name" binding:"required" validate:"required"`
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Age      int    `json:"age" binding:"required" validate:"required,gt=0"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// EmployeeRequest carries Employee create/update input. Photo travels as
// base64 in JSON and is stored as opaque bytes.
type EmployeeRequest struct {
	FullName          string  `json:"full_name" binding:"required" validate:"required"`
	Email             string  `json:"email" binding:"required" validate:"required,email"`
	Age               int     `json:"age" binding:"required" validate:"required,gt=0"`
	YearsOfExperience int     `json:"years_of_experience" validate:"gte=0"`
	Position          string  `json:"position" binding:"required" validate:"required"`
	Salary            float64 `json:"salary" validate:"gte=0"`
	Photo             []byte  `json:"photo,omitempty"`
	AppUserID         *uint   `json:"app_user_id,omitempty"`
}

type EmployeeResponse struct {
	ID                uint      `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Age               int       `json:"age"`
	Role              string    `json:"role"`
	YearsOfExperience int       `json:"years_of_experience"`
	Position          string    `json:"position"`
	Salary            float64   `json:"salary"`
	IsFired           bool      `json:"is_fired"`
	AppUserID         *uint     `json:"app_user_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// UserListResponse is a page of users.
type UserListResponse struct {
	Items    []UserResponse `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// EmployeeListResponse is a page of employees.
type EmployeeListResponse struct {
	Items    []EmployeeResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}
