package dto

import "time"

// SignupDTO is used for incoming account creation requests
type SignupDTO struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginDTO is used for incoming login requests
type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponseDTO is returned in API responses for accounts
type UserResponseDTO struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponseDTO is returned after a successful signup or login
type AuthResponseDTO struct {
	Token string          `json:"token"`
	User  UserResponseDTO `json:"user"`
}

// DashboardResponseDTO is returned for the dashboard summary
type DashboardResponseDTO struct {
	TotalStudents int `json:"total_students"`
	TotalCourses  int `json:"total_courses"`
}
