package dto

// StudentCreateDTO is used for incoming student creation requests
type StudentCreateDTO struct {
	StudentID    string  `json:"student_id" validate:"required"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNumber *string `json:"mobile_number,omitempty"`
	Course       *string `json:"course,omitempty"`
}

// StudentUpdateDTO is used for incoming student update requests. Absent fields
// keep their stored values.
type StudentUpdateDTO struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNumber *string `json:"mobile_number,omitempty"`
	Course       *string `json:"course,omitempty"`
}

// StudentResponseDTO is returned in API responses for students
type StudentResponseDTO struct {
	StudentID      string `json:"student_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	MobileNumber   string `json:"mobile_number"`
	Course         string `json:"course"`
	ProfilePicture string `json:"profile_picture"`
	UserID         string `json:"user_id"`
}

// StudentReportDTO summarizes a user's students per course.
type StudentReportDTO struct {
	TotalStudents int                  `json:"total_students"`
	ByCourse      map[string]int       `json:"by_course"`
	Students      []StudentResponseDTO `json:"students"`
}
