package dto

// CourseCreateDTO is used for incoming course creation requests
type CourseCreateDTO struct {
	Name     string `json:"name" validate:"required"`
	Duration string `json:"duration"`
}

// CourseUpdateDTO is used for incoming course update requests. Name is the new
// name; renames move the record under the new key.
type CourseUpdateDTO struct {
	Name     string `json:"name" validate:"required"`
	Duration string `json:"duration"`
}

// CourseResponseDTO is returned in API responses for courses
type CourseResponseDTO struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
}
