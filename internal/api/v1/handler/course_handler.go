package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler handles course catalog endpoints
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, validate: validate, logger: logger}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/courses", authMw(http.HandlerFunc(h.handleCourses)))
	mux.Handle("/courses/", authMw(http.HandlerFunc(h.updateCourse)))
}

func (h *CourseHandler) handleCourses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listCourses(w, r)
	case http.MethodPost:
		h.createCourse(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// listCourses godoc
// @Summary List courses
// @Description Lists the full course catalog. The catalog is shared across users.
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponseDTO
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses := h.courseService.ListCourses(r.Context())
	resp := make([]dto.CourseResponseDTO, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, dto.CourseResponseDTO{Name: c.Name, Duration: c.Duration})
	}
	writeJSON(w, http.StatusOK, resp)
}

// createCourse godoc
// @Summary Create a course
// @Description Adds a course to the catalog. Duplicate names are rejected.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course creation request"
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 409 {string} string "Course already exists"
// @Failure 500 {string} string "Failed to add course"
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req dto.CourseCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	course := model.Course{Name: req.Name, Duration: req.Duration}
	if err := h.courseService.AddCourse(r.Context(), course); err != nil {
		switch {
		case errors.Is(err, service.ErrCourseExists):
			http.Error(w, "Course already exists", http.StatusConflict)
		case errors.Is(err, service.ErrCourseNameRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to add course", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, dto.CourseResponseDTO{Name: course.Name, Duration: course.Duration})
}

// updateCourse godoc
// @Summary Update a course
// @Description Renames a course and/or updates its duration. Renaming onto an existing course is rejected.
// @Tags courses
// @Accept json
// @Produce json
// @Param courseName path string true "Current course name"
// @Param course body dto.CourseUpdateDTO true "Course update request"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 409 {string} string "Course already exists"
// @Failure 500 {string} string "Failed to update course"
// @Router /courses/{courseName} [put]
func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	oldName := strings.TrimPrefix(r.URL.Path, "/courses/")
	if oldName == "" {
		http.NotFound(w, r)
		return
	}
	var req dto.CourseUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	course := model.Course{Name: req.Name, Duration: req.Duration}
	if err := h.courseService.UpdateCourse(r.Context(), oldName, course); err != nil {
		switch {
		case errors.Is(err, service.ErrCourseExists):
			http.Error(w, "Course already exists", http.StatusConflict)
		case errors.Is(err, service.ErrCourseNameRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to update course", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, dto.CourseResponseDTO{Name: course.Name, Duration: course.Duration})
}
