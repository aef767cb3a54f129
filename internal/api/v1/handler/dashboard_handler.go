package handler

import (
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler serves the dashboard summary
type DashboardHandler struct {
	studentService service.StudentService
	courseService  service.CourseService
	logger         zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(studentService service.StudentService, courseService service.CourseService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{studentService: studentService, courseService: courseService, logger: logger}
}

// RegisterRoutes mounts the dashboard route
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/dashboard", authMw(http.HandlerFunc(h.dashboard)))
}

// dashboard godoc
// @Summary Dashboard summary
// @Description Returns the authenticated user's student count and the catalog size.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Router /dashboard [get]
func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, _, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	resp := dto.DashboardResponseDTO{
		TotalStudents: len(h.studentService.ListStudents(r.Context(), userID)),
		TotalCourses:  len(h.courseService.ListCourses(r.Context())),
	}
	writeJSON(w, http.StatusOK, resp)
}
