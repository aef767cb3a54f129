package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// maxUploadBytes caps profile photo uploads.
const maxUploadBytes = 10 << 20

// StudentHandler handles student-related endpoints
type StudentHandler struct {
	studentService service.StudentService
	validate       *validator.Validate
	logger         zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(studentService service.StudentService, validate *validator.Validate, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{studentService: studentService, validate: validate, logger: logger}
}

// RegisterRoutes mounts student routes
func (h *StudentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/students", authMw(http.HandlerFunc(h.handleStudents)))
	mux.Handle("/students/", authMw(http.HandlerFunc(h.handleStudent)))
}

func (h *StudentHandler) handleStudents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listStudents(w, r)
	case http.MethodPost:
		h.createStudent(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *StudentHandler) handleStudent(w http.ResponseWriter, r *http.Request) {
	studentID := strings.TrimPrefix(r.URL.Path, "/students/")
	if studentID == "" {
		http.NotFound(w, r)
		return
	}
	if studentID == "report" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.studentReport(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.getStudent(w, r, studentID)
	case http.MethodPut:
		h.updateStudent(w, r, studentID)
	case http.MethodDelete:
		h.deleteStudent(w, r, studentID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// createStudent godoc
// @Summary Create a student
// @Description Creates a student record owned by the authenticated user. Accepts multipart form data with an optional profile_picture file.
// @Tags students
// @Accept mpfd
// @Produce json
// @Success 201 {object} dto.StudentResponseDTO
// @Failure 400 {string} string "Invalid form payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to add student"
// @Router /students [post]
func (h *StudentHandler) createStudent(w http.ResponseWriter, r *http.Request) {
	userID, username, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	form, err := parseStudentForm(r)
	if err != nil {
		http.Error(w, "Invalid form payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	req := dto.StudentCreateDTO{
		StudentID:    formString(form, "student_id"),
		FirstName:    formPtr(form, "first_name"),
		LastName:     formPtr(form, "last_name"),
		Email:        formPtr(form, "email"),
		MobileNumber: formPtr(form, "mobile_number"),
		Course:       formPtr(form, "course"),
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	photo, closePhoto, err := photoFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid profile picture: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer closePhoto()

	in := service.StudentInput{
		StudentID:    req.StudentID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Course:       req.Course,
	}
	if err := h.studentService.AddStudent(r.Context(), in, photo, userID, username); err != nil {
		if errors.Is(err, service.ErrStudentIDRequired) || errors.Is(err, service.ErrOwnerRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to add student", http.StatusInternalServerError)
		return
	}

	created, err := h.studentService.GetStudent(r.Context(), req.StudentID, userID)
	if err != nil {
		http.Error(w, "Failed to retrieve student", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, studentResponse(created))
}

// listStudents godoc
// @Summary List students
// @Description Lists the authenticated user's students.
// @Tags students
// @Produce json
// @Success 200 {array} dto.StudentResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Router /students [get]
func (h *StudentHandler) listStudents(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	students := h.studentService.ListStudents(r.Context(), userID)
	resp := make([]dto.StudentResponseDTO, 0, len(students))
	for i := range students {
		resp = append(resp, studentResponse(&students[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// getStudent godoc
// @Summary Get a student
// @Description Retrieves one of the authenticated user's students by id.
// @Tags students
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.StudentResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Student not found or access denied"
// @Router /students/{studentId} [get]
func (h *StudentHandler) getStudent(w http.ResponseWriter, r *http.Request, studentID string) {
	userID, _, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	student, err := h.studentService.GetStudent(r.Context(), studentID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "Student not found or access denied", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve student", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, studentResponse(student))
}

// updateStudent godoc
// @Summary Update a student
// @Description Updates one of the authenticated user's students. Absent form fields keep their stored values.
// @Tags students
// @Accept mpfd
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.StudentResponseDTO
// @Failure 400 {string} string "Invalid form payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Student not found or access denied"
// @Failure 500 {string} string "Failed to update student"
// @Router /students/{studentId} [put]
func (h *StudentHandler) updateStudent(w http.ResponseWriter, r *http.Request, studentID string) {
	userID, _, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	form, err := parseStudentForm(r)
	if err != nil {
		http.Error(w, "Invalid form payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	req := dto.StudentUpdateDTO{
		FirstName:    formPtr(form, "first_name"),
		LastName:     formPtr(form, "last_name"),
		Email:        formPtr(form, "email"),
		MobileNumber: formPtr(form, "mobile_number"),
		Course:       formPtr(form, "course"),
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	photo, closePhoto, err := photoFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid profile picture: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer closePhoto()

	in := service.StudentInput{
		StudentID:    studentID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Course:       req.Course,
	}
	if err := h.studentService.UpdateStudent(r.Context(), studentID, in, photo, userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "Student not found or access denied", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update student", http.StatusInternalServerError)
		return
	}

	updated, err := h.studentService.GetStudent(r.Context(), studentID, userID)
	if err != nil {
		http.Error(w, "Failed to retrieve student", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, studentResponse(updated))
}

// deleteStudent godoc
// @Summary Delete a student
// @Description Deletes one of the authenticated user's students.
// @Tags students
// @Param studentId path string true "Student ID"
// @Success 204 {string} string "deleted"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Student not found or access denied"
// @Failure 500 {string} string "Failed to delete student"
// @Router /students/{studentId} [delete]
func (h *StudentHandler) deleteStudent(w http.ResponseWriter, r *http.Request, studentID string) {
	userID, username, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	if err := h.studentService.DeleteStudent(r.Context(), studentID, userID, username); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "Student not found or access denied", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete student", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// studentReport godoc
// @Summary Per-user student report
// @Description Summarizes the authenticated user's students grouped by course.
// @Tags students
// @Produce json
// @Success 200 {object} dto.StudentReportDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Router /students/report [get]
func (h *StudentHandler) studentReport(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	students := h.studentService.ListStudents(r.Context(), userID)
	report := dto.StudentReportDTO{
		TotalStudents: len(students),
		ByCourse:      make(map[string]int),
		Students:      make([]dto.StudentResponseDTO, 0, len(students)),
	}
	for i := range students {
		report.ByCourse[students[i].Course]++
		report.Students = append(report.Students, studentResponse(&students[i]))
	}
	writeJSON(w, http.StatusOK, report)
}

func studentResponse(s *model.Student) dto.StudentResponseDTO {
	return dto.StudentResponseDTO{
		StudentID:      s.StudentID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		MobileNumber:   s.MobileNumber,
		Course:         s.Course,
		ProfilePicture: s.ProfilePicture,
		UserID:         s.UserID,
	}
}

// parseStudentForm accepts multipart (photo uploads) or urlencoded form bodies.
func parseStudentForm(r *http.Request) (url.Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}
		return url.Values(r.MultipartForm.Value), nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// photoFromRequest extracts the optional profile_picture file. The returned
// close func is always safe to call.
func photoFromRequest(r *http.Request) (*service.Attachment, func(), error) {
	if r.MultipartForm == nil {
		return nil, func() {}, nil
	}
	file, header, err := r.FormFile("profile_picture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	return &service.Attachment{Filename: header.Filename, Body: file}, func() { file.Close() }, nil
}

func formString(form url.Values, key string) string {
	return form.Get(key)
}

func formPtr(form url.Values, key string) *string {
	if vals, ok := form[key]; ok && len(vals) > 0 {
		return &vals[0]
	}
	return nil
}

func userFromContext(r *http.Request) (userID, username string, ok bool) {
	userID, ok = r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		return "", "", false
	}
	username, _ = r.Context().Value(middleware.UsernameContextKey).(string)
	return userID, username, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
