package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/storage"

	"github.com/rs/zerolog"
)

var (
	// ErrNotFound covers both a missing record and an owner mismatch. The two
	// are deliberately indistinguishable so non-owners cannot probe for ids.
	ErrNotFound = errors.New("student not found or access denied")
	// ErrOwnerRequired is returned when an operation that writes records is
	// called without an owner identity.
	ErrOwnerRequired = errors.New("owner is required")
	// ErrStudentIDRequired is returned when a create request omits the student id.
	ErrStudentIDRequired = errors.New("student id is required")
)

// StudentInput carries incoming student attributes. Nil fields are absent:
// they default to empty on create and keep the stored value on update.
type StudentInput struct {
	StudentID    string
	FirstName    *string
	LastName     *string
	Email        *string
	MobileNumber *string
	Course       *string
}

// Attachment is an uploaded profile photo.
type Attachment struct {
	Filename string
	Body     io.Reader
}

// StudentService defines student-related operations. Reads and writes are
// scoped to the owning user; an empty owner id on reads bypasses the scope.
type StudentService interface {
	AddStudent(ctx context.Context, in StudentInput, photo *Attachment, ownerID, ownerName string) error
	GetStudent(ctx context.Context, studentID, ownerID string) (*model.Student, error)
	// ListStudents returns the owner's records, or every record when ownerID
	// is empty. Scan failures degrade to an empty list.
	ListStudents(ctx context.Context, ownerID string) []model.Student
	UpdateStudent(ctx context.Context, studentID string, in StudentInput, photo *Attachment, ownerID string) error
	DeleteStudent(ctx context.Context, studentID, ownerID, ownerName string) error
}

// studentService is the implementation of StudentService
type studentService struct {
	repo          repository.StudentRepository
	uploader      storage.Uploader
	publisher     pubsub.Publisher
	topic         string
	studentLogger zerolog.Logger
}

// NewStudentService creates a new StudentService. publisher may be nil and
// topic may be empty; either disables notifications.
func NewStudentService(
	repo repository.StudentRepository,
	uploader storage.Uploader,
	publisher pubsub.Publisher,
	topic string,
	logger zerolog.Logger,
) StudentService {
	return &studentService{
		repo:          repo,
		uploader:      uploader,
		publisher:     publisher,
		topic:         topic,
		studentLogger: logger.With().Str("service", "StudentService").Logger(),
	}
}

// AddStudent writes a full student record owned by ownerID, uploading the
// profile photo first when one is attached. An existing record with the same
// id is overwritten.
func (s *studentService) AddStudent(ctx context.Context, in StudentInput, photo *Attachment, ownerID, ownerName string) error {
	if ownerID == "" {
		s.studentLogger.Error().Msg("No owner provided for adding student")
		return ErrOwnerRequired
	}
	if in.StudentID == "" {
		s.studentLogger.Error().Msg("Student ID is required")
		return ErrStudentIDRequired
	}

	pictureURL := ""
	if photo != nil {
		url, err := s.uploader.Upload(ctx, in.StudentID, photo.Filename, photo.Body)
		if err != nil {
			s.studentLogger.Error().Err(err).Str("student_id", in.StudentID).Msg("Failed to upload profile picture")
			return err
		}
		pictureURL = url
		s.studentLogger.Info().Str("student_id", in.StudentID).Str("url", url).Msg("Profile picture uploaded")
	}

	student := &model.Student{
		StudentID:      in.StudentID,
		FirstName:      valueOr(in.FirstName, ""),
		LastName:       valueOr(in.LastName, ""),
		Email:          valueOr(in.Email, ""),
		MobileNumber:   valueOr(in.MobileNumber, ""),
		Course:         valueOr(in.Course, ""),
		ProfilePicture: pictureURL,
		UserID:         ownerID,
	}
	if err := s.repo.Put(ctx, student); err != nil {
		s.studentLogger.Error().Err(err).Str("student_id", in.StudentID).Msg("Failed to add student")
		return err
	}

	s.notify(ctx, "New Student Added", fmt.Sprintf(
		"New student added by %s: %s %s (ID: %s)",
		ownerName, student.FirstName, student.LastName, student.StudentID,
	))
	s.studentLogger.Info().Str("student_id", in.StudentID).Str("user_id", ownerID).Msg("Student added")
	return nil
}

// GetStudent retrieves one record. A record owned by someone else is reported
// as ErrNotFound. An empty ownerID returns the record regardless of owner.
func (s *studentService) GetStudent(ctx context.Context, studentID, ownerID string) (*model.Student, error) {
	student, err := s.repo.Get(ctx, studentID)
	if err != nil {
		s.studentLogger.Error().Err(err).Str("student_id", studentID).Msg("Failed to retrieve student")
		return nil, err
	}
	if student == nil {
		s.studentLogger.Warn().Str("student_id", studentID).Msg("Student not found")
		return nil, ErrNotFound
	}
	if ownerID != "" && student.UserID != ownerID {
		s.studentLogger.Warn().Str("student_id", studentID).Str("user_id", ownerID).Msg("Owner does not have access to student")
		return nil, ErrNotFound
	}
	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context, ownerID string) []model.Student {
	students, err := s.repo.List(ctx)
	if err != nil {
		s.studentLogger.Error().Err(err).Msg("Failed to scan students")
		return []model.Student{}
	}
	if ownerID == "" {
		return students
	}
	owned := make([]model.Student, 0, len(students))
	for _, st := range students {
		if st.UserID == ownerID {
			owned = append(owned, st)
		}
	}
	return owned
}

// UpdateStudent merges the incoming fields into the stored record and writes
// it back wholesale. Absent fields keep their stored values; the owner id is
// never changed. The write is conditional on the owner still matching, so a
// concurrent re-assignment cannot be clobbered.
func (s *studentService) UpdateStudent(ctx context.Context, studentID string, in StudentInput, photo *Attachment, ownerID string) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}
	existing, err := s.GetStudent(ctx, studentID, ownerID)
	if err != nil {
		return err
	}

	pictureURL := existing.ProfilePicture
	if photo != nil {
		url, err := s.uploader.Upload(ctx, studentID, photo.Filename, photo.Body)
		if err != nil {
			s.studentLogger.Error().Err(err).Str("student_id", studentID).Msg("Failed to upload profile picture")
			return err
		}
		pictureURL = url
		s.studentLogger.Info().Str("student_id", studentID).Str("url", url).Msg("Profile picture updated")
	}

	updated := &model.Student{
		StudentID:      studentID,
		FirstName:      valueOr(in.FirstName, existing.FirstName),
		LastName:       valueOr(in.LastName, existing.LastName),
		Email:          valueOr(in.Email, existing.Email),
		MobileNumber:   valueOr(in.MobileNumber, existing.MobileNumber),
		Course:         valueOr(in.Course, existing.Course),
		ProfilePicture: pictureURL,
		UserID:         existing.UserID,
	}
	if err := s.repo.PutOwned(ctx, updated, ownerID); err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			s.studentLogger.Warn().Str("student_id", studentID).Str("user_id", ownerID).Msg("Ownership changed between read and write")
			return ErrNotFound
		}
		s.studentLogger.Error().Err(err).Str("student_id", studentID).Msg("Failed to update student")
		return err
	}
	s.studentLogger.Info().Str("student_id", studentID).Str("user_id", ownerID).Msg("Student updated")
	return nil
}

// DeleteStudent removes an owned record and sends a best-effort deletion
// notification.
func (s *studentService) DeleteStudent(ctx context.Context, studentID, ownerID, ownerName string) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}
	existing, err := s.GetStudent(ctx, studentID, ownerID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteOwned(ctx, studentID, ownerID); err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			return ErrNotFound
		}
		s.studentLogger.Error().Err(err).Str("student_id", studentID).Msg("Failed to delete student")
		return err
	}

	s.notify(ctx, "Student Deleted Notification", fmt.Sprintf(
		"Student deleted by %s: %s %s (Roll Number: %s)",
		ownerName, existing.FirstName, existing.LastName, studentID,
	))
	s.studentLogger.Info().Str("student_id", studentID).Str("user_id", ownerID).Msg("Student deleted")
	return nil
}

// notification is the payload published on student lifecycle events.
type notification struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// notify publishes a lifecycle event. Failures are logged and swallowed; the
// primary operation has already succeeded by the time this runs.
func (s *studentService) notify(ctx context.Context, subject, message string) {
	if s.publisher == nil || s.topic == "" {
		return
	}
	payload, err := json.Marshal(notification{Subject: subject, Message: message})
	if err != nil {
		s.studentLogger.Error().Err(err).Msg("Failed to marshal notification")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.topic, payload); err != nil {
		s.studentLogger.Error().Err(err).Str("topic", s.topic).Msg("Failed to send notification")
		return
	}
	s.studentLogger.Info().Str("topic", s.topic).Str("subject", subject).Msg("Notification sent")
}

func valueOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
