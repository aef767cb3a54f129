package repository

import (
	"context"
	"errors"

	"app/internal/model"
)

// ErrConditionFailed is returned when a conditional write is rejected because
// the stored item did not match the expected state (wrong owner, or a key that
// already exists).
var ErrConditionFailed = errors.New("conditional write failed")

// StudentRepository defines the interface for interacting with student records.
type StudentRepository interface {
	// Get retrieves a student by id, returning nil when absent.
	Get(ctx context.Context, studentID string) (*model.Student, error)
	// Put writes the full record, overwriting any existing item with the same id.
	Put(ctx context.Context, s *model.Student) error
	// PutOwned writes the full record only if the stored item is currently
	// owned by ownerID. Returns ErrConditionFailed otherwise.
	PutOwned(ctx context.Context, s *model.Student, ownerID string) error
	// DeleteOwned deletes the record only if it is currently owned by ownerID.
	DeleteOwned(ctx context.Context, studentID, ownerID string) error
	// List returns every student record (full scan).
	List(ctx context.Context) ([]model.Student, error)
}

// CourseRepository defines the interface for interacting with the course catalog.
type CourseRepository interface {
	// Get retrieves a course by name, returning nil when absent.
	Get(ctx context.Context, name string) (*model.Course, error)
	// Create inserts a course only if no course with the same name exists.
	// Returns ErrConditionFailed on a duplicate name.
	Create(ctx context.Context, c *model.Course) error
	// Put writes the course unconditionally.
	Put(ctx context.Context, c *model.Course) error
	// Delete removes a course by name.
	Delete(ctx context.Context, name string) error
	// List returns every course (full scan).
	List(ctx context.Context) ([]model.Course, error)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	// GetByUsername retrieves an account by username, returning nil when absent.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Create inserts an account only if the username is not taken.
	// Returns ErrConditionFailed on a duplicate username.
	Create(ctx context.Context, u *model.User) error
}
