package memory

import (
	"context"
	"sync"

	"app/internal/model"
	"app/internal/repository"
)

// StudentRepository is an in-memory implementation of repository.StudentRepository.
type StudentRepository struct {
	mu       sync.RWMutex
	students map[string]model.Student
}

// NewStudentRepository creates a new in-memory student repository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{students: make(map[string]model.Student)}
}

func (r *StudentRepository) Get(ctx context.Context, studentID string) (*model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[studentID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *StudentRepository) Put(ctx context.Context, s *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.students[s.StudentID] = *s
	return nil
}

func (r *StudentRepository) PutOwned(ctx context.Context, s *model.Student, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.students[s.StudentID]
	if !ok || existing.UserID != ownerID {
		return repository.ErrConditionFailed
	}
	r.students[s.StudentID] = *s
	return nil
}

func (r *StudentRepository) DeleteOwned(ctx context.Context, studentID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.students[studentID]
	if !ok || existing.UserID != ownerID {
		return repository.ErrConditionFailed
	}
	delete(r.students, studentID)
	return nil
}

func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]model.Student, 0, len(r.students))
	for _, s := range r.students {
		students = append(students, s)
	}
	return students, nil
}
