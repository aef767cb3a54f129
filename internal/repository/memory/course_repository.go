package memory

import (
	"context"
	"sync"

	"app/internal/model"
	"app/internal/repository"
)

// CourseRepository is an in-memory implementation of repository.CourseRepository.
type CourseRepository struct {
	mu      sync.RWMutex
	courses map[string]model.Course
}

// NewCourseRepository creates a new in-memory course repository.
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{courses: make(map[string]model.Course)}
}

func (r *CourseRepository) Get(ctx context.Context, name string) (*model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[name]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.courses[c.Name]; exists {
		return repository.ErrConditionFailed
	}
	r.courses[c.Name] = *c
	return nil
}

func (r *CourseRepository) Put(ctx context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.courses[c.Name] = *c
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.courses, name)
	return nil
}

func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := make([]model.Course, 0, len(r.courses))
	for _, c := range r.courses {
		courses = append(courses, c)
	}
	return courses, nil
}
