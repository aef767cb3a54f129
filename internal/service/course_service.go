package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

var (
	// ErrCourseExists is returned when a course name is already taken.
	ErrCourseExists = errors.New("course already exists")
	// ErrCourseNameRequired is returned when a course operation omits the name.
	ErrCourseNameRequired = errors.New("course name is required")
)

// defaultCourses is seeded into an empty catalog at startup.
var defaultCourses = []model.Course{
	{Name: "Master of Computer Application (MCA)", Duration: "2 years"},
	{Name: "Bachelor of Computer Application (BCA)", Duration: "3 years"},
	{Name: "BSc in Data Science", Duration: "4 years"},
}

// CourseService defines course catalog operations. Courses have no owner and
// no delete operation.
type CourseService interface {
	// SeedDefaultCourses inserts the default catalog when it is empty.
	// Idempotent: a non-empty catalog is left untouched.
	SeedDefaultCourses(ctx context.Context) error
	AddCourse(ctx context.Context, c model.Course) error
	// ListCourses returns the whole catalog. Scan failures degrade to an
	// empty list.
	ListCourses(ctx context.Context) []model.Course
	// UpdateCourse renames oldName to c.Name and updates the duration. A
	// rename onto an existing course fails with ErrCourseExists.
	UpdateCourse(ctx context.Context, oldName string, c model.Course) error
}

// courseService is the implementation of CourseService
type courseService struct {
	repo         repository.CourseRepository
	courseLogger zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(repo repository.CourseRepository, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:         repo,
		courseLogger: logger.With().Str("service", "CourseService").Logger(),
	}
}

func (s *courseService) SeedDefaultCourses(ctx context.Context) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		s.courseLogger.Error().Err(err).Msg("Failed to check existing courses before seeding")
		return err
	}
	if len(existing) > 0 {
		s.courseLogger.Info().Int("count", len(existing)).Msg("Found existing courses, skipping seeding")
		return nil
	}
	for _, c := range defaultCourses {
		course := c
		if err := s.repo.Create(ctx, &course); err != nil {
			// A concurrent seeder may have inserted the same course.
			if errors.Is(err, repository.ErrConditionFailed) {
				continue
			}
			s.courseLogger.Error().Err(err).Str("course", c.Name).Msg("Failed to seed course")
			return err
		}
	}
	s.courseLogger.Info().Msg("Default courses seeded")
	return nil
}

func (s *courseService) AddCourse(ctx context.Context, c model.Course) error {
	if c.Name == "" {
		s.courseLogger.Error().Msg("Course name is required")
		return ErrCourseNameRequired
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			s.courseLogger.Warn().Str("course", c.Name).Msg("Course already exists")
			return ErrCourseExists
		}
		s.courseLogger.Error().Err(err).Str("course", c.Name).Msg("Failed to add course")
		return err
	}
	s.courseLogger.Info().Str("course", c.Name).Msg("Course added")
	return nil
}

func (s *courseService) ListCourses(ctx context.Context) []model.Course {
	courses, err := s.repo.List(ctx)
	if err != nil {
		s.courseLogger.Error().Err(err).Msg("Failed to scan courses")
		return []model.Course{}
	}
	return courses
}

func (s *courseService) UpdateCourse(ctx context.Context, oldName string, c model.Course) error {
	if c.Name == "" {
		s.courseLogger.Error().Msg("Updated course name is required")
		return ErrCourseNameRequired
	}

	// Same key: just rewrite the record with the new duration.
	if c.Name == oldName {
		if err := s.repo.Put(ctx, &c); err != nil {
			s.courseLogger.Error().Err(err).Str("course", c.Name).Msg("Failed to update course")
			return err
		}
		s.courseLogger.Info().Str("course", c.Name).Msg("Course updated")
		return nil
	}

	// Rename: insert under the new key only if it is free, then drop the old
	// key. The conditional insert keeps a rename from destroying an unrelated
	// course that already holds the new name.
	if err := s.repo.Create(ctx, &c); err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			s.courseLogger.Warn().Str("course", c.Name).Msg("Rename target already exists")
			return ErrCourseExists
		}
		s.courseLogger.Error().Err(err).Str("course", c.Name).Msg("Failed to insert renamed course")
		return err
	}
	if err := s.repo.Delete(ctx, oldName); err != nil {
		s.courseLogger.Error().Err(err).Str("course", oldName).Msg("Failed to remove old course after rename")
		return err
	}
	s.courseLogger.Info().Str("old", oldName).Str("new", c.Name).Msg("Course renamed")
	return nil
}
