package service_test

import (
	"context"
	"testing"

	"app/internal/model"
	"app/internal/repository/memory"
	"app/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourseService(t *testing.T) (service.CourseService, *memory.CourseRepository) {
	t.Helper()
	repo := memory.NewCourseRepository()
	return service.NewCourseService(repo, zerolog.Nop()), repo
}

func TestSeedDefaultCoursesIdempotent(t *testing.T) {
	svc, _ := newCourseService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaultCourses(ctx))
	first := svc.ListCourses(ctx)
	assert.Len(t, first, 3)

	// A second seed run writes nothing new.
	require.NoError(t, svc.SeedDefaultCourses(ctx))
	assert.Len(t, svc.ListCourses(ctx), 3)
}

func TestSeedSkipsNonEmptyCatalog(t *testing.T) {
	svc, _ := newCourseService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddCourse(ctx, model.Course{Name: "Physics", Duration: "1 year"}))
	require.NoError(t, svc.SeedDefaultCourses(ctx))

	courses := svc.ListCourses(ctx)
	assert.Len(t, courses, 1)
	assert.Equal(t, "Physics", courses[0].Name)
}

func TestAddCourseDuplicate(t *testing.T) {
	svc, _ := newCourseService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddCourse(ctx, model.Course{Name: "BCA", Duration: "3 years"}))

	err := svc.AddCourse(ctx, model.Course{Name: "BCA", Duration: "4 years"})
	assert.ErrorIs(t, err, service.ErrCourseExists)

	// Catalog size and the original duration are unchanged.
	courses := svc.ListCourses(ctx)
	require.Len(t, courses, 1)
	assert.Equal(t, "3 years", courses[0].Duration)
}

func TestAddCourseRequiresName(t *testing.T) {
	svc, _ := newCourseService(t)
	err := svc.AddCourse(context.Background(), model.Course{Duration: "3 years"})
	assert.ErrorIs(t, err, service.ErrCourseNameRequired)
}

func TestUpdateCourseDuration(t *testing.T) {
	svc, _ := newCourseService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddCourse(ctx, model.Course{Name: "BCA", Duration: "3 years"}))

	require.NoError(t, svc.UpdateCourse(ctx, "BCA", model.Course{Name: "BCA", Duration: "4 years"}))

	courses := svc.ListCourses(ctx)
	require.Len(t, courses, 1)
	assert.Equal(t, "4 years", courses[0].Duration)
}

func TestUpdateCourseRename(t *testing.T) {
	svc, repo := newCourseService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddCourse(ctx, model.Course{Name: "BCA", Duration: "3 years"}))

	require.NoError(t, svc.UpdateCourse(ctx, "BCA", model.Course{Name: "BSc CS", Duration: "3 years"}))

	old, err := repo.Get(ctx, "BCA")
	require.NoError(t, err)
	assert.Nil(t, old)
	renamed, err := repo.Get(ctx, "BSc CS")
	require.NoError(t, err)
	require.NotNil(t, renamed)
	assert.Equal(t, "3 years", renamed.Duration)
}

func TestUpdateCourseRenameCollision(t *testing.T) {
	svc, _ := newCourseService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddCourse(ctx, model.Course{Name: "BCA", Duration: "3 years"}))
	require.NoError(t, svc.AddCourse(ctx, model.Course{Name: "MCA", Duration: "2 years"}))

	err := svc.UpdateCourse(ctx, "BCA", model.Course{Name: "MCA", Duration: "3 years"})
	assert.ErrorIs(t, err, service.ErrCourseExists)

	// Both courses survive untouched.
	courses := svc.ListCourses(ctx)
	assert.Len(t, courses, 2)
	for _, c := range courses {
		if c.Name == "MCA" {
			assert.Equal(t, "2 years", c.Duration)
		}
	}
}
