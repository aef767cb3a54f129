package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"app/internal/repository/memory"
	"app/internal/service"
	"app/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploads []string
	err     error
}

func (f *fakeUploader) Upload(ctx context.Context, studentID, filename string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	url := fmt.Sprintf("https://bucket.s3.amazonaws.com/%s", storage.ObjectKey(studentID, filename))
	f.uploads = append(f.uploads, url)
	return url, nil
}

type fakePublisher struct {
	published [][]byte
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.published = append(f.published, payload)
	return "msg-1", nil
}

func newStudentService(t *testing.T) (service.StudentService, *memory.StudentRepository, *fakeUploader, *fakePublisher) {
	t.Helper()
	repo := memory.NewStudentRepository()
	uploader := &fakeUploader{}
	publisher := &fakePublisher{}
	svc := service.NewStudentService(repo, uploader, publisher, "student-events", zerolog.Nop())
	return svc, repo, uploader, publisher
}

func ptr(s string) *string { return &s }

func TestAddStudentRequiresOwnerAndID(t *testing.T) {
	svc, _, _, _ := newStudentService(t)
	ctx := context.Background()

	err := svc.AddStudent(ctx, service.StudentInput{StudentID: "S1"}, nil, "", "ann")
	assert.ErrorIs(t, err, service.ErrOwnerRequired)

	err = svc.AddStudent(ctx, service.StudentInput{}, nil, "U1", "ann")
	assert.ErrorIs(t, err, service.ErrStudentIDRequired)
}

func TestAddStudentWithPhoto(t *testing.T) {
	svc, repo, uploader, publisher := newStudentService(t)
	ctx := context.Background()

	in := service.StudentInput{
		StudentID: "S1",
		FirstName: ptr("Ann"),
		Course:    ptr("BCA"),
	}
	photo := &service.Attachment{Filename: "ann.png", Body: strings.NewReader("png-bytes")}
	require.NoError(t, svc.AddStudent(ctx, in, photo, "U1", "ann"))

	stored, err := repo.Get(ctx, "S1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Ann", stored.FirstName)
	assert.Equal(t, "", stored.LastName)
	assert.Equal(t, "U1", stored.UserID)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/student-profiles/S1/ann.png", stored.ProfilePicture)
	assert.Len(t, uploader.uploads, 1)
	assert.Len(t, publisher.published, 1)
	assert.Contains(t, string(publisher.published[0]), "New Student Added")
}

func TestAddStudentPublishFailureIsSwallowed(t *testing.T) {
	repo := memory.NewStudentRepository()
	publisher := &fakePublisher{err: errors.New("topic unavailable")}
	svc := service.NewStudentService(repo, &fakeUploader{}, publisher, "student-events", zerolog.Nop())
	ctx := context.Background()

	err := svc.AddStudent(ctx, service.StudentInput{StudentID: "S1"}, nil, "U1", "ann")
	assert.NoError(t, err)

	stored, _ := repo.Get(ctx, "S1")
	assert.NotNil(t, stored)
}

func TestAddStudentUploadFailureFailsOperation(t *testing.T) {
	repo := memory.NewStudentRepository()
	uploader := &fakeUploader{err: errors.New("bucket unavailable")}
	svc := service.NewStudentService(repo, uploader, nil, "", zerolog.Nop())
	ctx := context.Background()

	photo := &service.Attachment{Filename: "ann.png", Body: strings.NewReader("png-bytes")}
	err := svc.AddStudent(ctx, service.StudentInput{StudentID: "S1"}, photo, "U1", "ann")
	assert.Error(t, err)

	stored, _ := repo.Get(ctx, "S1")
	assert.Nil(t, stored)
}

func TestGetStudentOwnershipScope(t *testing.T) {
	svc, _, _, _ := newStudentService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddStudent(ctx, service.StudentInput{StudentID: "S1", FirstName: ptr("Ann")}, nil, "U1", "ann"))

	// Owner sees the record.
	s, err := svc.GetStudent(ctx, "S1", "U1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", s.FirstName)

	// A different owner gets the same response as a missing record.
	_, err = svc.GetStudent(ctx, "S1", "U2")
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.GetStudent(ctx, "missing", "U1")
	assert.ErrorIs(t, err, service.ErrNotFound)

	// No owner context returns the record regardless of owner.
	s, err = svc.GetStudent(ctx, "S1", "")
	require.NoError(t, err)
	assert.Equal(t, "U1", s.UserID)
}

func TestListStudentsFiltersByOwner(t *testing.T) {
	svc, _, _, _ := newStudentService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddStudent(ctx, service.StudentInput{StudentID: "S1", FirstName: ptr("Ann"), Course: ptr("BCA")}, nil, "U1", "ann"))

	owned := svc.ListStudents(ctx, "U1")
	require.Len(t, owned, 1)
	assert.Equal(t, "S1", owned[0].StudentID)

	assert.Empty(t, svc.ListStudents(ctx, "U2"))
}

func TestUpdateStudentPartialPayload(t *testing.T) {
	svc, _, _, _ := newStudentService(t)
	ctx := context.Background()
	in := service.StudentInput{
		StudentID:    "S1",
		FirstName:    ptr("Ann"),
		LastName:     ptr("Smith"),
		Email:        ptr("ann@example.com"),
		MobileNumber: ptr("555-0101"),
		Course:       ptr("BCA"),
	}
	require.NoError(t, svc.AddStudent(ctx, in, nil, "U1", "ann"))

	err := svc.UpdateStudent(ctx, "S1", service.StudentInput{LastName: ptr("Lee")}, nil, "U1")
	require.NoError(t, err)

	s, err := svc.GetStudent(ctx, "S1", "U1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", s.FirstName)
	assert.Equal(t, "Lee", s.LastName)
	assert.Equal(t, "ann@example.com", s.Email)
	assert.Equal(t, "555-0101", s.MobileNumber)
	assert.Equal(t, "BCA", s.Course)
}

func TestUpdateStudentNeverChangesOwner(t *testing.T) {
	svc, repo, _, _ := newStudentService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddStudent(ctx, service.StudentInput{StudentID: "S1"}, nil, "U1", "ann"))

	require.NoError(t, svc.UpdateStudent(ctx, "S1", service.StudentInput{FirstName: ptr("Ann")}, nil, "U1"))

	s, _ := repo.Get(ctx, "S1")
	assert.Equal(t, "U1", s.UserID)
}

func TestUpdateStudentWrongOwner(t *testing.T) {
	svc, _, _, _ := newStudentService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddStudent(ctx, service.StudentInput{StudentID: "S1", FirstName: ptr("Ann")}, nil, "U1", "ann"))

	err := svc.UpdateStudent(ctx, "S1", service.StudentInput{FirstName: ptr("Mallory")}, nil, "U2")
	assert.ErrorIs(t, err, service.ErrNotFound)

	s, err := svc.GetStudent(ctx, "S1", "U1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", s.FirstName)
}

func TestUpdateStudentKeepsPhotoWhenOmitted(t *testing.T) {
	svc, _, _, _ := newStudentService(t)
	ctx := context.Background()
	photo := &service.Attachment{Filename: "ann.png", Body: strings.NewReader("png-bytes")}
	require.NoError(t, svc.AddStudent(ctx, service.StudentInput{StudentID: "S1"}, photo, "U1", "ann"))

	require.NoError(t, svc.UpdateStudent(ctx, "S1", service.StudentInput{FirstName: ptr("Ann")}, nil, "U1"))

	s, _ := svc.GetStudent(ctx, "S1", "U1")
	assert.Equal(t, "https://bucket.s3.amazonaws.com/student-profiles/S1/ann.png", s.ProfilePicture)

	newPhoto := &service.Attachment{Filename: "new.png", Body: strings.NewReader("png-bytes")}
	require.NoError(t, svc.UpdateStudent(ctx, "S1", service.StudentInput{}, newPhoto, "U1"))

	s, _ = svc.GetStudent(ctx, "S1", "U1")
	assert.Equal(t, "https://bucket.s3.amazonaws.com/student-profiles/S1/new.png", s.ProfilePicture)
}

func TestDeleteStudentWrongOwner(t *testing.T) {
	svc, _, _, publisher := newStudentService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddStudent(ctx, service.StudentInput{StudentID: "S1"}, nil, "U1", "ann"))
	publisher.published = nil

	err := svc.DeleteStudent(ctx, "S1", "U2", "mallory")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Empty(t, publisher.published)

	// Still retrievable by the real owner.
	s, err := svc.GetStudent(ctx, "S1", "U1")
	require.NoError(t, err)
	assert.Equal(t, "S1", s.StudentID)
}

func TestDeleteStudentNotifies(t *testing.T) {
	svc, repo, _, publisher := newStudentService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddStudent(ctx, service.StudentInput{StudentID: "S1", FirstName: ptr("Ann")}, nil, "U1", "ann"))
	publisher.published = nil

	require.NoError(t, svc.DeleteStudent(ctx, "S1", "U1", "ann"))

	s, _ := repo.Get(ctx, "S1")
	assert.Nil(t, s)
	require.Len(t, publisher.published, 1)
	assert.Contains(t, string(publisher.published[0]), "Student Deleted")
}
