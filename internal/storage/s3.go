package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores a profile photo and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, studentID, filename string, body io.Reader) (string, error)
}

// S3Uploader is an S3-backed implementation of Uploader. Photos live under
// student-profiles/{student_id}/{filename} in a single bucket.
type S3Uploader struct {
	uploader *manager.Uploader
	bucket   string
	domain   string
}

// NewS3Uploader creates a new S3Uploader. domain is the public host suffix used
// to build object URLs (s3.amazonaws.com for real AWS).
func NewS3Uploader(client *s3.Client, bucket, domain string) *S3Uploader {
	return &S3Uploader{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		domain:   domain,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, studentID, filename string, body io.Reader) (string, error) {
	key := ObjectKey(studentID, filename)
	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload profile picture for student %s: %w", studentID, err)
	}
	return fmt.Sprintf("https://%s.%s/%s", u.bucket, u.domain, key), nil
}

// ObjectKey returns the bucket key for a student's profile photo.
func ObjectKey(studentID, filename string) string {
	return fmt.Sprintf("student-profiles/%s/%s", studentID, filename)
}
