package service_test

import (
	"context"
	"testing"

	"app/internal/repository/memory"
	"app/internal/service"
	"app/internal/util"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newUserService(t *testing.T) service.UserService {
	t.Helper()
	return service.NewUserService(memory.NewUserRepository(), testSecret, zerolog.Nop())
}

func TestSignupAndLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "ann", "ann@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	claims, err := util.ValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.Subject)
	assert.Equal(t, "ann", claims.Username)

	logged, token2, err := svc.Login(ctx, "ann", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, logged.UserID)
	assert.NotEmpty(t, token2)
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "ann", "ann@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "ann", "other@example.com", "other-pass")
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "ann", "ann@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ann", "wrong-pass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "ann", "ann@example.com", "s3cret-pass")
	require.NoError(t, err)

	user, err := svc.Profile(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)

	_, err = svc.Profile(ctx, "nobody")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
