package service

import (
	"context"
	"errors"
	"time"

	"app/internal/model"
	"app/internal/repository"
	"app/internal/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrUsernameTaken is returned when a signup reuses an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned on a failed login. Unknown usernames
	// and wrong passwords are not distinguished.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserNotFound is returned when a profile lookup misses.
	ErrUserNotFound = errors.New("user not found")
)

// UserService defines account operations.
type UserService interface {
	// Signup creates an account and returns it with a signed token.
	Signup(ctx context.Context, username, email, password string) (*model.User, string, error)
	// Login verifies credentials and returns the account with a signed token.
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	// Profile returns the account for a username.
	Profile(ctx context.Context, username string) (*model.User, error)
}

// userService is the implementation of UserService
type userService struct {
	repo       repository.UserRepository
	jwtSecret  string
	userLogger zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository, jwtSecret string, logger zerolog.Logger) UserService {
	return &userService{
		repo:       repo,
		jwtSecret:  jwtSecret,
		userLogger: logger.With().Str("service", "UserService").Logger(),
	}
}

func (s *userService) Signup(ctx context.Context, username, email, password string) (*model.User, string, error) {
	hash, err := util.HashPassword(password)
	if err != nil {
		s.userLogger.Error().Err(err).Msg("Failed to hash password")
		return nil, "", err
	}
	user := &model.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			s.userLogger.Warn().Str("username", username).Msg("Username already taken")
			return nil, "", ErrUsernameTaken
		}
		s.userLogger.Error().Err(err).Str("username", username).Msg("Failed to create user")
		return nil, "", err
	}

	token, err := util.GenerateJWT(user.UserID, user.Username, s.jwtSecret)
	if err != nil {
		s.userLogger.Error().Err(err).Str("username", username).Msg("Failed to issue token")
		return nil, "", err
	}
	s.userLogger.Info().Str("username", username).Msg("Account created")
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.userLogger.Error().Err(err).Str("username", username).Msg("Failed to look up user")
		return nil, "", err
	}
	if user == nil || !util.CheckPassword(user.PasswordHash, password) {
		s.userLogger.Warn().Str("username", username).Msg("Login failed")
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user.UserID, user.Username, s.jwtSecret)
	if err != nil {
		s.userLogger.Error().Err(err).Str("username", username).Msg("Failed to issue token")
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) Profile(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.userLogger.Error().Err(err).Str("username", username).Msg("Failed to look up user")
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
