package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/google/uuid"
)

// authService implements the AuthService interface for login and account
// administration
type authService struct {
	userRepo     users.UserRepository
	tokenManager users.TokenManager
	hasher       users.PasswordHasher
	limiter      users.LoginLimiter
	logger       logger.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo users.UserRepository,
	tokenManager users.TokenManager,
	hasher users.PasswordHasher,
	limiter users.LoginLimiter,
	logger logger.Logger,
) (users.AuthService, error) {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		hasher:       hasher,
		limiter:      limiter,
		logger:       logger,
	}, nil
}

// Login verifies credentials and issues an access token. Failed and
// successful attempts both count against the per-username-and-address
// throttle window.
func (s *authService) Login(ctx context.Context, username, password, clientAddr string) (*users.Session, error) {
	if !s.limiter.Allow(username + "|" + clientAddr) {
		s.logger.Warn("Login throttled for ", username, " from ", clientAddr)
		return nil, users.ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, users.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		s.logger.Warn("Failed login for ", username, " from ", clientAddr)
		return nil, users.ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokenManager.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.logger.Info("User ", username, " logged in")
	return &users.Session{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      user,
	}, nil
}

// GetByID retrieves an account by ID
func (s *authService) GetByID(ctx context.Context, userID string) (*users.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return user, nil
}

// Create registers a new account with a hashed password
func (s *authService) Create(ctx context.Context, cmd users.CreateUserCommand) (*users.User, error) {
	role := cmd.Role
	if role == "" {
		role = users.DefaultRole
	}
	if !users.ValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	user := &users.User{
		ID:           uuid.NewString(),
		Username:     cmd.Username,
		Email:        cmd.Email,
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return user, nil
}

// List retrieves all accounts
func (s *authService) List(ctx context.Context) ([]*users.User, error) {
	accounts, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return accounts, nil
}
