package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/app/repositories"
	"github.com/yigit/ssis/internal/pkg/apperrors"
	"github.com/yigit/ssis/internal/pkg/auth"
	"github.com/yigit/ssis/internal/pkg/dberrors"
	"github.com/yigit/ssis/internal/pkg/validation"
)

// Unique constraint on users.email as created by the schema migration
const usersEmailConstraint = "users_email_key"

// AuthService defines the interface for account registration and login
type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResult, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResult, error)
	Me(ctx context.Context, username string) (*dto.UserResponse, error)
	// Logout revokes the token. Unusable tokens are ignored.
	Logout(ctx context.Context, token string) error
}

type authServiceImpl struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	denylist   auth.Denylist
	now        func() time.Time
	logger     zerolog.Logger
}

// AuthOption customizes an auth service
type AuthOption func(*authServiceImpl)

// WithDenylist makes Logout revoke tokens in d
func WithDenylist(d auth.Denylist) AuthOption {
	return func(s *authServiceImpl) {
		s.denylist = d
	}
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger, opts ...AuthOption) AuthService {
	s := &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func usernameTaken() error {
	return apperrors.NewConflictError("username", "Username already in use", apperrors.ErrUsernameTaken)
}

func emailTaken() error {
	return apperrors.NewConflictError("email", "Email already in use", apperrors.ErrEmailTaken)
}

func invalidCredentials() error {
	return apperrors.NewUnauthorizedError(apperrors.ErrInvalidCredentials, "Invalid credentials")
}

// Signup registers an account and signs the new user in
func (s *authServiceImpl) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResult, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if !validation.ValidSignup(username, email, req.Password) {
		return nil, apperrors.NewValidationError("Invalid input")
	}

	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, usernameTaken()
	}

	taken, err = s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, emailTaken()
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// a concurrent signup can still win the race past the checks above
		if dberrors.IsDuplicateConstraintError(err, usersEmailConstraint) {
			return nil, emailTaken()
		}
		if dberrors.IsUniqueViolation(err) {
			return nil, usernameTaken()
		}
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("User registered")
	return s.issue(user)
}

// Login verifies credentials and records the login time
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResult, error) {
	login := strings.TrimSpace(req.UsernameOrEmail)
	if login == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Username/email and password are required")
	}

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Str("login", login).Msg("Rejected login attempt")
		return nil, invalidCredentials()
	}

	updated, err := s.userRepo.UpdateDateLogged(ctx, user.Username, s.now())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, invalidCredentials()
	}

	return s.issue(updated)
}

// Me resolves the authenticated username to its profile
func (s *authServiceImpl) Me(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUnauthorizedError(apperrors.ErrUnauthorized, "User no longer exists")
	}
	return dto.NewUserResponse(user), nil
}

func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if s.denylist == nil || token == "" {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.logger.Info().Str("username", claims.Username).Msg("Token revoked")
	return nil
}

func (s *authServiceImpl) issue(user *models.User) (*dto.AuthResult, error) {
	token, _, err := s.jwtService.GenerateToken(user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.AuthResult{
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresIn: int(s.jwtService.Lifetime().Seconds()),
	}, nil
}
