package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blogify-api/internal/metrics"
	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/repository"
	"github.com/blogify-api/internal/security"
	"github.com/blogify-api/internal/validation"
	"github.com/rs/zerolog"
)

// Actor is the authenticated caller of a request
type Actor struct {
	UserID int64
	Role   string
}

// CanAccessUser reports whether the actor may read or change user id
func (a *Actor) CanAccessUser(id int64) bool {
	return a != nil && (a.UserID == id || a.Role == models.RoleAdmin)
}

// authService is the concrete implementation of AuthService
type authService struct {
	users     repository.UserRepository
	hasher    *security.PasswordHasher
	tokens    *security.TokenManager
	validator *validation.Validator
	admins    map[string]struct{}
	log       zerolog.Logger
}

func newAuthService(users repository.UserRepository, hasher *security.PasswordHasher, tokens *security.TokenManager, v *validation.Validator, adminEmails []string, log zerolog.Logger) *authService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &authService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		validator: v,
		admins:    admins,
		log:       log.With().Str("service", "auth").Logger(),
	}
}

func (s *authService) roleFor(email string) string {
	if _, ok := s.admins[strings.ToLower(email)]; ok {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// Register creates an account with a hashed password
func (s *authService) Register(ctx context.Context, input *models.RegisterInput) (*models.User, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	if err := s.checkConflicts(ctx, input.Email, input.Username); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         s.roleFor(input.Email),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race with a concurrent registration
			if cerr := s.checkConflicts(ctx, input.Email, input.Username); cerr != nil {
				return nil, cerr
			}
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordMutation("user", "create")
	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues an access token
func (s *authService) Login(ctx context.Context, input *models.LoginInput) (*models.LoginResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Check(input.Password, user.PasswordHash); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("check password: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User logged in")
	return &models.LoginResult{User: user, Token: token}, nil
}

// Authenticate turns a bearer token into an Actor
func (s *authService) Authenticate(token string) (*Actor, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return &Actor{UserID: claims.UserID, Role: claims.Role}, nil
}

func (s *authService) checkConflicts(ctx context.Context, email, username string) error {
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}

	taken, err = s.users.UsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return ErrUsernameTaken
	}
	return nil
}
