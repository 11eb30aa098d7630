package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blogify-api/internal/metrics"
	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/repository"
	"github.com/blogify-api/internal/storage"
	"github.com/blogify-api/internal/validation"
	"github.com/rs/zerolog"
)

const profilePictureDir = "profiles"

// profileService is the concrete implementation of ProfileService
type profileService struct {
	users      repository.UserRepository
	images     *storage.ImageStore
	validator  *validation.Validator
	maxPicture int64
	log        zerolog.Logger
}

func newProfileService(users repository.UserRepository, images *storage.ImageStore, v *validation.Validator, maxPicture int64, log zerolog.Logger) *profileService {
	return &profileService{
		users:      users,
		images:     images,
		validator:  v,
		maxPicture: maxPicture,
		log:        log.With().Str("service", "profile").Logger(),
	}
}

func (s *profileService) Get(ctx context.Context, actor *Actor, id int64) (*models.User, error) {
	if !actor.CanAccessUser(id) {
		return nil, ErrForbidden
	}
	return s.load(ctx, id)
}

// Update applies the supplied fields only; an empty update returns the
// current profile
func (s *profileService) Update(ctx context.Context, actor *Actor, id int64, update *models.ProfileUpdate) (*models.User, error) {
	if !actor.CanAccessUser(id) {
		return nil, ErrForbidden
	}

	for _, f := range []*string{update.FirstName, update.LastName, update.Email, update.Phone, update.Address} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
	if err := s.validator.Struct(update); err != nil {
		return nil, err
	}
	for field, value := range map[string]*string{"firstName": update.FirstName, "lastName": update.LastName, "email": update.Email} {
		if value != nil && *value == "" {
			return nil, validation.Field(field, field+" cannot be empty", nil)
		}
	}
	if update.Empty() {
		return s.load(ctx, id)
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Email != nil && *update.Email != current.Email {
		taken, err := s.users.EmailExists(ctx, *update.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	user, err := s.users.UpdateProfile(ctx, id, update)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update profile %d: %w", id, err)
	}
	if user == nil {
		return nil, notFound("User")
	}

	metrics.RecordMutation("user", "update")
	s.log.Info().Int64("user_id", id).Msg("Profile updated")
	return user, nil
}

// UpdatePicture stores a new profile picture, points the user at it and
// removes the previous one
func (s *profileService) UpdatePicture(ctx context.Context, actor *Actor, id int64, file io.Reader, filename string) (*models.User, error) {
	if !actor.CanAccessUser(id) {
		return nil, ErrForbidden
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.images.SaveUpload(profilePictureDir, "profile", file, filename, s.maxPicture)
	switch {
	case errors.Is(err, storage.ErrImageTooLarge):
		return nil, validation.Field("profile_picture",
			"profile picture must be at most "+storage.FormatSize(s.maxPicture), nil)
	case errors.Is(err, storage.ErrInvalidImage):
		return nil, validation.Field("profile_picture", "Only image files are allowed (jpeg, jpg, png, gif)", filename)
	case err != nil:
		return nil, fmt.Errorf("store profile picture: %w", err)
	}

	user, err := s.users.UpdateProfilePicture(ctx, id, path)
	if err != nil || user == nil {
		if derr := s.images.Delete(path); derr != nil {
			s.log.Warn().Err(derr).Str("path", path).Msg("Failed to delete image")
		}
		if err != nil {
			return nil, fmt.Errorf("update profile picture %d: %w", id, err)
		}
		return nil, notFound("User")
	}

	if old := current.ProfilePicture; old != nil && *old != path {
		if err := s.images.Delete(*old); err != nil {
			s.log.Warn().Err(err).Str("path", *old).Msg("Failed to delete previous profile picture")
		}
	}

	metrics.RecordImageStored("profile")
	s.log.Info().Int64("user_id", id).Str("path", path).Msg("Profile picture updated")
	return user, nil
}

func (s *profileService) load(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	if user == nil {
		return nil, notFound("User")
	}
	return user, nil
}
