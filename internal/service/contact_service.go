package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/repository"
	"github.com/blogify-api/internal/validation"
	"github.com/rs/zerolog"
)

type contactService struct {
	repo      repository.ContactRepository
	validator *validation.Validator
	log       zerolog.Logger
}

func newContactService(repo repository.ContactRepository, v *validation.Validator, log zerolog.Logger) *contactService {
	return &contactService{
		repo:      repo,
		validator: v,
		log:       log.With().Str("service", "contact").Logger(),
	}
}

func (s *contactService) Create(ctx context.Context, input *models.ContactInput) (*models.ContactMessage, error) {
	input.Fullname = strings.TrimSpace(input.Fullname)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{
		Fullname: input.Fullname,
		Email:    input.Email,
		Message:  input.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	s.log.Info().Int64("id", msg.ID).Msg("Contact message received")
	return msg, nil
}
