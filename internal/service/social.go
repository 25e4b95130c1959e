package service

import (
	"context"

	"birthday-song-service/internal/apperr"
	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/generator"
)

type SocialService interface {
	Autofill(ctx context.Context, req *dto.SocialAutofillRequest) (*generator.Profile, error)
}

type socialServiceImpl struct {
	scanner *generator.SocialScanner
}

func NewSocialService(scanner *generator.SocialScanner) SocialService {
	return &socialServiceImpl{
		scanner: scanner,
	}
}

func (s *socialServiceImpl) Autofill(ctx context.Context, req *dto.SocialAutofillRequest) (*generator.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.scanner.Scan(ctx, req.URL)
	if err != nil {
		return nil, apperr.Validation("Invalid request", apperr.FieldError{Path: "url", Message: "must be a valid profile url"})
	}
	return profile, nil
}
