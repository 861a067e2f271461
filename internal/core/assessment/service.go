// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assessment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ortheo/internal/platform/validate"
	"github.com/taibuivan/ortheo/pkg/uuidv7"
)

// # Service Layer

// SearchInvalidator drops derived search caches after a committed mutation.
type SearchInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service orchestrates the business logic for the assessment catalogue.
type Service struct {
	repo             Repository
	defaultLocale    string
	supportedLocales []string
	search           SearchInvalidator
	logger           *slog.Logger
}

// NewService constructs a new [Service]. The search invalidator may be nil
// when no derived cache is wired in.
func NewService(repo Repository, defaultLocale string, supportedLocales []string, search SearchInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:             repo,
		defaultLocale:    defaultLocale,
		supportedLocales: supportedLocales,
		search:           search,
		logger:           logger,
	}
}

// # Lookups

func (service *Service) ListAssessments(context context.Context, locale string) ([]*Assessment, error) {
	return service.repo.ListAll(context, locale, service.defaultLocale)
}

func (service *Service) GetAssessment(context context.Context, id, locale string) (*Assessment, error) {
	return service.repo.FindByID(context, id, locale, service.defaultLocale)
}

// # Mutations

/*
CreateAssessment validates the input, persists the new record atomically,
and returns the durably stored projection.

Description: Validation runs before any write. The repository performs the
whole mutation — slug generation, structural insert, translation insert,
taxonomy normalization, association sync — in one transaction. The returned
entity is re-read from storage after the commit rather than echoed from the
input, so the caller sees exactly what the catalogue now holds.

Parameters:
  - context: context.Context
  - input: *Input (structural fields, translated fields, taxonomy labels)

Returns:
  - *Assessment: The stored projection, resolved for the input locale
  - error: Validation or persistence errors
*/
func (service *Service) CreateAssessment(context context.Context, input *Input) (*Assessment, error) {
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	id := uuidv7.New()
	if err := service.repo.Create(context, id, input); err != nil {
		return nil, err
	}

	service.invalidateSearch(context)
	service.logger.Info("assessment_created",
		slog.String("assessment_id", id),
		slog.String("name", input.Name),
	)

	return service.repo.FindByID(context, id, input.Locale, service.defaultLocale)
}

/*
UpdateAssessment validates the input, rewrites the record atomically, and
returns the durably stored projection.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - input: *Input

Returns:
  - *Assessment: The stored projection, resolved for the input locale
  - error: apperr.NotFound if the id is unknown, validation or persistence
    errors otherwise
*/
func (service *Service) UpdateAssessment(context context.Context, id string, input *Input) (*Assessment, error) {
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, id, input); err != nil {
		return nil, err
	}

	service.invalidateSearch(context)
	service.logger.Info("assessment_updated", slog.String("assessment_id", id))

	return service.repo.FindByID(context, id, input.Locale, service.defaultLocale)
}

// DeleteAssessment removes the record with its translations and
// associations.
func (service *Service) DeleteAssessment(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.invalidateSearch(context)
	service.logger.Info("assessment_deleted", slog.String("assessment_id", id))
	return nil
}

// validateInput enforces the write-path preconditions. Rejection happens
// before any transaction is opened.
func (service *Service) validateInput(input *Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 500)
	validator.Required(FieldLocale, input.Locale).OneOf(FieldLocale, input.Locale, service.supportedLocales...)

	if input.Year != nil {
		validator.Range(FieldYear, *input.Year, 1900, 2100)
	}
	if input.AgeMin != nil {
		validator.Range(FieldAgeMin, *input.AgeMin, 0, 120)
	}
	if input.AgeMax != nil {
		validator.Range(FieldAgeMax, *input.AgeMax, 0, 120)
	}
	if input.AgeMin != nil && input.AgeMax != nil {
		validator.Custom(FieldAgeMax, *input.AgeMax < *input.AgeMin, "must not be below ageMin")
	}
	if input.DurationMinutes != nil {
		validator.Range(FieldDurationMinutes, *input.DurationMinutes, 1, 600)
	}

	return validator.Err()
}

func (service *Service) invalidateSearch(context context.Context) {
	if service.search == nil {
		return
	}
	if err := service.search.Invalidate(context); err != nil {
		service.logger.Warn("search_index_invalidation_failed",
			slog.String("error", err.Error()),
		)
	}
}
