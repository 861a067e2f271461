// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resource

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/ortheo/internal/platform/validate"
	"github.com/taibuivan/ortheo/pkg/uuidv7"
)

// SearchInvalidator drops derived search caches after a committed mutation.
type SearchInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo             Repository
	defaultLocale    string
	supportedLocales []string
	search           SearchInvalidator
	logger           *slog.Logger
}

func NewService(repo Repository, defaultLocale string, supportedLocales []string, search SearchInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:             repo,
		defaultLocale:    defaultLocale,
		supportedLocales: supportedLocales,
		search:           search,
		logger:           logger,
	}
}

func (service *Service) ListResources(context context.Context, locale string) ([]*Resource, error) {
	return service.repo.ListAll(context, locale, service.defaultLocale)
}

func (service *Service) GetResource(context context.Context, id, locale string) (*Resource, error) {
	return service.repo.FindByID(context, id, locale, service.defaultLocale)
}

// CreateResource validates the input, persists the record atomically, and
// returns the durably stored projection re-read for the input locale.
func (service *Service) CreateResource(context context.Context, input *Input) (*Resource, error) {
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	id := uuidv7.New()
	if err := service.repo.Create(context, id, input); err != nil {
		return nil, err
	}

	service.invalidateSearch(context)
	service.logger.Info("resource_created",
		slog.String("resource_id", id),
		slog.String("title", input.Title),
	)

	return service.repo.FindByID(context, id, input.Locale, service.defaultLocale)
}

// UpdateResource validates the input, rewrites the record atomically, and
// returns the durably stored projection.
func (service *Service) UpdateResource(context context.Context, id string, input *Input) (*Resource, error) {
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, id, input); err != nil {
		return nil, err
	}

	service.invalidateSearch(context)
	service.logger.Info("resource_updated", slog.String("resource_id", id))

	return service.repo.FindByID(context, id, input.Locale, service.defaultLocale)
}

func (service *Service) DeleteResource(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.invalidateSearch(context)
	service.logger.Info("resource_deleted", slog.String("resource_id", id))
	return nil
}

func (service *Service) validateInput(input *Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 500)
	validator.Required(FieldLocale, input.Locale).OneOf(FieldLocale, input.Locale, service.supportedLocales...)
	validator.Required(FieldURL, input.URL)
	validator.Custom(FieldURL, input.URL != "" && !hasHTTPScheme(input.URL), "must be an absolute http(s) URL")
	validator.Required(FieldFormat, string(input.Format)).OneOf(FieldFormat, string(input.Format),
		string(FormatPDF),
		string(FormatVideo),
		string(FormatAudio),
		string(FormatLink),
	)

	return validator.Err()
}

func hasHTTPScheme(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
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
