// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tool

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

func (service *Service) ListTools(context context.Context, locale string) ([]*Tool, error) {
	return service.repo.ListAll(context, locale, service.defaultLocale)
}

func (service *Service) GetTool(context context.Context, id, locale string) (*Tool, error) {
	return service.repo.FindByID(context, id, locale, service.defaultLocale)
}

// CreateTool validates the input, persists the record atomically, and
// returns the durably stored projection re-read for the input locale.
func (service *Service) CreateTool(context context.Context, input *Input) (*Tool, error) {
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	id := uuidv7.New()
	if err := service.repo.Create(context, id, input); err != nil {
		return nil, err
	}

	service.invalidateSearch(context)
	service.logger.Info("tool_created",
		slog.String("tool_id", id),
		slog.String("name", input.Name),
	)

	return service.repo.FindByID(context, id, input.Locale, service.defaultLocale)
}

// UpdateTool validates the input, rewrites the record atomically, and
// returns the durably stored projection.
func (service *Service) UpdateTool(context context.Context, id string, input *Input) (*Tool, error) {
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, id, input); err != nil {
		return nil, err
	}

	service.invalidateSearch(context)
	service.logger.Info("tool_updated", slog.String("tool_id", id))

	return service.repo.FindByID(context, id, input.Locale, service.defaultLocale)
}

func (service *Service) DeleteTool(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.invalidateSearch(context)
	service.logger.Info("tool_deleted", slog.String("tool_id", id))
	return nil
}

func (service *Service) validateInput(input *Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 500)
	validator.Required(FieldLocale, input.Locale).OneOf(FieldLocale, input.Locale, service.supportedLocales...)
	validator.Required(FieldURL, input.URL)
	validator.Custom(FieldURL, input.URL != "" && !hasHTTPScheme(input.URL), "must be an absolute http(s) URL")

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
