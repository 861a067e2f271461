// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ortheo/internal/platform/apperr"
)

// SearchInvalidator drops derived search caches after a committed mutation.
type SearchInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo          Repository
	defaultLocale string
	search        SearchInvalidator
	logger        *slog.Logger
}

// NewService constructs a new [Service]. The search invalidator may be nil
// when no derived cache is wired in.
func NewService(repo Repository, defaultLocale string, search SearchInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		defaultLocale: defaultLocale,
		search:        search,
		logger:        logger,
	}
}

func (service *Service) ListDomains(context context.Context, locale string) ([]*Domain, error) {
	return service.repo.ListDomains(context, locale, service.defaultLocale)
}

func (service *Service) ListTags(context context.Context, locale string) ([]*Tag, error) {
	return service.repo.ListTags(context, locale, service.defaultLocale)
}

func (service *Service) ListPathologies(context context.Context, locale string) ([]*Pathology, error) {
	return service.repo.ListPathologies(context, locale, service.defaultLocale)
}

func (service *Service) GetDomain(context context.Context, id, locale string) (*Domain, error) {
	return service.repo.GetDomain(context, id, locale, service.defaultLocale)
}

func (service *Service) GetTag(context context.Context, id, locale string) (*Tag, error) {
	return service.repo.GetTag(context, id, locale, service.defaultLocale)
}

func (service *Service) GetPathology(context context.Context, id, locale string) (*Pathology, error) {
	return service.repo.GetPathology(context, id, locale, service.defaultLocale)
}

// Delete hard-removes a canonical entity together with its translations and
// every content association. Content rows that referenced it simply lose
// the classification.
func (service *Service) Delete(context context.Context, kind Kind, id string) error {
	if !kind.Valid() {
		return apperr.ValidationError("unknown taxonomy kind")
	}
	if err := service.repo.Delete(context, kind, id); err != nil {
		return err
	}

	// Labels and facets derived from this entity are baked into the cached
	// search index for every locale.
	service.invalidateSearch(context)
	service.logger.Info("taxonomy entity deleted",
		slog.String("kind", string(kind)),
		slog.String("id", id),
	)
	return nil
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
