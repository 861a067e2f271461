package locale

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListLocales(context context.Context) ([]*Locale, error) {
	return service.repo.ListLocales(context)
}

func (service *Service) GetLocale(context context.Context, code string) (*Locale, error) {
	return service.repo.GetByCode(context, code)
}
