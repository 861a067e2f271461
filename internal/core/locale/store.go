package locale

import "context"

// Repository defines the data access contract for the locale registry.
type Repository interface {
	ListLocales(context context.Context) ([]*Locale, error)
	GetByCode(context context.Context, code string) (*Locale, error)
}
