package tool

import "context"

// Repository defines the data access contract for the tool directory.
type Repository interface {
	ListAll(context context.Context, locale, fallback string) ([]*Tool, error)
	FindByID(context context.Context, id, locale, fallback string) (*Tool, error)
	Create(context context.Context, id string, input *Input) error
	Update(context context.Context, id string, input *Input) error
	Delete(context context.Context, id string) error
}
