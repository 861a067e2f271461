package resource

import "context"

// Repository defines the data access contract for the resource catalogue.
// Mutations follow the same transactional shape as the assessment store:
// slug, structural row, translation upsert, taxonomy sync, one commit.
type Repository interface {
	ListAll(context context.Context, locale, fallback string) ([]*Resource, error)
	FindByID(context context.Context, id, locale, fallback string) (*Resource, error)
	Create(context context.Context, id string, input *Input) error
	Update(context context.Context, id string, input *Input) error
	Delete(context context.Context, id string) error
}
