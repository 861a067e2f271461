// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assessment

import "context"

// # Assessment Data Access

// Repository defines the data access contract for the assessment catalogue.
// Mutations are transactional end to end: structural row, translation,
// taxonomy normalization, and association sync commit or roll back as one.
type Repository interface {

	/*
		ListAll returns every assessment resolved for the locale pair.

		Parameters:
		  - context: context.Context
		  - locale: string (requested display locale)
		  - fallback: string (catalogue default locale)

		Returns:
		  - []*Assessment: Resolved projections sorted by display name
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context, locale, fallback string) ([]*Assessment, error)

	/*
		FindByID returns one assessment resolved for the locale pair.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - locale: string (requested display locale)
		  - fallback: string (catalogue default locale)

		Returns:
		  - *Assessment: The resolved projection
		  - error: apperr.NotFound if no row matches
	*/
	FindByID(context context.Context, id, locale, fallback string) (*Assessment, error)

	/*
		Create persists a new assessment in one transaction: slug generation,
		structural insert, translation insert, taxonomy normalization, and
		association sync.

		Parameters:
		  - context: context.Context
		  - id: string (pre-generated UUID for the new row)
		  - input: *Input (structural fields, translated fields, labels)

		Returns:
		  - error: Validation conflicts or persistence failures; nothing is
		    written on error
	*/
	Create(context context.Context, id string, input *Input) error

	/*
		Update rewrites an existing assessment in one transaction. The slug is
		regenerated from the current name, excluding the row's own id from the
		uniqueness scan; the input locale's translation is upserted; taxonomy
		associations are fully replaced.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - input: *Input

		Returns:
		  - error: apperr.NotFound if no row matches, otherwise persistence
		    failures
	*/
	Update(context context.Context, id string, input *Input) error

	/*
		Delete removes an assessment, its translations, and its associations.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: apperr.NotFound if no row matches
	*/
	Delete(context context.Context, id string) error
}
