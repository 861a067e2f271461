package taxonomy

import "context"

// # Taxonomy Data Access

// Repository defines the read and delete contract for canonical taxonomy
// entities. All reads return locale-resolved projections: the caller passes
// the requested locale and the catalogue default, and the repository applies
// the fallback chain before returning.
type Repository interface {

	/*
		ListDomains returns every clinical domain, resolved for the locale pair.

		Parameters:
		  - context: context.Context
		  - locale: string (requested display locale)
		  - fallback: string (catalogue default locale)

		Returns:
		  - []*Domain: Resolved domains sorted by label
		  - error: Database retrieval failures
	*/
	ListDomains(context context.Context, locale, fallback string) ([]*Domain, error)

	/*
		ListTags returns every tag, resolved for the locale pair.

		Parameters:
		  - context: context.Context
		  - locale: string (requested display locale)
		  - fallback: string (catalogue default locale)

		Returns:
		  - []*Tag: Resolved tags sorted by label
		  - error: Database retrieval failures
	*/
	ListTags(context context.Context, locale, fallback string) ([]*Tag, error)

	/*
		ListPathologies returns every pathology, resolved for the locale pair.

		Parameters:
		  - context: context.Context
		  - locale: string (requested display locale)
		  - fallback: string (catalogue default locale)

		Returns:
		  - []*Pathology: Resolved pathologies sorted by label
		  - error: Database retrieval failures
	*/
	ListPathologies(context context.Context, locale, fallback string) ([]*Pathology, error)

	/*
		GetDomain returns a single clinical domain, resolved for the locale pair.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - locale: string (requested display locale)
		  - fallback: string (catalogue default locale)

		Returns:
		  - *Domain: Resolved domain
		  - error: apperr.NotFound when no entity matches
	*/
	GetDomain(context context.Context, id, locale, fallback string) (*Domain, error)

	/*
		GetTag returns a single tag, resolved for the locale pair.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - locale: string (requested display locale)
		  - fallback: string (catalogue default locale)

		Returns:
		  - *Tag: Resolved tag
		  - error: apperr.NotFound when no entity matches
	*/
	GetTag(context context.Context, id, locale, fallback string) (*Tag, error)

	/*
		GetPathology returns a single pathology, resolved for the locale pair.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - locale: string (requested display locale)
		  - fallback: string (catalogue default locale)

		Returns:
		  - *Pathology: Resolved pathology
		  - error: apperr.NotFound when no entity matches
	*/
	GetPathology(context context.Context, id, locale, fallback string) (*Pathology, error)

	/*
		Delete removes a canonical entity, its translations, and every content
		association pointing at it, in one transaction.

		Parameters:
		  - context: context.Context
		  - kind: Kind (which taxonomy variant the id belongs to)
		  - id: string (UUID)

		Returns:
		  - error: apperr.NotFound when no canonical row matches
	*/
	Delete(context context.Context, kind Kind, id string) error
}
