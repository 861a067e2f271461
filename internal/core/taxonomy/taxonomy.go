// Package taxonomy manages the canonical classification entities shared by
// all catalogue content: domains, tags, and pathologies.
//
// A canonical entity represents one concept across all locales. Its
// per-locale labels live in translation rows; label uniqueness is enforced
// per locale, never globally, so the same canonical id may carry different
// labels in different languages.
package taxonomy

import "time"

// Kind discriminates the taxonomy variants. Each kind exposes a different
// optional field shape, so the kind tag travels with every generic
// operation instead of one loosely-typed record trying to fit all three.
type Kind string

const (
	// KindDomain classifies content by clinical domain (e.g. "Phonologie").
	KindDomain Kind = "domain"
	// KindTag is free-form content labelling (e.g. "auto-évaluation").
	KindTag Kind = "tag"
	// KindPathology links content to the disorders it assesses.
	KindPathology Kind = "pathology"
)

// SlugLevel states where a kind stores its slug, if anywhere.
type SlugLevel int

const (
	// SlugNone: the kind carries no slug (tags).
	SlugNone SlugLevel = iota
	// SlugEntity: the slug lives on the canonical row (pathologies).
	SlugEntity
	// SlugTranslation: each translation row carries its own slug (domains).
	SlugTranslation
)

// Slugging returns where this kind's slug is stored.
func (k Kind) Slugging() SlugLevel {
	switch k {
	case KindPathology:
		return SlugEntity
	case KindDomain:
		return SlugTranslation
	default:
		return SlugNone
	}
}

// Valid reports whether k is a known taxonomy kind.
func (k Kind) Valid() bool {
	switch k {
	case KindDomain, KindTag, KindPathology:
		return true
	}
	return false
}

// Ref is a resolved canonical reference: the id every association row
// points at, paired with the label it was normalized from.
type Ref struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// RefIDs projects a ref slice to its canonical ids, preserving order.
func RefIDs(refs []Ref) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

// RefLabels projects a ref slice to its resolved labels, preserving order.
func RefLabels(refs []Ref) []string {
	labels := make([]string, 0, len(refs))
	for _, ref := range refs {
		labels = append(labels, ref.Label)
	}
	return labels
}

// # Read Models
// Locale-resolved projections returned by the repository. Label fields have
// already been through the fallback resolver.

// Domain is a clinical domain with its locale-resolved translation.
type Domain struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"-"`
}

// Tag is a free-form label with its locale-resolved translation.
type Tag struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"-"`
}

// Pathology is a disorder entry with its locale-resolved translation.
type Pathology struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Label     string    `json:"label"`
	Synonyms  *string   `json:"synonyms"`
	CreatedAt time.Time `json:"-"`
}

// # Translation rows
// Raw per-locale rows, used by the fallback resolver before projection.

// DomainTranslation is one locale's row for a domain.
type DomainTranslation struct {
	Label       *string `json:"label"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// TagTranslation is one locale's row for a tag.
type TagTranslation struct {
	Label *string `json:"label"`
}

// PathologyTranslation is one locale's row for a pathology.
type PathologyTranslation struct {
	Label    *string `json:"label"`
	Synonyms *string `json:"synonyms"`
}
