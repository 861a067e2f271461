package taxonomy

import (
	"context"
	"strings"

	"github.com/taibuivan/ortheo/internal/platform/slugger"
)

/*
NormalizerStore is the transaction-scoped persistence surface the normalizer
resolves labels against. Implementations wrap the caller's open transaction
so every lookup and write lands in the same unit of work as the content
mutation that triggered the normalization.
*/
type NormalizerStore interface {
	// FindIDByLabel returns the canonical id owning an exact label match in
	// the given locale, or "" when no such translation exists.
	FindIDByLabel(ctx context.Context, kind Kind, label, locale string) (string, error)

	// CreateEntity inserts a new canonical row and returns its id. The slug
	// argument is only meaningful for kinds whose slug lives on the entity.
	CreateEntity(ctx context.Context, kind Kind, slug string) (string, error)

	// UpsertTranslation inserts or updates the (entity, locale) translation
	// row. A concurrent writer may have created the row first; in that case
	// the label is overwritten and the stored slug is left untouched.
	UpsertTranslation(ctx context.Context, kind Kind, entityID, locale, label, slug string) error

	// SlugsWithPrefix lists existing slugs starting with prefix, scanning
	// whichever table holds the kind's slug column.
	SlugsWithPrefix(ctx context.Context, kind Kind, prefix string) ([]string, error)
}

/*
Normalize resolves free-text labels into canonical taxonomy references,
creating entities and translations for labels the catalogue has never seen.

Labels are trimmed and deduplicated case-sensitively, preserving first-seen
order; "Phonologie" and "phonologie" stay distinct inputs. Matching is
scoped to the request locale, so an English "Memory" never collides with a
French "Mémoire" even when both belong to the same canonical entity.

Parameters:
  - ctx: carries cancellation from the surrounding mutation.
  - store: transaction-scoped persistence surface.
  - kind: which taxonomy variant the labels belong to.
  - labels: raw user input, possibly padded or duplicated.
  - locale: the locale the labels are written in.

Returns one Ref per unique normalized label, in first-seen order. Any store
error aborts the whole resolution; the caller's transaction rollback undoes
partial creations.
*/
func Normalize(ctx context.Context, store NormalizerStore, kind Kind, labels []string, locale string) ([]Ref, error) {
	seen := make(map[string]struct{}, len(labels))
	refs := make([]Ref, 0, len(labels))
	reserved := slugger.NewReserved()

	lookup := func(lookupCtx context.Context, prefix, _ string) ([]string, error) {
		return store.SlugsWithPrefix(lookupCtx, kind, prefix)
	}

	for _, raw := range labels {
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}
		if _, duplicate := seen[label]; duplicate {
			continue
		}
		seen[label] = struct{}{}

		id, err := store.FindIDByLabel(ctx, kind, label, locale)
		if err != nil {
			return nil, err
		}
		if id != "" {
			refs = append(refs, Ref{ID: id, Label: label})
			continue
		}

		var entitySlug, translationSlug string
		switch kind.Slugging() {
		case SlugEntity:
			entitySlug, err = slugger.Unique(ctx, label, lookup, "", reserved)
		case SlugTranslation:
			translationSlug, err = slugger.Unique(ctx, label, lookup, "", reserved)
		}
		if err != nil {
			return nil, err
		}

		id, err = store.CreateEntity(ctx, kind, entitySlug)
		if err != nil {
			return nil, err
		}
		if err := store.UpsertTranslation(ctx, kind, id, locale, label, translationSlug); err != nil {
			return nil, err
		}

		refs = append(refs, Ref{ID: id, Label: label})
	}

	return refs, nil
}
