// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ortheo/internal/core/taxonomy"
)

// fakeStore is a map-backed NormalizerStore. Keys follow the persisted
// uniqueness rules: labels are unique per (kind, locale), slugs per kind.
type fakeStore struct {
	nextID       int
	labels       map[string]string // "kind|locale|label" -> entity id
	entitySlugs  map[string][]string
	trSlugs      map[string][]string
	translations map[string]string // "kind|id|locale" -> label
	failFind     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		labels:       make(map[string]string),
		entitySlugs:  make(map[string][]string),
		trSlugs:      make(map[string][]string),
		translations: make(map[string]string),
	}
}

func (store *fakeStore) FindIDByLabel(_ context.Context, kind taxonomy.Kind, label, locale string) (string, error) {
	if store.failFind != nil {
		return "", store.failFind
	}
	return store.labels[string(kind)+"|"+locale+"|"+label], nil
}

func (store *fakeStore) CreateEntity(_ context.Context, kind taxonomy.Kind, slug string) (string, error) {
	store.nextID++
	if slug != "" {
		store.entitySlugs[string(kind)] = append(store.entitySlugs[string(kind)], slug)
	}
	return fmt.Sprintf("id-%d", store.nextID), nil
}

func (store *fakeStore) UpsertTranslation(_ context.Context, kind taxonomy.Kind, entityID, locale, label, slug string) error {
	store.labels[string(kind)+"|"+locale+"|"+label] = entityID
	store.translations[string(kind)+"|"+entityID+"|"+locale] = label
	if slug != "" {
		store.trSlugs[string(kind)] = append(store.trSlugs[string(kind)], slug)
	}
	return nil
}

func (store *fakeStore) SlugsWithPrefix(_ context.Context, kind taxonomy.Kind, prefix string) ([]string, error) {
	matches := make([]string, 0)
	for _, slug := range append(store.entitySlugs[string(kind)], store.trSlugs[string(kind)]...) {
		if strings.HasPrefix(slug, prefix) {
			matches = append(matches, slug)
		}
	}
	return matches, nil
}

/*
TestNormalize_CreatesMissingEntities verifies that unseen labels produce new
canonical entities with translations in the request locale.
*/
func TestNormalize_CreatesMissingEntities(t *testing.T) {
	store := newFakeStore()

	refs, err := taxonomy.Normalize(context.Background(), store, taxonomy.KindTag,
		[]string{"mémoire de travail", "fluence"}, "fr")
	require.NoError(t, err)
	require.Len(t, refs, 2)

	// 1. First-seen order is preserved
	assert.Equal(t, "mémoire de travail", refs[0].Label)
	assert.Equal(t, "fluence", refs[1].Label)

	// 2. Both got distinct canonical ids and locale-scoped translations
	assert.NotEqual(t, refs[0].ID, refs[1].ID)
	assert.Equal(t, "mémoire de travail", store.translations["tag|"+refs[0].ID+"|fr"])
}

/*
TestNormalize_ReusesExistingLabel verifies that an exact label match in the
request locale resolves to the existing canonical id without creating rows.
*/
func TestNormalize_ReusesExistingLabel(t *testing.T) {
	store := newFakeStore()
	store.labels["tag|fr|Phonologie"] = "id-existing"

	refs, err := taxonomy.Normalize(context.Background(), store, taxonomy.KindTag,
		[]string{"Phonologie"}, "fr")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "id-existing", refs[0].ID)
	assert.Equal(t, 0, store.nextID)
}

/*
TestNormalize_CaseSensitiveLabels verifies that labels differing only in
case stay distinct canonical entities.
*/
func TestNormalize_CaseSensitiveLabels(t *testing.T) {
	store := newFakeStore()
	store.labels["tag|fr|Phonologie"] = "id-existing"

	refs, err := taxonomy.Normalize(context.Background(), store, taxonomy.KindTag,
		[]string{"Phonologie", "phonologie"}, "fr")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "id-existing", refs[0].ID)
	assert.NotEqual(t, "id-existing", refs[1].ID)
}

/*
TestNormalize_TrimsAndDeduplicates verifies whitespace trimming, empty label
removal, and first-seen deduplication.
*/
func TestNormalize_TrimsAndDeduplicates(t *testing.T) {
	store := newFakeStore()

	refs, err := taxonomy.Normalize(context.Background(), store, taxonomy.KindTag,
		[]string{"  fluence ", "fluence", "", "   ", "débit"}, "fr")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "fluence", refs[0].Label)
	assert.Equal(t, "débit", refs[1].Label)
}

/*
TestNormalize_Idempotent verifies that running the same label set twice
yields the same canonical ids with no second round of creations.
*/
func TestNormalize_Idempotent(t *testing.T) {
	store := newFakeStore()
	labels := []string{"dysphasie", "bégaiement"}

	first, err := taxonomy.Normalize(context.Background(), store, taxonomy.KindPathology, labels, "fr")
	require.NoError(t, err)
	created := store.nextID

	second, err := taxonomy.Normalize(context.Background(), store, taxonomy.KindPathology, labels, "fr")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, created, store.nextID)
}

/*
TestNormalize_LocaleScopedMatching verifies that the same label string in a
different locale creates a separate canonical entity.
*/
func TestNormalize_LocaleScopedMatching(t *testing.T) {
	store := newFakeStore()
	store.labels["tag|en|Memory"] = "id-en"

	refs, err := taxonomy.Normalize(context.Background(), store, taxonomy.KindTag,
		[]string{"Memory"}, "fr")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.NotEqual(t, "id-en", refs[0].ID)
}

/*
TestNormalize_PathologySlugs verifies entity-level slug generation for
pathologies, with in-batch collision probing.
*/
func TestNormalize_PathologySlugs(t *testing.T) {
	store := newFakeStore()
	store.entitySlugs["pathology"] = []string{"aphasie"}

	_, err := taxonomy.Normalize(context.Background(), store, taxonomy.KindPathology,
		[]string{"Aphasie", "aphasié"}, "fr")
	require.NoError(t, err)

	// Both new labels slugify to "aphasie"; the stored slug and the
	// in-batch reservation force suffix probing.
	assert.Contains(t, store.entitySlugs["pathology"], "aphasie-2")
	assert.Contains(t, store.entitySlugs["pathology"], "aphasie-3")
}

/*
TestNormalize_DomainTranslationSlugs verifies that domains slug at the
translation level, not the entity level.
*/
func TestNormalize_DomainTranslationSlugs(t *testing.T) {
	store := newFakeStore()

	_, err := taxonomy.Normalize(context.Background(), store, taxonomy.KindDomain,
		[]string{"Langage Écrit"}, "fr")
	require.NoError(t, err)

	assert.Empty(t, store.entitySlugs["domain"])
	assert.Equal(t, []string{"langage-ecrit"}, store.trSlugs["domain"])
}

/*
TestNormalize_StoreFailureAborts verifies that a lookup failure propagates
and stops the whole resolution.
*/
func TestNormalize_StoreFailureAborts(t *testing.T) {
	store := newFakeStore()
	store.failFind = errors.New("connection reset")

	refs, err := taxonomy.Normalize(context.Background(), store, taxonomy.KindTag,
		[]string{"fluence"}, "fr")
	assert.Nil(t, refs)
	assert.ErrorIs(t, err, store.failFind)
}
