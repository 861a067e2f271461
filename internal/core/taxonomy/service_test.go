// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ortheo/internal/core/taxonomy"
	"github.com/taibuivan/ortheo/internal/platform/apperr"
)

// fakeRepository tracks deletions against a known id set.
type fakeRepository struct {
	known   map[string]struct{}
	deletes int
}

func newFakeRepository(ids ...string) *fakeRepository {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return &fakeRepository{known: known}
}

func (repo *fakeRepository) ListDomains(context.Context, string, string) ([]*taxonomy.Domain, error) {
	return nil, nil
}

func (repo *fakeRepository) ListTags(context.Context, string, string) ([]*taxonomy.Tag, error) {
	return nil, nil
}

func (repo *fakeRepository) ListPathologies(context.Context, string, string) ([]*taxonomy.Pathology, error) {
	return nil, nil
}

func (repo *fakeRepository) GetDomain(context.Context, string, string, string) (*taxonomy.Domain, error) {
	return nil, nil
}

func (repo *fakeRepository) GetTag(context.Context, string, string, string) (*taxonomy.Tag, error) {
	return nil, nil
}

func (repo *fakeRepository) GetPathology(context.Context, string, string, string) (*taxonomy.Pathology, error) {
	return nil, nil
}

func (repo *fakeRepository) Delete(_ context.Context, kind taxonomy.Kind, id string) error {
	if _, ok := repo.known[id]; !ok {
		return apperr.NotFound(string(kind))
	}
	delete(repo.known, id)
	repo.deletes++
	return nil
}

type fakeInvalidator struct {
	calls int
}

func (invalidator *fakeInvalidator) Invalidate(context.Context) error {
	invalidator.calls++
	return nil
}

func newService(repo taxonomy.Repository, search taxonomy.SearchInvalidator) *taxonomy.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return taxonomy.NewService(repo, "fr", search, logger)
}

/*
TestDelete_InvalidatesSearchCache verifies that a committed hard delete
drops the derived search cache: deleted labels are baked into the cached
index of every locale as group entries and facet values.
*/
func TestDelete_InvalidatesSearchCache(t *testing.T) {
	repo := newFakeRepository("dom-1")
	search := &fakeInvalidator{}
	service := newService(repo, search)

	require.NoError(t, service.Delete(context.Background(), taxonomy.KindDomain, "dom-1"))
	assert.Equal(t, 1, repo.deletes)
	assert.Equal(t, 1, search.calls)
}

/*
TestDelete_FailuresSkipInvalidation verifies that nothing is invalidated
when the delete never committed.
*/
func TestDelete_FailuresSkipInvalidation(t *testing.T) {
	repo := newFakeRepository()
	search := &fakeInvalidator{}
	service := newService(repo, search)

	// 1. Unknown kind is rejected before the repository is reached
	err := service.Delete(context.Background(), taxonomy.Kind("genre"), "dom-1")
	require.Error(t, err)
	assert.Equal(t, 0, search.calls)

	// 2. Unknown id surfaces NotFound without touching the cache
	err = service.Delete(context.Background(), taxonomy.KindDomain, "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsAppError(err))
	assert.Equal(t, 0, search.calls)
}
