// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assessment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ortheo/internal/core/assessment"
	"github.com/taibuivan/ortheo/internal/platform/apperr"
	"github.com/taibuivan/ortheo/pkg/pointer"
)

// fakeRepository stores assessments in a map and records mutation calls.
type fakeRepository struct {
	stored      map[string]*assessment.Assessment
	createCalls int
	updateCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{stored: make(map[string]*assessment.Assessment)}
}

func (repo *fakeRepository) ListAll(_ context.Context, _, _ string) ([]*assessment.Assessment, error) {
	all := make([]*assessment.Assessment, 0, len(repo.stored))
	for _, a := range repo.stored {
		all = append(all, a)
	}
	return all, nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id, _, _ string) (*assessment.Assessment, error) {
	a, ok := repo.stored[id]
	if !ok {
		return nil, apperr.NotFound("assessment")
	}
	return a, nil
}

func (repo *fakeRepository) Create(_ context.Context, id string, input *assessment.Input) error {
	repo.createCalls++
	repo.stored[id] = &assessment.Assessment{
		ID:             id,
		Name:           input.Name,
		Year:           input.Year,
		AgeMin:         input.AgeMin,
		AgeMax:         input.AgeMax,
		IsStandardized: input.IsStandardized,
	}
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, id string, input *assessment.Input) error {
	repo.updateCalls++
	a, ok := repo.stored[id]
	if !ok {
		return apperr.NotFound("assessment")
	}
	a.Name = input.Name
	a.Year = input.Year
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.stored[id]; !ok {
		return apperr.NotFound("assessment")
	}
	delete(repo.stored, id)
	return nil
}

type fakeInvalidator struct {
	calls int
}

func (invalidator *fakeInvalidator) Invalidate(context.Context) error {
	invalidator.calls++
	return nil
}

func newService(repo assessment.Repository, search assessment.SearchInvalidator) *assessment.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return assessment.NewService(repo, "fr", []string{"fr", "en"}, search, logger)
}

/*
TestCreateAssessment_ReturnsStoredProjection verifies that create persists
through the repository and returns the re-read record, not an input echo.
*/
func TestCreateAssessment_ReturnsStoredProjection(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, nil)

	created, err := service.CreateAssessment(context.Background(), &assessment.Input{
		Locale: "fr",
		Name:   "Bilan de phonologie",
		Year:   pointer.To(2021),
	})
	require.NoError(t, err)

	// 1. A UUID identity was generated
	assert.NotEmpty(t, created.ID)

	// 2. The returned projection is the stored one
	assert.Same(t, repo.stored[created.ID], created)
	assert.Equal(t, 1, repo.createCalls)
}

/*
TestCreateAssessment_ValidationBeforeWrite verifies that malformed input is
rejected before the repository is touched.
*/
func TestCreateAssessment_ValidationBeforeWrite(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, nil)

	cases := []struct {
		name  string
		input *assessment.Input
	}{
		{"missing name", &assessment.Input{Locale: "fr"}},
		{"missing locale", &assessment.Input{Name: "Bilan"}},
		{"unsupported locale", &assessment.Input{Locale: "de", Name: "Bilan"}},
		{"year out of range", &assessment.Input{Locale: "fr", Name: "Bilan", Year: pointer.To(1850)}},
		{"inverted age range", &assessment.Input{
			Locale: "fr", Name: "Bilan",
			AgeMin: pointer.To(12), AgeMax: pointer.To(6),
		}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.CreateAssessment(context.Background(), testCase.input)
			require.Error(t, err)
			assert.True(t, apperr.IsAppError(err))
			assert.Equal(t, 0, repo.createCalls)
		})
	}
}

/*
TestUpdateAssessment_RoundTrip verifies that updating a created record
changes the targeted fields and returns the stored state.
*/
func TestUpdateAssessment_RoundTrip(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, nil)

	created, err := service.CreateAssessment(context.Background(), &assessment.Input{
		Locale: "fr", Name: "Bilan de phonologie", Year: pointer.To(2021),
	})
	require.NoError(t, err)

	updated, err := service.UpdateAssessment(context.Background(), created.ID, &assessment.Input{
		Locale: "fr", Name: "Bilan de phonologie (2e éd.)", Year: pointer.To(2024),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Bilan de phonologie (2e éd.)", updated.Name)
	assert.Equal(t, 2024, *updated.Year)
}

/*
TestUpdateAssessment_UnknownID verifies NotFound passthrough without a
search cache invalidation.
*/
func TestUpdateAssessment_UnknownID(t *testing.T) {
	repo := newFakeRepository()
	search := &fakeInvalidator{}
	service := newService(repo, search)

	_, err := service.UpdateAssessment(context.Background(), "missing", &assessment.Input{
		Locale: "fr", Name: "Bilan",
	})
	require.Error(t, err)
	assert.Equal(t, 0, search.calls)
}

/*
TestMutations_InvalidateSearchCache verifies that each committed mutation
drops the derived search cache, while reads never do.
*/
func TestMutations_InvalidateSearchCache(t *testing.T) {
	repo := newFakeRepository()
	search := &fakeInvalidator{}
	service := newService(repo, search)

	created, err := service.CreateAssessment(context.Background(), &assessment.Input{
		Locale: "fr", Name: "Bilan",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, search.calls)

	_, err = service.GetAssessment(context.Background(), created.ID, "fr")
	require.NoError(t, err)
	assert.Equal(t, 1, search.calls)

	require.NoError(t, service.DeleteAssessment(context.Background(), created.ID))
	assert.Equal(t, 2, search.calls)
}
