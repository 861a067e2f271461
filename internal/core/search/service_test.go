// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ortheo/internal/core/assessment"
	"github.com/taibuivan/ortheo/internal/core/resource"
	"github.com/taibuivan/ortheo/internal/core/search"
	"github.com/taibuivan/ortheo/internal/core/taxonomy"
	"github.com/taibuivan/ortheo/internal/core/tool"
)

type fakeAssessments struct {
	items []*assessment.Assessment
	err   error
}

func (fake *fakeAssessments) ListAssessments(context.Context, string) ([]*assessment.Assessment, error) {
	return fake.items, fake.err
}

type fakeResources struct {
	items []*resource.Resource
	err   error
}

func (fake *fakeResources) ListResources(context.Context, string) ([]*resource.Resource, error) {
	return fake.items, fake.err
}

type fakeTools struct {
	items []*tool.Tool
	err   error
}

func (fake *fakeTools) ListTools(context.Context, string) ([]*tool.Tool, error) {
	return fake.items, fake.err
}

func newService(assessments *fakeAssessments, resources *fakeResources, tools *fakeTools) *search.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return search.NewService(assessments, resources, tools, nil, logger)
}

func refs(labels ...string) []taxonomy.Ref {
	out := make([]taxonomy.Ref, 0, len(labels))
	for i, label := range labels {
		out = append(out, taxonomy.Ref{ID: string(rune('a' + i)), Label: label})
	}
	return out
}

/*
TestBuildIndex_GroupsByCategory verifies the classification scenario: a
test tagged as a self-report questionnaire leaves the assessments group,
while untagged content groups by its kind.
*/
func TestBuildIndex_GroupsByCategory(t *testing.T) {
	assessments := &fakeAssessments{items: []*assessment.Assessment{
		{ID: "a1", Name: "Bilan attentionnel", Tags: refs("auto-évaluation")},
		{ID: "a2", Name: "Bilan de langage oral"},
	}}
	resources := &fakeResources{items: []*resource.Resource{
		{ID: "r1", Title: "Grille d'observation"},
	}}
	service := newService(assessments, resources, &fakeTools{})

	index, err := service.BuildIndex(context.Background(), "fr")
	require.NoError(t, err)
	require.Len(t, index.Groups, 3)

	// Fixed category order: assessments, selfReports, resources.
	assert.Equal(t, search.CategoryAssessments, index.Groups[0].Category)
	assert.Equal(t, "a2", index.Groups[0].Results[0].ID)
	assert.Equal(t, search.CategorySelfReports, index.Groups[1].Category)
	assert.Equal(t, "a1", index.Groups[1].Results[0].ID)
	assert.Equal(t, search.CategoryResources, index.Groups[2].Category)
}

/*
TestBuildIndex_DropsEmptyGroups verifies that categories with no members
are absent from the output rather than empty.
*/
func TestBuildIndex_DropsEmptyGroups(t *testing.T) {
	tools := &fakeTools{items: []*tool.Tool{{ID: "t1", Name: "Logiciel de LSF"}}}
	service := newService(&fakeAssessments{}, &fakeResources{}, tools)

	index, err := service.BuildIndex(context.Background(), "fr")
	require.NoError(t, err)
	require.Len(t, index.Groups, 1)
	assert.Equal(t, search.CategoryTools, index.Groups[0].Category)
}

/*
TestBuildIndex_SortsWithinGroups verifies locale-aware title ordering
inside each group, accents included.
*/
func TestBuildIndex_SortsWithinGroups(t *testing.T) {
	assessments := &fakeAssessments{items: []*assessment.Assessment{
		{ID: "a1", Name: "Épreuve de répétition"},
		{ID: "a2", Name: "Bilan de déglutition"},
		{ID: "a3", Name: "Echelle de fluence"},
	}}
	service := newService(assessments, &fakeResources{}, &fakeTools{})

	index, err := service.BuildIndex(context.Background(), "fr")
	require.NoError(t, err)

	titles := make([]string, 0, 3)
	for _, result := range index.Groups[0].Results {
		titles = append(titles, result.Title)
	}
	assert.Equal(t, []string{"Bilan de déglutition", "Echelle de fluence", "Épreuve de répétition"}, titles)
}

/*
TestBuildIndex_FacetUnion verifies that facet domains are the deduplicated
union across every surfaced result.
*/
func TestBuildIndex_FacetUnion(t *testing.T) {
	assessments := &fakeAssessments{items: []*assessment.Assessment{
		{ID: "a1", Name: "Bilan", Domains: refs("Phonologie", "Langage oral")},
	}}
	resources := &fakeResources{items: []*resource.Resource{
		{ID: "r1", Title: "Grille", Domains: refs("Phonologie", "Déglutition")},
	}}
	service := newService(assessments, resources, &fakeTools{})

	index, err := service.BuildIndex(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, []string{"Déglutition", "Langage oral", "Phonologie"}, index.FacetDomains)
}

/*
TestBuildIndex_FailFast verifies that one failing kind fails the whole
aggregate instead of returning partial groups.
*/
func TestBuildIndex_FailFast(t *testing.T) {
	fetchErr := errors.New("resource fetch failed")
	assessments := &fakeAssessments{items: []*assessment.Assessment{{ID: "a1", Name: "Bilan"}}}
	resources := &fakeResources{err: fetchErr}
	service := newService(assessments, resources, &fakeTools{})

	index, err := service.BuildIndex(context.Background(), "fr")
	assert.Nil(t, index)
	assert.ErrorIs(t, err, fetchErr)
}

/*
TestFilterByDomains verifies facet narrowing: only results carrying a
requested domain survive, empty groups are dropped, and the facet list stays
intact for the UI.
*/
func TestFilterByDomains(t *testing.T) {
	index := &search.Index{
		Groups: []search.Group{
			{Category: search.CategoryAssessments, Results: []search.Result{
				{ID: "a1", Title: "Bilan", Domains: []string{"Phonologie"}},
				{ID: "a2", Title: "Échelle", Domains: []string{"Déglutition"}},
			}},
			{Category: search.CategoryResources, Results: []search.Result{
				{ID: "r1", Title: "Grille", Domains: []string{"Déglutition"}},
			}},
		},
		FacetDomains: []string{"Déglutition", "Phonologie"},
	}

	filtered := search.FilterByDomains(index, []string{"Phonologie"})

	require.Len(t, filtered.Groups, 1)
	assert.Equal(t, search.CategoryAssessments, filtered.Groups[0].Category)
	require.Len(t, filtered.Groups[0].Results, 1)
	assert.Equal(t, "a1", filtered.Groups[0].Results[0].ID)
	assert.Equal(t, []string{"Déglutition", "Phonologie"}, filtered.FacetDomains)

	// 2. No filter returns the index untouched
	assert.Same(t, index, search.FilterByDomains(index, nil))
}
