// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/ortheo/internal/core/assessment"
	"github.com/taibuivan/ortheo/internal/core/resource"
	"github.com/taibuivan/ortheo/internal/core/tool"
	"github.com/taibuivan/ortheo/internal/core/taxonomy"
)

// # Aggregation Sources

// AssessmentLister is the slice of the assessment service the aggregator
// consumes.
type AssessmentLister interface {
	ListAssessments(ctx context.Context, locale string) ([]*assessment.Assessment, error)
}

// ResourceLister is the slice of the resource service the aggregator
// consumes.
type ResourceLister interface {
	ListResources(ctx context.Context, locale string) ([]*resource.Resource, error)
}

// ToolLister is the slice of the tool service the aggregator consumes.
type ToolLister interface {
	ListTools(ctx context.Context, locale string) ([]*tool.Tool, error)
}

// IndexCache stores computed indexes between mutations. Get returns
// (nil, nil) on a miss.
type IndexCache interface {
	Get(ctx context.Context, locale string) (*Index, error)
	Set(ctx context.Context, locale string, index *Index) error
	Invalidate(ctx context.Context) error
}

// Service aggregates the per-kind query services into the search index.
type Service struct {
	assessments AssessmentLister
	resources   ResourceLister
	tools       ToolLister
	cache       IndexCache
	logger      *slog.Logger
}

// NewService constructs a new [Service]. The cache may be nil, in which
// case every call recomputes the index.
func NewService(assessments AssessmentLister, resources ResourceLister, tools ToolLister, cache IndexCache, logger *slog.Logger) *Service {
	return &Service{
		assessments: assessments,
		resources:   resources,
		tools:       tools,
		cache:       cache,
		logger:      logger,
	}
}

/*
BuildIndex computes the grouped search index for one locale.

Description: The three content kinds are fetched concurrently; the fetches
share no state and any branch failing fails the whole call, so the caller
never receives an index with a silently missing kind or an incomplete facet
list. Results are classified, grouped by category with empty groups
dropped, sorted inside each group by title, and the domain facet list is
derived by set-union over every surfaced result. Cache reads and writes are
best effort: a cache failure degrades to recomputation, never to an error.

Parameters:
  - ctx: context.Context
  - locale: string (requested display locale)

Returns:
  - *Index: The grouped results and facet domains
  - error: The first failing fetch, if any
*/
func (service *Service) BuildIndex(ctx context.Context, locale string) (*Index, error) {
	if service.cache != nil {
		cached, err := service.cache.Get(ctx, locale)
		if err != nil {
			service.logger.Warn("search_cache_read_failed", slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	var (
		assessments []*assessment.Assessment
		resources   []*resource.Resource
		tools       []*tool.Tool
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		assessments, err = service.assessments.ListAssessments(groupCtx, locale)
		return err
	})
	group.Go(func() error {
		var err error
		resources, err = service.resources.ListResources(groupCtx, locale)
		return err
	})
	group.Go(func() error {
		var err error
		tools, err = service.tools.ListTools(groupCtx, locale)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(assessments)+len(resources)+len(tools))
	for _, item := range assessments {
		tags := taxonomy.RefLabels(item.Tags)
		results = append(results, Result{
			ID:          item.ID,
			Kind:        KindAssessment,
			Category:    classify(KindAssessment, tags),
			Slug:        item.Slug,
			Title:       item.Name,
			Description: item.Description,
			Domains:     taxonomy.RefLabels(item.Domains),
			Tags:        tags,
		})
	}
	for _, item := range resources {
		tags := taxonomy.RefLabels(item.Tags)
		results = append(results, Result{
			ID:          item.ID,
			Kind:        KindResource,
			Category:    classify(KindResource, tags),
			Slug:        item.Slug,
			Title:       item.Title,
			Description: item.Description,
			Domains:     taxonomy.RefLabels(item.Domains),
			Tags:        tags,
		})
	}
	for _, item := range tools {
		tags := taxonomy.RefLabels(item.Tags)
		results = append(results, Result{
			ID:          item.ID,
			Kind:        KindTool,
			Category:    classify(KindTool, tags),
			Slug:        item.Slug,
			Title:       item.Name,
			Description: item.Description,
			Domains:     taxonomy.RefLabels(item.Domains),
			Tags:        tags,
		})
	}

	index := assemble(results, locale)

	if service.cache != nil {
		if err := service.cache.Set(ctx, locale, index); err != nil {
			service.logger.Warn("search_cache_write_failed", slog.String("error", err.Error()))
		}
	}
	return index, nil
}

// assemble groups classified results and derives the facet list.
func assemble(results []Result, locale string) *Index {
	collator := collate.New(language.Make(locale))

	grouped := make(map[Category][]Result)
	facetSet := make(map[string]struct{})
	for _, result := range results {
		grouped[result.Category] = append(grouped[result.Category], result)
		for _, domain := range result.Domains {
			if domain != "" {
				facetSet[domain] = struct{}{}
			}
		}
	}

	groups := make([]Group, 0, len(grouped))
	for _, category := range categoryOrder {
		members := grouped[category]
		if len(members) == 0 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return collator.CompareString(members[i].Title, members[j].Title) < 0
		})
		groups = append(groups, Group{Category: category, Results: members})
	}

	facets := make([]string, 0, len(facetSet))
	for domain := range facetSet {
		facets = append(facets, domain)
	}
	sort.Slice(facets, func(i, j int) bool {
		return collator.CompareString(facets[i], facets[j]) < 0
	})

	return &Index{Groups: groups, FacetDomains: facets}
}
