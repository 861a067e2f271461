// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search builds the grouped, faceted index the catalogue search UI
renders from.

The aggregator owns no data: it fans out to the content query services,
flattens every kind into one result shape, classifies each result into a
display category, and derives the global domain facet list. The whole index
is computed per locale and cached between mutations.
*/
package search

import (
	"strings"

	"github.com/taibuivan/ortheo/pkg/slice"
)

// Kind tags a result with the content kind it came from.
type Kind string

const (
	KindAssessment Kind = "assessment"
	KindResource   Kind = "resource"
	KindTool       Kind = "tool"
)

// Category is the display grouping of the search UI. It usually follows
// the content kind, but tag markers can reroute an item: a test tagged as a
// self-report questionnaire surfaces under selfReports, not assessments.
type Category string

const (
	CategoryAssessments Category = "assessments"
	CategorySelfReports Category = "selfReports"
	CategoryResources   Category = "resources"
	CategoryTools       Category = "tools"
)

// categoryOrder fixes the group ordering in the rendered index.
var categoryOrder = []Category{
	CategoryAssessments,
	CategorySelfReports,
	CategoryResources,
	CategoryTools,
}

// categoryMarkers are matched as lowercase substrings against resolved tag
// labels. Classification runs on the resolved labels of the request locale;
// untranslated tags fall back to the default locale before they get here,
// so both French and English markers are listed.
var categoryMarkers = []struct {
	marker   string
	category Category
}{
	{"auto-évaluation", CategorySelfReports},
	{"auto-evaluation", CategorySelfReports},
	{"self-report", CategorySelfReports},
	{"self-assessment", CategorySelfReports},
}

// Result is the common projection every content kind flattens into.
type Result struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Category    Category `json:"category"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Domains     []string `json:"domains"`
	Tags        []string `json:"tags"`
}

// Group is one display category with its sorted results.
type Group struct {
	Category Category `json:"category"`
	Results  []Result `json:"results"`
}

// Index is the full search payload for one locale.
type Index struct {
	Groups       []Group  `json:"groups"`
	FacetDomains []string `json:"facetDomains"`
}

// FilterByDomains narrows an index to results carrying at least one of the
// requested domain labels. FacetDomains keeps the full union so the UI can
// still render the remaining facet options. An empty filter returns the
// index unchanged.
func FilterByDomains(index *Index, domains []string) *Index {
	if index == nil || len(domains) == 0 {
		return index
	}

	wanted := make(map[string]struct{}, len(domains))
	for _, domain := range domains {
		wanted[domain] = struct{}{}
	}

	filtered := &Index{FacetDomains: index.FacetDomains}
	for _, group := range index.Groups {
		results := slice.Filter(group.Results, func(result Result) bool {
			for _, domain := range result.Domains {
				if _, ok := wanted[domain]; ok {
					return true
				}
			}
			return false
		})
		if len(results) == 0 {
			continue
		}
		filtered.Groups = append(filtered.Groups, Group{Category: group.Category, Results: results})
	}

	return filtered
}

// classify derives the display category for one result. Tag markers win
// over the kind default.
func classify(kind Kind, tags []string) Category {
	for _, tag := range tags {
		lowered := strings.ToLower(tag)
		for _, entry := range categoryMarkers {
			if strings.Contains(lowered, entry.marker) {
				return entry.category
			}
		}
	}

	switch kind {
	case KindResource:
		return CategoryResources
	case KindTool:
		return CategoryTools
	default:
		return CategoryAssessments
	}
}
