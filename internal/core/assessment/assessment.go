// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package assessment manages the standardized test catalogue.

An assessment is the central content kind of the platform: a published
speech-therapy test with structural metadata (publication year, age range,
administration duration), per-locale translations (name, description,
objective, clinical notes), and taxonomy classifications (domains, tags,
pathologies).

Structural fields live on the canonical row and never vary by locale.
Translated fields are stored one row per locale and resolved against the
catalogue's default locale at read time.
*/
package assessment

import (
	"time"

	"github.com/taibuivan/ortheo/internal/core/taxonomy"
)

// # Field Identifiers

const (
	FieldName            = "name"
	FieldLocale          = "locale"
	FieldYear            = "year"
	FieldAgeMin          = "ageMin"
	FieldAgeMax          = "ageMax"
	FieldDurationMinutes = "durationMinutes"
)

// # Domain Entity

// Assessment is the locale-resolved projection returned by every read
// path. Translated fields have already been through the fallback chain;
// taxonomy slices carry the resolved labels alongside their canonical ids.
type Assessment struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Year            *int      `json:"year"`
	AgeMin          *int      `json:"ageMin"`
	AgeMax          *int      `json:"ageMax"`
	DurationMinutes *int      `json:"durationMinutes"`
	IsStandardized  bool      `json:"isStandardized"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Name        string  `json:"name"`
	Description *string `json:"description"`
	Objective   *string `json:"objective"`
	Notes       *string `json:"notes"`

	Domains     []taxonomy.Ref `json:"domains"`
	Tags        []taxonomy.Ref `json:"tags"`
	Pathologies []taxonomy.Ref `json:"pathologies"`
}

// Translation is one locale's raw stored row, before fallback resolution.
type Translation struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Objective   *string `json:"objective"`
	Notes       *string `json:"notes"`
}

// Input carries one create or update call. Taxonomy fields hold free-text
// labels in the input locale; normalization resolves them to canonical ids
// inside the mutation transaction.
type Input struct {
	Locale          string   `json:"locale"`
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Objective       *string  `json:"objective"`
	Notes           *string  `json:"notes"`
	Year            *int     `json:"year"`
	AgeMin          *int     `json:"ageMin"`
	AgeMax          *int     `json:"ageMax"`
	DurationMinutes *int     `json:"durationMinutes"`
	IsStandardized  bool     `json:"isStandardized"`
	Domains         []string `json:"domains"`
	Tags            []string `json:"tags"`
	Pathologies     []string `json:"pathologies"`
}
