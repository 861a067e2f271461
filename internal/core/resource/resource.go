// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package resource manages downloadable clinical material: protocols,
// grids, record forms. Resources carry a link and a file format, per-locale
// titles and descriptions, and domain/tag classifications.
package resource

import (
	"time"

	"github.com/taibuivan/ortheo/internal/core/taxonomy"
)

const (
	FieldTitle  = "title"
	FieldLocale = "locale"
	FieldURL    = "url"
	FieldFormat = "format"
)

// Format identifies the delivery format of a resource.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatVideo Format = "video"
	FormatAudio Format = "audio"
	FormatLink  Format = "link"
)

// IsValid reports whether f is a recognised [Format] value.
func (f Format) IsValid() bool {
	switch f {
	case FormatPDF, FormatVideo, FormatAudio, FormatLink:
		return true
	}
	return false
}

// Resource is the locale-resolved projection returned by every read path.
type Resource struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	URL       string    `json:"url"`
	Format    Format    `json:"format"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string  `json:"title"`
	Description *string `json:"description"`

	Domains []taxonomy.Ref `json:"domains"`
	Tags    []taxonomy.Ref `json:"tags"`
}

// Translation is one locale's raw stored row.
type Translation struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Input carries one create or update call.
type Input struct {
	Locale      string   `json:"locale"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	URL         string   `json:"url"`
	Format      Format   `json:"format"`
	Domains     []string `json:"domains"`
	Tags        []string `json:"tags"`
}
