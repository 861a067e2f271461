// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tool manages the digital tool directory: apps, software, and
// online services referenced by the catalogue. Tools carry a link,
// per-locale names and descriptions, and domain/tag classifications.
package tool

import (
	"time"

	"github.com/taibuivan/ortheo/internal/core/taxonomy"
)

const (
	FieldName   = "name"
	FieldLocale = "locale"
	FieldURL    = "url"
)

// Tool is the locale-resolved projection returned by every read path.
type Tool struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string  `json:"name"`
	Description *string `json:"description"`

	Domains []taxonomy.Ref `json:"domains"`
	Tags    []taxonomy.Ref `json:"tags"`
}

// Translation is one locale's raw stored row.
type Translation struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Input carries one create or update call.
type Input struct {
	Locale      string   `json:"locale"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	URL         string   `json:"url"`
	Domains     []string `json:"domains"`
	Tags        []string `json:"tags"`
}
