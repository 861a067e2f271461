// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ortheo/internal/core/i18n"
	"github.com/taibuivan/ortheo/pkg/pointer"
)

// translation mirrors the shape of a catalogue translation row.
type translation struct {
	Name        *string
	Description *string
	Notes       *string
}

/*
TestResolve_FallbackPrecedence covers the requested → default → structural chain.
*/
func TestResolve_FallbackPrecedence(t *testing.T) {
	translations := map[string]translation{
		"fr": {
			Name:        pointer.To("Bilan de phonologie"),
			Description: pointer.To("Évaluation des processus phonologiques"),
		},
		"en": {
			Name: pointer.To("Phonology assessment"),
			// Description intentionally absent: must fall back to fr.
		},
	}

	requested, fallback := i18n.Rows(translations, "en", "fr")

	assert.Equal(t, "Phonology assessment", i18n.Text(requested.Name, fallback.Name))
	assert.Equal(t, "Évaluation des processus phonologiques", i18n.Text(requested.Description, fallback.Description))
	assert.Equal(t, "", i18n.Text(requested.Notes, fallback.Notes))
}

/*
TestResolve_FrenchOnlyTranslation checks that a French-only entity requested in
English with default French resolves every text field to the French value.
*/
func TestResolve_FrenchOnlyTranslation(t *testing.T) {
	translations := map[string]translation{
		"fr": {
			Name:        pointer.To("Exalang"),
			Description: pointer.To("Batterie informatisée"),
			Notes:       pointer.To("Passation sur tablette"),
		},
	}

	requested, fallback := i18n.Rows(translations, "en", "fr")

	assert.Equal(t, "Exalang", i18n.Text(requested.Name, fallback.Name))
	assert.Equal(t, "Batterie informatisée", i18n.Text(requested.Description, fallback.Description))
	assert.Equal(t, "Passation sur tablette", i18n.Text(requested.Notes, fallback.Notes))
}

/*
TestResolve_StructuralDefault checks the final precedence step for fields
absent in both locales.
*/
func TestResolve_StructuralDefault(t *testing.T) {
	translations := map[string]translation{}

	requested, fallback := i18n.Rows(translations, "en", "fr")

	assert.Equal(t, "bilan-phono", i18n.Value(requested.Name, fallback.Name, "bilan-phono"))
	assert.Equal(t, 0, i18n.Value[int](nil, nil, 0))
}

/*
TestResolve_RequestedEqualsDefault verifies the degenerate case where both
precedence steps read the same row.
*/
func TestResolve_RequestedEqualsDefault(t *testing.T) {
	translations := map[string]translation{
		"fr": {Name: pointer.To("Bilan de langage oral")},
	}

	requested, fallback := i18n.Rows(translations, "fr", "fr")

	assert.Equal(t, "Bilan de langage oral", i18n.Text(requested.Name, fallback.Name))
}

/*
TestResolve_EmptyStringIsAValue ensures an empty string stored in the
requested locale wins over the fallback, mirroring SQL COALESCE.
*/
func TestResolve_EmptyStringIsAValue(t *testing.T) {
	translations := map[string]translation{
		"fr": {Notes: pointer.To("Notes françaises")},
		"en": {Notes: pointer.To("")},
	}

	requested, fallback := i18n.Rows(translations, "en", "fr")

	assert.Equal(t, "", i18n.Text(requested.Notes, fallback.Notes))
}
