// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slugger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ortheo/internal/platform/slugger"
)

// staticLookup returns a fixed slug list regardless of prefix.
func staticLookup(slugs ...string) slugger.Lookup {
	return func(ctx context.Context, prefix, excludeID string) ([]string, error) {
		return slugs, nil
	}
}

/*
TestUnique_Normalization checks base slug derivation including the empty fallback.
*/
func TestUnique_Normalization(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{"plain", "Bilan Phonologique", "bilan-phonologique"},
		{"accents", "Évaluation du Langage Écrit", "evaluation-du-langage-ecrit"},
		{"punctuation_only", "!!! ???", "item"},
		{"empty", "", "item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := slugger.Unique(context.Background(), tt.label, staticLookup(), "", slugger.NewReserved())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

/*
TestUnique_CollisionProbing verifies the -2, -3 suffix sequence against stored slugs.
*/
func TestUnique_CollisionProbing(t *testing.T) {
	lookup := staticLookup("test-a", "test-a-2")

	got, err := slugger.Unique(context.Background(), "Test A", lookup, "", slugger.NewReserved())
	require.NoError(t, err)
	assert.Equal(t, "test-a-3", got)
}

/*
TestUnique_ReservedBatch verifies that two calls for the same label within one
batch yield distinct, deterministic slugs even before anything is stored.
*/
func TestUnique_ReservedBatch(t *testing.T) {
	reserved := slugger.NewReserved()

	first, err := slugger.Unique(context.Background(), "Test A", staticLookup(), "", reserved)
	require.NoError(t, err)

	second, err := slugger.Unique(context.Background(), "Test A", staticLookup(), "", reserved)
	require.NoError(t, err)

	assert.Equal(t, "test-a", first)
	assert.Equal(t, "test-a-2", second)
	assert.True(t, reserved.Has("test-a"))
	assert.True(t, reserved.Has("test-a-2"))
}

/*
TestUnique_LookupFailure ensures storage errors propagate unchanged.
*/
func TestUnique_LookupFailure(t *testing.T) {
	storageErr := errors.New("connection reset")
	failing := func(ctx context.Context, prefix, excludeID string) ([]string, error) {
		return nil, storageErr
	}

	_, err := slugger.Unique(context.Background(), "Test A", failing, "", slugger.NewReserved())
	assert.ErrorIs(t, err, storageErr)
}
