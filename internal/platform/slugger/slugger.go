// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slugger derives unique URL slugs for catalogue and taxonomy rows.

It builds on [pkg/slug] for Unicode normalization and adds the uniqueness
guarantees the storage layer needs:

  - Collision probing: "bilan-phono", "bilan-phono-2", "bilan-phono-3", ...
  - Batch safety: a [Reserved] set tracks slugs already chosen in the same
    uncommitted transaction, so serial calls never collide before flush.
  - Update-in-place: an exclude ID lets a row keep (or regenerate) its own
    slug without colliding with itself.

The package performs no writes; persisting the winning slug is the caller's
responsibility.
*/
package slugger

import (
	"context"
	"fmt"

	"github.com/taibuivan/ortheo/pkg/slug"
)

// FallbackSlug is used when normalization of the label yields nothing
// (e.g. a label made entirely of punctuation).
const FallbackSlug = "item"

// Lookup returns every stored slug starting with prefix within one scope
// table, excluding the row identified by excludeID (empty means exclude
// nothing). Each repository provides its own implementation as a prefix
// query over its slug column.
type Lookup func(ctx context.Context, prefix string, excludeID string) ([]string, error)

// Reserved tracks slugs already handed out in the current uncommitted batch.
//
// # Concurrency
//
// Reserved is not safe for concurrent use. One instance must be created per
// mutation/transaction and discarded afterwards.
type Reserved map[string]struct{}

// NewReserved returns an empty reservation set.
func NewReserved() Reserved {
	return make(Reserved)
}

// Add marks a slug as taken within the batch.
func (r Reserved) Add(slug string) {
	r[slug] = struct{}{}
}

// Has reports whether a slug was already reserved in the batch.
func (r Reserved) Has(slug string) bool {
	_, taken := r[slug]
	return taken
}

/*
Unique derives a collision-free slug for label within one scope table.

Description: Normalizes the label into a base slug, unions the stored slugs
sharing that prefix with the in-memory reservation set, then probes
"base", "base-2", "base-3", ... until a free candidate is found. The winner
is added to reserved before returning, so later calls in the same batch see it.

Parameters:
  - ctx: context.Context for the storage lookup
  - label: display label to derive the slug from
  - lookup: prefix query over the scope table's slug column
  - excludeID: row ID to ignore during the scan ("" on create)
  - reserved: batch reservation set (must not be nil)

Returns:
  - string: The unique slug
  - error: Storage lookup failures, propagated unchanged
*/
func Unique(ctx context.Context, label string, lookup Lookup, excludeID string, reserved Reserved) (string, error) {

	// Normalize; empty labels are not an error, they get the fixed fallback.
	baseSlug := slug.From(label)
	if baseSlug == "" {
		baseSlug = FallbackSlug
	}

	// Fetch all stored slugs that could collide with any probe candidate.
	existing, err := lookup(ctx, baseSlug, excludeID)
	if err != nil {
		return "", err
	}

	taken := make(map[string]struct{}, len(existing)+len(reserved))
	for _, s := range existing {
		taken[s] = struct{}{}
	}
	for s := range reserved {
		taken[s] = struct{}{}
	}

	// Probe base, base-2, base-3, ... until free.
	candidate := baseSlug
	for suffix := 2; ; suffix++ {
		if _, collides := taken[candidate]; !collides {
			break
		}
		candidate = fmt.Sprintf("%s-%d", baseSlug, suffix)
	}

	reserved.Add(candidate)

	return candidate, nil
}
