// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package i18n resolves translated entity fields with locale fallback.

Every translated row in the catalogue stores its text fields as pointers:
nil means "not provided in this locale". Resolution follows the same
COALESCE policy the storage layer would apply:

	requested-locale value → default-locale value → structural default → zero

The precedence is applied independently per field, never per row: a
translation row may be authoritative for one field while another field in
the same row falls back. The package is pure — no I/O, no side effects — so
resolution is unit-testable on already-fetched rows.
*/
package i18n

// Rows selects the requested-locale and default-locale translation rows
// from a per-locale map. A missing locale yields the zero value of T, whose
// nil pointer fields then fall through naturally in [Value].
//
// When requested == fallback the two returned rows are identical; [Value]
// handles that degenerate case without any deduplication by the caller.
func Rows[T any](translations map[string]T, requested, fallback string) (requestedRow, fallbackRow T) {
	requestedRow = translations[requested]
	fallbackRow = translations[fallback]
	return requestedRow, fallbackRow
}

// Value resolves a single translated field.
//
// nil pointers are "absent"; an empty string stored in a locale is a real
// value and wins over the fallback chain, mirroring SQL COALESCE semantics.
func Value[T any](requested, fallback *T, structural T) T {
	if requested != nil {
		return *requested
	}
	if fallback != nil {
		return *fallback
	}
	return structural
}

// Text resolves an optional text field with no structural default.
// It returns "" when the field is absent in both locales.
func Text(requested, fallback *string) string {
	return Value(requested, fallback, "")
}

// Ptr resolves an optional field without collapsing absence: the result is
// nil only when the field is missing in both locales.
func Ptr[T any](requested, fallback *T) *T {
	if requested != nil {
		return requested
	}
	return fallback
}
