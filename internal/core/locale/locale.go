// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package locale maintains the registry of languages the catalogue publishes
in.

The registry is reference data: locale codes (BCP-47 primary subtags) with
their English and native display names. Content translations are keyed on
these codes, and the config-level supported set must stay within it.
*/
package locale

// Locale represents one publishing language of the catalogue.
type Locale struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}
