// Package signal derives deterministic offshore indicators from a normalized
// transaction. Extraction is a pure function: no I/O, no external calls, and
// identical input always yields an identical SignalSet.
package signal

import "strings"

// SwiftCountry is the country component extracted from a SWIFT/BIC code.
type SwiftCountry struct {
	CountryCode string
	Valid       bool
}

// ParseSwiftCountry extracts the two-letter country code from a SWIFT/BIC
// code (format: BANK(4) + COUNTRY(2) + LOCATION(2) + optional BRANCH(3)).
// Malformed codes yield an invalid result, never an error.
func ParseSwiftCountry(code string) SwiftCountry {
	cleaned := strings.ToUpper(strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(code)))

	if len(cleaned) != 8 && len(cleaned) != 11 {
		return SwiftCountry{}
	}
	if !isLetters(cleaned[:4]) {
		return SwiftCountry{}
	}

	country := cleaned[4:6]
	if !isLetters(country) {
		return SwiftCountry{}
	}

	return SwiftCountry{CountryCode: country, Valid: true}
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
