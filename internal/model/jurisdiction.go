package model

import "strings"

// JurisdictionEntry is one row of the offshore reference list. Codes are
// either plain ISO 3166-1 alpha-2 ("KY") or composite "COUNTRY-SUBREGION"
// ("US-WY") for sub-national jurisdictions flagged individually.
type JurisdictionEntry struct {
	CanonicalName string // name as it appears in the source list
	ISOCode       string
	EnglishName   string
}

// CountryCode returns the two-letter country prefix of the code.
func (e JurisdictionEntry) CountryCode() string {
	code, _, _ := strings.Cut(e.ISOCode, "-")
	return code
}

// Composite reports whether the entry names a sub-national jurisdiction.
func (e JurisdictionEntry) Composite() bool {
	return strings.Contains(e.ISOCode, "-")
}
