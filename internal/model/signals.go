package model

// NameMatch is a single fuzzy-match hit against the jurisdiction list.
type NameMatch struct {
	Value string  // matched jurisdiction, formatted "Name (CODE)"
	Score float64 // similarity in [0,1]
}

// SignalSet holds the deterministic offshore indicators derived from one
// transaction. A nil pointer field means the signal was not evaluated,
// which is distinct from evaluated-and-absent.
type SignalSet struct {
	SwiftCountryCode string // empty when the SWIFT code was absent or malformed
	SwiftIsOffshore  *bool  // set only when a country code was extracted
	CountryCodeMatch *NameMatch
	CountryNameMatch *NameMatch
	CityMatch        *NameMatch
}

// AnyOffshore reports whether at least one signal points at the offshore list.
func (s SignalSet) AnyOffshore() bool {
	if s.SwiftIsOffshore != nil && *s.SwiftIsOffshore {
		return true
	}
	return s.CountryCodeMatch != nil || s.CountryNameMatch != nil || s.CityMatch != nil
}
