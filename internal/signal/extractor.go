package signal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/medetshatayev/offshore/internal/model"
	"github.com/medetshatayev/offshore/internal/registry"
)

// Extractor computes a SignalSet per transaction against a fixed registry
// snapshot. The registry is read-only, so one extractor is safe to share.
type Extractor struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// NewExtractor creates a signal extractor backed by the given registry.
func NewExtractor(reg *registry.Registry, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{registry: reg, logger: logger}
}

// Extract derives the deterministic indicator set for one transaction.
func (e *Extractor) Extract(txn model.NormalizedTransaction) model.SignalSet {
	var signals model.SignalSet

	if sc := ParseSwiftCountry(txn.SwiftCode); sc.Valid {
		signals.SwiftCountryCode = sc.CountryCode
		_, offshore := e.registry.LookupByCode(sc.CountryCode)
		signals.SwiftIsOffshore = &offshore
	} else if strings.TrimSpace(txn.SwiftCode) != "" {
		e.logger.Debug("malformed SWIFT code, skipping country extraction",
			"transaction_id", txn.ID,
			"swift", txn.SwiftCode)
	}

	signals.CountryCodeMatch = e.matchCountryCode(txn)
	signals.CountryNameMatch = e.matchName(txn.BankCountryField)
	signals.CityMatch = e.matchName(txn.City)

	return signals
}

// matchCountryCode checks the transaction's country code against the list.
// When the country itself is not listed, region text from the addresses may
// still resolve a listed sub-jurisdiction (e.g. "US" plus "Wyoming").
func (e *Extractor) matchCountryCode(txn model.NormalizedTransaction) *model.NameMatch {
	code := strings.ToUpper(strings.TrimSpace(txn.CountryCode))
	if len(code) != 2 || !isLetters(code) {
		return nil
	}

	if entry, ok := e.registry.LookupByCode(code); ok {
		return &model.NameMatch{
			Value: fmt.Sprintf("%s (%s)", entry.EnglishName, entry.ISOCode),
			Score: 1.0,
		}
	}

	for _, hint := range []string{txn.BankAddress, txn.CounterpartyAddress, txn.City} {
		if hint == "" {
			continue
		}
		if entry, ok := e.registry.IsCompositeOffshore(code, hint); ok {
			return &model.NameMatch{
				Value: fmt.Sprintf("%s (%s)", entry.EnglishName, entry.ISOCode),
				Score: 1.0,
			}
		}
	}

	return nil
}

// matchName runs the fuzzy name lookup for a candidate string.
func (e *Extractor) matchName(candidate string) *model.NameMatch {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil
	}

	entry, score, ok := e.registry.LookupByName(candidate)
	if !ok {
		return nil
	}

	return &model.NameMatch{
		Value: fmt.Sprintf("%s (%s)", entry.EnglishName, entry.ISOCode),
		Score: score,
	}
}
