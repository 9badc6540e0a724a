// Package registry provides lookup and fuzzy matching over the offshore
// jurisdiction reference list. The registry is loaded once at startup and is
// read-only afterwards, so it is safe for unsynchronized concurrent reads.
package registry

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/medetshatayev/offshore/internal/model"
)

// Config holds matching thresholds for the registry.
type Config struct {
	// SimilarityThreshold is the minimum similarity ratio for a name match.
	SimilarityThreshold float64
	// MaxFuzzyLength is the length cutoff above which candidates are only
	// matched by substring, never by edit distance. Long free-text address
	// fragments otherwise produce spurious near-matches.
	MaxFuzzyLength int
}

// DefaultConfig returns the standard matching configuration.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.80,
		MaxFuzzyLength:      20,
	}
}

func (c Config) withDefaults() Config {
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = 0.80
	}
	if c.MaxFuzzyLength <= 0 {
		c.MaxFuzzyLength = 20
	}
	return c
}

// indexedName pairs a normalized searchable name with its entry.
type indexedName struct {
	norm  string
	entry model.JurisdictionEntry
}

// Registry is the in-memory jurisdiction reference list.
type Registry struct {
	cfg       Config
	byCode    map[string]model.JurisdictionEntry
	composite map[string][]model.JurisdictionEntry // country prefix -> composite children
	names     []indexedName
	entries   []model.JurisdictionEntry
	logger    *slog.Logger
}

// Store abstracts the persistence layer the registry is loaded from.
type Store interface {
	ListJurisdictions(ctx context.Context) ([]model.JurisdictionEntry, error)
}

// New builds a registry from the given entries. Entries with duplicate codes
// keep the first occurrence.
func New(entries []model.JurisdictionEntry, cfg Config, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		cfg:       cfg.withDefaults(),
		byCode:    make(map[string]model.JurisdictionEntry, len(entries)),
		composite: make(map[string][]model.JurisdictionEntry),
		logger:    logger,
	}

	for _, e := range entries {
		code := strings.ToUpper(strings.TrimSpace(e.ISOCode))
		if code == "" {
			continue
		}
		if _, dup := r.byCode[code]; dup {
			logger.Warn("duplicate jurisdiction code ignored", "code", code, "name", e.CanonicalName)
			continue
		}
		e.ISOCode = code
		r.byCode[code] = e
		r.entries = append(r.entries, e)
		if e.Composite() {
			r.composite[e.CountryCode()] = append(r.composite[e.CountryCode()], e)
		}
		for _, name := range []string{e.CanonicalName, e.EnglishName} {
			if n := NormalizeName(name); n != "" {
				r.names = append(r.names, indexedName{norm: n, entry: e})
			}
		}
	}

	sort.Slice(r.entries, func(i, j int) bool { return r.entries[i].ISOCode < r.entries[j].ISOCode })

	return r
}

// Load reads the jurisdiction list from the store. Failure to load degrades
// to an empty registry with a logged warning; classification then relies
// solely on the oracle's own knowledge.
func Load(ctx context.Context, store Store, cfg Config, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := store.ListJurisdictions(ctx)
	if err != nil {
		logger.Warn("failed to load jurisdiction list, continuing with empty registry", "error", err)
		return New(nil, cfg, logger)
	}
	if len(entries) == 0 {
		logger.Warn("jurisdiction list is empty, offshore signals disabled")
	} else {
		logger.Info("jurisdiction registry loaded", "entries", len(entries))
	}

	return New(entries, cfg, logger)
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// Empty reports whether the registry holds no entries.
func (r *Registry) Empty() bool { return len(r.entries) == 0 }

// Entries returns all entries sorted by code.
func (r *Registry) Entries() []model.JurisdictionEntry { return r.entries }

// LookupByCode returns the entry for an exact code match. Composite codes
// ("US-WY") resolve only against their own entry, never the country prefix.
func (r *Registry) LookupByCode(code string) (model.JurisdictionEntry, bool) {
	e, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return e, ok
}

// LookupByName returns the best entry whose canonical or English name matches
// the candidate at or above the similarity threshold. Substring containment
// in either direction counts as an exact match.
func (r *Registry) LookupByName(candidate string) (model.JurisdictionEntry, float64, bool) {
	cand := NormalizeName(candidate)
	if len([]rune(cand)) < 3 {
		return model.JurisdictionEntry{}, 0, false
	}

	var (
		best      model.JurisdictionEntry
		bestScore float64
	)

	fuzzy := len([]rune(cand)) < r.cfg.MaxFuzzyLength

	for _, in := range r.names {
		var score float64
		switch {
		case strings.Contains(in.norm, cand) || strings.Contains(cand, in.norm):
			score = 1.0
		case fuzzy:
			score = similarity(cand, in.norm)
		}
		if score >= r.cfg.SimilarityThreshold && score > bestScore {
			best = in.entry
			bestScore = score
			if score == 1.0 {
				break
			}
		}
	}

	if bestScore == 0 {
		return model.JurisdictionEntry{}, 0, false
	}
	return best, bestScore, true
}

// IsCompositeOffshore checks whether a country that is not itself listed has
// a listed sub-jurisdiction matching the region hint. Callers use it to
// upgrade a country-level non-match when region text is available.
func (r *Registry) IsCompositeOffshore(countryCode, regionHint string) (model.JurisdictionEntry, bool) {
	children := r.composite[strings.ToUpper(strings.TrimSpace(countryCode))]
	if len(children) == 0 {
		return model.JurisdictionEntry{}, false
	}

	hint := NormalizeName(regionHint)
	if len([]rune(hint)) < 3 {
		return model.JurisdictionEntry{}, false
	}

	for _, child := range children {
		for _, name := range []string{child.EnglishName, child.CanonicalName} {
			n := NormalizeName(name)
			if n == "" {
				continue
			}
			if strings.Contains(hint, n) || strings.Contains(n, hint) {
				return child, true
			}
			if len([]rune(hint)) < r.cfg.MaxFuzzyLength && similarity(hint, n) >= r.cfg.SimilarityThreshold {
				return child, true
			}
		}
	}

	return model.JurisdictionEntry{}, false
}
