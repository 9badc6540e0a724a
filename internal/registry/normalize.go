package registry

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName prepares a string for jurisdiction matching: trimmed,
// case-folded, diacritics stripped, internal whitespace collapsed.
func NormalizeName(text string) string {
	stripped, _, err := transform.String(diacriticStripper, text)
	if err != nil {
		stripped = text
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// similarity returns the Levenshtein similarity ratio between two already
// normalized strings. A failure in the distance routine is never propagated:
// it is logged and reported as no match.
func similarity(a, b string) (score float64) {
	if a == "" || b == "" {
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Warn("similarity computation failed",
				"error", fmt.Sprint(r),
				"candidate", a)
			score = 0
		}
	}()

	dist := levenshtein.ComputeDistance(a, b)
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(dist)/float64(longest)
}
