package registry

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/medetshatayev/offshore/internal/model"
)

// codePattern accepts plain two-letter codes and composite
// "COUNTRY-SUBREGION" codes such as US-WY or ES-CN.
var codePattern = regexp.MustCompile(`^[A-Z]{2}(-[A-Z]{2,3})?$`)

// ParseMarkdownTable reads the jurisdiction reference list from a markdown
// table of the form `| canonical name | CODE | english name |`. Separator
// and header rows are skipped; rows with an unparseable code are ignored.
func ParseMarkdownTable(r io.Reader) ([]model.JurisdictionEntry, error) {
	var entries []model.JurisdictionEntry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if e, ok := parseTableLine(scanner.Text()); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jurisdiction table: %w", err)
	}

	return entries, nil
}

func parseTableLine(line string) (model.JurisdictionEntry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || !strings.Contains(line, "|") || strings.HasPrefix(line, "|:-") || strings.HasPrefix(line, "|-") {
		return model.JurisdictionEntry{}, false
	}

	parts := strings.Split(line, "|")
	if len(parts) < 4 {
		return model.JurisdictionEntry{}, false
	}

	canonical := strings.TrimSpace(parts[1])
	code := strings.ToUpper(strings.TrimSpace(parts[2]))
	english := strings.TrimSpace(parts[3])

	if canonical == "" || english == "" || !codePattern.MatchString(code) {
		return model.JurisdictionEntry{}, false
	}
	if strings.HasPrefix(canonical, ":-") || strings.HasPrefix(canonical, "---") {
		return model.JurisdictionEntry{}, false
	}

	return model.JurisdictionEntry{
		CanonicalName: canonical,
		ISOCode:       code,
		EnglishName:   english,
	}, true
}
