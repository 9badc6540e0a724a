package cli

import (
	"fmt"
	"strings"

	"github.com/medetshatayev/offshore/internal/model"
)

// labelStyle picks the color matching a verdict label's severity.
func labelStyle(label model.Label) func(...string) string {
	switch label {
	case model.LabelOffshoreYes:
		return ErrorStyle.Render
	case model.LabelOffshoreSuspect:
		return WarningStyle.Render
	default:
		return SuccessStyle.Render
	}
}

// RenderSummary formats the per-file statistics box shown after screening.
func RenderSummary(stats *model.BatchStatistics) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Screening summary"))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Input rows:      %d\n", stats.TotalInput+stats.FilteredOut)
	if stats.FilteredOut > 0 {
		fmt.Fprintf(&b, "Filtered out:    %s\n", SubtleStyle.Render(fmt.Sprintf("%d", stats.FilteredOut)))
	}
	fmt.Fprintf(&b, "Classified:      %d\n", stats.Processed)

	for _, label := range []model.Label{model.LabelOffshoreYes, model.LabelOffshoreSuspect, model.LabelOffshoreNo} {
		count := stats.CountsByLabel[label]
		if count == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s %d\n", labelStyle(label)(fmt.Sprintf("%-16s", string(label)+":")), count)
	}

	if stats.FallbackCount > 0 {
		b.WriteString(WarningStyle.Render(
			fmt.Sprintf("%d transaction(s) could not be classified and need manual review", stats.FallbackCount)))
		b.WriteString("\n")
	}

	return BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderJurisdictionList formats the registry contents for terminal display.
func RenderJurisdictionList(entries []model.JurisdictionEntry) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("jurisdiction list is empty; run 'offshore registry import' first")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Offshore jurisdictions (%d)", len(entries))))
	b.WriteString("\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%-8s %s", e.ISOCode, e.EnglishName)
		if e.CanonicalName != "" && e.CanonicalName != e.EnglishName {
			fmt.Fprintf(&b, "  %s", SubtleStyle.Render(e.CanonicalName))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
