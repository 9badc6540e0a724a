package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medetshatayev/offshore/internal/model"
)

func TestRenderSummary(t *testing.T) {
	stats := &model.BatchStatistics{
		TotalInput:    8,
		FilteredOut:   2,
		Processed:     8,
		FallbackCount: 1,
		CountsByLabel: map[model.Label]int{
			model.LabelOffshoreYes: 3,
			model.LabelOffshoreNo:  5,
		},
	}

	out := RenderSummary(stats)
	assert.Contains(t, out, "Screening summary")
	assert.Contains(t, out, "OFFSHORE_YES")
	assert.Contains(t, out, "manual review")
	assert.NotContains(t, out, "OFFSHORE_SUSPECT", "zero-count labels are omitted")
}

func TestRenderJurisdictionList(t *testing.T) {
	entries := []model.JurisdictionEntry{
		{ISOCode: "KY", EnglishName: "Cayman Islands", CanonicalName: "Каймановы острова"},
		{ISOCode: "US-WY", EnglishName: "Wyoming"},
	}

	out := RenderJurisdictionList(entries)
	assert.Contains(t, out, "KY")
	assert.Contains(t, out, "Cayman Islands")
	assert.Contains(t, out, "US-WY")

	empty := RenderJurisdictionList(nil)
	assert.Contains(t, empty, "registry import")
}
