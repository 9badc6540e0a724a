package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medetshatayev/offshore/internal/engine"
	"github.com/medetshatayev/offshore/internal/model"
)

func sampleResults() []engine.Result {
	return []engine.Result{
		{
			Transaction: model.NormalizedTransaction{
				ID:               "txn-001",
				Direction:        model.DirectionOutgoing,
				AmountMinor:      150000,
				CounterpartyName: "Offshore Holdings Ltd",
				BankName:         "Cayman National Bank",
				CountryCode:      "KY",
				SwiftCode:        "KYXXKYKY",
			},
			Verdict: model.ClassificationVerdict{
				TransactionID: "txn-001",
				Label:         model.LabelOffshoreYes,
				Confidence:    0.95,
				Reasoning:     "Bank is registered in the Cayman Islands.",
				Sources:       []string{"https://example.com/ky"},
			},
		},
		{
			Transaction: model.NormalizedTransaction{
				ID:          "txn-002",
				Direction:   model.DirectionOutgoing,
				AmountMinor: 90000,
				BankName:    "Deutsche Bank",
				CountryCode: "DE",
			},
			Verdict: model.ClassificationVerdict{
				TransactionID: "txn-002",
				Label:         model.LabelOffshoreSuspect,
				Confidence:    0,
				Reasoning:     "Automatic classification unavailable, manual review required.",
				Sources:       []string{},
				ErrorNote:     "oracle call failed: gateway timeout",
			},
		},
	}
}

func TestWriteResultsPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, sampleResults()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, resultHeader, rows[0])
	assert.Equal(t, "txn-001", rows[1][0])
	assert.Equal(t, "OFFSHORE_YES", rows[1][7])
	assert.Equal(t, "0.95", rows[1][8])
	assert.Equal(t, "https://example.com/ky", rows[1][10])
	assert.Empty(t, rows[1][11])

	assert.Equal(t, "txn-002", rows[2][0])
	assert.Equal(t, "OFFSHORE_SUSPECT", rows[2][7])
	assert.NotEmpty(t, rows[2][11], "fallback rows carry their error note")
}

func TestWriteStatistics(t *testing.T) {
	stats := &model.BatchStatistics{
		TotalInput:    10,
		FilteredOut:   2,
		Processed:     8,
		FallbackCount: 1,
		CountsByLabel: map[model.Label]int{
			model.LabelOffshoreYes:     1,
			model.LabelOffshoreSuspect: 2,
			model.LabelOffshoreNo:      5,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStatistics(&buf, stats))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.EqualValues(t, 10, decoded["total_input"])
	assert.EqualValues(t, 2, decoded["filtered_out"])
	assert.EqualValues(t, 1, decoded["fallback_count"])

	counts, ok := decoded["counts_by_label"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 5, counts["OFFSHORE_NO"])
}
