package engine

import (
	"fmt"

	"github.com/medetshatayev/offshore/internal/model"
)

// assembleResults re-emits verdicts in input order and enforces the
// exactly-one-verdict-per-id contract. A mismatch here is a pipeline bug,
// not an oracle failure, so it surfaces as an error.
func assembleResults(txns []model.NormalizedTransaction, signals map[string]model.SignalSet, verdicts map[string]model.ClassificationVerdict) ([]Result, error) {
	if len(verdicts) != len(txns) {
		return nil, fmt.Errorf("verdict count %d does not match input count %d", len(verdicts), len(txns))
	}

	results := make([]Result, 0, len(txns))
	for _, txn := range txns {
		v, ok := verdicts[txn.ID]
		if !ok {
			return nil, fmt.Errorf("no verdict for transaction %s", txn.ID)
		}
		results = append(results, Result{
			Transaction: txn,
			Signals:     signals[txn.ID],
			Verdict:     v,
		})
	}

	return results, nil
}

// computeStatistics summarizes a completed file. FilteredOut reflects rows
// dropped before classification and is filled in by the caller that did the
// filtering.
func computeStatistics(results []Result) *model.BatchStatistics {
	stats := &model.BatchStatistics{
		TotalInput:    len(results),
		Processed:     len(results),
		CountsByLabel: make(map[model.Label]int),
	}

	for _, res := range results {
		stats.CountsByLabel[res.Verdict.Label]++
		if res.Verdict.Fallback() {
			stats.FallbackCount++
		}
	}

	return stats
}
