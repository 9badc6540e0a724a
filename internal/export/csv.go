// Package export renders screening results for downstream consumption.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/medetshatayev/offshore/internal/engine"
	"github.com/medetshatayev/offshore/internal/model"
)

var resultHeader = []string{
	"id",
	"direction",
	"amount_minor",
	"counterparty",
	"bank_name",
	"country_code",
	"swift_code",
	"label",
	"confidence",
	"reasoning",
	"sources",
	"error_note",
}

// WriteResultsFile writes the ordered result rows to a CSV file.
func WriteResultsFile(path string, results []engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteResults(f, results); err != nil {
		return err
	}
	return f.Close()
}

// WriteResults writes result rows as CSV, preserving input order.
func WriteResults(w io.Writer, results []engine.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(resultHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, res := range results {
		txn := res.Transaction
		v := res.Verdict
		row := []string{
			txn.ID,
			string(txn.Direction),
			strconv.FormatInt(txn.AmountMinor, 10),
			txn.CounterpartyName,
			txn.BankName,
			txn.CountryCode,
			txn.SwiftCode,
			string(v.Label),
			strconv.FormatFloat(v.Confidence, 'f', 2, 64),
			v.Reasoning,
			strings.Join(v.Sources, "; "),
			v.ErrorNote,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", txn.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// statisticsView is the JSON shape of the per-file summary.
type statisticsView struct {
	TotalInput    int                 `json:"total_input"`
	FilteredOut   int                 `json:"filtered_out"`
	Processed     int                 `json:"processed"`
	FallbackCount int                 `json:"fallback_count"`
	CountsByLabel map[model.Label]int `json:"counts_by_label"`
}

// WriteStatisticsFile writes the batch summary as JSON.
func WriteStatisticsFile(path string, stats *model.BatchStatistics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create statistics file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteStatistics(f, stats); err != nil {
		return err
	}
	return f.Close()
}

// WriteStatistics writes the batch summary as indented JSON.
func WriteStatistics(w io.Writer, stats *model.BatchStatistics) error {
	view := statisticsView{
		TotalInput:    stats.TotalInput,
		FilteredOut:   stats.FilteredOut,
		Processed:     stats.Processed,
		FallbackCount: stats.FallbackCount,
		CountsByLabel: stats.CountsByLabel,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	return nil
}
