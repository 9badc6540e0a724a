// Package ingest reads payment export files into normalized transactions,
// applying the pre-pipeline business filters.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/medetshatayev/offshore/internal/model"
)

// Options controls ingest filtering.
type Options struct {
	// Direction is assigned to every row; export files carry one
	// direction per file.
	Direction model.Direction
	// MinAmountMinor drops transactions below the business threshold.
	// Zero keeps everything.
	MinAmountMinor int64
}

// Result is the outcome of reading one file.
type Result struct {
	Transactions []model.NormalizedTransaction
	// Total is the number of data rows in the file.
	Total int
	// FilteredOut counts rows dropped by status, threshold, or
	// unusable data before classification.
	FilteredOut int
}

// Statuses that mean the payment never went through; such rows are dropped
// before screening.
var droppedStatuses = map[string]bool{
	"rejected":  true,
	"canceled":  true,
	"cancelled": true,
	"failed":    true,
	"отказано":  true,
	"отменен":   true,
}

// ReadFile reads and filters a CSV export file.
func ReadFile(path string, opts Options, logger *slog.Logger) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, opts, logger)
}

// Read reads and filters CSV data. The first row must be a header; columns
// are matched by name, case-insensitively, and unknown columns are ignored.
func Read(r io.Reader, opts Options, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !opts.Direction.Valid() {
		return Result{}, fmt.Errorf("invalid direction %q", opts.Direction)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["id"]; !ok {
		return Result{}, fmt.Errorf("input file has no id column")
	}

	var res Result
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		res.Total++

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		id := field("id")
		if id == "" {
			logger.Warn("skipping row without id", "line", line)
			res.FilteredOut++
			continue
		}

		if status := strings.ToLower(field("status")); droppedStatuses[status] {
			logger.Debug("skipping row by payment status", "id", id, "status", status)
			res.FilteredOut++
			continue
		}

		amount, err := parseAmountMinor(field("amount_minor"))
		if err != nil {
			logger.Warn("skipping row with unparseable amount", "id", id, "error", err)
			res.FilteredOut++
			continue
		}
		if opts.MinAmountMinor > 0 && amount < opts.MinAmountMinor {
			res.FilteredOut++
			continue
		}

		res.Transactions = append(res.Transactions, model.NormalizedTransaction{
			ID:                  id,
			Direction:           opts.Direction,
			AmountMinor:         amount,
			CounterpartyName:    field("counterparty"),
			CounterpartyAddress: field("counterparty_address"),
			NaturalPerson:       parseBool(field("natural_person")),
			BankName:            field("bank_name"),
			BankAddress:         field("bank_address"),
			BankCountryField:    field("bank_country"),
			CountryCode:         field("country_code"),
			City:                field("city"),
			SwiftCode:           field("swift_code"),
			CorrespondentInfo:   field("correspondent_info"),
			PaymentDetails:      field("payment_details"),
		})
	}

	logger.Info("input file read",
		"rows", res.Total,
		"kept", len(res.Transactions),
		"filtered_out", res.FilteredOut)

	return res, nil
}

// parseAmountMinor reads a signed integer amount and normalizes its sign.
// The amount column is in minor currency units already.
func parseAmountMinor(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, " ", "")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = -v
	}
	return v, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}
