package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/medetshatayev/offshore/internal/model"
)

// ReplaceJurisdictions atomically replaces the full jurisdiction list. An
// import is all-or-nothing; a failed import leaves the previous list intact.
func (s *SQLiteStorage) ReplaceJurisdictions(ctx context.Context, entries []model.JurisdictionEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("refusing to replace jurisdiction list with an empty set")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM jurisdictions"); err != nil {
		return fmt.Errorf("failed to clear jurisdictions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO jurisdictions (iso_code, canonical_name, english_name)
		VALUES (?, ?, ?)
		ON CONFLICT(iso_code) DO UPDATE SET
			canonical_name = excluded.canonical_name,
			english_name = excluded.english_name,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entries {
		code := strings.ToUpper(strings.TrimSpace(e.ISOCode))
		if code == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, code, e.CanonicalName, e.EnglishName); err != nil {
			return fmt.Errorf("failed to insert jurisdiction %s: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit jurisdiction import: %w", err)
	}

	return nil
}

// ListJurisdictions returns all jurisdictions ordered by code.
func (s *SQLiteStorage) ListJurisdictions(ctx context.Context) ([]model.JurisdictionEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT iso_code, canonical_name, english_name
		FROM jurisdictions
		ORDER BY iso_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query jurisdictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.JurisdictionEntry
	for rows.Next() {
		var e model.JurisdictionEntry
		if err := rows.Scan(&e.ISOCode, &e.CanonicalName, &e.EnglishName); err != nil {
			return nil, fmt.Errorf("failed to scan jurisdiction: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jurisdictions: %w", err)
	}

	return entries, nil
}
