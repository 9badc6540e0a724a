package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medetshatayev/offshore/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestNewSQLiteStorageEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}

func TestNewSQLiteStorageCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "ref.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Migrate(context.Background()))
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestReplaceAndListJurisdictions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	entries := []model.JurisdictionEntry{
		{CanonicalName: "Панама", ISOCode: "pa", EnglishName: "Panama"},
		{CanonicalName: "Каймановы острова", ISOCode: "KY", EnglishName: "Cayman Islands"},
		{CanonicalName: "Штат Вайоминг", ISOCode: "US-WY", EnglishName: "Wyoming"},
	}
	require.NoError(t, store.ReplaceJurisdictions(ctx, entries))

	got, err := store.ListJurisdictions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "KY", got[0].ISOCode)
	assert.Equal(t, "PA", got[1].ISOCode, "codes are uppercased on import")
	assert.Equal(t, "US-WY", got[2].ISOCode)
	assert.Equal(t, "Каймановы острова", got[0].CanonicalName)
	assert.Equal(t, "Cayman Islands", got[0].EnglishName)
}

func TestReplaceJurisdictionsOverwritesPreviousList(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first := []model.JurisdictionEntry{
		{CanonicalName: "Панама", ISOCode: "PA", EnglishName: "Panama"},
		{CanonicalName: "Белиз", ISOCode: "BZ", EnglishName: "Belize"},
	}
	require.NoError(t, store.ReplaceJurisdictions(ctx, first))

	second := []model.JurisdictionEntry{
		{CanonicalName: "Каймановы острова", ISOCode: "KY", EnglishName: "Cayman Islands"},
	}
	require.NoError(t, store.ReplaceJurisdictions(ctx, second))

	got, err := store.ListJurisdictions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "KY", got[0].ISOCode)
}

func TestReplaceJurisdictionsRejectsEmptySet(t *testing.T) {
	store := newTestStorage(t)
	assert.Error(t, store.ReplaceJurisdictions(context.Background(), nil))
}

func TestListJurisdictionsEmpty(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.ListJurisdictions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
