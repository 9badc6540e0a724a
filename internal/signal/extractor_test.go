package signal

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medetshatayev/offshore/internal/model"
	"github.com/medetshatayev/offshore/internal/registry"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	entries := []model.JurisdictionEntry{
		{CanonicalName: "Каймановы острова", ISOCode: "KY", EnglishName: "Cayman Islands"},
		{CanonicalName: "Панама", ISOCode: "PA", EnglishName: "Panama"},
		{CanonicalName: "Штат Вайоминг", ISOCode: "US-WY", EnglishName: "Wyoming"},
	}
	reg := registry.New(entries, registry.DefaultConfig(), slog.Default())
	return NewExtractor(reg, slog.Default())
}

func TestExtractSwiftSignals(t *testing.T) {
	e := newTestExtractor(t)

	t.Run("offshore swift country", func(t *testing.T) {
		s := e.Extract(model.NormalizedTransaction{ID: "t1", SwiftCode: "KYXXKYKY"})
		assert.Equal(t, "KY", s.SwiftCountryCode)
		require.NotNil(t, s.SwiftIsOffshore)
		assert.True(t, *s.SwiftIsOffshore)
	})

	t.Run("non offshore swift country", func(t *testing.T) {
		s := e.Extract(model.NormalizedTransaction{ID: "t2", SwiftCode: "DEUTDEFF"})
		assert.Equal(t, "DE", s.SwiftCountryCode)
		require.NotNil(t, s.SwiftIsOffshore)
		assert.False(t, *s.SwiftIsOffshore)
	})

	t.Run("malformed swift yields absent signal", func(t *testing.T) {
		s := e.Extract(model.NormalizedTransaction{ID: "t3", SwiftCode: "NOT-A-BIC"})
		assert.Empty(t, s.SwiftCountryCode)
		assert.Nil(t, s.SwiftIsOffshore)
	})
}

func TestExtractCountryAndCityMatches(t *testing.T) {
	e := newTestExtractor(t)

	t.Run("listed country code", func(t *testing.T) {
		s := e.Extract(model.NormalizedTransaction{ID: "t1", CountryCode: "PA"})
		require.NotNil(t, s.CountryCodeMatch)
		assert.Equal(t, "Panama (PA)", s.CountryCodeMatch.Value)
		assert.Equal(t, 1.0, s.CountryCodeMatch.Score)
	})

	t.Run("composite upgrade from bank address", func(t *testing.T) {
		s := e.Extract(model.NormalizedTransaction{
			ID:          "t2",
			CountryCode: "US",
			BankAddress: "30 N Gould St, Sheridan, Wyoming 82801",
		})
		require.NotNil(t, s.CountryCodeMatch)
		assert.Equal(t, "Wyoming (US-WY)", s.CountryCodeMatch.Value)
	})

	t.Run("unlisted country without region hint", func(t *testing.T) {
		s := e.Extract(model.NormalizedTransaction{ID: "t3", CountryCode: "US"})
		assert.Nil(t, s.CountryCodeMatch)
	})

	t.Run("fuzzy country field match", func(t *testing.T) {
		s := e.Extract(model.NormalizedTransaction{ID: "t4", BankCountryField: "Cayman Islnds"})
		require.NotNil(t, s.CountryNameMatch)
		assert.Equal(t, "Cayman Islands (KY)", s.CountryNameMatch.Value)
		assert.GreaterOrEqual(t, s.CountryNameMatch.Score, 0.80)
	})

	t.Run("city match", func(t *testing.T) {
		s := e.Extract(model.NormalizedTransaction{ID: "t5", City: "Panama"})
		require.NotNil(t, s.CityMatch)
		assert.Equal(t, "Panama (PA)", s.CityMatch.Value)
	})

	t.Run("short candidate ignored", func(t *testing.T) {
		s := e.Extract(model.NormalizedTransaction{ID: "t6", City: "AB"})
		assert.Nil(t, s.CityMatch)
	})
}

func TestExtractIsDeterministic(t *testing.T) {
	e := newTestExtractor(t)

	txn := model.NormalizedTransaction{
		ID:               "t1",
		CountryCode:      "KY",
		BankCountryField: "Cayman Islands",
		City:             "George Town",
		SwiftCode:        "KYXXKYKY",
	}

	first := e.Extract(txn)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Extract(txn))
	}
}

func TestSignalSetAnyOffshore(t *testing.T) {
	e := newTestExtractor(t)

	offshore := e.Extract(model.NormalizedTransaction{ID: "t1", CountryCode: "KY"})
	assert.True(t, offshore.AnyOffshore())

	clean := e.Extract(model.NormalizedTransaction{ID: "t2", CountryCode: "DE", SwiftCode: "DEUTDEFF"})
	assert.False(t, clean.AnyOffshore())
}
