package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validVerdict() ClassificationVerdict {
	return ClassificationVerdict{
		TransactionID: "txn-001",
		Label:         LabelOffshoreYes,
		Confidence:    0.9,
		Reasoning:     "Bank is registered in a listed jurisdiction.",
		Sources:       []string{"https://example.com"},
	}
}

func TestVerdictValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClassificationVerdict)
		valid  bool
	}{
		{name: "valid", mutate: func(*ClassificationVerdict) {}, valid: true},
		{name: "missing id", mutate: func(v *ClassificationVerdict) { v.TransactionID = "" }},
		{name: "unknown label", mutate: func(v *ClassificationVerdict) { v.Label = "OFFSHORE_MAYBE" }},
		{name: "negative confidence", mutate: func(v *ClassificationVerdict) { v.Confidence = -0.1 }},
		{name: "confidence above one", mutate: func(v *ClassificationVerdict) { v.Confidence = 1.1 }},
		{name: "reasoning too short", mutate: func(v *ClassificationVerdict) { v.Reasoning = "short" }},
		{name: "reasoning too long", mutate: func(v *ClassificationVerdict) { v.Reasoning = strings.Repeat("y", 1001) }},
		{name: "boundary confidence zero", mutate: func(v *ClassificationVerdict) { v.Confidence = 0 }, valid: true},
		{name: "boundary confidence one", mutate: func(v *ClassificationVerdict) { v.Confidence = 1 }, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validVerdict()
			tt.mutate(&v)
			err := v.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestVerdictFallback(t *testing.T) {
	v := validVerdict()
	assert.False(t, v.Fallback())

	v.ErrorNote = "oracle call failed"
	assert.True(t, v.Fallback())
}

func TestJurisdictionEntryComposite(t *testing.T) {
	plain := JurisdictionEntry{ISOCode: "KY"}
	assert.False(t, plain.Composite())
	assert.Equal(t, "KY", plain.CountryCode())

	composite := JurisdictionEntry{ISOCode: "US-WY"}
	assert.True(t, composite.Composite())
	assert.Equal(t, "US", composite.CountryCode())
}

func TestDirectionValid(t *testing.T) {
	assert.True(t, DirectionIncoming.Valid())
	assert.True(t, DirectionOutgoing.Valid())
	assert.False(t, Direction("sideways").Valid())
}
