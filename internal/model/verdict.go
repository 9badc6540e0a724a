package model

import "fmt"

// Label is the offshore risk classification assigned to a transaction.
type Label string

// Classification labels.
const (
	LabelOffshoreYes     Label = "OFFSHORE_YES"
	LabelOffshoreSuspect Label = "OFFSHORE_SUSPECT"
	LabelOffshoreNo      Label = "OFFSHORE_NO"
)

// Valid reports whether the label is one of the known values.
func (l Label) Valid() bool {
	switch l {
	case LabelOffshoreYes, LabelOffshoreSuspect, LabelOffshoreNo:
		return true
	}
	return false
}

// Reasoning length bounds enforced on oracle output.
const (
	MinReasoningLength = 10
	MaxReasoningLength = 1000
)

// ClassificationVerdict is the final per-transaction outcome. Exactly one
// verdict exists per transaction id; it is either validated oracle output or
// a locally synthesized fallback (ErrorNote non-empty in that case).
type ClassificationVerdict struct {
	TransactionID string
	Label         Label
	Confidence    float64
	Reasoning     string
	Sources       []string
	ErrorNote     string
}

// Fallback reports whether this verdict was synthesized locally instead of
// being produced by the oracle.
func (v ClassificationVerdict) Fallback() bool {
	return v.ErrorNote != ""
}

// Validate checks the verdict against the oracle output contract.
func (v ClassificationVerdict) Validate() error {
	if v.TransactionID == "" {
		return fmt.Errorf("missing transaction id")
	}
	if !v.Label.Valid() {
		return fmt.Errorf("transaction %s: unknown label %q", v.TransactionID, v.Label)
	}
	if v.Confidence < 0 || v.Confidence > 1 {
		return fmt.Errorf("transaction %s: confidence %v out of range [0,1]", v.TransactionID, v.Confidence)
	}
	if len(v.Reasoning) < MinReasoningLength || len(v.Reasoning) > MaxReasoningLength {
		return fmt.Errorf("transaction %s: reasoning length %d outside [%d,%d]",
			v.TransactionID, len(v.Reasoning), MinReasoningLength, MaxReasoningLength)
	}
	return nil
}
