package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/medetshatayev/offshore/internal/model"
)

// SchemaError reports that a transport-successful oracle response failed
// schema validation. The engine treats it as a semantic failure: the whole
// group is re-requested, never transport-retried.
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return "oracle response schema: " + e.Detail
}

func schemaErrorf(format string, args ...any) *SchemaError {
	return &SchemaError{Detail: fmt.Sprintf(format, args...)}
}

// DecodeGroupResponse parses the oracle's textual answer into a
// GroupResponse. Markdown code fences are tolerated; anything else that is
// not the documented JSON shape is a *SchemaError.
func DecodeGroupResponse(content string) (GroupResponse, error) {
	content = cleanMarkdownWrapper(content)
	if strings.TrimSpace(content) == "" {
		return GroupResponse{}, schemaErrorf("empty response content")
	}

	var resp GroupResponse
	dec := json.NewDecoder(strings.NewReader(content))
	if err := dec.Decode(&resp); err != nil {
		return GroupResponse{}, schemaErrorf("invalid JSON: %v", err)
	}

	// Normalize null sources and drop anything that is not a URL.
	for i := range resp.Results {
		resp.Results[i].Sources = normalizeSources(resp.Results[i].Sources)
	}

	return resp, nil
}

// ValidateGroupResponse checks a decoded response against the request's id
// set and the verdict field contract. Partial, duplicate, or surplus ids are
// all schema failures; they are never tolerated silently.
func ValidateGroupResponse(resp GroupResponse, wantIDs []string) error {
	if len(resp.Results) == 0 {
		return schemaErrorf("empty results array")
	}

	seen := make(map[string]bool, len(resp.Results))
	for _, res := range resp.Results {
		v := model.ClassificationVerdict{
			TransactionID: res.TransactionID,
			Label:         model.Label(res.Label),
			Confidence:    res.Confidence,
			Reasoning:     res.Reasoning,
			Sources:       res.Sources,
		}
		if err := v.Validate(); err != nil {
			return schemaErrorf("%v", err)
		}
		if seen[res.TransactionID] {
			return schemaErrorf("duplicate transaction id %s", res.TransactionID)
		}
		seen[res.TransactionID] = true
	}

	for _, id := range wantIDs {
		if !seen[id] {
			return schemaErrorf("missing transaction id %s", id)
		}
	}
	if len(seen) != len(wantIDs) {
		return schemaErrorf("response covers %d ids, request had %d", len(seen), len(wantIDs))
	}

	return nil
}

func normalizeSources(sources []string) []string {
	validated := make([]string, 0, len(sources))
	for _, s := range sources {
		if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
			validated = append(validated, s)
		}
	}
	return validated
}
