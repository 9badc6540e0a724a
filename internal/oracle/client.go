package oracle

import (
	"context"
	"time"
)

// Client defines the interface for classification oracle providers.
// Implementations return transport problems as *common.RetryableError and
// undecodable response bodies as *SchemaError, so the engine can apply its
// transport and semantic retry policies independently.
type Client interface {
	ClassifyGroup(ctx context.Context, req GroupRequest) (GroupResponse, error)
}

// GroupRequest is one classification request covering a group of
// transactions.
type GroupRequest struct {
	GroupID        string
	Instructions   string   // system-level analysis rules
	Payload        string   // per-transaction blocks
	TransactionIDs []string // ids the response must cover exactly
}

// GroupResponse is the oracle's decoded answer for one group.
type GroupResponse struct {
	Results []VerdictPayload `json:"results"`
}

// VerdictPayload is the wire form of a single per-transaction verdict.
type VerdictPayload struct {
	TransactionID string   `json:"transaction_id"`
	Label         string   `json:"label"`
	Confidence    float64  `json:"confidence"`
	Reasoning     string   `json:"reasoning"`
	Sources       []string `json:"sources"`
}

// Config holds configuration for oracle clients.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string // override for gateway deployments; empty = provider default
	Timeout     time.Duration
	RateLimit   int // requests per minute
	Temperature float64
	MaxTokens   int
}
