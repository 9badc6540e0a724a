package engine

import (
	"context"
	"sync"
	"time"

	"github.com/medetshatayev/offshore/internal/model"
	"github.com/medetshatayev/offshore/internal/oracle"
)

// MockOracle is a test implementation of the oracle.Client interface. By
// default it answers every request with a well-formed response; tests can
// script failures per call index or override the response entirely.
type MockOracle struct {
	// RespondFunc, when set, replaces the default well-formed response.
	RespondFunc func(req oracle.GroupRequest) (oracle.GroupResponse, error)
	// FailFunc, when set, is consulted first with the 1-based call number;
	// a non-nil error is returned without building a response.
	FailFunc func(call int) error
	// Latency delays each call, useful for exercising the concurrency bound.
	Latency time.Duration

	calls       []oracle.GroupRequest
	inFlight    int
	maxInFlight int
	mu          sync.Mutex
}

// NewMockOracle creates a mock oracle client.
func NewMockOracle() *MockOracle {
	return &MockOracle{}
}

// ClassifyGroup records the call and answers per the configured script.
func (m *MockOracle) ClassifyGroup(ctx context.Context, req oracle.GroupRequest) (oracle.GroupResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	call := len(m.calls)
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.Latency > 0 {
		select {
		case <-ctx.Done():
			return oracle.GroupResponse{}, ctx.Err()
		case <-time.After(m.Latency):
		}
	}

	if m.FailFunc != nil {
		if err := m.FailFunc(call); err != nil {
			return oracle.GroupResponse{}, err
		}
	}

	if m.RespondFunc != nil {
		return m.RespondFunc(req)
	}

	return WellFormedResponse(req), nil
}

// WellFormedResponse builds a schema-valid response covering exactly the
// request's transaction ids.
func WellFormedResponse(req oracle.GroupRequest) oracle.GroupResponse {
	results := make([]oracle.VerdictPayload, len(req.TransactionIDs))
	for i, id := range req.TransactionIDs {
		results[i] = oracle.VerdictPayload{
			TransactionID: id,
			Label:         string(model.LabelOffshoreNo),
			Confidence:    0.9,
			Reasoning:     "No connection to any listed jurisdiction was found.",
			Sources:       []string{},
		}
	}
	return oracle.GroupResponse{Results: results}
}

// Calls returns a copy of all recorded requests.
func (m *MockOracle) Calls() []oracle.GroupRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]oracle.GroupRequest, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of requests received.
func (m *MockOracle) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// MaxInFlight returns the highest number of simultaneous requests observed.
func (m *MockOracle) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// Reset clears all recorded state.
func (m *MockOracle) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.inFlight = 0
	m.maxInFlight = 0
}
