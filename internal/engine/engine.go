// Package engine orchestrates the offshore screening pipeline: signal
// extraction, grouped oracle classification with bounded concurrency, and
// ordered result aggregation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/medetshatayev/offshore/internal/common"
	"github.com/medetshatayev/offshore/internal/model"
	"github.com/medetshatayev/offshore/internal/oracle"
	"github.com/medetshatayev/offshore/internal/registry"
	"github.com/medetshatayev/offshore/internal/signal"
)

// Config controls grouping, concurrency, and the two retry layers.
type Config struct {
	// GroupSize is the number of transactions per oracle request.
	GroupSize int
	// MaxConcurrentGroups bounds simultaneous in-flight oracle calls
	// across the whole file.
	MaxConcurrentGroups int
	// SemanticAttempts is the number of full re-requests allowed when a
	// transport-successful response fails schema validation.
	SemanticAttempts int
	// RateLimit caps oracle calls per minute. Zero disables the limiter.
	RateLimit int
	// TransportRetry governs retries of individual oracle calls on
	// connection errors, timeouts, and transient HTTP statuses.
	TransportRetry common.RetryOptions
	// Progress, when set, is invoked after each group completes.
	Progress func(completedGroups, totalGroups int)
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		GroupSize:           10,
		MaxConcurrentGroups: 5,
		SemanticAttempts:    3,
		TransportRetry:      common.RetryOptions{MaxAttempts: 3},
	}
}

func (c Config) withDefaults() Config {
	if c.GroupSize <= 0 {
		c.GroupSize = 10
	}
	if c.MaxConcurrentGroups <= 0 {
		c.MaxConcurrentGroups = 5
	}
	if c.SemanticAttempts <= 0 {
		c.SemanticAttempts = 3
	}
	if c.TransportRetry.MaxAttempts <= 0 {
		c.TransportRetry.MaxAttempts = 3
	}
	return c
}

// Result pairs one input transaction with its signals and final verdict.
type Result struct {
	Transaction model.NormalizedTransaction
	Signals     model.SignalSet
	Verdict     model.ClassificationVerdict
}

// Engine runs the screening pipeline against a fixed registry snapshot.
type Engine struct {
	client    oracle.Client
	registry  *registry.Registry
	extractor *signal.Extractor
	limiter   *oracle.RateLimiter
	cfg       Config
	logger    *slog.Logger
}

// New creates a screening engine.
func New(client oracle.Client, reg *registry.Registry, cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()

	var limiter *oracle.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = oracle.NewRateLimiter(cfg.RateLimit)
	}

	return &Engine{
		client:    client,
		registry:  reg,
		extractor: signal.NewExtractor(reg, logger),
		limiter:   limiter,
		cfg:       cfg,
		logger:    logger,
	}
}

// Close releases the rate limiter, if any.
func (e *Engine) Close() {
	if e.limiter != nil {
		e.limiter.Close()
	}
}

// group is one unit of oracle work.
type group struct {
	id           string
	transactions []model.NormalizedTransaction
	signals      []model.SignalSet
}

// ClassifyFile screens every transaction and returns results in input order,
// exactly one per transaction id. The only error condition is empty input;
// oracle failures degrade to per-group fallback verdicts instead.
func (e *Engine) ClassifyFile(ctx context.Context, txns []model.NormalizedTransaction) ([]Result, *model.BatchStatistics, error) {
	if len(txns) == 0 {
		return nil, nil, common.ErrNoTransactions
	}

	signals := make(map[string]model.SignalSet, len(txns))
	for _, txn := range txns {
		signals[txn.ID] = e.extractor.Extract(txn)
	}

	groups := chunkTransactions(txns, signals, e.cfg.GroupSize)
	instructions := buildInstructions(e.registry)

	e.logger.Info("starting classification",
		"transactions", len(txns),
		"groups", len(groups),
		"group_size", e.cfg.GroupSize,
		"max_concurrent", e.cfg.MaxConcurrentGroups)

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		verdicts  = make(map[string]model.ClassificationVerdict, len(txns))
		completed int
	)

	sem := make(chan struct{}, e.cfg.MaxConcurrentGroups)

	for _, g := range groups {
		wg.Add(1)
		go func(g group) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			groupVerdicts := e.classifyGroup(ctx, g, instructions)

			mu.Lock()
			for id, v := range groupVerdicts {
				verdicts[id] = v
			}
			completed++
			done := completed
			mu.Unlock()

			if e.cfg.Progress != nil {
				e.cfg.Progress(done, len(groups))
			}
		}(g)
	}

	wg.Wait()

	results, err := assembleResults(txns, signals, verdicts)
	if err != nil {
		return nil, nil, err
	}

	stats := computeStatistics(results)
	e.logger.Info("classification complete",
		"processed", stats.Processed,
		"fallbacks", stats.FallbackCount)

	return results, stats, nil
}

// classifyGroup runs the semantic retry loop for one group. Transport retries
// happen inside each attempt; a schema failure re-requests the whole group
// with corrective instructions. It always returns a verdict for every id.
func (e *Engine) classifyGroup(ctx context.Context, g group, instructions string) map[string]model.ClassificationVerdict {
	ids := make([]string, len(g.transactions))
	for i, txn := range g.transactions {
		ids[i] = txn.ID
	}

	payload := buildGroupPayload(g.transactions, g.signals)

	var lastErr error
	for attempt := 1; attempt <= e.cfg.SemanticAttempts; attempt++ {
		req := oracle.GroupRequest{
			GroupID:        g.id,
			Instructions:   instructions,
			Payload:        payload,
			TransactionIDs: ids,
		}
		if attempt > 1 {
			req.Instructions = instructions + correctiveInstructions(lastErr)
		}

		resp, err := e.callOracle(ctx, req)
		if err == nil {
			err = oracle.ValidateGroupResponse(resp, ids)
			if err == nil {
				return verdictsFromResponse(resp)
			}
		}

		var schemaErr *oracle.SchemaError
		if !errors.As(err, &schemaErr) {
			// Transport exhausted or a permanent API error. Re-sending the
			// same request cannot help, so fall back immediately.
			e.logger.Error("oracle call failed, using fallback verdicts",
				"group_id", g.id,
				"transactions", len(ids),
				"error", err)
			return fallbackVerdicts(ids, fmt.Sprintf("oracle call failed: %v", err))
		}

		lastErr = err
		e.logger.Warn("oracle response failed validation, re-requesting group",
			"group_id", g.id,
			"attempt", attempt,
			"max_attempts", e.cfg.SemanticAttempts,
			"error", err)
	}

	e.logger.Error("oracle response invalid after all attempts, using fallback verdicts",
		"group_id", g.id,
		"transactions", len(ids),
		"error", lastErr)
	return fallbackVerdicts(ids, fmt.Sprintf("oracle response invalid after %d attempts: %v", e.cfg.SemanticAttempts, lastErr))
}

// callOracle performs one transport-retried oracle call. Schema failures are
// marked non-retryable so the transport layer hands them straight back to the
// semantic loop.
func (e *Engine) callOracle(ctx context.Context, req oracle.GroupRequest) (oracle.GroupResponse, error) {
	var resp oracle.GroupResponse

	err := common.WithRetry(ctx, func() error {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return &common.RetryableError{Err: err, Retryable: false}
			}
		}

		r, err := e.client.ClassifyGroup(ctx, req)
		if err != nil {
			var schemaErr *oracle.SchemaError
			if errors.As(err, &schemaErr) {
				return &common.RetryableError{Err: err, Retryable: false}
			}
			return err
		}

		resp = r
		return nil
	}, e.cfg.TransportRetry)

	return resp, err
}

// chunkTransactions splits the file into fixed-size groups, preserving input
// order within and across groups.
func chunkTransactions(txns []model.NormalizedTransaction, signals map[string]model.SignalSet, size int) []group {
	groups := make([]group, 0, (len(txns)+size-1)/size)

	for start := 0; start < len(txns); start += size {
		end := start + size
		if end > len(txns) {
			end = len(txns)
		}

		g := group{
			id:           uuid.NewString(),
			transactions: txns[start:end],
			signals:      make([]model.SignalSet, end-start),
		}
		for i, txn := range g.transactions {
			g.signals[i] = signals[txn.ID]
		}
		groups = append(groups, g)
	}

	return groups
}

// verdictsFromResponse converts a validated response into domain verdicts.
func verdictsFromResponse(resp oracle.GroupResponse) map[string]model.ClassificationVerdict {
	verdicts := make(map[string]model.ClassificationVerdict, len(resp.Results))
	for _, res := range resp.Results {
		verdicts[res.TransactionID] = model.ClassificationVerdict{
			TransactionID: res.TransactionID,
			Label:         model.Label(res.Label),
			Confidence:    res.Confidence,
			Reasoning:     res.Reasoning,
			Sources:       res.Sources,
		}
	}
	return verdicts
}

// fallbackVerdicts synthesizes the conservative verdict for every id in a
// failed group.
func fallbackVerdicts(ids []string, note string) map[string]model.ClassificationVerdict {
	verdicts := make(map[string]model.ClassificationVerdict, len(ids))
	for _, id := range ids {
		verdicts[id] = model.ClassificationVerdict{
			TransactionID: id,
			Label:         model.LabelOffshoreSuspect,
			Confidence:    0,
			Reasoning:     "Automatic classification unavailable, manual review required.",
			Sources:       []string{},
			ErrorNote:     note,
		}
	}
	return verdicts
}
