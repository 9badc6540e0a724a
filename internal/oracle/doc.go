// Package oracle provides clients for the external classification service
// that issues per-transaction offshore verdicts. It supports multiple
// providers behind a single interface, with strict response schema
// validation, rate limiting, and transport error tagging for the retry
// layers in the engine.
package oracle
