// Package ai derives a short summary and suggested follow-up actions from a
// raw review, either through a live LLM backend or a deterministic stub.
package ai

import "context"

// SummaryBudget caps the stub summary length in characters.
const SummaryBudget = 400

// ActionsSeparator joins the individual suggested actions into one string.
const ActionsSeparator = " | "

// Result is the fixed two-field enrichment output. Empty string is the
// defined absence value for both fields; neither is ever "missing".
type Result struct {
	Summary string `json:"summary"`
	Actions string `json:"actions"`
}

// Enricher produces enrichment for a validated review. Enrich always returns
// a usable Result; a non-nil error is diagnostic only and means the result
// was degraded to the stub output. Callers surface it as a warning, never as
// a request failure.
type Enricher interface {
	Enrich(ctx context.Context, review string, rating int) (Result, error)
	Live() bool
}
