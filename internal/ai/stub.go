package ai

import (
	"context"
	"strings"
)

// StubEnricher is the deterministic fallback used when no live backend is
// configured or a live call fails. Same input, same output, always.
type StubEnricher struct{}

func (StubEnricher) Live() bool { return false }

func (StubEnricher) Enrich(_ context.Context, review string, rating int) (Result, error) {
	return stubResult(review, rating), nil
}

func stubResult(review string, rating int) Result {
	summary := strings.TrimSpace(review)
	if runes := []rune(summary); len(runes) > SummaryBudget {
		summary = string(runes[:SummaryBudget])
	}

	// Three fixed tiers keyed on the rating, not a continuous function.
	var actions []string
	switch {
	case rating <= 2:
		actions = []string{"Investigate issue", "Contact user for more details"}
	case rating == 3:
		actions = []string{"Collect more examples", "Consider UX improvements"}
	default:
		actions = []string{"Thank the user", "Consider promoting positive feedback"}
	}

	return Result{
		Summary: summary,
		Actions: strings.Join(actions, ActionsSeparator),
	}
}
