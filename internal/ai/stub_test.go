package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubEnricherDeterministic(t *testing.T) {
	stub := StubEnricher{}

	first, err := stub.Enrich(context.Background(), "Checkout crashed on payment", 1)
	require.NoError(t, err)
	second, err := stub.Enrich(context.Background(), "Checkout crashed on payment", 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStubEnricherActionTiers(t *testing.T) {
	tests := []struct {
		rating  int
		actions string
	}{
		{1, "Investigate issue | Contact user for more details"},
		{2, "Investigate issue | Contact user for more details"},
		{3, "Collect more examples | Consider UX improvements"},
		{4, "Thank the user | Consider promoting positive feedback"},
		{5, "Thank the user | Consider promoting positive feedback"},
	}

	stub := StubEnricher{}
	for _, tc := range tests {
		result, err := stub.Enrich(context.Background(), "some review", tc.rating)
		require.NoError(t, err)
		assert.Equal(t, tc.actions, result.Actions, "rating %d", tc.rating)
	}
}

func TestStubEnricherTruncatesSummary(t *testing.T) {
	stub := StubEnricher{}
	long := strings.Repeat("a", 500)

	result, err := stub.Enrich(context.Background(), long, 5)
	require.NoError(t, err)
	assert.Len(t, result.Summary, SummaryBudget)
	assert.Equal(t, long[:SummaryBudget], result.Summary)
}

func TestStubEnricherTruncatesByRunesNotBytes(t *testing.T) {
	stub := StubEnricher{}
	long := strings.Repeat("é", 450)

	result, err := stub.Enrich(context.Background(), long, 5)
	require.NoError(t, err)
	assert.Equal(t, SummaryBudget, len([]rune(result.Summary)))
}

func TestStubEnricherTrimsWhitespace(t *testing.T) {
	stub := StubEnricher{}

	result, err := stub.Enrich(context.Background(), "  solid app  ", 4)
	require.NoError(t, err)
	assert.Equal(t, "solid app", result.Summary)
}

func TestStubEnricherNotLive(t *testing.T) {
	assert.False(t, StubEnricher{}.Live())
}
