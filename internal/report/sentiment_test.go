package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentimentScorePositive(t *testing.T) {
	assert.Greater(t, SentimentScore("I love this, it is great"), 0.0)
}

func TestSentimentScoreNegative(t *testing.T) {
	assert.Less(t, SentimentScore("This is terrible and bad"), 0.0)
}

func TestSentimentScoreEmpty(t *testing.T) {
	assert.Equal(t, 0.0, SentimentScore(""))
	assert.Equal(t, 0.0, SentimentScore("   "))
}

func TestSentimentScoreNeutral(t *testing.T) {
	assert.Equal(t, 0.0, SentimentScore("the app opened a window"))
}

func TestSentimentScoreStripsPunctuationAndCase(t *testing.T) {
	// "Great!" and "(bad)" must both count despite punctuation and casing.
	assert.Equal(t, 0.0, SentimentScore("Great! (bad)"))
	assert.Greater(t, SentimentScore("GREAT."), 0.0)
}

func TestSentimentScoreNormalizedByTokenCount(t *testing.T) {
	// One positive word out of five tokens.
	assert.InDelta(t, 0.2, SentimentScore("the search is really great"), 1e-9)
	assert.Equal(t, 1.0, SentimentScore("great"))
	assert.Equal(t, -1.0, SentimentScore("terrible"))
}

func TestSentimentScoreBounded(t *testing.T) {
	score := SentimentScore("love great best awful bad worst")
	assert.GreaterOrEqual(t, score, -1.0)
	assert.LessOrEqual(t, score, 1.0)
}
