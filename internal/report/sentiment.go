package report

import "strings"

// Fixed polarity lexicons for the per-token sentiment count.
var (
	positiveWords = wordSet("good", "great", "excellent", "love", "liked", "awesome",
		"nice", "satisfied", "happy", "pleasant", "fantastic", "amazing", "best")
	negativeWords = wordSet("bad", "terrible", "awful", "hate", "dislike", "poor",
		"unsatisfied", "unhappy", "problem", "issue", "worst", "bug")
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

const surroundingPunct = ".,!?;:()[]\"'"

// SentimentScore returns (positive − negative) / max(1, tokens), in [-1, 1].
// Tokens are whitespace-split, stripped of surrounding punctuation and
// lowercased. Empty input scores 0.
func SentimentScore(text string) float64 {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return 0.0
	}

	var pos, neg int
	for _, token := range tokens {
		word := strings.ToLower(strings.Trim(token, surroundingPunct))
		if _, ok := positiveWords[word]; ok {
			pos++
		}
		if _, ok := negativeWords[word]; ok {
			neg++
		}
	}
	return float64(pos-neg) / float64(len(tokens))
}
