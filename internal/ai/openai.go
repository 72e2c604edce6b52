package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const enrichTimeout = 10 * time.Second

const systemMessage = "You summarize customer feedback for an internal team. Reply with machine-parsable output only."

// chatClient is the slice of the OpenAI client the enricher needs. Tests
// inject a fake implementation.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIEnricher calls an OpenAI-compatible chat completion endpoint. Every
// failure path (transport, timeout, empty reply) degrades to the stub result
// with the underlying error attached as a diagnostic.
type OpenAIEnricher struct {
	client  chatClient
	model   string
	timeout time.Duration
}

// NewOpenAIEnricher builds a live enricher. baseURL may be empty for the
// default OpenAI endpoint; any OpenAI-compatible server works.
func NewOpenAIEnricher(apiKey, baseURL, model string) *OpenAIEnricher {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return &OpenAIEnricher{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: enrichTimeout,
	}
}

func (e *OpenAIEnricher) Live() bool { return true }

func (e *OpenAIEnricher) Enrich(ctx context.Context, review string, rating int) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Summarize the user review in 1-2 short sentences and suggest 2 concise actions.\n\n"+
			"Rating: %d\nReview: %s\n\n"+
			"Return a JSON object with keys: summary, actions (actions as a single string separated by '%s').",
		rating, review, ActionsSeparator)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return stubResult(review, rating), fmt.Errorf("enrichment call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return stubResult(review, rating), fmt.Errorf("enrichment returned no choices")
	}

	return parseReply(resp.Choices[0].Message.Content), nil
}

// parseReply extracts summary/actions from the model's text. Strict JSON
// first; if that fails, first line becomes the summary and the next lines are
// joined as actions. Model output is data, never evaluated.
func parseReply(text string) Result {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed Result
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		return parsed
	}

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Result{}
	}
	result := Result{Summary: lines[0]}
	if len(lines) > 1 {
		end := len(lines)
		if end > 3 {
			end = 3
		}
		result.Actions = strings.Join(lines[1:end], ActionsSeparator)
	}
	return result
}
