// Package service implements the submission pipeline: validate the incoming
// review, enrich it (best-effort), persist the record, and fan out alerts.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"revu-backend/internal/ai"
	"revu-backend/internal/models"
	"revu-backend/internal/notify"
)

// MaxReviewChars bounds the review length, counted in characters.
const MaxReviewChars = 600

// escalationThreshold is the highest rating that still triggers an alert.
const escalationThreshold = 2

var (
	ErrEmptyReview   = errors.New("review must not be empty")
	ErrReviewTooLong = fmt.Errorf("review must be at most %d characters", MaxReviewChars)
)

// Store is the persistence the pipeline needs.
type Store interface {
	Append(ctx context.Context, rating int, review, summary, actions string) (*models.Feedback, error)
}

type Pipeline struct {
	store    Store
	enricher ai.Enricher
	notifier notify.Notifier
}

func NewPipeline(store Store, enricher ai.Enricher, notifier notify.Notifier) *Pipeline {
	return &Pipeline{
		store:    store,
		enricher: enricher,
		notifier: notifier,
	}
}

// SubmitInput is one request-scoped submission. Rating is structurally
// constrained to 1..5 by the input surface; the store re-checks it.
type SubmitInput struct {
	Rating int
	Review string
}

// SubmitResult carries the persisted record. Warning is set when enrichment
// degraded to the stub output; the record is stored regardless.
type SubmitResult struct {
	Feedback *models.Feedback
	Warning  string
}

// Submit validates the review, enriches it and appends the record. Validation
// failures reject the submission with nothing persisted. Enrichment failures
// are non-fatal. A persistence failure is fatal and returns the store error.
func (p *Pipeline) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	review := strings.TrimSpace(in.Review)
	if review == "" {
		return nil, ErrEmptyReview
	}
	if utf8.RuneCountInString(review) > MaxReviewChars {
		return nil, ErrReviewTooLong
	}

	enrichment, enrichErr := p.enricher.Enrich(ctx, review, in.Rating)

	feedback, err := p.store.Append(ctx, in.Rating, review, enrichment.Summary, enrichment.Actions)
	if err != nil {
		return nil, err
	}

	if feedback.Rating <= escalationThreshold {
		// Fire the alert in a background goroutine (non-blocking)
		go func() {
			subject := fmt.Sprintf("Low-rating feedback received (%d★)", feedback.Rating)
			if err := p.notifier.Publish(context.Background(), subject, escalationMessage(feedback)); err != nil {
				log.Printf("Error publishing alert: %v", err)
			}
		}()
	}

	result := &SubmitResult{Feedback: feedback}
	if enrichErr != nil {
		log.Printf("Enrichment degraded for feedback #%d: %v", feedback.Seq, enrichErr)
		result.Warning = fmt.Sprintf("AI enrichment unavailable: %v", enrichErr)
	}
	return result, nil
}

func escalationMessage(f *models.Feedback) string {
	stars := strings.Repeat("★", f.Rating) + strings.Repeat("☆", 5-f.Rating)
	msg := fmt.Sprintf("New feedback #%d\nRating: %s\nReview: %s", f.Seq, stars, f.Review)
	if f.Summary != "" {
		msg += "\nAI summary: " + f.Summary
	}
	if f.Actions != "" {
		msg += "\nSuggested actions: " + f.Actions
	}
	return msg
}
