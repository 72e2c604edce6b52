package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"revu-backend/internal/ai"
	"revu-backend/internal/models"
	"revu-backend/internal/repository"
	"revu-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	result *service.SubmitResult
	err    error
	last   service.SubmitInput
}

func (s *fakeSubmitter) Submit(_ context.Context, in service.SubmitInput) (*service.SubmitResult, error) {
	s.last = in
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type fakeRecentLister struct {
	records []*models.Feedback
	limit   int
}

func (s *fakeRecentLister) ListRecent(_ context.Context, limit int) ([]*models.Feedback, error) {
	s.limit = limit
	return s.records, nil
}

func submitBody(rating int, review string) *strings.Reader {
	body, _ := json.Marshal(map[string]interface{}{"rating": rating, "review": review})
	return strings.NewReader(string(body))
}

func TestSubmitFeedbackSuccess(t *testing.T) {
	submitted := &models.Feedback{
		Seq:       7,
		Rating:    5,
		Review:    "love it",
		Summary:   "love it",
		Actions:   "Thank the user",
		CreatedAt: time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC),
	}
	pipeline := &fakeSubmitter{result: &service.SubmitResult{Feedback: submitted}}
	h := NewFeedbackHandler(pipeline, &fakeRecentLister{}, ai.StubEnricher{})

	req := httptest.NewRequest(http.MethodPost, "/feedback", submitBody(5, "love it"))
	rec := httptest.NewRecorder()
	h.SubmitFeedback(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, service.SubmitInput{Rating: 5, Review: "love it"}, pipeline.last)

	var resp struct {
		Feedback struct {
			ID        int64  `json:"id"`
			Timestamp string `json:"timestamp"`
		} `json:"feedback"`
		Warning string `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Feedback.ID)
	assert.Equal(t, "2024-01-10 08:30:00 UTC", resp.Feedback.Timestamp)
	assert.Empty(t, resp.Warning)
}

func TestSubmitFeedbackWarningPassedThrough(t *testing.T) {
	pipeline := &fakeSubmitter{result: &service.SubmitResult{
		Feedback: &models.Feedback{Seq: 1, Rating: 2},
		Warning:  "AI enrichment unavailable: model timeout",
	}}
	h := NewFeedbackHandler(pipeline, &fakeRecentLister{}, ai.StubEnricher{})

	req := httptest.NewRequest(http.MethodPost, "/feedback", submitBody(2, "broken"))
	rec := httptest.NewRecorder()
	h.SubmitFeedback(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "model timeout")
}

func TestSubmitFeedbackValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"empty review", service.ErrEmptyReview},
		{"too long", service.ErrReviewTooLong},
		{"bad rating", repository.ErrInvalidRating},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewFeedbackHandler(&fakeSubmitter{err: tc.err}, &fakeRecentLister{}, ai.StubEnricher{})

			req := httptest.NewRequest(http.MethodPost, "/feedback", submitBody(3, "x"))
			rec := httptest.NewRecorder()
			h.SubmitFeedback(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestSubmitFeedbackPersistenceFailure(t *testing.T) {
	h := NewFeedbackHandler(&fakeSubmitter{err: assert.AnError}, &fakeRecentLister{}, ai.StubEnricher{})

	req := httptest.NewRequest(http.MethodPost, "/feedback", submitBody(4, "fine"))
	rec := httptest.NewRecorder()
	h.SubmitFeedback(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSubmitFeedbackRejectsBadBody(t *testing.T) {
	h := NewFeedbackHandler(&fakeSubmitter{}, &fakeRecentLister{}, ai.StubEnricher{})

	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.SubmitFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecentFeedbackDefaultsAndCaps(t *testing.T) {
	store := &fakeRecentLister{}
	h := NewFeedbackHandler(&fakeSubmitter{}, store, ai.StubEnricher{})

	req := httptest.NewRequest(http.MethodGet, "/feedback/recent", nil)
	rec := httptest.NewRecorder()
	h.RecentFeedback(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, store.limit)

	req = httptest.NewRequest(http.MethodGet, "/feedback/recent?limit=500", nil)
	rec = httptest.NewRecorder()
	h.RecentFeedback(rec, req)
	assert.Equal(t, 50, store.limit)
}

func TestRecentFeedbackRejectsBadLimit(t *testing.T) {
	h := NewFeedbackHandler(&fakeSubmitter{}, &fakeRecentLister{}, ai.StubEnricher{})

	req := httptest.NewRequest(http.MethodGet, "/feedback/recent?limit=abc", nil)
	rec := httptest.NewRecorder()
	h.RecentFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAIStatusStub(t *testing.T) {
	h := NewFeedbackHandler(&fakeSubmitter{}, &fakeRecentLister{}, ai.StubEnricher{})

	req := httptest.NewRequest(http.MethodGet, "/ai/status", nil)
	rec := httptest.NewRecorder()
	h.AIStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"live": false, "mode": "stub"}`, rec.Body.String())
}
