package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"revu-backend/internal/ai"
	"revu-backend/internal/models"
	"revu-backend/internal/repository"
	"revu-backend/internal/service"
)

const (
	defaultRecentLimit = 5
	maxRecentLimit     = 50
)

type submitter interface {
	Submit(ctx context.Context, in service.SubmitInput) (*service.SubmitResult, error)
}

type recentLister interface {
	ListRecent(ctx context.Context, limit int) ([]*models.Feedback, error)
}

type FeedbackHandler struct {
	pipeline submitter
	store    recentLister
	enricher ai.Enricher
}

func NewFeedbackHandler(pipeline submitter, store recentLister, enricher ai.Enricher) *FeedbackHandler {
	return &FeedbackHandler{
		pipeline: pipeline,
		store:    store,
		enricher: enricher,
	}
}

type SubmitFeedbackRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// --- POST /feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.pipeline.Submit(r.Context(), service.SubmitInput{
		Rating: req.Rating,
		Review: req.Review,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyReview),
			errors.Is(err, service.ErrReviewTooLong),
			errors.Is(err, repository.ErrInvalidRating):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			log.Printf("Error saving feedback: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save feedback, please try again"})
		}
		return
	}

	resp := map[string]interface{}{
		"message":  "feedback submitted successfully",
		"feedback": result.Feedback,
	}
	if result.Warning != "" {
		resp["warning"] = result.Warning
	}
	writeJSON(w, http.StatusCreated, resp)
}

// --- GET /feedback/recent ---

func (h *FeedbackHandler) RecentFeedback(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	feedbacks, err := h.store.ListRecent(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing recent feedback: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"feedback": feedbacks})
}

// --- GET /ai/status ---

func (h *FeedbackHandler) AIStatus(w http.ResponseWriter, r *http.Request) {
	mode := "stub"
	if h.enricher.Live() {
		mode = "live"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"live": h.enricher.Live(),
		"mode": mode,
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
