package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"revu-backend/internal/models"
	"revu-backend/internal/report"
	"revu-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionDuration = 24 * time.Hour
	defaultPageSize = 20
	maxPageSize     = 100
	// defaultWindowDays matches the dashboard's default date range.
	defaultWindowDays = 14
)

type AdminHandler struct {
	reports       *report.Service
	password      string
	sessionSecret string
}

func NewAdminHandler(reports *report.Service, password, sessionSecret string) *AdminHandler {
	return &AdminHandler{
		reports:       reports,
		password:      password,
		sessionSecret: sessionSecret,
	}
}

type LoginRequest struct {
	Password string `json:"password"`
}

// --- POST /admin/login ---

// Login exchanges the shared admin password for a session token. With no
// password configured the dashboard is open and any login attempt succeeds.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if h.password != "" && req.Password != h.password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "incorrect password"})
		return
	}

	sessionID := uuid.New().String()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"scope": "admin",
		"jti":   sessionID,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(sessionDuration).Unix(),
	})

	tokenString, err := token.SignedString([]byte(h.sessionSecret))
	if err != nil {
		log.Printf("Error signing session token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	log.Printf("🔑 Admin session opened (ID: %s)", sessionID)
	writeJSON(w, http.StatusOK, map[string]string{"token": tokenString})
}

// feedbackRow is one dashboard listing entry, a record plus its lexicon
// sentiment score.
type feedbackRow struct {
	ID        int64   `json:"id"`
	Rating    int     `json:"rating"`
	Review    string  `json:"review"`
	Summary   string  `json:"summary"`
	Actions   string  `json:"actions"`
	Timestamp string  `json:"timestamp"`
	Sentiment float64 `json:"sentiment"`
}

func toRow(f *models.Feedback) feedbackRow {
	return feedbackRow{
		ID:        f.Seq,
		Rating:    f.Rating,
		Review:    f.Review,
		Summary:   f.Summary,
		Actions:   f.Actions,
		Timestamp: models.FormatTimestamp(f.CreatedAt),
		Sentiment: report.SentimentScore(f.Summary + " " + f.Review + " " + f.Actions),
	}
}

// --- GET /admin/feedback ---

func (h *AdminHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	records, ok := h.filtered(w, r)
	if !ok {
		return
	}

	page, pageSize, err := parsePagination(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Latest first for display; the store returns insertion order.
	rows := make([]feedbackRow, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rows = append(rows, toRow(records[i]))
	}

	pageRows := report.Paginate(rows, pageSize, page)
	if pageRows == nil {
		pageRows = []feedbackRow{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":     len(rows),
		"page":      page,
		"page_size": pageSize,
		"feedback":  pageRows,
	})
}

// --- GET /admin/metrics ---

func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	records, ok := h.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Aggregate(records))
}

// --- GET /admin/trend ---

func (h *AdminHandler) Trend(w http.ResponseWriter, r *http.Request) {
	records, ok := h.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"points": report.DailyTrend(records)})
}

// --- GET /admin/distribution ---

func (h *AdminHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	records, ok := h.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"distribution": report.RatingDistribution(records)})
}

// --- GET /admin/export.csv ---

func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := h.filtered(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="feedback_filtered.csv"`)
	if err := report.WriteCSV(w, records); err != nil {
		log.Printf("Error writing CSV export: %v", err)
	}
}

// --- Helpers ---

// filtered parses the common filter parameters and loads the matching
// records, writing the error response itself on failure.
func (h *AdminHandler) filtered(w http.ResponseWriter, r *http.Request) ([]*models.Feedback, bool) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, false
	}

	records, err := h.reports.Filtered(r.Context(), filter)
	if err != nil {
		log.Printf("Error loading filtered feedback: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return nil, false
	}
	return records, true
}

// parseListFilter reads from/to/ratings/q. Dates default to the last 14 days.
// A missing ratings parameter means all five; an explicitly empty one matches
// nothing (literal containment).
func parseListFilter(r *http.Request) (repository.ListFilter, error) {
	query := r.URL.Query()
	now := time.Now().UTC()

	from := now.AddDate(0, 0, -defaultWindowDays)
	to := now
	var err error
	if raw := query.Get("from"); raw != "" {
		if from, err = time.ParseInLocation("2006-01-02", raw, time.UTC); err != nil {
			return repository.ListFilter{}, fmt.Errorf("invalid 'from' date, expected YYYY-MM-DD")
		}
	}
	if raw := query.Get("to"); raw != "" {
		if to, err = time.ParseInLocation("2006-01-02", raw, time.UTC); err != nil {
			return repository.ListFilter{}, fmt.Errorf("invalid 'to' date, expected YYYY-MM-DD")
		}
	}

	ratings := []int{1, 2, 3, 4, 5}
	if query.Has("ratings") {
		ratings = []int{}
		for _, part := range strings.Split(query.Get("ratings"), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			rating, err := strconv.Atoi(part)
			if err != nil || rating < 1 || rating > 5 {
				return repository.ListFilter{}, fmt.Errorf("invalid rating %q, expected 1-5", part)
			}
			ratings = append(ratings, rating)
		}
	}

	return repository.ListFilter{
		From:    from,
		To:      to,
		Ratings: ratings,
		Query:   strings.TrimSpace(query.Get("q")),
	}, nil
}

func parsePagination(r *http.Request) (page, pageSize int, err error) {
	page, pageSize = 1, defaultPageSize
	query := r.URL.Query()
	if raw := query.Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
	}
	if raw := query.Get("page_size"); raw != "" {
		if pageSize, err = strconv.Atoi(raw); err != nil || pageSize < 1 {
			return 0, 0, fmt.Errorf("page_size must be a positive integer")
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, nil
}
