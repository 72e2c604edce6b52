// Package report computes aggregate metrics over feedback records for the
// admin dashboard: counts, rating means, lexicon sentiment, daily trend,
// rating distribution, pagination and CSV export.
package report

import (
	"sort"

	"revu-backend/internal/models"
)

const dateLayout = "2006-01-02"

// Summary aggregates a record set. MeanRating and MeanSentiment are nil when
// the set is empty — absent, not zero.
type Summary struct {
	Count         int      `json:"count"`
	MeanRating    *float64 `json:"mean_rating"`
	MeanSentiment *float64 `json:"mean_sentiment"`
	Latest        string   `json:"latest_timestamp,omitempty"`
}

// Aggregate computes the dashboard headline metrics.
func Aggregate(records []*models.Feedback) Summary {
	summary := Summary{Count: len(records)}
	if len(records) == 0 {
		return summary
	}

	var ratingSum, sentimentSum float64
	latest := records[0].CreatedAt
	for _, f := range records {
		ratingSum += float64(f.Rating)
		sentimentSum += SentimentScore(f.Summary + " " + f.Review + " " + f.Actions)
		if f.CreatedAt.After(latest) {
			latest = f.CreatedAt
		}
	}

	meanRating := ratingSum / float64(len(records))
	meanSentiment := sentimentSum / float64(len(records))
	summary.MeanRating = &meanRating
	summary.MeanSentiment = &meanSentiment
	summary.Latest = models.FormatTimestamp(latest)
	return summary
}

// TrendPoint is one day's mean rating.
type TrendPoint struct {
	Date       string  `json:"date"`
	MeanRating float64 `json:"mean_rating"`
}

// DailyTrend groups records by UTC calendar date, ascending. Only dates with
// at least one record produce a point.
func DailyTrend(records []*models.Feedback) []TrendPoint {
	sums := map[string]int{}
	counts := map[string]int{}
	for _, f := range records {
		date := f.CreatedAt.UTC().Format(dateLayout)
		sums[date] += f.Rating
		counts[date]++
	}

	dates := make([]string, 0, len(sums))
	for date := range sums {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]TrendPoint, 0, len(dates))
	for _, date := range dates {
		points = append(points, TrendPoint{
			Date:       date,
			MeanRating: float64(sums[date]) / float64(counts[date]),
		})
	}
	return points
}

// RatingDistribution counts records per star rating, zero-filled over 1..5.
func RatingDistribution(records []*models.Feedback) map[int]int {
	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, f := range records {
		dist[f.Rating]++
	}
	return dist
}

// Paginate returns the 1-indexed page of items. The page number is clamped to
// the valid range rather than returning an empty slice.
func Paginate[T any](items []T, pageSize, page int) []T {
	if pageSize <= 0 || len(items) == 0 {
		return nil
	}

	lastPage := (len(items) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
