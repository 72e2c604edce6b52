package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"revu-backend/internal/models"
	"revu-backend/internal/repository"

	"github.com/patrickmn/go-cache"
)

// readTTL bounds how often the dashboard re-reads the store.
const readTTL = 3 * time.Second

// Store is the read side the reporting service needs.
type Store interface {
	ListFiltered(ctx context.Context, f repository.ListFilter) ([]*models.Feedback, error)
}

// Service wraps the store with a short-lived cache so that dashboard views
// refreshing every few seconds don't hammer the database.
type Service struct {
	store Store
	cache *cache.Cache
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		cache: cache.New(readTTL, time.Minute),
	}
}

// Filtered returns the matching records, serving repeated identical queries
// from cache within the TTL. A read after the TTL always observes completed
// appends.
func (s *Service) Filtered(ctx context.Context, f repository.ListFilter) ([]*models.Feedback, error) {
	key := filterKey(f)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*models.Feedback), nil
	}

	records, err := s.store.ListFiltered(ctx, f)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, records, cache.DefaultExpiration)
	return records, nil
}

func filterKey(f repository.ListFilter) string {
	ratings := make([]string, 0, len(f.Ratings))
	for _, r := range f.Ratings {
		ratings = append(ratings, fmt.Sprintf("%d", r))
	}
	return fmt.Sprintf("%s|%s|%s|%s",
		f.From.UTC().Format(dateLayout),
		f.To.UTC().Format(dateLayout),
		strings.Join(ratings, ","),
		strings.ToLower(strings.TrimSpace(f.Query)),
	)
}
