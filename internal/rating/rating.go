package rating

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"auction-engine/internal/models"
)

//go:generate mockgen -source=rating.go -destination=mock_rating.go -package=rating

// Service answers read-only rating lookups for bid eligibility
type Service interface {
	Summary(ctx context.Context, userID string) (models.RatingSummary, error)
}

// Source is where rating summaries come from; repository.AuctionDB satisfies it
type Source interface {
	GetRatingSummary(ctx context.Context, userID string) (models.RatingSummary, error)
}

// Eligible applies the bidding rule: a positive share of at least minPercent,
// or no history at all on a product that admits new bidders.
func Eligible(summary models.RatingSummary, allowNewBidders bool, minPercent float64) bool {
	if !summary.HasHistory() {
		return allowNewBidders
	}
	return summary.Percentage() >= minPercent
}

type cacheEntry struct {
	summary   models.RatingSummary
	expiresAt time.Time
}

// CachedService fronts a Source with a bounded LRU. Entries expire after ttl
// so a freshly rated user is picked up without a restart.
type CachedService struct {
	source Source
	cache  *lru.Cache
	ttl    time.Duration
	now    func() time.Time
}

func NewCachedService(source Source, size int, ttl time.Duration) (*CachedService, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create rating cache: %w", err)
	}
	return &CachedService{source: source, cache: cache, ttl: ttl, now: time.Now}, nil
}

func (s *CachedService) Summary(ctx context.Context, userID string) (models.RatingSummary, error) {
	if v, ok := s.cache.Get(userID); ok {
		entry := v.(cacheEntry)
		if s.now().Before(entry.expiresAt) {
			return entry.summary, nil
		}
		s.cache.Remove(userID)
	}

	summary, err := s.source.GetRatingSummary(ctx, userID)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("rating: lookup %s: %w", userID, err)
	}
	s.cache.Add(userID, cacheEntry{summary: summary, expiresAt: s.now().Add(s.ttl)})
	return summary, nil
}
