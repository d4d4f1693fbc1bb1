package app

import (
	"context"
	"time"

	"easybooking/internal/domain"
)

const citiesKey = "cities"

// ListingService is the one place both HTTP surfaces go through for
// listings: validation, identifier checks, persistence and cache upkeep.
type ListingService struct {
	repo     domain.ListingRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewListingService wires the service. c may be nil to run without a cache.
func NewListingService(r domain.ListingRepository, c domain.Cache, ttl time.Duration) *ListingService {
	return &ListingService{repo: r, cache: c, cacheTTL: ttl, now: time.Now}
}

func (s *ListingService) List(ctx context.Context, q domain.ListingQuery) ([]domain.Listing, error) {
	return s.repo.Find(ctx, q)
}

// Get returns ErrInvalidID for malformed identifiers without touching the store.
func (s *ListingService) Get(ctx context.Context, id string, p domain.Projection) (domain.Listing, error) {
	if !domain.IsValidID(id) {
		return domain.Listing{}, domain.ErrInvalidID
	}
	return s.repo.Get(ctx, id, p)
}

// Cities returns the distinct listing locations.
func (s *ListingService) Cities(ctx context.Context) ([]string, error) {
	var out []string
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, citiesKey, &out); ok {
			return out, nil
		}
	}
	out, err := s.repo.Locations(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, citiesKey, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
