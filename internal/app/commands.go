package app

import (
	"context"
	"fmt"

	"easybooking/internal/domain"
)

func (s *ListingService) Create(ctx context.Context, in domain.ListingInput) (domain.Listing, error) {
	l, err := toListing(in)
	if err != nil {
		return domain.Listing{}, err
	}
	l.CreatedAt = s.now().UTC()

	id, err := s.repo.Insert(ctx, l)
	if err != nil {
		return domain.Listing{}, err
	}
	l.ID = id
	s.invalidateCities(ctx)
	return l, nil
}

// Update replaces every editable field of the listing. The identifier is
// checked first, then the full input is validated, then the store is called.
func (s *ListingService) Update(ctx context.Context, id string, in domain.ListingInput) (domain.Listing, error) {
	if !domain.IsValidID(id) {
		return domain.Listing{}, domain.ErrInvalidID
	}
	l, err := toListing(in)
	if err != nil {
		return domain.Listing{}, err
	}
	if err := s.repo.Replace(ctx, id, l); err != nil {
		return domain.Listing{}, err
	}
	l.ID = id
	s.invalidateCities(ctx)
	return l, nil
}

func (s *ListingService) Delete(ctx context.Context, id string) error {
	if !domain.IsValidID(id) {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCities(ctx)
	return nil
}

// SeedIfEmpty inserts the seed listings when the store holds none and
// reports how many were inserted.
func (s *ListingService) SeedIfEmpty(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	now := s.now().UTC()
	items := make([]domain.Listing, len(seedListings))
	for i, l := range seedListings {
		l.CreatedAt = now
		items[i] = l
	}
	if err := s.repo.InsertMany(ctx, items); err != nil {
		return 0, fmt.Errorf("insert seed listings: %w", err)
	}
	s.invalidateCities(ctx)
	return len(items), nil
}

func (s *ListingService) invalidateCities(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, citiesKey)
	}
}
