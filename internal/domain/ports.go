package domain

import (
	"context"
	"time"
)

type ListingRepository interface {
	// Read paths
	Find(ctx context.Context, q ListingQuery) ([]Listing, error)
	Get(ctx context.Context, id string, p Projection) (Listing, error)
	Count(ctx context.Context) (int64, error)
	Locations(ctx context.Context) ([]string, error)

	// Write paths. Replace and Delete return ErrNotFound when id matches nothing.
	Insert(ctx context.Context, l Listing) (string, error)
	InsertMany(ctx context.Context, ls []Listing) error
	Replace(ctx context.Context, id string, l Listing) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	Insert(ctx context.Context, u User) (string, error)
	SetPassword(ctx context.Context, username, hash, role string) (created bool, err error)
}

type SessionRepository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (Session, error)
	Touch(ctx context.Context, token string, expiresAt time.Time) error
	Delete(ctx context.Context, token string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
