// Package mongo persists listings, users and sessions in MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"easybooking/internal/adapters/observability"
)

const (
	hotelsCollection   = "hotels"
	usersCollection    = "users"
	sessionsCollection = "sessions"
)

// Client owns the driver connection. Repositories borrow collections from it
// and must not outlive Disconnect.
type Client struct {
	c  *mongo.Client
	db *mongo.Database
}

// Connect configures the driver. The first round trip happens in Ping.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return &Client{c: c, db: c.Database(dbName)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.c.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique username index, the session expiry TTL
// index and the location index used by city filters and distinct.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	want := []struct {
		coll  string
		model mongo.IndexModel
	}{
		{usersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{sessionsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		}},
		{hotelsCollection, mongo.IndexModel{
			Keys: bson.D{{Key: "location", Value: 1}},
		}},
	}
	for _, s := range want {
		start := time.Now()
		_, err := c.db.Collection(s.coll).Indexes().CreateOne(ctx, s.model)
		observability.ObserveStore(s.coll, "create_index", err, time.Since(start))
		if err != nil {
			return fmt.Errorf("create index on %s: %w", s.coll, err)
		}
	}
	return nil
}

func (c *Client) Disconnect(ctx context.Context) error { return c.c.Disconnect(ctx) }

func (c *Client) Listings() *ListingRepo {
	return &ListingRepo{coll: c.db.Collection(hotelsCollection)}
}

func (c *Client) Users() *UserRepo {
	return &UserRepo{coll: c.db.Collection(usersCollection)}
}

func (c *Client) Sessions() *SessionRepo {
	return &SessionRepo{coll: c.db.Collection(sessionsCollection)}
}

// observe records one store call; use it deferred with a named error.
func observe(coll, op string, start time.Time, err *error) {
	observability.ObserveStore(coll, op, *err, time.Since(start))
}
