package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"easybooking/internal/domain"
)

// sessionDoc is keyed by the opaque token. The TTL index on expiresAt lets
// the server drop stale records on its own.
type sessionDoc struct {
	Token     string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Username  string    `bson:"username"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

type SessionRepo struct{ coll *mongo.Collection }

func (r *SessionRepo) Create(ctx context.Context, s domain.Session) (err error) {
	defer observe(sessionsCollection, "insert", time.Now(), &err)
	_, err = r.coll.InsertOne(ctx, sessionDoc(s))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, token string) (_ domain.Session, err error) {
	defer observe(sessionsCollection, "get", time.Now(), &err)
	var d sessionDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": token}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return domain.Session(d), nil
}

func (r *SessionRepo) Touch(ctx context.Context, token string, expiresAt time.Time) (err error) {
	defer observe(sessionsCollection, "touch", time.Now(), &err)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": token}, bson.M{"$set": bson.M{"expiresAt": expiresAt}})
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, token string) (err error) {
	defer observe(sessionsCollection, "delete", time.Now(), &err)
	if _, err = r.coll.DeleteOne(ctx, bson.M{"_id": token}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
