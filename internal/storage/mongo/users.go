package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"easybooking/internal/domain"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"passwordHash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

type UserRepo struct{ coll *mongo.Collection }

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (_ domain.User, err error) {
	defer observe(usersCollection, "get", time.Now(), &err)

	var d userDoc
	err = r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("find user: %w", err)
	}
	return domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
	}, nil
}

func (r *UserRepo) Insert(ctx context.Context, u domain.User) (_ string, err error) {
	defer observe(usersCollection, "insert", time.Now(), &err)

	res, err := r.coll.InsertOne(ctx, userDoc{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return "", domain.ErrDuplicate
	}
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// SetPassword upserts the user by name and reports whether it was created.
func (r *UserRepo) SetPassword(ctx context.Context, username, hash, role string) (_ bool, err error) {
	defer observe(usersCollection, "upsert", time.Now(), &err)

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{
			"$set":         bson.M{"passwordHash": hash, "role": role},
			"$setOnInsert": bson.M{"createdAt": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("upsert user: %w", err)
	}
	return res.UpsertedCount > 0, nil
}
