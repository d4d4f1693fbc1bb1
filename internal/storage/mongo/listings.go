package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"easybooking/internal/domain"
)

type listingDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	Location      string             `bson:"location"`
	PricePerNight float64            `bson:"price_per_night"`
	Stars         int                `bson:"stars"`
	Rooms         int                `bson:"rooms"`
	Amenities     string             `bson:"amenities"`
	ContactPhone  string             `bson:"contact_phone"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty"`
}

func toDoc(l domain.Listing) listingDoc {
	return listingDoc{
		Title:         l.Title,
		Description:   l.Description,
		Location:      l.Location,
		PricePerNight: l.PricePerNight,
		Stars:         l.Stars,
		Rooms:         l.Rooms,
		Amenities:     l.Amenities,
		ContactPhone:  l.ContactPhone,
		CreatedAt:     l.CreatedAt,
	}
}

func (d listingDoc) toDomain() domain.Listing {
	return domain.Listing{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Description:   d.Description,
		Location:      d.Location,
		PricePerNight: d.PricePerNight,
		Stars:         d.Stars,
		Rooms:         d.Rooms,
		Amenities:     d.Amenities,
		ContactPhone:  d.ContactPhone,
		CreatedAt:     d.CreatedAt,
	}
}

type ListingRepo struct{ coll *mongo.Collection }

func (r *ListingRepo) Find(ctx context.Context, q domain.ListingQuery) (_ []domain.Listing, err error) {
	defer observe(hotelsCollection, "find", time.Now(), &err)

	opts := options.Find().SetSort(sortDoc(q.Sort))
	if p := projectionDoc(q.Projection); p != nil {
		opts.SetProjection(p)
	}
	cur, err := r.coll.Find(ctx, filterDoc(q.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find hotels: %w", err)
	}
	var docs []listingDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode hotels: %w", err)
	}
	out := make([]domain.Listing, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *ListingRepo) Get(ctx context.Context, id string, p domain.Projection) (_ domain.Listing, err error) {
	defer observe(hotelsCollection, "get", time.Now(), &err)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Listing{}, domain.ErrInvalidID
	}
	opts := options.FindOne()
	if pd := projectionDoc(p); pd != nil {
		opts.SetProjection(pd)
	}
	var d listingDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Listing{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Listing{}, fmt.Errorf("get hotel %s: %w", id, err)
	}
	return d.toDomain(), nil
}

func (r *ListingRepo) Count(ctx context.Context) (_ int64, err error) {
	defer observe(hotelsCollection, "count", time.Now(), &err)
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count hotels: %w", err)
	}
	return n, nil
}

// Locations returns the distinct cities, sorted.
func (r *ListingRepo) Locations(ctx context.Context) (_ []string, err error) {
	defer observe(hotelsCollection, "distinct", time.Now(), &err)
	vals, err := r.coll.Distinct(ctx, domain.FieldLocation, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct locations: %w", err)
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *ListingRepo) Insert(ctx context.Context, l domain.Listing) (_ string, err error) {
	defer observe(hotelsCollection, "insert", time.Now(), &err)
	res, err := r.coll.InsertOne(ctx, toDoc(l))
	if err != nil {
		return "", fmt.Errorf("insert hotel: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert hotel: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *ListingRepo) InsertMany(ctx context.Context, ls []domain.Listing) (err error) {
	if len(ls) == 0 {
		return nil
	}
	defer observe(hotelsCollection, "insert_many", time.Now(), &err)
	docs := make([]any, len(ls))
	for i, l := range ls {
		docs[i] = toDoc(l)
	}
	if _, err = r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert hotels: %w", err)
	}
	return nil
}

// Replace overwrites every editable field in one atomic update; _id and
// createdAt are kept.
func (r *ListingRepo) Replace(ctx context.Context, id string, l domain.Listing) (err error) {
	defer observe(hotelsCollection, "update", time.Now(), &err)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	set := bson.M{
		domain.FieldTitle:        l.Title,
		domain.FieldDescription:  l.Description,
		domain.FieldLocation:     l.Location,
		domain.FieldPrice:        l.PricePerNight,
		domain.FieldStars:        l.Stars,
		domain.FieldRooms:        l.Rooms,
		domain.FieldAmenities:    l.Amenities,
		domain.FieldContactPhone: l.ContactPhone,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update hotel %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ListingRepo) Delete(ctx context.Context, id string) (err error) {
	defer observe(hotelsCollection, "delete", time.Now(), &err)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete hotel %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
