// Package memory holds map-backed repositories with the same contracts as
// the Mongo adapters. Tests across the module run against them.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"easybooking/internal/domain"
)

type Listings struct {
	mu   sync.RWMutex
	byID map[string]domain.Listing
	// Err, when set, is returned by every call.
	Err error
}

func NewListings(seed ...domain.Listing) *Listings {
	s := &Listings{byID: map[string]domain.Listing{}}
	_ = s.InsertMany(context.Background(), seed)
	return s
}

func (s *Listings) Find(ctx context.Context, q domain.ListingQuery) ([]domain.Listing, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Listing
	for _, l := range s.byID {
		if q.Filter.Match(l) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.Sort.Less(out[i], out[j]) {
			return true
		}
		if q.Sort.Less(out[j], out[i]) {
			return false
		}
		return out[i].ID < out[j].ID
	})
	if q.Projection != nil {
		for i := range out {
			out[i] = project(out[i], q.Projection)
		}
	}
	return out, nil
}

func (s *Listings) Get(ctx context.Context, id string, p domain.Projection) (domain.Listing, error) {
	if s.Err != nil {
		return domain.Listing{}, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.byID[id]
	if !ok {
		return domain.Listing{}, domain.ErrNotFound
	}
	if p != nil {
		l = project(l, p)
	}
	return l, nil
}

func (s *Listings) Count(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.byID)), nil
}

func (s *Listings) Locations(ctx context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	var out []string
	for _, l := range s.byID {
		if _, ok := seen[l.Location]; ok {
			continue
		}
		seen[l.Location] = struct{}{}
		out = append(out, l.Location)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Listings) Insert(ctx context.Context, l domain.Listing) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = primitive.NewObjectID().Hex()
	s.byID[l.ID] = l
	return l.ID, nil
}

func (s *Listings) InsertMany(ctx context.Context, ls []domain.Listing) error {
	for _, l := range ls {
		if _, err := s.Insert(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// Replace keeps the stored identifier and creation time.
func (s *Listings) Replace(ctx context.Context, id string, l domain.Listing) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.ID = old.ID
	l.CreatedAt = old.CreatedAt
	s.byID[id] = l
	return nil
}

func (s *Listings) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

// project zeroes the fields p leaves out, matching what a store projection
// decodes to.
func project(l domain.Listing, p domain.Projection) domain.Listing {
	keep := map[string]bool{}
	for _, f := range p {
		keep[f] = true
	}
	out := domain.Listing{ID: l.ID}
	if keep[domain.FieldTitle] {
		out.Title = l.Title
	}
	if keep[domain.FieldDescription] {
		out.Description = l.Description
	}
	if keep[domain.FieldLocation] {
		out.Location = l.Location
	}
	if keep[domain.FieldPrice] {
		out.PricePerNight = l.PricePerNight
	}
	if keep[domain.FieldStars] {
		out.Stars = l.Stars
	}
	if keep[domain.FieldRooms] {
		out.Rooms = l.Rooms
	}
	if keep[domain.FieldAmenities] {
		out.Amenities = l.Amenities
	}
	if keep[domain.FieldContactPhone] {
		out.ContactPhone = l.ContactPhone
	}
	if keep[domain.FieldCreatedAt] {
		out.CreatedAt = l.CreatedAt
	}
	return out
}

type Users struct {
	mu     sync.RWMutex
	byName map[string]domain.User
}

func NewUsers() *Users { return &Users{byName: map[string]domain.User{}} }

func (s *Users) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byName[username]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (s *Users) Insert(ctx context.Context, u domain.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[u.Username]; ok {
		return "", domain.ErrDuplicate
	}
	u.ID = primitive.NewObjectID().Hex()
	s.byName[u.Username] = u
	return u.ID, nil
}

func (s *Users) SetPassword(ctx context.Context, username, hash, role string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byName[username]
	if !ok {
		s.byName[username] = domain.User{
			ID:           primitive.NewObjectID().Hex(),
			Username:     username,
			PasswordHash: hash,
			Role:         role,
		}
		return true, nil
	}
	u.PasswordHash = hash
	u.Role = role
	s.byName[username] = u
	return false, nil
}

type Sessions struct {
	mu      sync.RWMutex
	byToken map[string]domain.Session
}

func NewSessions() *Sessions { return &Sessions{byToken: map[string]domain.Session{}} }

func (s *Sessions) Create(ctx context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[sess.Token] = sess
	return nil
}

func (s *Sessions) Get(ctx context.Context, token string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byToken[token]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return sess, nil
}

func (s *Sessions) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byToken[token]
	if !ok {
		return domain.ErrNotFound
	}
	sess.ExpiresAt = expiresAt
	s.byToken[token] = sess
	return nil
}

func (s *Sessions) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
	return nil
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byToken)
}
