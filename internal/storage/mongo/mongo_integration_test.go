//go:build integration || !unit

package mongo_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"easybooking/internal/app"
	"easybooking/internal/domain"
	mongostore "easybooking/internal/storage/mongo"
)

// startMongo runs an isolated MongoDB; Docker picks a free host port.
func startMongo(t *testing.T) *mongostore.Client {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Skipf("run mongo: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	uri := fmt.Sprintf("mongodb://127.0.0.1:%s", resource.GetPort("27017/tcp"))
	var c *mongostore.Client
	if err := pool.Retry(func() error {
		var e error
		c, e = mongostore.Connect(context.Background(), uri, "easybooking_test")
		if e != nil {
			return e
		}
		return c.Ping(context.Background())
	}); err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() { _ = c.Disconnect(context.Background()) })

	if err := c.EnsureIndexes(context.Background()); err != nil {
		t.Fatalf("indexes: %v", err)
	}
	return c
}

func TestMongo_ListingsRoundTripAndQuery(t *testing.T) {
	c := startMongo(t)
	repo := c.Listings()
	ctx := context.Background()
	svc := app.NewListingService(repo, nil, 0)

	n, err := svc.SeedIfEmpty(ctx)
	if err != nil || n != 20 {
		t.Fatalf("seed: n=%d err=%v", n, err)
	}

	in := domain.ListingInput{
		Title: "Round Trip", Description: "d", Location: "Almaty",
		PricePerNight: "12345.5", Stars: "3", Rooms: "7", Amenities: "WiFi", ContactPhone: "+7",
	}
	created, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, created.ID, nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Round Trip" || got.PricePerNight != 12345.5 || got.Stars != 3 || got.Rooms != 7 || got.ContactPhone != "+7" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	q := app.Translate(url.Values{"city": {"Almaty"}, "minPrice": {"30000"}, "maxPrice": {"80000"}, "sort": {"price_desc"}})
	list, err := repo.Find(ctx, q)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(list) == 0 {
		t.Fatalf("expected results")
	}
	for i, l := range list {
		if !q.Filter.Match(l) {
			t.Fatalf("unexpected match: %+v", l)
		}
		if i > 0 && q.Sort.Less(l, list[i-1]) {
			t.Fatalf("out of order at %d", i)
		}
	}

	list, err = repo.Find(ctx, app.Translate(url.Values{"q": {"SPA"}, "fields": {"title"}}))
	if err != nil || len(list) == 0 {
		t.Fatalf("search: %v %d", err, len(list))
	}
	for _, l := range list {
		if l.Location != "" || l.PricePerNight != 0 || l.ID == "" {
			t.Fatalf("projection leaked fields: %+v", l)
		}
	}

	cities, err := repo.Locations(ctx)
	if err != nil || len(cities) != 10 {
		t.Fatalf("cities: %v %v", cities, err)
	}

	in.Title = "Renamed"
	if _, err := svc.Update(ctx, created.ID, in); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.Get(ctx, created.ID, nil)
	if got.Title != "Renamed" || got.CreatedAt.IsZero() {
		t.Fatalf("update mismatch: %+v", got)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
	if _, err := repo.Get(ctx, created.ID, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get after delete: want ErrNotFound, got %v", err)
	}
}

func TestMongo_UsersAndSessions(t *testing.T) {
	c := startMongo(t)
	users, sessions := c.Users(), c.Sessions()
	ctx := context.Background()

	if _, err := users.Insert(ctx, domain.User{Username: "admin", PasswordHash: "h", Role: "admin"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := users.Insert(ctx, domain.User{Username: "admin", PasswordHash: "h2"}); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
	created, err := users.SetPassword(ctx, "admin", "h3", "admin")
	if err != nil || created {
		t.Fatalf("reset: created=%v err=%v", created, err)
	}
	u, err := users.FindByUsername(ctx, "admin")
	if err != nil || u.PasswordHash != "h3" {
		t.Fatalf("find: %+v %v", u, err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	s := domain.Session{Token: "tok", UserID: u.ID, Username: "admin", Role: "admin", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := sessions.Create(ctx, s); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := sessions.Touch(ctx, "tok", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("touch: %v", err)
	}
	got, err := sessions.Get(ctx, "tok")
	if err != nil || !got.ExpiresAt.Equal(now.Add(2*time.Hour)) {
		t.Fatalf("get session: %+v %v", got, err)
	}
	if err := sessions.Delete(ctx, "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := sessions.Get(ctx, "tok"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
