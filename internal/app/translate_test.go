package app_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easybooking/internal/app"
	"easybooking/internal/domain"
	"easybooking/internal/storage/memory"
)

func params(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}

func TestBuildFilter(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		in   url.Values
		want domain.Filter
	}{
		{"empty", params(), domain.Filter{}},
		{"city", params("city", "Almaty"), domain.Filter{All: []domain.Predicate{
			domain.Exact{Field: domain.FieldLocation, Value: "Almaty"},
		}}},
		{"min only", params("minPrice", "50000"), domain.Filter{All: []domain.Predicate{
			domain.Range{Field: domain.FieldPrice, Min: f(50000)},
		}}},
		{"both bounds", params("minPrice", "10", "maxPrice", "20"), domain.Filter{All: []domain.Predicate{
			domain.Range{Field: domain.FieldPrice, Min: f(10), Max: f(20)},
		}}},
		{"unparseable bound dropped", params("minPrice", "abc", "maxPrice", "100"), domain.Filter{All: []domain.Predicate{
			domain.Range{Field: domain.FieldPrice, Max: f(100)},
		}}},
		{"both unparseable", params("minPrice", "abc", "maxPrice", "Inf"), domain.Filter{}},
		{"q", params("q", "spa"), domain.Filter{All: []domain.Predicate{
			domain.AnySubstring{Fields: []string{"title", "description", "location", "amenities"}, Needle: "spa"},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.BuildFilter(tt.in))
		})
	}
}

func TestBuildSort(t *testing.T) {
	price := domain.SortKey{Field: domain.FieldPrice}
	title := domain.SortKey{Field: domain.FieldTitle}

	assert.Equal(t, domain.Sort{price, title}, app.BuildSort(params()))
	assert.Equal(t, domain.Sort{price, title}, app.BuildSort(params("sort", "price_asc")))
	assert.Equal(t, domain.Sort{price, title}, app.BuildSort(params("sort", "bogus")))
	assert.Equal(t, domain.Sort{{Field: domain.FieldPrice, Desc: true}, title}, app.BuildSort(params("sort", "price_desc")))
	assert.Equal(t, domain.Sort{title, price}, app.BuildSort(params("sort", "title_asc")))
	assert.Equal(t, domain.Sort{{Field: domain.FieldTitle, Desc: true}, price}, app.BuildSort(params("sort", "title_desc")))
}

func TestBuildProjection(t *testing.T) {
	assert.Nil(t, app.BuildProjection(params()))
	assert.Nil(t, app.BuildProjection(params("fields", " , ,")))
	assert.Equal(t, domain.Projection{"title", "price_per_night"},
		app.BuildProjection(params("fields", " title , price_per_night,title,")))
}

func TestTranslate_ResultsSatisfyFilterAndOrder(t *testing.T) {
	repo := memory.NewListings(app.SeedListings()...)
	cases := []url.Values{
		params(),
		params("city", "Almaty", "sort", "price_desc"),
		params("minPrice", "30000", "maxPrice", "80000", "sort", "title_asc"),
		params("q", "wifi", "sort", "title_desc"),
		params("q", "(", "minPrice", "x"),
	}
	for _, p := range cases {
		q := app.Translate(p)
		got, err := repo.Find(context.Background(), q)
		require.NoError(t, err)
		for i, l := range got {
			assert.True(t, q.Filter.Match(l), "listing %q does not match %v", l.Title, p)
			if i > 0 {
				assert.False(t, q.Sort.Less(l, got[i-1]), "out of order at %d for %v", i, p)
			}
		}
	}
}

func TestTranslate_SearchIsLiteralAndCaseInsensitive(t *testing.T) {
	repo := memory.NewListings(app.SeedListings()...)

	got, err := repo.Find(context.Background(), app.Translate(params("q", "SPA")))
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, l := range got {
		assert.Contains(t, strings.ToLower(l.Amenities+l.Title+l.Description+l.Location), "spa")
	}

	got, err = repo.Find(context.Background(), app.Translate(params("q", ".*")))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTranslate_PriceBoundsInclusive(t *testing.T) {
	repo := memory.NewListings(app.SeedListings()...)
	got, err := repo.Find(context.Background(), app.Translate(params("minPrice", "70000", "maxPrice", "70000")))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Luxury Hotel Room", got[0].Title)
}
