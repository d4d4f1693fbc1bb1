package domain

import "testing"

func TestFilterMatch(t *testing.T) {
	min, max := 50000.0, 80000.0
	l := Listing{Title: "Mountain Lodge", Location: "Almaty", PricePerNight: 80000, Amenities: "WiFi, Sauna"}

	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"zero filter", Filter{}, true},
		{"exact hit", Filter{All: []Predicate{Exact{Field: FieldLocation, Value: "Almaty"}}}, true},
		{"exact is case sensitive", Filter{All: []Predicate{Exact{Field: FieldLocation, Value: "almaty"}}}, false},
		{"range inclusive", Filter{All: []Predicate{Range{Field: FieldPrice, Min: &min, Max: &max}}}, true},
		{"range below", Filter{All: []Predicate{Range{Field: FieldPrice, Max: &min}}}, false},
		{"substring any field", Filter{All: []Predicate{AnySubstring{Fields: []string{FieldTitle, FieldAmenities}, Needle: "SAUNA"}}}, true},
		{"and of predicates", Filter{All: []Predicate{
			Exact{Field: FieldLocation, Value: "Almaty"},
			AnySubstring{Fields: []string{FieldTitle}, Needle: "beach"},
		}}, false},
	}
	for _, c := range cases {
		if got := c.f.Match(l); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSortLess(t *testing.T) {
	a := Listing{Title: "A", PricePerNight: 100}
	b := Listing{Title: "B", PricePerNight: 100}
	c := Listing{Title: "C", PricePerNight: 50}

	byPrice := Sort{{Field: FieldPrice}, {Field: FieldTitle}}
	if !byPrice.Less(c, a) || !byPrice.Less(a, b) || byPrice.Less(b, a) {
		t.Fatalf("price asc with title tie-break broken")
	}
	byTitleDesc := Sort{{Field: FieldTitle, Desc: true}, {Field: FieldPrice}}
	if !byTitleDesc.Less(c, b) || byTitleDesc.Less(a, b) {
		t.Fatalf("title desc broken")
	}
	if byPrice.Less(a, a) {
		t.Fatalf("Less must be irreflexive")
	}
}

func TestProject(t *testing.T) {
	l := Listing{ID: "65f1c0a1b2c3d4e5f6a7b8c9", Title: "T", PricePerNight: 10}
	got := l.Project(Projection{FieldTitle, "bogus"})
	if len(got) != 2 || got[FieldID] != l.ID || got[FieldTitle] != "T" {
		t.Fatalf("unexpected projection: %v", got)
	}
	if len(l.Project(nil)) != 10 {
		t.Fatalf("nil projection must return every field")
	}
}

func TestIsValidID(t *testing.T) {
	if !IsValidID("65f1c0a1b2c3d4e5f6a7b8c9") {
		t.Fatalf("valid id rejected")
	}
	for _, id := range []string{"", "not-an-id", "65f1c0a1b2c3d4e5f6a7b8c", "65f1c0a1b2c3d4e5f6a7b8cz"} {
		if IsValidID(id) {
			t.Fatalf("%q accepted", id)
		}
	}
}
