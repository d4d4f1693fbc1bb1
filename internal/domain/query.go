package domain

import "strings"

// Predicate is one condition of a Filter. The concrete types are store
// independent; storage adapters translate them to their native query form.
type Predicate interface{ isPredicate() }

// Exact matches records whose Field equals Value.
type Exact struct {
	Field string
	Value string
}

// Range matches records whose numeric Field lies within the inclusive
// bounds. A nil bound is open.
type Range struct {
	Field    string
	Min, Max *float64
}

// AnySubstring matches records where at least one of Fields contains
// Needle, ignoring case. Needle is literal text, not a pattern.
type AnySubstring struct {
	Fields []string
	Needle string
}

func (Exact) isPredicate()        {}
func (Range) isPredicate()        {}
func (AnySubstring) isPredicate() {}

// Filter is the conjunction of its predicates. The zero Filter matches
// every record.
type Filter struct {
	All []Predicate
}

// SortKey orders by one field.
type SortKey struct {
	Field string
	Desc  bool
}

// Sort lists keys by priority; later keys break ties of earlier ones.
type Sort []SortKey

// Projection names the fields to return. Nil means the full record.
type Projection []string

// ListingQuery bundles what a list operation hands to the store.
type ListingQuery struct {
	Filter     Filter
	Sort       Sort
	Projection Projection
}

// Match evaluates the filter against l in memory.
func (f Filter) Match(l Listing) bool {
	for _, p := range f.All {
		if !matchOne(p, l) {
			return false
		}
	}
	return true
}

func matchOne(p Predicate, l Listing) bool {
	switch p := p.(type) {
	case Exact:
		v, ok := l.text(p.Field)
		return ok && v == p.Value
	case Range:
		v, ok := l.number(p.Field)
		if !ok {
			return false
		}
		if p.Min != nil && v < *p.Min {
			return false
		}
		if p.Max != nil && v > *p.Max {
			return false
		}
		return true
	case AnySubstring:
		needle := strings.ToLower(p.Needle)
		for _, f := range p.Fields {
			if v, ok := l.text(f); ok && strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
		return false
	}
	return false
}

// Less reports whether a orders before b under s.
func (s Sort) Less(a, b Listing) bool {
	for _, k := range s {
		c := compareField(k.Field, a, b)
		if c == 0 {
			continue
		}
		if k.Desc {
			return c > 0
		}
		return c < 0
	}
	return false
}

func compareField(field string, a, b Listing) int {
	if x, ok := a.number(field); ok {
		y, _ := b.number(field)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	x, _ := a.text(field)
	y, _ := b.text(field)
	return strings.Compare(x, y)
}
