package app

import (
	"math"
	"strconv"
	"strings"

	"easybooking/internal/domain"
)

// Params is the raw query-parameter mapping. url.Values satisfies it.
type Params interface {
	Get(key string) string
}

// searchFields are the fields the free-text q parameter looks into.
var searchFields = []string{
	domain.FieldTitle,
	domain.FieldDescription,
	domain.FieldLocation,
	domain.FieldAmenities,
}

// BuildFilter recognizes q, city, minPrice and maxPrice. Unparseable price
// bounds are dropped; no recognized parameter yields the match-all filter.
func BuildFilter(p Params) domain.Filter {
	var f domain.Filter

	if city := strings.TrimSpace(p.Get("city")); city != "" {
		f.All = append(f.All, domain.Exact{Field: domain.FieldLocation, Value: city})
	}

	min, okMin := parseFinite(p.Get("minPrice"))
	max, okMax := parseFinite(p.Get("maxPrice"))
	if okMin || okMax {
		r := domain.Range{Field: domain.FieldPrice}
		if okMin {
			r.Min = &min
		}
		if okMax {
			r.Max = &max
		}
		f.All = append(f.All, r)
	}

	if q := strings.TrimSpace(p.Get("q")); q != "" {
		f.All = append(f.All, domain.AnySubstring{Fields: searchFields, Needle: q})
	}
	return f
}

// BuildSort maps the sort parameter to ordering keys. Unknown or missing
// values fall back to price ascending, title ascending.
func BuildSort(p Params) domain.Sort {
	price := domain.SortKey{Field: domain.FieldPrice}
	title := domain.SortKey{Field: domain.FieldTitle}

	switch p.Get("sort") {
	case "price_desc":
		return domain.Sort{{Field: domain.FieldPrice, Desc: true}, title}
	case "title_asc":
		return domain.Sort{title, price}
	case "title_desc":
		return domain.Sort{{Field: domain.FieldTitle, Desc: true}, price}
	default: // price_asc
		return domain.Sort{price, title}
	}
}

// BuildProjection reads fields as a comma-separated list. Nil means the
// full record.
func BuildProjection(p Params) domain.Projection {
	raw := p.Get("fields")
	if raw == "" {
		return nil
	}
	var out domain.Projection
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Translate runs the three builders over the same parameters.
func Translate(p Params) domain.ListingQuery {
	return domain.ListingQuery{
		Filter:     BuildFilter(p),
		Sort:       BuildSort(p),
		Projection: BuildProjection(p),
	}
}

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
