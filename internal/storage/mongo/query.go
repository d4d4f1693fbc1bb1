package mongo

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"easybooking/internal/domain"
)

// filterDoc translates the predicate tree to a Mongo query document.
func filterDoc(f domain.Filter) bson.M {
	conds := make([]bson.M, 0, len(f.All))
	for _, p := range f.All {
		switch p := p.(type) {
		case domain.Exact:
			conds = append(conds, bson.M{p.Field: p.Value})
		case domain.Range:
			r := bson.M{}
			if p.Min != nil {
				r["$gte"] = *p.Min
			}
			if p.Max != nil {
				r["$lte"] = *p.Max
			}
			if len(r) > 0 {
				conds = append(conds, bson.M{p.Field: r})
			}
		case domain.AnySubstring:
			re := primitive.Regex{Pattern: regexp.QuoteMeta(p.Needle), Options: "i"}
			or := make(bson.A, 0, len(p.Fields))
			for _, field := range p.Fields {
				or = append(or, bson.M{field: re})
			}
			conds = append(conds, bson.M{"$or": or})
		}
	}
	switch len(conds) {
	case 0:
		return bson.M{}
	case 1:
		return conds[0]
	}
	all := make(bson.A, len(conds))
	for i, c := range conds {
		all[i] = c
	}
	return bson.M{"$and": all}
}

func sortDoc(s domain.Sort) bson.D {
	d := make(bson.D, 0, len(s))
	for _, k := range s {
		dir := 1
		if k.Desc {
			dir = -1
		}
		d = append(d, bson.E{Key: k.Field, Value: dir})
	}
	return d
}

// projectionDoc returns nil for the full record. Operator-like names are
// skipped so a query string cannot inject projection operators.
func projectionDoc(p domain.Projection) bson.D {
	if p == nil {
		return nil
	}
	d := bson.D{{Key: domain.FieldID, Value: 1}}
	for _, f := range p {
		if f == domain.FieldID || f == "" || strings.HasPrefix(f, "$") {
			continue
		}
		d = append(d, bson.E{Key: f, Value: 1})
	}
	return d
}
