package app

import (
	"fmt"

	"github.com/goccy/go-json"

	"easybooking/internal/domain"
)

// InputFrom collects the editable listing fields through get, which is
// usually a form's Get or a lookup into a decoded JSON object.
func InputFrom(get func(string) string) domain.ListingInput {
	return domain.ListingInput{
		Title:         get(domain.FieldTitle),
		Description:   get(domain.FieldDescription),
		Location:      get(domain.FieldLocation),
		PricePerNight: get(domain.FieldPrice),
		Stars:         get(domain.FieldStars),
		Rooms:         get(domain.FieldRooms),
		Amenities:     get(domain.FieldAmenities),
		ContactPhone:  get(domain.FieldContactPhone),
	}
}

// InputFromJSON accepts both JSON numbers and strings for the numeric
// fields. obj should be decoded with UseNumber.
func InputFromJSON(obj map[string]any) domain.ListingInput {
	return InputFrom(func(k string) string { return scalar(obj[k]) })
}

func scalar(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool, map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
