package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing field names, shared by the query predicates, the store documents
// and the JSON representation.
const (
	FieldID           = "_id"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldLocation     = "location"
	FieldPrice        = "price_per_night"
	FieldStars        = "stars"
	FieldRooms        = "rooms"
	FieldAmenities    = "amenities"
	FieldContactPhone = "contact_phone"
	FieldCreatedAt    = "createdAt"
)

// Listing is a hotel record available for browsing. ID is assigned by the
// store on insert and never changes afterwards.
type Listing struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	PricePerNight float64   `json:"price_per_night"`
	Stars         int       `json:"stars"`
	Rooms         int       `json:"rooms"`
	Amenities     string    `json:"amenities"`
	ContactPhone  string    `json:"contact_phone"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListingInput is a listing as submitted by a form or an API body, before
// validation. Numeric fields stay textual so both surfaces parse them the
// same way.
type ListingInput struct {
	Title         string
	Description   string
	Location      string
	PricePerNight string
	Stars         string
	Rooms         string
	Amenities     string
	ContactPhone  string
}

// IsValidID reports whether id has the shape of a store identifier
// (24 hex characters).
func IsValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// Fields returns the listing keyed by field name.
func (l Listing) Fields() map[string]any {
	return map[string]any{
		FieldID:           l.ID,
		FieldTitle:        l.Title,
		FieldDescription:  l.Description,
		FieldLocation:     l.Location,
		FieldPrice:        l.PricePerNight,
		FieldStars:        l.Stars,
		FieldRooms:        l.Rooms,
		FieldAmenities:    l.Amenities,
		FieldContactPhone: l.ContactPhone,
		FieldCreatedAt:    l.CreatedAt,
	}
}

// Project returns the fields selected by p. The identifier is always
// included; unknown names are ignored. A nil projection yields every field.
func (l Listing) Project(p Projection) map[string]any {
	all := l.Fields()
	if p == nil {
		return all
	}
	out := map[string]any{FieldID: l.ID}
	for _, f := range p {
		if v, ok := all[f]; ok {
			out[f] = v
		}
	}
	return out
}

func (l Listing) text(field string) (string, bool) {
	switch field {
	case FieldTitle:
		return l.Title, true
	case FieldDescription:
		return l.Description, true
	case FieldLocation:
		return l.Location, true
	case FieldAmenities:
		return l.Amenities, true
	case FieldContactPhone:
		return l.ContactPhone, true
	case FieldID:
		return l.ID, true
	}
	return "", false
}

func (l Listing) number(field string) (float64, bool) {
	switch field {
	case FieldPrice:
		return l.PricePerNight, true
	case FieldStars:
		return float64(l.Stars), true
	case FieldRooms:
		return float64(l.Rooms), true
	}
	return 0, false
}
