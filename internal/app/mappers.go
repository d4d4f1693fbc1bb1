package app

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"easybooking/internal/domain"
)

// listingRules carries the parsed values through the validator. The field
// tag names the submitted form/JSON key for error messages.
type listingRules struct {
	Title    string  `field:"title" validate:"required"`
	Location string  `field:"location" validate:"required"`
	Price    float64 `field:"price_per_night" validate:"gt=0"`
	Stars    int     `field:"stars" validate:"min=1,max=5"`
	Rooms    int     `field:"rooms" validate:"min=1"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return fld.Tag.Get("field")
		})
	})
	return validate
}

// toListing parses and validates a submitted listing. Every required field
// is checked on each call, so updates cannot skip validation.
func toListing(in domain.ListingInput) (domain.Listing, error) {
	price, err := parseNumber(domain.FieldPrice, in.PricePerNight)
	if err != nil {
		return domain.Listing{}, err
	}
	stars, err := parseWhole(domain.FieldStars, in.Stars)
	if err != nil {
		return domain.Listing{}, err
	}
	rooms, err := parseWhole(domain.FieldRooms, in.Rooms)
	if err != nil {
		return domain.Listing{}, err
	}

	l := domain.Listing{
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Location:      strings.TrimSpace(in.Location),
		PricePerNight: price,
		Stars:         stars,
		Rooms:         rooms,
		Amenities:     strings.TrimSpace(in.Amenities),
		ContactPhone:  strings.TrimSpace(in.ContactPhone),
	}

	rules := listingRules{Title: l.Title, Location: l.Location, Price: price, Stars: stars, Rooms: rooms}
	if err := getValidator().Struct(rules); err != nil {
		var fe validator.ValidationErrors
		if errors.As(err, &fe) && len(fe) > 0 {
			return domain.Listing{}, &domain.ValidationError{Field: fe[0].Field(), Message: translate(fe[0])}
		}
		return domain.Listing{}, &domain.ValidationError{Message: err.Error()}
	}
	return l, nil
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

func parseNumber(field, raw string) (float64, error) {
	f, ok := parseFinite(raw)
	if !ok {
		return 0, &domain.ValidationError{Field: field, Message: "must be a number"}
	}
	return f, nil
}

// parseWhole accepts integral numbers written in any float form ("4", "4.0").
func parseWhole(field, raw string) (int, error) {
	f, err := parseNumber(field, raw)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, &domain.ValidationError{Field: field, Message: "must be a whole number"}
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, &domain.ValidationError{Field: field, Message: "is out of range"}
	}
	return int(f), nil
}
