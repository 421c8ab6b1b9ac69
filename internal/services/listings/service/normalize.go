package service

import (
	"time"

	"github.com/go-playground/validator/v10"

	"flatfinder/internal/core/district"
	"flatfinder/internal/core/scoring"
	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/services/listings/domain"
)

// validate holds the struct validator for raw feed records.
// validator.Validate is safe for concurrent use
var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize maps a raw feed record into the canonical listing entity.
// Malformed records come back as ErrorCodeValidation so callers can skip
// and log them without aborting the batch
func Normalize(raw domain.RawListing, seenAt time.Time) (domain.Listing, error) {
	if err := validate.Struct(raw); err != nil {
		return domain.Listing{}, perr.Wrap(err, perr.ErrorCodeValidation, "malformed listing record")
	}
	if *raw.Price <= 0 {
		return domain.Listing{}, perr.Newf(perr.ErrorCodeValidation, "non-positive price %v", *raw.Price)
	}

	l := domain.Listing{
		ExternalID: raw.ExternalID,
		Title:      raw.Title,
		Price:      *raw.Price,
		District:   district.Canon(raw.District),
		Amenities: scoring.Amenities{
			PetFriendly: triFrom(raw.PetFriendly),
			Balcony:     triFrom(raw.Balcony),
			Furnished:   triFrom(raw.Furnished),
		},
		Raw:         raw.Payload,
		FirstSeenAt: seenAt,
		LastSeenAt:  seenAt,
		IsActive:    true,
	}
	if raw.Rooms != nil {
		l.Rooms = *raw.Rooms
	}
	if raw.SizeSqm != nil {
		l.SizeSqm = *raw.SizeSqm
	}
	l.ContentHash = l.Hash()
	return l, nil
}

// triFrom lifts a nullable feed boolean into explicit tri-state
func triFrom(b *bool) scoring.Tri {
	switch {
	case b == nil:
		return scoring.TriUnspecified
	case *b:
		return scoring.TriYes
	default:
		return scoring.TriNo
	}
}
