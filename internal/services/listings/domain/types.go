// Package domain defines the listing entity and the change detection ports
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"flatfinder/internal/core/scoring"
)

// RawListing is one record as the feed adapter hands it over. Numeric and
// boolean fields are pointers because upstream feeds omit what they do not
// know; the normalizer turns that into explicit tri-state
type RawListing struct {
	ExternalID  string          `json:"external_id" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Price       *float64        `json:"price" validate:"required"`
	Rooms       *int            `json:"rooms"`
	SizeSqm     *float64        `json:"size_sqm"`
	District    string          `json:"district"`
	PetFriendly *bool           `json:"pet_friendly"`
	Balcony     *bool           `json:"balcony"`
	Furnished   *bool           `json:"furnished"`
	Payload     json.RawMessage `json:"payload"`
}

// Listing is the canonical rental unit record. Immutable once created except
// LastSeenAt and IsActive, which the seen-store owns
type Listing struct {
	ExternalID  string
	Title       string
	Price       float64
	Rooms       int
	SizeSqm     float64
	District    string // canonical form, see core/district
	Amenities   scoring.Amenities
	Raw         json.RawMessage
	FirstSeenAt time.Time
	LastSeenAt  time.Time
	IsActive    bool
	ContentHash uint64
}

// Hash fingerprints the fields that make a re-sighting "materially changed".
// Title and raw payload churn on purpose stay out of it
func (l Listing) Hash() uint64 {
	d := xxhash.New()
	fmt.Fprintf(d, "%.2f|%d|%.1f|%s", l.Price, l.Rooms, l.SizeSqm, l.District)
	return d.Sum64()
}

// Transition classifies the outcome of one seen-store upsert
type Transition uint8

const (
	// TransitionUnchanged means the listing was already known with this hash
	TransitionUnchanged Transition = iota
	// TransitionNew means this external id was never seen before
	TransitionNew
	// TransitionChanged means the id was known but the content hash moved
	TransitionChanged
)

// String implements fmt.Stringer for log fields
func (t Transition) String() string {
	switch t {
	case TransitionNew:
		return "new"
	case TransitionChanged:
		return "changed"
	default:
		return "unchanged"
	}
}

// Summary is the compact view the dispatcher embeds into intents
type Summary struct {
	ExternalID string  `json:"external_id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Rooms      int     `json:"rooms"`
	District   string  `json:"district"`
}

// Summary returns the dispatch view of the listing
func (l Listing) Summary() Summary {
	return Summary{
		ExternalID: l.ExternalID,
		Title:      l.Title,
		Price:      l.Price,
		Rooms:      l.Rooms,
		District:   l.District,
	}
}
