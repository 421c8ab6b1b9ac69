// Package scoring implements preference matching over normalized listings.
// It is pure: identical inputs always produce identical outputs, with no
// clock or randomness anywhere in the formula
package scoring

// Tri is a three-valued amenity flag. The zero value means the upstream
// record (or the user) said nothing, which must never exclude a match
type Tri uint8

const (
	// TriUnspecified means the field was absent on the source side
	TriUnspecified Tri = iota
	// TriYes means the amenity is present / required
	TriYes
	// TriNo means the amenity is absent / rejected
	TriNo
)

// Known reports whether the flag carries an actual statement
func (t Tri) Known() bool { return t != TriUnspecified }

// Conflicts reports whether a stated requirement contradicts a stated fact.
// Unspecified on either side never conflicts
func (t Tri) Conflicts(other Tri) bool {
	return t.Known() && other.Known() && t != other
}

// Amenities is the tri-state amenity block shared by listings and profiles
type Amenities struct {
	PetFriendly Tri
	Balcony     Tri
	Furnished   Tri
}

// Listing is the scoring view of a rental unit. The matcher maps the
// owning service's entity into this shape before calling Score
type Listing struct {
	ExternalID string
	Price      float64
	Rooms      int
	SizeSqm    float64
	District   string // canonical form, see core/district
	Amenities  Amenities
}

// DistrictTier ranks how much a user wants a district
type DistrictTier uint8

const (
	// TierNone means the district is not on the user's list at all
	TierNone DistrictTier = iota
	// TierAcceptable means the user listed it as tolerable
	TierAcceptable
	// TierTop means the user listed it as top-preferred
	TierTop
)

// Profile is the scoring view of one user's preferences
type Profile struct {
	UserID     string
	PriceMin   float64
	PriceMax   float64
	IdealPrice float64 // 0 = not set
	Districts  map[string]DistrictTier
	RoomsMin   int // 0 = not set
	RoomsMax   int // 0 = not set
	IdealRooms int // 0 = not set
	MinSizeSqm float64

	// Amenities carries the tri-state wants. A stated want that the listing
	// states the opposite of is a hard exclusion; a stated want the listing
	// confirms earns bonus points; unspecified is always neutral
	Amenities Amenities
}

// Result is one scored (listing, user) pair
type Result struct {
	UserID string
	Score  int
}
