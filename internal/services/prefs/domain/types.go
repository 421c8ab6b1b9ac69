// Package domain defines user preferences and the candidate index ports
package domain

import (
	"time"

	"github.com/google/uuid"

	"flatfinder/internal/core/district"
	"flatfinder/internal/core/scoring"
)

// UserPreference is one user's stored search profile plus dispatch settings.
// Zero numeric fields mean "not stated" throughout; stating nothing can
// loosen a search but never tighten it
type UserPreference struct {
	UserID     uuid.UUID
	PriceMin   float64
	PriceMax   float64 // 0 = unbounded
	IdealPrice float64

	DistrictsTop []string // top-preferred districts, raw form as stored
	DistrictsOK  []string // acceptable districts

	RoomsMin   int
	RoomsMax   int
	IdealRooms int
	MinSizeSqm float64

	Amenities scoring.Amenities

	NotifyThreshold    int      // notify when score >= this; 0 = any match
	Channels           []string // notification channels, e.g. "email", "telegram"
	AutoApply          bool     // user opted into automatic applications
	AutoApplyThreshold int      // apply when score >= this, only if AutoApply

	Active    bool
	UpdatedAt time.Time
}

// Profile builds the scoring view of the preference. District names are
// canonicalized here once so the hot matching path never re-normalizes.
// A district on both lists keeps the top tier
func (p UserPreference) Profile() scoring.Profile {
	var districts map[string]scoring.DistrictTier
	if len(p.DistrictsTop)+len(p.DistrictsOK) > 0 {
		districts = make(map[string]scoring.DistrictTier, len(p.DistrictsTop)+len(p.DistrictsOK))
		for _, d := range p.DistrictsOK {
			districts[district.Canon(d)] = scoring.TierAcceptable
		}
		for _, d := range p.DistrictsTop {
			districts[district.Canon(d)] = scoring.TierTop
		}
	}
	return scoring.Profile{
		UserID:     p.UserID.String(),
		PriceMin:   p.PriceMin,
		PriceMax:   p.PriceMax,
		IdealPrice: p.IdealPrice,
		Districts:  districts,
		RoomsMin:   p.RoomsMin,
		RoomsMax:   p.RoomsMax,
		IdealRooms: p.IdealRooms,
		MinSizeSqm: p.MinSizeSqm,
		Amenities:  p.Amenities,
	}
}

// Candidate pairs a stored preference with its precomputed scoring profile
type Candidate struct {
	Pref    UserPreference
	Profile scoring.Profile
}
