package scoring

import "sort"

// Component weights. They sum to 100 so a perfect fit scores exactly 100
const (
	weightPrice    = 30
	weightDistrict = 30
	weightRooms    = 20
	weightAmenity  = 20

	districtAcceptablePts = 15
	amenityPtsPerMatch    = 5
)

// Score rates a listing against one profile. ok=false means the profile is
// hard-excluded and no score was computed
func Score(l Listing, p Profile) (score int, ok bool) {
	if excluded(l, p) {
		return 0, false
	}

	s := priceFit(l, p) + districtFit(l, p) + roomsFit(l, p) + amenityBonus(l, p)
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return s, true
}

// excluded applies the hard filters. Any hit means the profile never sees
// this listing, regardless of how well the other components would score
func excluded(l Listing, p Profile) bool {
	if l.Price < p.PriceMin || (p.PriceMax > 0 && l.Price > p.PriceMax) {
		return true
	}
	// rooms bound only when both ends are set
	if p.RoomsMin > 0 && p.RoomsMax > 0 && (l.Rooms < p.RoomsMin || l.Rooms > p.RoomsMax) {
		return true
	}
	if p.MinSizeSqm > 0 && l.SizeSqm < p.MinSizeSqm {
		return true
	}
	if p.Amenities.PetFriendly.Conflicts(l.Amenities.PetFriendly) {
		return true
	}
	if p.Amenities.Balcony.Conflicts(l.Amenities.Balcony) {
		return true
	}
	if p.Amenities.Furnished.Conflicts(l.Amenities.Furnished) {
		return true
	}
	return false
}

// priceFit maps distance from the ideal price onto [0,weightPrice].
// No ideal price set contributes the full neutral weight so the absence of
// a preference never penalizes the score
func priceFit(l Listing, p Profile) int {
	if p.IdealPrice <= 0 {
		return weightPrice
	}
	diff := l.Price - p.IdealPrice
	if diff < 0 {
		diff = -diff
	}
	fit := 100 - diff/p.IdealPrice*100
	if fit < 0 {
		fit = 0
	}
	return int(fit * weightPrice / 100)
}

func districtFit(l Listing, p Profile) int {
	switch p.Districts[l.District] {
	case TierTop:
		return weightDistrict
	case TierAcceptable:
		return districtAcceptablePts
	default:
		// soft zero: an unlisted district scores nothing but never excludes
		return 0
	}
}

// roomsFit is all-or-nothing: exact match on the ideal room count only
func roomsFit(l Listing, p Profile) int {
	if p.IdealRooms > 0 && l.Rooms == p.IdealRooms {
		return weightRooms
	}
	if p.IdealRooms <= 0 {
		// nothing asked for, nothing withheld
		return weightRooms
	}
	return 0
}

// amenityBonus pays per stated want the listing confirms, capped at the
// component weight. A profile with no stated wants takes the full weight:
// a user who asked for nothing has everything they asked for
func amenityBonus(l Listing, p Profile) int {
	type pair struct{ want, have Tri }
	pairs := []pair{
		{p.Amenities.PetFriendly, l.Amenities.PetFriendly},
		{p.Amenities.Balcony, l.Amenities.Balcony},
		{p.Amenities.Furnished, l.Amenities.Furnished},
	}

	stated, bonus := 0, 0
	for _, pr := range pairs {
		if !pr.want.Known() {
			continue
		}
		stated++
		if pr.have.Known() && pr.have == pr.want {
			bonus += amenityPtsPerMatch
		}
	}
	if stated == 0 {
		return weightAmenity
	}
	if bonus > weightAmenity {
		bonus = weightAmenity
	}
	return bonus
}

// ScoreAll scores one listing against every candidate profile and returns
// the non-excluded results ordered by descending score, ties broken by
// ascending user id so reruns are byte-for-byte identical
func ScoreAll(l Listing, candidates []Profile) []Result {
	out := make([]Result, 0, len(candidates))
	for _, p := range candidates {
		if s, ok := Score(l, p); ok {
			out = append(out, Result{UserID: p.UserID, Score: s})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
