package scoring

import (
	"fmt"
	"testing"
)

func mitteListing() Listing {
	return Listing{
		ExternalID: "X123",
		Price:      1000,
		Rooms:      2,
		SizeSqm:    62,
		District:   "Mitte",
	}
}

func TestScore_PerfectFit(t *testing.T) {
	p := Profile{
		UserID:     "u-a",
		PriceMin:   900,
		PriceMax:   1100,
		IdealPrice: 1000,
		Districts:  map[string]DistrictTier{"Mitte": TierTop},
		IdealRooms: 2,
	}
	s, ok := Score(mitteListing(), p)
	if !ok {
		t.Fatalf("expected inclusion")
	}
	if s != 100 {
		t.Fatalf("expected score 100, got %d", s)
	}
}

func TestScore_PriceOutOfRangeExcludes(t *testing.T) {
	p := Profile{UserID: "u-b", PriceMin: 1200, PriceMax: 1500}
	if _, ok := Score(mitteListing(), p); ok {
		t.Fatalf("expected exclusion for price out of range")
	}
}

func TestScore_RoomsBoundOnlyWhenBothSet(t *testing.T) {
	l := mitteListing()

	// only a lower bound set: no rooms exclusion even though rooms < min
	open := Profile{UserID: "u", PriceMin: 0, PriceMax: 2000, RoomsMin: 3}
	if _, ok := Score(l, open); !ok {
		t.Fatalf("one-sided rooms bound must not exclude")
	}

	closed := Profile{UserID: "u", PriceMax: 2000, RoomsMin: 3, RoomsMax: 5}
	if _, ok := Score(l, closed); ok {
		t.Fatalf("expected exclusion when rooms outside [min,max]")
	}
}

func TestScore_MinSizeExcludes(t *testing.T) {
	p := Profile{UserID: "u", PriceMax: 2000, MinSizeSqm: 80}
	if _, ok := Score(mitteListing(), p); ok {
		t.Fatalf("expected exclusion below min size")
	}
}

func TestScore_AmenityConflictExcludes(t *testing.T) {
	l := mitteListing()
	l.Amenities.PetFriendly = TriNo

	p := Profile{UserID: "u", PriceMax: 2000}
	p.Amenities.PetFriendly = TriYes
	if _, ok := Score(l, p); ok {
		t.Fatalf("stated opposite amenity must exclude")
	}
}

func TestScore_UnspecifiedAmenityNeverExcludes(t *testing.T) {
	p := Profile{UserID: "u", PriceMax: 2000}
	p.Amenities.Balcony = TriYes

	// vary the listing flag across all three states; with the preference
	// unspecified the outcome must not change
	q := Profile{UserID: "u", PriceMax: 2000}
	for _, have := range []Tri{TriUnspecified, TriYes, TriNo} {
		l := mitteListing()
		l.Amenities.Balcony = have
		if _, ok := Score(l, q); !ok {
			t.Fatalf("unspecified preference excluded for listing state %v", have)
		}
	}

	// and a stated preference against an unspecified listing stays included
	l := mitteListing()
	if _, ok := Score(l, p); !ok {
		t.Fatalf("unspecified listing flag must not exclude a stated want")
	}
}

func TestScore_Deterministic(t *testing.T) {
	l := mitteListing()
	l.Amenities = Amenities{PetFriendly: TriYes, Balcony: TriNo}
	p := Profile{
		UserID:     "u-d",
		PriceMin:   800,
		PriceMax:   1200,
		IdealPrice: 950,
		Districts:  map[string]DistrictTier{"Mitte": TierAcceptable},
		IdealRooms: 3,
	}
	p.Amenities.PetFriendly = TriYes

	first, ok1 := Score(l, p)
	for i := 0; i < 100; i++ {
		s, ok := Score(l, p)
		if ok != ok1 || s != first {
			t.Fatalf("score drifted on rerun: %d/%v vs %d/%v", s, ok, first, ok1)
		}
	}
	if first < 0 || first > 100 {
		t.Fatalf("score out of bounds: %d", first)
	}
}

func TestScore_PriceCurve(t *testing.T) {
	p := Profile{UserID: "u", PriceMax: 3000, IdealPrice: 1000}
	cases := []struct {
		price float64
		want  int // price component only; district 0, rooms+amenity neutral 40
	}{
		{1000, 30},
		{1100, 27},
		{1500, 15},
		{2000, 0},
		{2500, 0}, // clamped, never negative
	}
	for _, c := range cases {
		l := mitteListing()
		l.District = "Wedding" // off-list, district contributes 0
		l.Price = c.price
		s, ok := Score(l, p)
		if !ok {
			t.Fatalf("price %v unexpectedly excluded", c.price)
		}
		if got := s - weightRooms - weightAmenity; got != c.want {
			t.Fatalf("price %v: price component %d, want %d", c.price, got, c.want)
		}
	}
}

func TestScoreAll_OrderAndTies(t *testing.T) {
	l := mitteListing()
	mk := func(id string, ideal float64) Profile {
		return Profile{
			UserID:     id,
			PriceMax:   2000,
			IdealPrice: ideal,
			Districts:  map[string]DistrictTier{"Mitte": TierTop},
			IdealRooms: 2,
		}
	}
	candidates := []Profile{
		mk("u-3", 1000),
		mk("u-1", 1000), // same score as u-3: tie broken by id
		mk("u-2", 1400),
		{UserID: "u-x", PriceMin: 1200, PriceMax: 1500}, // excluded entirely
	}

	res := ScoreAll(l, candidates)
	if len(res) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res))
	}
	if res[0].UserID != "u-1" || res[1].UserID != "u-3" {
		t.Fatalf("tie not broken by ascending user id: %+v", res)
	}
	if res[2].UserID != "u-2" {
		t.Fatalf("expected u-2 last, got %+v", res)
	}
	for i := 1; i < len(res); i++ {
		if res[i].Score > res[i-1].Score {
			t.Fatalf("results not sorted descending: %+v", res)
		}
	}
}

func TestScoreAll_StableAcrossRuns(t *testing.T) {
	l := mitteListing()
	var candidates []Profile
	for i := 0; i < 50; i++ {
		candidates = append(candidates, Profile{
			UserID:     fmt.Sprintf("u-%02d", i),
			PriceMax:   1000 + float64(i*20),
			IdealPrice: 900 + float64(i*7),
			Districts:  map[string]DistrictTier{"Mitte": DistrictTier(i % 3)},
		})
	}
	a := ScoreAll(l, candidates)
	b := ScoreAll(l, candidates)
	if len(a) != len(b) {
		t.Fatalf("length drift: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("result %d drifted: %+v vs %+v", i, a[i], b[i])
		}
	}
}
