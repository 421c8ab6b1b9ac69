package service

import (
	"sync/atomic"
	"time"

	"flatfinder/internal/core/scoring"
	"flatfinder/internal/services/prefs/domain"
)

// Index is the in-memory candidate index. Readers always see a complete
// snapshot; Swap publishes a freshly built one with a single pointer store,
// so the hot path takes no locks
type Index struct {
	bucketWidth int
	snap        atomic.Pointer[snapshot]
}

type snapshot struct {
	builtAt time.Time
	cands   []domain.Candidate

	// price dimension: candidate positions per price bucket, plus the
	// open-ended ones (no max price stated)
	byBucket  map[int][]int32
	openPrice []int32

	// district dimension: positions per canonical district, plus users with
	// no district preference at all. An unlisted district scores zero but
	// never excludes, so this dimension orders candidates instead of
	// pruning them: dropping a listed-elsewhere user would lose a real
	// match on the other scoring dimensions
	byDistrict  map[string][]int32
	anyDistrict []int32
}

// maxBucketsPerPref bounds how many price buckets one preference may occupy.
// At the default width this covers a million of whatever currency the feed
// quotes, far past any real rent range
const maxBucketsPerPref = 10_000

// NewIndex constructs an empty index with the given price bucket width
func NewIndex(bucketWidth int) *Index {
	if bucketWidth <= 0 {
		bucketWidth = 100
	}
	x := &Index{bucketWidth: bucketWidth}
	x.snap.Store(&snapshot{
		byBucket:   map[int][]int32{},
		byDistrict: map[string][]int32{},
	})
	return x
}

// Swap builds a snapshot from cands and publishes it
func (x *Index) Swap(cands []domain.Candidate, now time.Time) {
	s := &snapshot{
		builtAt:    now,
		cands:      cands,
		byBucket:   make(map[int][]int32),
		byDistrict: make(map[string][]int32),
	}
	for i, c := range cands {
		pos := int32(i)

		if c.Profile.PriceMax <= 0 {
			s.openPrice = append(s.openPrice, pos)
		} else {
			lo := x.bucket(c.Profile.PriceMin)
			hi := x.bucket(c.Profile.PriceMax)
			if hi-lo >= maxBucketsPerPref {
				// absurdly wide ranges index as open-ended so one stored
				// row cannot blow up the rebuild; the scorer still applies
				// the exact price bounds
				s.openPrice = append(s.openPrice, pos)
			} else {
				for b := lo; b <= hi; b++ {
					s.byBucket[b] = append(s.byBucket[b], pos)
				}
			}
		}

		if len(c.Profile.Districts) == 0 {
			s.anyDistrict = append(s.anyDistrict, pos)
		} else {
			for d := range c.Profile.Districts {
				s.byDistrict[d] = append(s.byDistrict[d], pos)
			}
		}
	}
	x.snap.Store(s)
}

// CandidatesFor implements domain.IndexPort. The price dimension prunes,
// since price is a hard filter; the district dimension only fronts the
// likely-best candidates. The result is a superset of every user the
// scorer would accept
func (x *Index) CandidatesFor(l scoring.Listing) []domain.Candidate {
	s := x.snap.Load()
	if len(s.cands) == 0 {
		return nil
	}

	inBucket := s.byBucket[x.bucket(l.Price)]
	priceOK := make([]bool, len(s.cands))
	for _, pos := range inBucket {
		priceOK[pos] = true
	}
	for _, pos := range s.openPrice {
		priceOK[pos] = true
	}

	var out []domain.Candidate
	emit := func(positions []int32) {
		for _, pos := range positions {
			if priceOK[pos] {
				priceOK[pos] = false // each candidate at most once
				out = append(out, s.cands[pos])
			}
		}
	}
	emit(s.byDistrict[l.District])
	emit(s.anyDistrict)
	emit(inBucket)
	emit(s.openPrice)
	return out
}

// Size implements domain.IndexPort
func (x *Index) Size() int { return len(x.snap.Load().cands) }

// BuiltAt implements domain.IndexPort
func (x *Index) BuiltAt() time.Time { return x.snap.Load().builtAt }

func (x *Index) bucket(price float64) int {
	if price < 0 {
		return 0
	}
	return int(price) / x.bucketWidth
}
