// Package domain defines match results and their ports
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchResult is one scored (user, listing) pair. At most one row exists
// per pair; a recompute replaces the score instead of duplicating
type MatchResult struct {
	UserID     uuid.UUID
	ListingID  string // listing external id
	Score      int
	ComputedAt time.Time
}
