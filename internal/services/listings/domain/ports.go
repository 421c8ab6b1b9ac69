package domain

import (
	"context"
	"time"
)

// DetectorPort filters a polled batch down to new-or-changed listings.
// Unchanged re-sightings are dropped after their last_seen_at bump
type DetectorPort interface {
	DetectNew(ctx context.Context, batch []RawListing) ([]Listing, error)
}

// SweeperPort deactivates listings that fell out of the feed entirely
type SweeperPort interface {
	DeactivateStale(ctx context.Context, unseenFor time.Duration) (int64, error)
}

// ReaderPort is the read-only lookup surface used by the ops API
type ReaderPort interface {
	ByExternalID(ctx context.Context, externalID string) (Listing, error)
}
