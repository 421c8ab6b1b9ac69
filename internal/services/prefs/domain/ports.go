package domain

import (
	"context"
	"time"

	"flatfinder/internal/core/scoring"
)

// ReaderPort loads active preferences from storage
type ReaderPort interface {
	GetActivePreferences(ctx context.Context) ([]UserPreference, error)
}

// IndexPort is the candidate selection surface the matcher runs against.
// CandidatesFor must return a superset of every profile that could match
// the listing; precision is the scorer's job, recall is the index's
type IndexPort interface {
	CandidatesFor(l scoring.Listing) []Candidate
	Size() int
	BuiltAt() time.Time
}

// RebuilderPort owns the rebuild-then-swap lifecycle of the index
type RebuilderPort interface {
	Rebuild(ctx context.Context) error
	Run(ctx context.Context) error
}
