// Package domain defines the feed polling ports
package domain

import (
	"context"

	listdom "flatfinder/internal/services/listings/domain"
)

// FeedPort yields one batch of raw listings per call. Cadence and retry
// belong to the runner, not the adapter; Poll does a single fetch
type FeedPort interface {
	Poll(ctx context.Context) ([]listdom.RawListing, error)
	Name() string
}

// RunnerPort is the pipeline loop
type RunnerPort interface {
	Run(ctx context.Context) error
	RunOnce(ctx context.Context) error
}
