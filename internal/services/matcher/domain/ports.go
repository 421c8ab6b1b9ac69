// Package domain defines the matching engine port
package domain

import (
	"context"

	dispatchdom "flatfinder/internal/services/dispatch/domain"
	listdom "flatfinder/internal/services/listings/domain"
	matchesdom "flatfinder/internal/services/matches/domain"
	prefsdom "flatfinder/internal/services/prefs/domain"
)

// EnginePort matches a batch of new-or-changed listings against the
// preference index and hands the outcomes to history and dispatch
type EnginePort interface {
	ProcessBatch(ctx context.Context, ls []listdom.Listing) error
}

// Ports carries the collaborator ports the matcher is wired with
type Ports struct {
	Index      prefsdom.IndexPort
	Matches    matchesdom.WriterPort
	Dispatcher dispatchdom.DispatcherPort
}
