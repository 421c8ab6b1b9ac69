// Package service provides read/resolve access to dead letters for the API
package service

import (
	"context"

	"github.com/google/uuid"

	"flatfinder/internal/modkit/repokit"
	dispatchdom "flatfinder/internal/services/dispatch/domain"
	dispatchrepo "flatfinder/internal/services/dispatch/repo"
)

// Service lists and resolves dead-lettered dispatch intents
type Service interface {
	List(ctx context.Context, kind dispatchdom.IntentKind, state string, limit int) ([]dispatchdom.DeadLetter, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

// Svc implements Service over the dispatch dead-letter repository
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[dispatchrepo.Storage]
	storage dispatchrepo.Storage
}

// New constructs a deadletters service
func New(db repokit.TxRunner, binder repokit.Binder[dispatchrepo.Storage]) *Svc {
	return &Svc{db: db, binder: binder, storage: binder.Bind(db)}
}

// List implements Service. Empty kind or state means no filter
func (s *Svc) List(
	ctx context.Context,
	kind dispatchdom.IntentKind,
	state string,
	limit int,
) ([]dispatchdom.DeadLetter, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.storage.List(ctx, kind, state, limit)
}

// Resolve implements Service
func (s *Svc) Resolve(ctx context.Context, id uuid.UUID) error {
	return s.storage.Resolve(ctx, id)
}
