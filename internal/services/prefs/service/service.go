// Package service implements preference loading and the candidate index
package service

import (
	"context"
	"time"

	"flatfinder/internal/modkit/repokit"
	"flatfinder/internal/platform/logger"
	"flatfinder/internal/services/prefs/domain"
	"flatfinder/internal/services/prefs/repo"
)

// Config controls the rebuild loop
type Config struct {
	RebuildInterval time.Duration
}

// Svc implements domain.ReaderPort and domain.RebuilderPort
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Storage]
	storage repo.Storage

	idx *Index
	cfg Config
}

// New constructs the service around an index it will keep fresh
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], idx *Index, cfg Config) *Svc {
	if cfg.RebuildInterval <= 0 {
		cfg.RebuildInterval = 5 * time.Minute
	}
	return &Svc{
		db:      db,
		binder:  binder,
		storage: binder.Bind(db),
		idx:     idx,
		cfg:     cfg,
	}
}

// Index returns the candidate index the service maintains
func (s *Svc) Index() *Index { return s.idx }

// GetActivePreferences implements domain.ReaderPort
func (s *Svc) GetActivePreferences(ctx context.Context) ([]domain.UserPreference, error) {
	return s.storage.GetActivePreferences(ctx)
}

// Rebuild implements domain.RebuilderPort. It loads preferences, builds a
// fresh snapshot off to the side and swaps it in; readers keep the old
// snapshot until the store completes
func (s *Svc) Rebuild(ctx context.Context) error {
	prefs, err := s.storage.GetActivePreferences(ctx)
	if err != nil {
		return err
	}
	cands := make([]domain.Candidate, len(prefs))
	for i, p := range prefs {
		cands[i] = domain.Candidate{Pref: p, Profile: p.Profile()}
	}
	s.idx.Swap(cands, time.Now().UTC())
	logger.C(ctx).Debug().Int("users", len(cands)).Msg("preference index rebuilt")
	return nil
}

// Run implements domain.RebuilderPort. A failed rebuild keeps the previous
// snapshot; the index goes stale rather than empty
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("prefs-rebuild")

	if err := s.Rebuild(ctx); err != nil {
		log.Warn().Err(err).Msg("initial preference load failed, serving empty index")
	}

	ticker := time.NewTicker(s.cfg.RebuildInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Rebuild(ctx); err != nil {
				log.Error().Err(err).Msg("preference index rebuild failed")
			}
		}
	}
}
