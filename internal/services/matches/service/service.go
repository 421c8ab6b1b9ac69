// Package service implements match history recording
package service

import (
	"context"

	"flatfinder/internal/modkit/repokit"
	"flatfinder/internal/platform/logger"
	"flatfinder/internal/platform/store"
	"flatfinder/internal/services/matches/domain"
	"flatfinder/internal/services/matches/repo"
)

// Config for the matches service
type Config struct {
	HardLimit int
}

// Svc implements domain.WriterPort and domain.QueryPort
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Storage]
	storage repo.Storage

	ch  store.Clickhouse // optional analytics sink, nil when disabled
	cfg Config
}

// New constructs the service. ch may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], ch store.Clickhouse, cfg Config) *Svc {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 100
	}
	return &Svc{
		db:      db,
		binder:  binder,
		storage: binder.Bind(db),
		ch:      ch,
		cfg:     cfg,
	}
}

// RecordBatch implements domain.WriterPort. Postgres is the system of
// record; the ClickHouse event copy is best effort and a failure there
// only logs, history in postgres is already safe
func (s *Svc) RecordBatch(ctx context.Context, xs []domain.MatchResult) error {
	if len(xs) == 0 {
		return nil
	}
	if err := s.storage.UpsertBatch(ctx, xs); err != nil {
		return err
	}

	if s.ch != nil {
		rows := make([][]any, len(xs))
		for i, m := range xs {
			rows[i] = []any{m.UserID.String(), m.ListingID, int32(m.Score), m.ComputedAt}
		}
		if err := s.ch.Insert(ctx, "match_events", rows); err != nil {
			logger.C(ctx).Warn().Err(err).Int("rows", len(rows)).Msg("match analytics insert failed")
		}
	}
	return nil
}

// Recent implements domain.QueryPort
func (s *Svc) Recent(ctx context.Context, limit int) ([]domain.MatchResult, error) {
	if limit <= 0 || limit > s.cfg.HardLimit {
		limit = s.cfg.HardLimit
	}
	return s.storage.Recent(ctx, limit)
}
