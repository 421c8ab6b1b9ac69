// Package service implements normalization and change detection for listings
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flatfinder/internal/modkit/repokit"
	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/platform/logger"
	"flatfinder/internal/platform/retry"
	"flatfinder/internal/platform/store"
	"flatfinder/internal/services/listings/domain"
	"flatfinder/internal/services/listings/repo"
)

// Config controls the detector
type Config struct {
	// MarkerTTL is the lifetime of the redis fast-path marker.
	// Zero disables the fast path entirely; detection still works, every
	// sighting just goes straight to postgres
	MarkerTTL time.Duration

	Retry retry.Policy
}

// Svc implements domain.DetectorPort, domain.SweeperPort and domain.ReaderPort
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Storage]
	storage repo.Storage

	kv  store.KV // optional, nil when redis is disabled
	cfg Config
}

// New constructs the service. kv may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], kv store.KV, cfg Config) *Svc {
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.Default()
	}
	return &Svc{
		db:      db,
		binder:  binder,
		storage: binder.Bind(db),
		kv:      kv,
		cfg:     cfg,
	}
}

// DetectNew implements domain.DetectorPort.
// Malformed records are logged and skipped; a persist failure for one record
// does not abort the rest of the batch. The returned slice holds only
// new-or-changed listings, the partial result is valid even when err != nil
func (s *Svc) DetectNew(ctx context.Context, batch []domain.RawListing) ([]domain.Listing, error) {
	log := logger.C(ctx)
	now := time.Now().UTC()

	var (
		out     []domain.Listing
		errs    []error
		skipped int
		counts  [3]int // indexed by domain.Transition
	)
	for _, raw := range batch {
		l, err := Normalize(raw, now)
		if err != nil {
			skipped++
			log.Warn().Err(err).Str("external_id", raw.ExternalID).Msg("skipping malformed listing")
			continue
		}

		tr, err := s.record(ctx, l)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			errs = append(errs, fmt.Errorf("record %s: %w", l.ExternalID, err))
			log.Warn().Err(err).Str("external_id", l.ExternalID).Msg("sighting not persisted")
			continue
		}

		counts[tr]++
		if tr == domain.TransitionNew || tr == domain.TransitionChanged {
			out = append(out, l)
		}
	}

	log.Debug().
		Int("batch", len(batch)).
		Int("new", counts[domain.TransitionNew]).
		Int("changed", counts[domain.TransitionChanged]).
		Int("unchanged", counts[domain.TransitionUnchanged]).
		Int("skipped", skipped).
		Int("failed", len(errs)).
		Msg("change detection pass")

	return out, errors.Join(errs...)
}

// record persists one sighting and classifies it.
// The redis marker is only a short-circuit for re-sightings inside MarkerTTL;
// postgres stays the source of truth for the new/changed decision. When the
// upsert fails after retries the marker is rolled back so the next poll cycle
// sees the listing again instead of silently losing it
func (s *Svc) record(ctx context.Context, l domain.Listing) (domain.Transition, error) {
	key := markerKey(l)

	claimed := false
	if s.kv != nil && s.cfg.MarkerTTL > 0 {
		won, err := s.kv.SetNX(ctx, key, "1", s.cfg.MarkerTTL)
		switch {
		case err != nil:
			// redis being down must not stop detection
			logger.C(ctx).Warn().Err(err).Msg("seen marker unavailable, falling through to postgres")
		case !won:
			return domain.TransitionUnchanged, nil
		default:
			claimed = true
		}
	}

	var tr domain.Transition
	err := s.cfg.Retry.Do(ctx, func() error {
		t, err := s.storage.UpsertSeen(ctx, l)
		if err != nil {
			if perr.IsRetryable(err) || perr.IsCode(err, perr.ErrorCodeUnavailable) {
				return err
			}
			return retry.Permanent(err)
		}
		tr = t
		return nil
	})
	if err != nil {
		if claimed {
			if delErr := s.kv.Del(context.WithoutCancel(ctx), key); delErr != nil {
				logger.C(ctx).Warn().Err(delErr).Str("key", key).Msg("seen marker rollback failed")
			}
		}
		return domain.TransitionUnchanged, err
	}
	return tr, nil
}

// DeactivateStale implements domain.SweeperPort
func (s *Svc) DeactivateStale(ctx context.Context, unseenFor time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-unseenFor)
	n, err := s.storage.DeactivateStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.C(ctx).Info().Int64("deactivated", n).Time("cutoff", cutoff).Msg("stale listings swept")
	}
	return n, nil
}

// ByExternalID implements domain.ReaderPort
func (s *Svc) ByExternalID(ctx context.Context, externalID string) (domain.Listing, error) {
	return s.storage.ByExternalID(ctx, externalID)
}

func markerKey(l domain.Listing) string {
	return fmt.Sprintf("listings:seen:%s:%x", l.ExternalID, l.ContentHash)
}
