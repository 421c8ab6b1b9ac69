// Package service implements the feed polling loop
package service

import (
	"context"
	"time"

	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/platform/logger"
	"flatfinder/internal/platform/retry"
	"flatfinder/internal/services/ingest/domain"
	listdom "flatfinder/internal/services/listings/domain"
	matcherdom "flatfinder/internal/services/matcher/domain"
)

// Config controls the loop cadence
type Config struct {
	PollInterval  time.Duration
	SweepInterval time.Duration
	StaleAfter    time.Duration
	Retry         retry.Policy
}

// Svc implements domain.RunnerPort. It is the pipeline's outer loop:
// poll feeds, detect changes, hand new-or-changed listings to the matcher
type Svc struct {
	feeds    []domain.FeedPort
	detector listdom.DetectorPort
	sweeper  listdom.SweeperPort
	engine   matcherdom.EnginePort
	cfg      Config
}

// New constructs the runner
func New(
	feeds []domain.FeedPort,
	detector listdom.DetectorPort,
	sweeper listdom.SweeperPort,
	engine matcherdom.EnginePort,
	cfg Config,
) *Svc {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 24 * time.Hour
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.Default()
	}
	return &Svc{feeds: feeds, detector: detector, sweeper: sweeper, engine: engine, cfg: cfg}
}

// Run implements domain.RunnerPort. Cancellation stops polling; the cycle
// in flight drains through the matcher before Run returns
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("ingest")
	log.Info().
		Dur("poll_interval", s.cfg.PollInterval).
		Dur("stale_after", s.cfg.StaleAfter).
		Int("feeds", len(s.feeds)).
		Msg("pipeline loop starting")

	poll := time.NewTicker(s.cfg.PollInterval)
	defer poll.Stop()
	sweep := time.NewTicker(s.cfg.SweepInterval)
	defer sweep.Stop()

	if err := s.RunOnce(ctx); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-poll.C:
			if err := s.RunOnce(ctx); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		case <-sweep.C:
			if _, err := s.sweeper.DeactivateStale(ctx, s.cfg.StaleAfter); err != nil {
				log.Error().Err(err).Msg("staleness sweep failed")
			}
		}
	}
}

// RunOnce implements domain.RunnerPort: one full poll cycle across all
// feeds. One broken feed never stops the others; the cycle summary line
// is the pipeline's heartbeat
func (s *Svc) RunOnce(ctx context.Context) error {
	log := logger.C(ctx)
	start := time.Now()

	var (
		raw     int
		emitted int
		failed  int
	)
	for _, feed := range s.feeds {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		batch, err := s.poll(ctx, feed)
		if err != nil {
			failed++
			log.Error().Err(err).Str("feed", feed.Name()).Msg("feed poll failed, cycle continues")
			continue
		}
		raw += len(batch)

		changed, err := s.detector.DetectNew(ctx, batch)
		if err != nil {
			// partial results are still valid, failures are per record
			log.Warn().Err(err).Str("feed", feed.Name()).Msg("some sightings not persisted")
		}
		if len(changed) == 0 {
			continue
		}
		emitted += len(changed)

		if err := s.engine.ProcessBatch(ctx, changed); err != nil {
			return err
		}
	}

	log.Info().
		Int("feeds", len(s.feeds)).
		Int("feeds_failed", failed).
		Int("raw", raw).
		Int("emitted", emitted).
		Dur("took", time.Since(start)).
		Msg("poll cycle done")
	return nil
}

// poll retries a feed under the transient policy; a non-transient error
// fails the feed for this cycle immediately
func (s *Svc) poll(ctx context.Context, feed domain.FeedPort) ([]listdom.RawListing, error) {
	var batch []listdom.RawListing
	err := s.cfg.Retry.Do(ctx, func() error {
		b, err := feed.Poll(ctx)
		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeUnavailable) || perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
				return err
			}
			return retry.Permanent(err)
		}
		batch = b
		return nil
	})
	return batch, err
}
