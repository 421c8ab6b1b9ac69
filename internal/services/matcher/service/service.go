// Package service implements the matching engine orchestration
package service

import (
	"context"
	"sync"
	"time"

	"flatfinder/internal/core/scoring"
	"flatfinder/internal/platform/logger"
	dispatchdom "flatfinder/internal/services/dispatch/domain"
	listdom "flatfinder/internal/services/listings/domain"
	matchesdom "flatfinder/internal/services/matches/domain"
	prefsdom "flatfinder/internal/services/prefs/domain"
)

// Config for the matcher
type Config struct {
	Workers int
}

// Svc implements domain.EnginePort
type Svc struct {
	idx        prefsdom.IndexPort
	matches    matchesdom.WriterPort
	dispatcher dispatchdom.DispatcherPort
	cfg        Config
}

// New constructs the matcher
func New(
	idx prefsdom.IndexPort,
	matches matchesdom.WriterPort,
	dispatcher dispatchdom.DispatcherPort,
	cfg Config,
) *Svc {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Svc{idx: idx, matches: matches, dispatcher: dispatcher, cfg: cfg}
}

// ProcessBatch implements domain.EnginePort. Listings fan out over a
// bounded worker pool; each worker finishes its current listing on
// shutdown, so an in-flight pass always drains
func (s *Svc) ProcessBatch(ctx context.Context, ls []listdom.Listing) error {
	if len(ls) == 0 {
		return nil
	}

	sem := make(chan struct{}, s.cfg.Workers)
	var wg sync.WaitGroup
	for i := range ls {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		l := ls[i]
		go func() {
			defer func() { <-sem; wg.Done() }()
			s.processOne(ctx, l)
		}()
	}
	wg.Wait()
	return ctx.Err()
}

// processOne scores one listing against a single index snapshot. All
// results for the listing come from that one snapshot; a concurrent
// rebuild never splits a pass
func (s *Svc) processOne(ctx context.Context, l listdom.Listing) {
	log := logger.C(ctx)
	sl := toScoring(l)

	cands := s.idx.CandidatesFor(sl)
	if len(cands) == 0 {
		return
	}

	profiles := make([]scoring.Profile, len(cands))
	byUser := make(map[string]prefsdom.UserPreference, len(cands))
	for i, c := range cands {
		profiles[i] = c.Profile
		byUser[c.Profile.UserID] = c.Pref
	}

	results := scoring.ScoreAll(sl, profiles)
	if len(results) == 0 {
		return
	}

	now := time.Now().UTC()
	mrs := make([]matchesdom.MatchResult, 0, len(results))
	decisions := make([]dispatchdom.Decision, 0, len(results))
	for _, r := range results {
		pref := byUser[r.UserID]
		mrs = append(mrs, matchesdom.MatchResult{
			UserID:     pref.UserID,
			ListingID:  l.ExternalID,
			Score:      r.Score,
			ComputedAt: now,
		})
		decisions = append(decisions, dispatchdom.Decision{
			UserID:             pref.UserID,
			Score:              r.Score,
			NotifyThreshold:    pref.NotifyThreshold,
			Channels:           pref.Channels,
			AutoApply:          pref.AutoApply,
			AutoApplyThreshold: pref.AutoApplyThreshold,
		})
	}

	// history first, then dispatch; a history failure is logged and the
	// intents still go out, losing analytics beats losing notifications
	if err := s.matches.RecordBatch(ctx, mrs); err != nil {
		log.Error().Err(err).Str("external_id", l.ExternalID).Msg("match history write failed")
	}
	if err := s.dispatcher.Dispatch(ctx, l.Summary(), decisions); err != nil {
		log.Warn().Err(err).Str("external_id", l.ExternalID).Msg("dispatch aborted")
		return
	}

	log.Debug().
		Str("external_id", l.ExternalID).
		Int("candidates", len(cands)).
		Int("matches", len(results)).
		Msg("listing matched")
}

func toScoring(l listdom.Listing) scoring.Listing {
	return scoring.Listing{
		ExternalID: l.ExternalID,
		Price:      l.Price,
		Rooms:      l.Rooms,
		SizeSqm:    l.SizeSqm,
		District:   l.District,
		Amenities:  l.Amenities,
	}
}
