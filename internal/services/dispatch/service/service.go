// Package service implements the action dispatcher
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"flatfinder/internal/modkit/repokit"
	"flatfinder/internal/platform/logger"
	"flatfinder/internal/platform/retry"
	"flatfinder/internal/services/dispatch/domain"
	"flatfinder/internal/services/dispatch/repo"
	listdom "flatfinder/internal/services/listings/domain"
)

// Config controls delivery behavior
type Config struct {
	Timeout         time.Duration // per collaborator call
	Retry           retry.Policy
	NotifyThreshold int // fallback when the user has not set one; 0 = any match
}

// Svc implements domain.DispatcherPort and domain.DeadLetterPort
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Storage]
	storage repo.Storage

	notifier domain.NotifierPort
	appq     domain.ApplicationQueuePort
	cfg      Config
}

// New constructs the dispatcher
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Storage],
	notifier domain.NotifierPort,
	appq domain.ApplicationQueuePort,
	cfg Config,
) *Svc {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.Default()
	}
	return &Svc{
		db:       db,
		binder:   binder,
		storage:  binder.Bind(db),
		notifier: notifier,
		appq:     appq,
		cfg:      cfg,
	}
}

// Dispatch implements domain.DispatcherPort. Delivery is at-least-once:
// a failed intent is retried, then dead-lettered, and the loop moves on.
// One user's broken channel never blocks the rest of the listing's matches
func (s *Svc) Dispatch(ctx context.Context, listing listdom.Summary, decisions []domain.Decision) error {
	for _, d := range decisions {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if s.shouldNotify(d) {
			intent := domain.NotifyIntent{
				UserID:   d.UserID,
				Listing:  listing,
				Score:    d.Score,
				Channels: d.Channels,
			}
			s.deliver(ctx, domain.IntentNotify, intent, func(c context.Context) error {
				return s.notifier.Notify(c, intent)
			})
		}

		if d.AutoApply && d.Score >= d.AutoApplyThreshold {
			intent := domain.ApplyIntent{
				UserID:  d.UserID,
				Listing: listing,
				Score:   d.Score,
			}
			s.deliver(ctx, domain.IntentApply, intent, func(c context.Context) error {
				return s.appq.Enqueue(c, intent)
			})
		}
	}
	return nil
}

func (s *Svc) shouldNotify(d domain.Decision) bool {
	threshold := d.NotifyThreshold
	if threshold <= 0 {
		threshold = s.cfg.NotifyThreshold
	}
	return d.Score >= threshold
}

// deliver retries one intent under the per-call timeout. No lock is held
// here; the collaborator call is the pipeline's only blocking point
func (s *Svc) deliver(ctx context.Context, kind domain.IntentKind, payload any, call func(context.Context) error) {
	attempts := 0
	err := s.cfg.Retry.Do(ctx, func() error {
		attempts++
		cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
		if err := call(cctx); err != nil {
			if ctx.Err() != nil {
				return retry.Permanent(err)
			}
			return err
		}
		return nil
	})
	if err == nil {
		return
	}
	s.deadLetter(ctx, kind, payload, attempts, err)
}

// deadLetter persists an exhausted intent. If even that fails the payload
// goes into the log, so the intent is reviewable either way
func (s *Svc) deadLetter(ctx context.Context, kind domain.IntentKind, payload any, attempts int, cause error) {
	body, _ := json.Marshal(payload)
	dl := domain.DeadLetter{
		ID:        uuid.New(),
		Kind:      kind,
		Payload:   body,
		Attempts:  attempts,
		LastError: cause.Error(),
		State:     domain.StateOpen,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.storage.Insert(context.WithoutCancel(ctx), dl); err != nil {
		logger.C(ctx).Error().Err(err).
			Str("kind", string(kind)).
			RawJSON("payload", body).
			Msg("dead letter insert failed, intent preserved in log only")
		return
	}
	logger.C(ctx).Warn().
		Str("kind", string(kind)).
		Str("dead_letter_id", dl.ID.String()).
		Int("attempts", attempts).
		Err(cause).
		Msg("intent dead lettered")
}

// List implements domain.DeadLetterPort
func (s *Svc) List(ctx context.Context, kind domain.IntentKind, state string, limit int) ([]domain.DeadLetter, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.storage.List(ctx, kind, state, limit)
}

// Resolve implements domain.DeadLetterPort
func (s *Svc) Resolve(ctx context.Context, id uuid.UUID) error {
	return s.storage.Resolve(ctx, id)
}
