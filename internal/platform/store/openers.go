package store

import (
	"context"
	"fmt"
	"time"

	chx "flatfinder/internal/platform/store/ch"
	"flatfinder/internal/platform/store/natsq"
	"flatfinder/internal/platform/store/pg"
	"flatfinder/internal/platform/store/rds"
)

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	// Connection guardrails: ping with retry/backoff using the *pool* directly
	const (
		maxAttempts    = 20
		pingTimeout    = 3 * time.Second
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < maxAttempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx) // <-- no adapter, no SQL trace line
		cancel()

		if lastErr == nil {
			a := newPGAdapter(p) // publish adapter only after the pool is healthy
			s.PG = a
			return a, nil
		}
		if ctx.Err() != nil {
			p.Close() // close the pool we opened
			return nil, ctx.Err()
		}
		time.Sleep(backoff)
		if backoff < backoffCeiling {
			backoff *= 2
			if backoff > backoffCeiling {
				backoff = backoffCeiling
			}
		}
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", maxAttempts, lastErr)
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:  cfg.CH.URL,
		Role: cfg.CH.Role,
		Tag:  cfg.CH.Tag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}

// openRDS opens redis; *rds.RDS already satisfies the KV seam
func openRDS(ctx context.Context, cfg Config) (KV, error) {
	return rds.Open(ctx, rds.Config{
		Addr:     cfg.RDS.Addr,
		DB:       cfg.RDS.DB,
		Password: cfg.RDS.Password,
	})
}

// openNATS opens nats; *natsq.Bus already satisfies the Bus seam
func openNATS(ctx context.Context, cfg Config) (Bus, error) {
	name := cfg.NATS.Name
	if name == "" {
		name = cfg.AppName
	}
	return natsq.Open(ctx, natsq.Config{URL: cfg.NATS.URL, Name: name})
}
