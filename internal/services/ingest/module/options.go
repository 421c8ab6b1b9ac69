package module

import (
	"time"

	"flatfinder/internal/platform/config"
	"flatfinder/internal/platform/retry"
)

// Options configures the ingest module
type Options struct {
	PollInterval  time.Duration
	SweepInterval time.Duration
	StaleAfter    time.Duration
	Retry         retry.Policy
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("PIPELINE_")
	return Options{
		PollInterval:  pf.MayDuration("POLL_INTERVAL", 30*time.Second),
		SweepInterval: pf.MayDuration("SWEEP_INTERVAL", time.Hour),
		StaleAfter:    pf.MayDuration("STALE_AFTER", 24*time.Hour),
		Retry: retry.Policy{
			Base:        pf.MayDuration("RETRY_BASE", time.Second),
			Cap:         pf.MayDuration("RETRY_CAP", 60*time.Second),
			MaxAttempts: pf.MayInt("MAX_ATTEMPTS", 5),
		},
	}
}
