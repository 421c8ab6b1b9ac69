package module

import (
	"time"

	"flatfinder/internal/platform/config"
	"flatfinder/internal/platform/retry"
)

// Options configures the listings module
type Options struct {
	MarkerTTL time.Duration
	Retry     retry.Policy
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("PIPELINE_")
	return Options{
		MarkerTTL: pf.MayDuration("SEEN_MARKER_TTL", 6*time.Hour),
		Retry: retry.Policy{
			Base:        pf.MayDuration("RETRY_BASE", time.Second),
			Cap:         pf.MayDuration("RETRY_CAP", 60*time.Second),
			MaxAttempts: pf.MayInt("MAX_ATTEMPTS", 5),
		},
	}
}
