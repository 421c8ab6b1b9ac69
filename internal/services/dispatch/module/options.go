package module

import (
	"time"

	"flatfinder/internal/platform/config"
	"flatfinder/internal/platform/retry"
)

// Options configures the dispatch module
type Options struct {
	Timeout         time.Duration
	Retry           retry.Policy
	NotifyThreshold int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("PIPELINE_")
	return Options{
		Timeout:         pf.MayDuration("DISPATCH_TIMEOUT", 10*time.Second),
		NotifyThreshold: pf.MayInt("NOTIFY_THRESHOLD", 0),
		Retry: retry.Policy{
			Base:        pf.MayDuration("RETRY_BASE", time.Second),
			Cap:         pf.MayDuration("RETRY_CAP", 60*time.Second),
			MaxAttempts: pf.MayInt("MAX_ATTEMPTS", 5),
		},
	}
}
