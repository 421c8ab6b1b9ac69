package module

import (
	"time"

	"flatfinder/internal/platform/config"
)

// Options configures the prefs module
type Options struct {
	PriceBucket     int
	RebuildInterval time.Duration
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("PIPELINE_")
	return Options{
		PriceBucket:     pf.MayInt("PRICE_BUCKET", 100),
		RebuildInterval: pf.MayDuration("REBUILD_INTERVAL", 5*time.Minute),
	}
}
