package module

import "flatfinder/internal/platform/config"

// Options configures the matches module
type Options struct {
	HardLimit int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	mf := cfg.Prefix("PIPELINE_MATCHES_")
	return Options{
		HardLimit: mf.MayInt("HARD_LIMIT", 100),
	}
}
