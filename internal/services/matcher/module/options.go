package module

import "flatfinder/internal/platform/config"

// Options configures the matcher module
type Options struct {
	Workers int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("PIPELINE_")
	return Options{
		Workers: pf.MayInt("WORKERS", 4),
	}
}
