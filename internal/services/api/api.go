// Package api provides the HTTP API for the application
package api

import (
	"flatfinder/internal/platform/config"
	"flatfinder/internal/platform/logger"
	phttp "flatfinder/internal/platform/net/http"
	"flatfinder/internal/platform/store"

	"flatfinder/internal/modkit"
	"flatfinder/internal/modkit/httpkit"
	"flatfinder/internal/modkit/module"
	"flatfinder/internal/modkit/swaggerkit"

	dlmod "flatfinder/internal/services/api/deadletters/module"
	apilistings "flatfinder/internal/services/api/listings/module"
	apimatches "flatfinder/internal/services/api/matches/module"
	metamod "flatfinder/internal/services/api/meta/module"

	// Worker modules own the read ports the API modules borrow
	workerlistings "flatfinder/internal/services/listings/module"
	workermatches "flatfinder/internal/services/matches/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
		KV:  opt.Store.RDS,
	}

	// Construct the worker modules first and hand their read ports to the
	// API modules, so both binaries go through one wiring path
	listingsWorker := workerlistings.New(deps)
	matchesWorker := workermatches.New(deps)

	apiListings := apilistings.New(deps, modkit.WithPorts(apilistings.Ports{
		Reader: listingsWorker.Ports().(workerlistings.Ports).Reader,
	}))
	apiMatches := apimatches.New(deps, modkit.WithPorts(apimatches.Ports{
		Query: matchesWorker.Ports().(workermatches.Ports).Query,
	}))

	mods := []module.Module{
		metamod.New(deps),
		dlmod.New(deps),
		apiListings,
		apiMatches,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
