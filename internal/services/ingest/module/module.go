// Package module provides the ingest module
package module

import (
	"net/http"

	"flatfinder/internal/modkit"
	"flatfinder/internal/modkit/httpkit"
	"flatfinder/internal/services/ingest/domain"
	"flatfinder/internal/services/ingest/service"
	listdom "flatfinder/internal/services/listings/domain"
	matcherdom "flatfinder/internal/services/matcher/domain"
)

// Deps carries the collaborator ports the runner is wired with
type Deps struct {
	Feeds    []domain.FeedPort
	Detector listdom.DetectorPort
	Sweeper  listdom.SweeperPort
	Engine   matcherdom.EnginePort
}

// Ports exposed by the ingest module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new ingest module
func New(deps modkit.Deps, wired Deps) *Module {
	if len(wired.Feeds) == 0 || wired.Detector == nil || wired.Sweeper == nil || wired.Engine == nil {
		panic("ingest module: missing feeds, detector, sweeper or engine")
	}

	opts := FromConfig(deps.Cfg)
	runner := service.New(wired.Feeds, wired.Detector, wired.Sweeper, wired.Engine, service.Config{
		PollInterval:  opts.PollInterval,
		SweepInterval: opts.SweepInterval,
		StaleAfter:    opts.StaleAfter,
		Retry:         opts.Retry,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: runner}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "ingest" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
