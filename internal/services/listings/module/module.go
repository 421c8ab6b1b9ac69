// Package module provides the listings module
package module

import (
	"net/http"

	"flatfinder/internal/modkit"
	"flatfinder/internal/modkit/httpkit"
	"flatfinder/internal/modkit/repokit"
	"flatfinder/internal/services/listings/domain"
	"flatfinder/internal/services/listings/repo"
	"flatfinder/internal/services/listings/service"
)

// Ports exposed by the listings module
type Ports struct {
	Detector domain.DetectorPort
	Sweeper  domain.SweeperPort
	Reader   domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new listings module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder, deps.KV, service.Config{
		MarkerTTL: opts.MarkerTTL,
		Retry:     opts.Retry,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Detector: svc, Sweeper: svc, Reader: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "listings" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
