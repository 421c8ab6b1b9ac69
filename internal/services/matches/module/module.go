// Package module provides the matches module
package module

import (
	"net/http"

	"flatfinder/internal/modkit"
	"flatfinder/internal/modkit/httpkit"
	"flatfinder/internal/modkit/repokit"
	"flatfinder/internal/services/matches/domain"
	"flatfinder/internal/services/matches/repo"
	"flatfinder/internal/services/matches/service"
)

// Ports exposed by the matches module
type Ports struct {
	Writer domain.WriterPort
	Query  domain.QueryPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new matches module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder, deps.CH, service.Config{
		HardLimit: opts.HardLimit,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Writer: svc, Query: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "matches" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
