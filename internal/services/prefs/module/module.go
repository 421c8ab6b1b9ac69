// Package module provides the prefs module
package module

import (
	"net/http"

	"flatfinder/internal/modkit"
	"flatfinder/internal/modkit/httpkit"
	"flatfinder/internal/modkit/repokit"
	"flatfinder/internal/services/prefs/domain"
	"flatfinder/internal/services/prefs/repo"
	"flatfinder/internal/services/prefs/service"
)

// Ports exposed by the prefs module
type Ports struct {
	Reader    domain.ReaderPort
	Index     domain.IndexPort
	Rebuilder domain.RebuilderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new prefs module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	idx := service.NewIndex(opts.PriceBucket)
	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder, idx, service.Config{
		RebuildInterval: opts.RebuildInterval,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Reader: svc, Index: idx, Rebuilder: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "prefs" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
