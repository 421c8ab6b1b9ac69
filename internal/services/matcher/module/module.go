// Package module provides the matcher module
package module

import (
	"net/http"

	"flatfinder/internal/modkit"
	"flatfinder/internal/modkit/httpkit"
	"flatfinder/internal/services/matcher/domain"
	"flatfinder/internal/services/matcher/service"
)

// Ports exposed by the matcher module
type Ports struct {
	Engine domain.EnginePort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new matcher module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("matcher"),
	}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("matcher module: expected WithPorts(matcher/domain.Ports)")
	}
	if ports.Index == nil || ports.Matches == nil || ports.Dispatcher == nil {
		panic("matcher module: Ports missing Index, Matches or Dispatcher")
	}

	cfg := FromConfig(deps.Cfg)
	engine := service.New(ports.Index, ports.Matches, ports.Dispatcher, service.Config{
		Workers: cfg.Workers,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Engine: engine}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "matcher" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
