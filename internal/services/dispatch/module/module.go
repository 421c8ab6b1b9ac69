// Package module provides the dispatch module
package module

import (
	"net/http"

	"flatfinder/internal/adapters/intents"
	"flatfinder/internal/modkit"
	"flatfinder/internal/modkit/httpkit"
	"flatfinder/internal/services/dispatch/domain"
	"flatfinder/internal/services/dispatch/repo"
	"flatfinder/internal/services/dispatch/service"
)

// Ports exposed by the dispatch module
type Ports struct {
	Dispatcher  domain.DispatcherPort
	DeadLetters domain.DeadLetterPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new dispatch module. Intents go out over the
// platform bus; deps.Bus must be open
func New(deps modkit.Deps) *Module {
	if deps.Bus == nil {
		panic("dispatch module: deps.Bus is required")
	}

	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	svc := service.New(
		deps.PG,
		binder,
		intents.NewNotifier(deps.Bus),
		intents.NewAppQueue(deps.Bus),
		service.Config{
			Timeout:         opts.Timeout,
			Retry:           opts.Retry,
			NotifyThreshold: opts.NotifyThreshold,
		},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Dispatcher: svc, DeadLetters: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "dispatch" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
