// Package module wires match history into the API using modkit
package module

import (
	"net/http"

	modkit "flatfinder/internal/modkit"
	"flatfinder/internal/modkit/httpkit"
	str "flatfinder/internal/platform/strings"
	matcheshttp "flatfinder/internal/services/api/matches/http"
	matchesdom "flatfinder/internal/services/matches/domain"
	workermatches "flatfinder/internal/services/matches/module"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	query matchesdom.QueryPort
}

// New constructs a matches API module. The Query port is taken from
// WithPorts when provided, otherwise a fresh worker matches module
// is built over the same deps
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("matches"), modkit.WithPrefix("/matches")},
		opts...,
	)...)

	var query matchesdom.QueryPort
	if p, ok := b.Ports.(Ports); ok && p.Query != nil {
		query = p.Query
	} else {
		query = workermatches.New(deps).Ports().(workermatches.Ports).Query
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		query:     query,
	}
	m.ports = Ports{Query: query}

	external := b.Register
	m.register = func(r httpkit.Router) {
		matcheshttp.Register(r, m.query)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
