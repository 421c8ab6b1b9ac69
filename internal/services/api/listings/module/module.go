// Package module wires listing lookups into the API using modkit
package module

import (
	"net/http"

	modkit "flatfinder/internal/modkit"
	"flatfinder/internal/modkit/httpkit"
	str "flatfinder/internal/platform/strings"
	listingshttp "flatfinder/internal/services/api/listings/http"
	listdom "flatfinder/internal/services/listings/domain"
	workerlistings "flatfinder/internal/services/listings/module"
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

	reader listdom.ReaderPort
}

// New constructs a listings API module. The Reader port is taken from
// WithPorts when provided, otherwise a fresh worker listings module
// is built over the same deps
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("listings"), modkit.WithPrefix("/listings")},
		opts...,
	)...)

	var reader listdom.ReaderPort
	if p, ok := b.Ports.(Ports); ok && p.Reader != nil {
		reader = p.Reader
	} else {
		reader = workerlistings.New(deps).Ports().(workerlistings.Ports).Reader
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		reader:    reader,
	}
	m.ports = Ports{Reader: reader}

	external := b.Register
	m.register = func(r httpkit.Router) {
		listingshttp.Register(r, m.reader)
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
