package module

import (
	matchesdom "flatfinder/internal/services/matches/domain"
)

// Ports exposes the module's read surface for cross-module lookups
type Ports struct {
	Query matchesdom.QueryPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
