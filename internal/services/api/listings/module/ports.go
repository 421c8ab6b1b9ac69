package module

import (
	listdom "flatfinder/internal/services/listings/domain"
)

// Ports exposes the module's read surface for cross-module lookups
type Ports struct {
	Reader listdom.ReaderPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
