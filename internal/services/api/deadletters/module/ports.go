package module

import (
	dlsvc "flatfinder/internal/services/api/deadletters/service"
)

// Ports exposes the module's dead-letter service for cross-module lookups
type Ports struct {
	DeadLetters dlsvc.Service
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
