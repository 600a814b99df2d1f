package module

import "langid/internal/services/api/detect/domain"

// Ports is what the detect module exposes to other modules
type Ports struct {
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
