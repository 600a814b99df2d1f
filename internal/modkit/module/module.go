// Package module holds the module contract and the bootstrap port registry,
// apart from modkit so a module can export port types without import cycles
package module

import (
	phttp "langid/internal/platform/net/http"
)

// Module mirrors modkit.Module
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
