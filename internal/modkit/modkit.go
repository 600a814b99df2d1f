package modkit

import (
	phttp "langid/internal/platform/net/http"
)

// Module is the surface main needs from an API module
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
