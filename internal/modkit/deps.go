// Package modkit wires API modules: shared deps, build options and the module contract
package modkit

import (
	"langid/internal/core/langmodel"
	"langid/internal/platform/config"
	"langid/internal/platform/logger"
)

// Deps is what every module receives from main
type Deps struct {
	Log    *logger.Logger
	Cfg    config.Conf
	Models *langmodel.Provider
}
