package controllers

import "github.com/rios0rios0/releaser/internal/domain/entities"

// ApplyFlags exports applyFlags for testing.
var ApplyFlags = applyFlags //nolint:gochecknoglobals // test export

// WarningSummary exports warningSummary for testing.
var WarningSummary = warningSummary //nolint:gochecknoglobals // test export

// SetExit replaces the process exit of a VersionController for testing.
func SetExit(controller *VersionController, exit func(code int)) {
	controller.exit = exit
}

var _ entities.Controller = (*VersionController)(nil)
