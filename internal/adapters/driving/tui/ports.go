// Package tui provides the interactive terminal dashboard for commsdash.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/commsdash/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Report owns the session's monthly figures.
	Report driving.ReportService

	// Settings manages application settings. Optional: without it the
	// settings view reports the service as unavailable and exports go to
	// the working directory.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(report driving.ReportService, settings driving.SettingsService) *Ports {
	return &Ports{
		Report:   report,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Report == nil {
		return ErrMissingReportService
	}
	return nil
}
