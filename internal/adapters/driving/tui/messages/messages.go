// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/commsdash/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDashboard shows the figures for the selected month.
	ViewDashboard
	// ViewUpload picks a CSV export to upload for the selected month.
	ViewUpload
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDashboard:
		return "dashboard"
	case ViewUpload:
		return "upload"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// PeriodSelected is sent when the dashboard moves to another month.
type PeriodSelected struct {
	Period domain.Period
}

// StatsLoaded carries the derived stats for a month.
type StatsLoaded struct {
	Period domain.Period
	Stats  *domain.Stats
	Err    error
}

// UploadCompleted signals an upload finished.
type UploadCompleted struct {
	Period  domain.Period
	Summary *domain.UploadSummary
	Err     error
}

// ExportCompleted signals an export finished. Path is empty when the month
// had nothing to export.
type ExportCompleted struct {
	Period domain.Period
	Path   string
	Err    error
}

// ResetCompleted signals a reset finished. All is set for a reset of every
// month.
type ResetCompleted struct {
	Period domain.Period
	All    bool
	Err    error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals a setting was saved.
type SettingsSaved struct {
	Key string
	Err error
}
