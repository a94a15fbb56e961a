package domain

import (
	"strconv"
	"time"
)

// Setting keys, in dot notation as stored by the config store.
const (
	SettingPeriodsStart   = "periods.start"
	SettingPeriodsMonths  = "periods.months"
	SettingExportDir      = "export.dir"
	SettingExportPrefix   = "export.prefix"
	SettingStorageBackend = "storage.backend"
)

// SettingKeys returns every settable key in display order.
func SettingKeys() []string {
	return []string{
		SettingPeriodsStart,
		SettingPeriodsMonths,
		SettingExportDir,
		SettingExportPrefix,
		SettingStorageBackend,
	}
}

// StorageBackend selects where the session's aggregates are kept.
type StorageBackend string

// Available storage backends. Both are in-memory for the process lifetime.
const (
	// StorageMemory keeps aggregates in a Go map.
	StorageMemory StorageBackend = "memory"

	// StorageSQLite keeps aggregates in an in-memory SQLite database.
	StorageSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageMemory || b == StorageSQLite
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// DefaultWindowMonths is the size of the selectable period window.
const DefaultWindowMonths = 24

// DefaultExportPrefix prefixes export file names.
const DefaultExportPrefix = "Comms_Report"

// PeriodSettings configures the selectable period window.
type PeriodSettings struct {
	// Start is the first selectable month.
	Start Period

	// Months is the number of selectable months.
	Months int
}

// Contains reports whether p falls inside the window.
func (s PeriodSettings) Contains(p Period) bool {
	end := s.Start.AddMonths(s.Months)
	return !p.Before(s.Start) && p.Before(end)
}

// Periods returns every selectable period in order.
func (s PeriodSettings) Periods() []Period {
	return PeriodWindow(s.Start, s.Months)
}

// ExportSettings configures report export.
type ExportSettings struct {
	// Dir is where export files are written.
	Dir string

	// Prefix starts every export file name.
	Prefix string
}

// StorageSettings configures the aggregate store.
type StorageSettings struct {
	Backend StorageBackend
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Periods PeriodSettings
	Export  ExportSettings
	Storage StorageSettings
}

// DefaultAppSettings returns the defaults relative to now: a two-year
// window from January of the previous year.
func DefaultAppSettings(now time.Time) *AppSettings {
	return &AppSettings{
		Periods: PeriodSettings{
			Start:  NewPeriod(now.Year()-1, time.January),
			Months: DefaultWindowMonths,
		},
		Export: ExportSettings{
			Dir:    ".",
			Prefix: DefaultExportPrefix,
		},
		Storage: StorageSettings{
			Backend: StorageMemory,
		},
	}
}

// Value returns the setting stored under key in the form it is stored.
func (s *AppSettings) Value(key string) (string, bool) {
	switch key {
	case SettingPeriodsStart:
		return s.Periods.Start.Key(), true
	case SettingPeriodsMonths:
		return strconv.Itoa(s.Periods.Months), true
	case SettingExportDir:
		return s.Export.Dir, true
	case SettingExportPrefix:
		return s.Export.Prefix, true
	case SettingStorageBackend:
		return s.Storage.Backend.String(), true
	default:
		return "", false
	}
}
