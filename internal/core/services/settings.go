package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/ports/driven"
	"github.com/custodia-labs/commsdash/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	now         func() time.Time
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		now:         time.Now,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings(s.now())

	settings := &domain.AppSettings{
		Periods: domain.PeriodSettings{
			Start:  s.getPeriod(domain.SettingPeriodsStart, defaults.Periods.Start),
			Months: s.getPositiveInt(domain.SettingPeriodsMonths, defaults.Periods.Months),
		},
		Export: domain.ExportSettings{
			Dir:    s.getString(domain.SettingExportDir, defaults.Export.Dir),
			Prefix: s.getString(domain.SettingExportPrefix, defaults.Export.Prefix),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.configStore.Set(domain.SettingPeriodsStart, settings.Periods.Start.Key()); err != nil {
		return fmt.Errorf("save periods start: %w", err)
	}
	if err := s.configStore.Set(domain.SettingPeriodsMonths, settings.Periods.Months); err != nil {
		return fmt.Errorf("save periods months: %w", err)
	}
	if err := s.configStore.Set(domain.SettingExportDir, settings.Export.Dir); err != nil {
		return fmt.Errorf("save export dir: %w", err)
	}
	if err := s.configStore.Set(domain.SettingExportPrefix, settings.Export.Prefix); err != nil {
		return fmt.Errorf("save export prefix: %w", err)
	}
	if err := s.configStore.Set(domain.SettingStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	return nil
}

// Set validates value and persists it under key.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	value = strings.TrimSpace(value)

	switch key {
	case domain.SettingPeriodsStart:
		period, err := domain.ParsePeriod(value)
		if err != nil {
			return err
		}
		return s.configStore.Set(key, period.Key())
	case domain.SettingPeriodsMonths:
		months, err := strconv.Atoi(value)
		if err != nil || months <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, months)
	case domain.SettingExportDir, domain.SettingExportPrefix:
		if value == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, value)
	case domain.SettingStorageBackend:
		backend := domain.StorageBackend(strings.ToLower(value))
		if !backend.IsValid() {
			return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, backend.String())
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys returns the settable keys.
func (s *SettingsService) Keys() []string {
	return domain.SettingKeys()
}

// ConfigPath returns where settings are persisted.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getPeriod(key string, defaultVal domain.Period) domain.Period {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	period, err := domain.ParsePeriod(val)
	if err != nil {
		return defaultVal
	}
	return period
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(domain.SettingStorageBackend))
	if backend.IsValid() {
		return backend
	}
	return defaultVal
}
