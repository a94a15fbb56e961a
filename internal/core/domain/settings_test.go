package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

	s := DefaultAppSettings(now)

	assert.Equal(t, NewPeriod(2025, time.January), s.Periods.Start)
	assert.Equal(t, 24, s.Periods.Months)
	assert.Equal(t, ".", s.Export.Dir)
	assert.Equal(t, DefaultExportPrefix, s.Export.Prefix)
	assert.Equal(t, StorageMemory, s.Storage.Backend)
}

func TestPeriodSettings_Contains(t *testing.T) {
	s := PeriodSettings{Start: NewPeriod(2025, time.January), Months: 24}

	assert.True(t, s.Contains(NewPeriod(2025, time.January)))
	assert.True(t, s.Contains(NewPeriod(2026, time.December)))
	assert.False(t, s.Contains(NewPeriod(2024, time.December)))
	assert.False(t, s.Contains(NewPeriod(2027, time.January)))
	assert.Len(t, s.Periods(), 24)
}

func TestStorageBackend_IsValid(t *testing.T) {
	assert.True(t, StorageMemory.IsValid())
	assert.True(t, StorageSQLite.IsValid())
	assert.False(t, StorageBackend("redis").IsValid())
}

func TestAppSettings_Value(t *testing.T) {
	s := DefaultAppSettings(time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC))

	tests := map[string]string{
		SettingPeriodsStart:   "2025-01",
		SettingPeriodsMonths:  "24",
		SettingExportDir:      ".",
		SettingExportPrefix:   "Comms_Report",
		SettingStorageBackend: "memory",
	}
	for _, key := range SettingKeys() {
		got, ok := s.Value(key)
		assert.True(t, ok, key)
		assert.Equal(t, tests[key], got, key)
	}

	_, ok := s.Value("colour.scheme")
	assert.False(t, ok)
}
