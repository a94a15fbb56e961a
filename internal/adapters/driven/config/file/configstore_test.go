package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "commsdash")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_Getters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("export.prefix", "Comms_Report"))
	require.NoError(t, store.Set("periods.months", 24))

	assert.Equal(t, "Comms_Report", store.GetString("export.prefix"))
	assert.Equal(t, 24, store.GetInt("periods.months"))
	assert.Equal(t, "", store.GetString("periods.months"))
	assert.Equal(t, 0, store.GetInt("export.prefix"))
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("periods.start", "2025-01"))
	require.NoError(t, store.Set("periods.months", 12))
	require.NoError(t, store.Set("storage.backend", "sqlite"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "2025-01", reopened.GetString("periods.start"))
	assert.Equal(t, 12, reopened.GetInt("periods.months"))
	assert.Equal(t, "sqlite", reopened.GetString("storage.backend"))
	assert.Equal(t, []string{"periods.months", "periods.start", "storage.backend"}, reopened.Keys())
}

func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("export.dir", "/tmp/reports"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Contains(t, string(data), "[export]")
	assert.Contains(t, string(data), "dir = ")
	assert.Contains(t, string(data), "/tmp/reports")
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[periods]\nstart = \"2024-06\"\nmonths = 6\n\n[export]\nprefix = \"Dealer\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "2024-06", store.GetString("periods.start"))
	assert.Equal(t, 6, store.GetInt("periods.months"))
	assert.Equal(t, "Dealer", store.GetString("export.prefix"))
}

func TestConfigStore_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[periods\n"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("export.dir", "."))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)

	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
