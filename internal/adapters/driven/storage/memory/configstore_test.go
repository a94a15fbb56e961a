package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("export.dir", "/tmp/out"))
	require.NoError(t, store.Set("periods.months", int64(12)))

	assert.Equal(t, "/tmp/out", store.GetString("export.dir"))
	assert.Equal(t, 12, store.GetInt("periods.months"))
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("export.dir"))
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}
