package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"prev period", km.PrevPeriod, []string{"left", "h"}},
		{"next period", km.NextPeriod, []string{"right", "l"}},
		{"upload", km.Upload, []string{"u"}},
		{"export", km.Export, []string{"e"}},
		{"reset", km.Reset, []string{"r"}},
		{"reset all", km.ResetAll, []string{"R"}},
		{"confirm", km.Confirm, []string{"y"}},
		{"cancel", km.Cancel, []string{"n", "esc"}},
		{"complete", km.Complete, []string{"tab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_ResetKeysAreCaseSensitive(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("R", km.Reset))
	assert.False(t, Matches("r", km.ResetAll))
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
}

func TestKeyMap_DashboardHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.DashboardHelp()

	require.NotEmpty(t, help)
	assert.Equal(t, km.PrevPeriod.Keys(), help[0].Keys())
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	require.Len(t, groups, 4)
	for _, g := range groups {
		assert.NotEmpty(t, g)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("l", km.NextPeriod))
	assert.False(t, Matches("x", km.Quit))
}
