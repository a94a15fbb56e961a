package input

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/styles"
)

func makeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"jan.csv", "feb.CSV", "notes.txt", ".hidden.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0700))
	return dir
}

func TestNewPathInput(t *testing.T) {
	input := NewPathInput(styles.DefaultStyles())

	require.NotNil(t, input)
	assert.Equal(t, "", input.Value())
	assert.True(t, input.Focused())
}

func TestNewPathInput_NilStyles(t *testing.T) {
	input := NewPathInput(nil)

	require.NotNil(t, input)
	assert.NotNil(t, input.styles)
}

func TestPathInput_Init(t *testing.T) {
	assert.NotNil(t, NewPathInput(nil).Init())
}

func TestPathInput_Update_TypesRunes(t *testing.T) {
	input := NewPathInput(nil)

	input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.csv")})

	assert.Equal(t, "a.csv", input.Value())
}

func TestPathInput_ValueTrimsSpace(t *testing.T) {
	input := NewPathInput(nil)

	input.SetValue("  /tmp/a.csv ")

	assert.Equal(t, "/tmp/a.csv", input.Value())
}

func TestCandidates(t *testing.T) {
	dir := makeTree(t)
	prefix := dir + string(filepath.Separator)

	got := Candidates(prefix)

	assert.Equal(t, []string{
		prefix + "archive" + string(filepath.Separator),
		prefix + "feb.CSV",
		prefix + "jan.csv",
	}, got)
}

func TestCandidates_Prefix(t *testing.T) {
	dir := makeTree(t)

	got := Candidates(filepath.Join(dir, "j"))

	assert.Equal(t, []string{filepath.Join(dir, "jan.csv")}, got)
}

func TestCandidates_MissingDir(t *testing.T) {
	got := Candidates(filepath.Join(t.TempDir(), "missing", "x"))

	assert.Empty(t, got)
}

func TestPathInput_CompleteCycles(t *testing.T) {
	dir := makeTree(t)
	input := NewPathInput(nil)
	input.SetValue(filepath.Join(dir, "") + string(filepath.Separator))

	require.True(t, input.Complete())
	first := input.Value()
	require.True(t, input.Complete())
	second := input.Value()
	require.True(t, input.Complete())
	third := input.Value()
	require.True(t, input.Complete())

	assert.Contains(t, first, "archive")
	assert.Contains(t, second, "feb.CSV")
	assert.Contains(t, third, "jan.csv")
	assert.Equal(t, first, input.Value())
}

func TestPathInput_CompleteNoMatch(t *testing.T) {
	dir := makeTree(t)
	input := NewPathInput(nil)
	input.SetValue(filepath.Join(dir, "zzz"))

	assert.False(t, input.Complete())
	assert.Equal(t, filepath.Join(dir, "zzz"), input.Value())
}

func TestPathInput_EditResetsCompletion(t *testing.T) {
	dir := makeTree(t)
	input := NewPathInput(nil)
	input.SetValue(filepath.Join(dir, "f"))
	require.True(t, input.Complete())

	for range "feb.CSV" {
		input.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	require.True(t, input.Complete())

	assert.Equal(t, filepath.Join(dir, "jan.csv"), input.Value())
}

func TestPathInput_SetWidth(t *testing.T) {
	input := NewPathInput(nil)

	input.SetWidth(100)
	assert.Equal(t, 100, input.Width())
	assert.Equal(t, 84, input.textinput.Width)

	input.SetWidth(10)
	assert.Equal(t, 20, input.textinput.Width)
}

func TestPathInput_Reset(t *testing.T) {
	input := NewPathInput(nil)
	input.SetValue("x.csv")

	input.Reset()

	assert.Equal(t, "", input.Value())
}

func TestPathInput_FocusBlur(t *testing.T) {
	input := NewPathInput(nil)

	input.Blur()
	assert.False(t, input.Focused())
	input.Focus()
	assert.True(t, input.Focused())
}

func TestPathInput_View(t *testing.T) {
	assert.Contains(t, NewPathInput(nil).View(), "CSV file")
}
