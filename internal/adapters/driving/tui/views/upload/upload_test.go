package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/ports/driving"
)

var jan = domain.NewPeriod(2025, time.January)

// mockReport implements driving.ReportService, recording uploads.
type mockReport struct {
	driving.ReportService

	period  domain.Period
	content string
	err     error
}

func (m *mockReport) Upload(_ context.Context, period domain.Period, r io.Reader) (*domain.UploadSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.period = period
	m.content = string(data)
	return &domain.UploadSummary{Period: period, RowsRead: 1}, nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestView(report driving.ReportService) *View {
	v := NewView(nil, report)
	v.SetDimensions(100, 30)
	v.SetPeriod(jan)
	v.Init()
	return v
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewView(t *testing.T) {
	v := NewView(nil, &mockReport{})

	require.NotNil(t, v)
	assert.False(t, v.Busy())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Render(t *testing.T) {
	v := newTestView(&mockReport{})

	out := v.View()

	assert.Contains(t, out, "Upload CSV export")
	assert.Contains(t, out, "January 2025")
	assert.Contains(t, out, "replaces")
}

func TestView_EnterWithoutPath(t *testing.T) {
	v := newTestView(&mockReport{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), ErrNoPath)
	assert.Contains(t, v.View(), "Error:")
}

func TestView_UploadsFile(t *testing.T) {
	report := &mockReport{}
	v := newTestView(report)
	path := writeFile(t, "jan.csv", "ChannelType\nDP\n")

	v.Update(keyRunes(path))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, v.Busy())
	assert.Contains(t, v.View(), "Uploading...")

	msg := cmd().(messages.UploadCompleted)
	require.NoError(t, msg.Err)
	assert.Equal(t, jan, msg.Period)
	assert.Equal(t, jan, report.period)
	assert.Equal(t, "ChannelType\nDP\n", report.content)

	v.Update(msg)
	assert.False(t, v.Busy())
}

func TestView_KeysIgnoredWhileBusy(t *testing.T) {
	v := newTestView(&mockReport{})
	v.Update(keyRunes(writeFile(t, "a.csv", "x")))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
}

func TestView_MissingFile(t *testing.T) {
	v := newTestView(&mockReport{})
	v.Update(keyRunes(filepath.Join(t.TempDir(), "gone.csv")))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(messages.UploadCompleted)

	assert.Error(t, msg.Err)
	v.Update(msg)
	assert.Contains(t, v.View(), "failed to open")
}

func TestView_UploadError(t *testing.T) {
	v := newTestView(&mockReport{err: domain.ErrParseFailure})
	v.Update(keyRunes(writeFile(t, "bad.csv", "x")))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(messages.UploadCompleted)

	assert.ErrorIs(t, msg.Err, domain.ErrParseFailure)
}

func TestView_NoReportService(t *testing.T) {
	v := newTestView(nil)
	v.Update(keyRunes("x.csv"))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(messages.UploadCompleted)

	assert.Error(t, msg.Err)
}

func TestView_TabCompletes(t *testing.T) {
	path := writeFile(t, "february.csv", "x")
	v := newTestView(&mockReport{})
	v.Update(keyRunes(filepath.Join(filepath.Dir(path), "feb")))

	v.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, path, v.Path())
	assert.NoError(t, v.Err())
}

func TestView_TabNoMatch(t *testing.T) {
	v := newTestView(&mockReport{})
	v.Update(keyRunes(filepath.Join(t.TempDir(), "zzz")))

	v.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Error(t, v.Err())
}

func TestView_EscReturnsToDashboard(t *testing.T) {
	v := newTestView(&mockReport{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDashboard}, cmd())
}

func TestView_InitClearsError(t *testing.T) {
	v := newTestView(&mockReport{})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Error(t, v.Err())

	v.Init()

	assert.NoError(t, v.Err())
}
