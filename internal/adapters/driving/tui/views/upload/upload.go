// Package upload provides the CSV upload view for the TUI.
package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/ports/driving"
)

// ErrNoPath is shown when enter is pressed with an empty path.
var ErrNoPath = errors.New("enter the path of a CSV export")

// View asks for a CSV file and uploads it for the selected month.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	report driving.ReportService
	ctx    context.Context

	input  *input.PathInput
	period domain.Period
	busy   bool
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, report driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		report: report,
		ctx:    context.Background(),
		input:  input.NewPathInput(s),
		width:  80,
		height: 24,
	}
}

// SetContext sets the context passed to the report service.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetPeriod sets the month the next upload is bound to.
func (v *View) SetPeriod(p domain.Period) {
	v.period = p
}

// Period returns the month the next upload is bound to.
func (v *View) Period() domain.Period {
	return v.period
}

// Init focuses the path input. The last path is kept so a corrected file
// can be re-uploaded quickly.
func (v *View) Init() tea.Cmd {
	v.err = nil
	v.busy = false
	return tea.Batch(v.input.Focus(), v.input.Init())
}

// Busy reports whether an upload is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the last upload error.
func (v *View) Err() error {
	return v.err
}

// Path returns the entered path.
func (v *View) Path() string {
	return v.input.Value()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.UploadCompleted:
		v.busy = false
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch {
		case keymap.Matches(msg.String(), v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewDashboard}
			}
		case keymap.Matches(msg.String(), v.keymap.Complete):
			if !v.input.Complete() {
				v.err = fmt.Errorf("no CSV files match %q", v.input.Value())
			} else {
				v.err = nil
			}
			return v, nil
		case keymap.Matches(msg.String(), v.keymap.Select):
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) submit() tea.Cmd {
	path := v.input.Value()
	if path == "" {
		v.err = ErrNoPath
		return nil
	}
	v.err = nil
	v.busy = true

	period := v.period
	report := v.report
	ctx := v.ctx
	return func() tea.Msg {
		if report == nil {
			return messages.UploadCompleted{Period: period, Err: errors.New("report service not available")}
		}
		summary, err := uploadFile(ctx, report, period, path)
		return messages.UploadCompleted{Period: period, Summary: summary, Err: err}
	}
}

func uploadFile(ctx context.Context, report driving.ReportService, period domain.Period, path string) (*domain.UploadSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return report.Upload(ctx, period, f)
}

// View renders the upload form.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Upload CSV export"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("Month: "))
	b.WriteString(v.styles.Subtitle.Render(v.period.Label()))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Uploading replaces any figures already loaded for this month."))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.busy:
		b.WriteString(v.styles.Muted.Render("Uploading..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[tab] Complete  [enter] Upload  [esc] Back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}
