// Package dashboard provides the monthly figures view for the TUI.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/ports/driving"
	"github.com/custodia-labs/commsdash/internal/format"
)

// Section identifies a collapsible block of the dashboard.
type Section int

const (
	SectionKeyMetrics Section = iota
	SectionTotals
	SectionPercentages
	sectionCount
)

// Title returns the heading shown for the section.
func (s Section) Title() string {
	switch s {
	case SectionKeyMetrics:
		return domain.SectionKeyMetrics
	case SectionTotals:
		return domain.SectionTotals
	case SectionPercentages:
		return domain.SectionPercentages
	default:
		return ""
	}
}

// View shows the key metrics, totals and percentages for one month.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	report   driving.ReportService
	settings driving.SettingsService
	ctx      context.Context

	periods []domain.Period
	index   int
	stats   *domain.Stats
	err     error

	collapsed       [sectionCount]bool
	confirmResetAll bool

	width  int
	height int
	ready  bool
}

// NewView creates a dashboard positioned on the report service's default
// month. settings may be nil, in which case exports go to the working
// directory.
func NewView(s *styles.Styles, report driving.ReportService, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		report:   report,
		settings: settings,
		ctx:      context.Background(),
		width:    80,
		height:   24,
	}
	if report != nil {
		v.periods = report.Periods()
		v.SelectPeriod(report.DefaultPeriod())
	}
	return v
}

// SetContext sets the context passed to the report service.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the stats for the selected month.
func (v *View) Init() tea.Cmd {
	return v.loadStats()
}

// Period returns the selected month.
func (v *View) Period() domain.Period {
	if len(v.periods) == 0 {
		return domain.Period{}
	}
	return v.periods[v.index]
}

// SelectPeriod moves the selection to p if it is in the window.
func (v *View) SelectPeriod(p domain.Period) bool {
	for i, candidate := range v.periods {
		if candidate == p {
			v.index = i
			return true
		}
	}
	return false
}

// Stats returns the stats currently displayed.
func (v *View) Stats() *domain.Stats {
	return v.stats
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// ConfirmPending reports whether a reset-all confirmation is showing.
func (v *View) ConfirmPending() bool {
	return v.confirmResetAll
}

// Collapsed reports whether a section is collapsed.
func (v *View) Collapsed(s Section) bool {
	if s < 0 || s >= sectionCount {
		return false
	}
	return v.collapsed[s]
}

// Update handles messages for the dashboard.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.StatsLoaded:
		if msg.Period != v.Period() {
			// A late result for a month the user has already left.
			return v, nil
		}
		v.stats = msg.Stats
		v.err = msg.Err
		return v, nil

	case messages.UploadCompleted:
		if msg.Err == nil {
			v.SelectPeriod(msg.Period)
			return v, v.loadStats()
		}
		return v, nil

	case messages.ResetCompleted:
		return v, v.loadStats()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if v.confirmResetAll {
		switch {
		case keymap.Matches(k, v.keymap.Confirm):
			v.confirmResetAll = false
			return v, v.resetAll()
		case keymap.Matches(k, v.keymap.Cancel):
			v.confirmResetAll = false
		}
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.PrevPeriod):
		return v, v.move(-1)
	case keymap.Matches(k, v.keymap.NextPeriod):
		return v, v.move(1)
	case keymap.Matches(k, v.keymap.Upload):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewUpload}
		}
	case keymap.Matches(k, v.keymap.Export):
		return v, v.export()
	case keymap.Matches(k, v.keymap.ResetAll):
		v.confirmResetAll = true
		return v, nil
	case keymap.Matches(k, v.keymap.Reset):
		return v, v.reset()
	case keymap.Matches(k, v.keymap.Toggle):
		s := Section(k[0] - '1')
		v.collapsed[s] = !v.collapsed[s]
		return v, nil
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case k == "q":
		return v, tea.Quit
	}
	return v, nil
}

// move shifts the selection by delta months, clamped to the window.
func (v *View) move(delta int) tea.Cmd {
	next := v.index + delta
	if next < 0 || next >= len(v.periods) {
		return nil
	}
	v.index = next
	v.stats = nil
	period := v.Period()
	return tea.Batch(
		v.loadStats(),
		func() tea.Msg { return messages.PeriodSelected{Period: period} },
	)
}

func (v *View) loadStats() tea.Cmd {
	period := v.Period()
	report := v.report
	ctx := v.ctx
	return func() tea.Msg {
		if report == nil {
			return messages.StatsLoaded{Period: period, Err: errors.New("report service not available")}
		}
		stats, err := report.Stats(ctx, period)
		return messages.StatsLoaded{Period: period, Stats: stats, Err: err}
	}
}

func (v *View) export() tea.Cmd {
	period := v.Period()
	report := v.report
	ctx := v.ctx
	dir := v.exportDir()
	return func() tea.Msg {
		if report == nil {
			return messages.ExportCompleted{Period: period, Err: errors.New("report service not available")}
		}
		path, err := writeExport(ctx, report, period, dir)
		return messages.ExportCompleted{Period: period, Path: path, Err: err}
	}
}

// writeExport writes the month's report into dir. It returns an empty path
// without error when the month has nothing to export.
func writeExport(ctx context.Context, report driving.ReportService, period domain.Period, dir string) (string, error) {
	r, err := report.Export(ctx, period)
	if errors.Is(err, domain.ErrNoData) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, r.Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := report.WriteExport(ctx, period, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (v *View) exportDir() string {
	if v.settings == nil {
		return "."
	}
	settings, err := v.settings.Get()
	if err != nil || settings.Export.Dir == "" {
		return "."
	}
	return settings.Export.Dir
}

func (v *View) reset() tea.Cmd {
	period := v.Period()
	report := v.report
	ctx := v.ctx
	return func() tea.Msg {
		if report == nil {
			return messages.ResetCompleted{Period: period, Err: errors.New("report service not available")}
		}
		return messages.ResetCompleted{Period: period, Err: report.Reset(ctx, period)}
	}
}

func (v *View) resetAll() tea.Cmd {
	report := v.report
	ctx := v.ctx
	return func() tea.Msg {
		if report == nil {
			return messages.ResetCompleted{All: true, Err: errors.New("report service not available")}
		}
		return messages.ResetCompleted{All: true, Err: report.ResetAll(ctx)}
	}
}

// View renders the dashboard.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Communication preferences"))
	b.WriteString("\n")
	b.WriteString(v.renderSelector())
	b.WriteString("\n")

	if v.confirmResetAll {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render("Reset every month? Uploaded figures will be discarded. (y/n)"))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n")
		return b.String()
	}
	if v.stats == nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	}
	if !v.stats.HasData {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("No data for this month. Press u to upload a CSV export."))
		b.WriteString("\n")
	}

	for s := Section(0); s < sectionCount; s++ {
		b.WriteString(v.renderSection(s))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderSelector() string {
	if len(v.periods) == 0 {
		return v.styles.Muted.Render("No months configured")
	}
	left, right := "  ", "  "
	if v.index > 0 {
		left = "‹ "
	}
	if v.index < len(v.periods)-1 {
		right = " ›"
	}
	label := v.styles.Subtitle.Render(left + v.Period().Label() + right)
	pos := v.styles.Muted.Render(fmt.Sprintf(" (%d/%d)", v.index+1, len(v.periods)))
	return label + pos
}

func (v *View) renderSection(s Section) string {
	marker := "▾ "
	if v.collapsed[s] {
		marker = "▸ "
	}
	heading := v.styles.Section.Render(fmt.Sprintf("%s%s [%d]", marker, s.Title(), int(s)+1))
	if v.collapsed[s] {
		return heading
	}

	var body string
	switch s {
	case SectionKeyMetrics:
		body = v.renderKeyMetrics()
	case SectionTotals:
		body = v.renderTotals()
	case SectionPercentages:
		body = v.renderPercentages()
	}
	return heading + "\n" + body
}

// renderKeyMetrics lays out one card per source, wrapping to the width.
func (v *View) renderKeyMetrics() string {
	cards := make([]string, 0, len(domain.Sources()))
	for _, source := range domain.Sources() {
		var b strings.Builder
		b.WriteString(v.styles.Subtitle.Render(source.String()))
		for _, category := range domain.Categories() {
			b.WriteString("\n")
			b.WriteString(v.line(category.String(), format.Count(v.stats.Bucket(source, category)), 16))
		}
		cards = append(cards, v.styles.Card.Render(b.String()))
	}

	perRow := 1
	if w := lipgloss.Width(cards[0]); w > 0 && v.width/w > 1 {
		perRow = v.width / w
	}
	rows := make([]string, 0, len(cards)/perRow+1)
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *View) renderTotals() string {
	lines := make([]string, 0, len(domain.Categories())+1)
	for _, category := range domain.Categories() {
		lines = append(lines, v.line(category.String(), format.Count(v.stats.Totals.ByCategory(category)), 20))
	}
	lines = append(lines, v.line(domain.MetricOptIns, format.Count(v.stats.Totals.OptIns), 20))
	return strings.Join(lines, "\n")
}

func (v *View) renderPercentages() string {
	pct := v.stats.Percentages
	lines := make([]string, 0, 9)
	for _, category := range domain.OptInCategories() {
		lines = append(lines, v.line(category.String(), format.Percent(pct.ByCategory(category)), 20))
	}
	for _, source := range domain.Sources() {
		lines = append(lines, v.line(source.String(), format.Percent(pct.Platform(source)), 20))
	}
	lines = append(lines,
		v.line(domain.MetricCXPlatforms, format.Percent(pct.CX), 20),
		v.line(domain.MetricDXPlatform, format.Percent(pct.DX), 20),
	)
	return strings.Join(lines, "\n")
}

func (v *View) line(label, value string, labelWidth int) string {
	return v.styles.Normal.Render(fmt.Sprintf("%-*s", labelWidth, label)) + " " + v.styles.Value(value, domain.NoData)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
