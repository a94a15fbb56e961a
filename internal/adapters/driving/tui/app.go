package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView      *menu.View
	dashboardView *dashboard.View
	uploadView    *upload.View
	settingsView  *settings.View
	statusBar     *status.Bar

	// currentView tracks which view is active; previousView is where help
	// returns to.
	currentView  messages.ViewType
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports. The app opens
// on the dashboard for the report service's default month.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		help:          help.New(),
		menuView:      menu.NewView(s),
		dashboardView: dashboard.NewView(s, ports.Report, ports.Settings),
		uploadView:    upload.NewView(s, ports.Report),
		settingsView:  settings.NewView(s, ports.Settings),
		statusBar:     status.NewBar(s, km),
		currentView:   messages.ViewDashboard,
	}
	a.statusBar.SetPeriod(a.dashboardView.Period().Label())
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.dashboardView.SetContext(ctx)
	a.uploadView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("commsdash"),
		a.dashboardView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.acceptsHelpKey() && keymap.Matches(msg.String(), a.keymap.Help) {
			return a, a.toggleHelp()
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewDashboard:
			wasConfirming := a.dashboardView.ConfirmPending()
			a.dashboardView, cmd = a.dashboardView.Update(msg)
			a.syncConfirm(wasConfirming)
		case messages.ViewUpload:
			a.uploadView, cmd = a.uploadView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			if keymap.Matches(msg.String(), a.keymap.Back) {
				return a, a.toggleHelp()
			}
			if msg.String() == "q" {
				return a, tea.Quit
			}
		}
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.PeriodSelected:
		a.statusBar.SetPeriod(msg.Period.Label())
		a.statusBar.Clear()
		return a, nil

	case messages.StatsLoaded:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		if msg.Err != nil {
			a.fail(msg.Err)
		}
		return a, cmd

	case messages.UploadCompleted:
		a.uploadView, _ = a.uploadView.Update(msg)
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		a.statusBar.SetPeriod(msg.Period.Label())
		a.statusBar.Notify(uploadNotice(msg.Summary))
		a.currentView = messages.ViewDashboard
		return a, cmd

	case messages.ExportCompleted:
		switch {
		case msg.Err != nil:
			a.fail(msg.Err)
		case msg.Path == "":
			a.statusBar.Notify(fmt.Sprintf("Nothing to export for %s: upload a CSV export first.", msg.Period.Label()))
		default:
			logger.Info("exported %s to %s", msg.Period.Label(), msg.Path)
			a.statusBar.Notify("Exported " + msg.Path)
		}
		return a, nil

	case messages.ResetCompleted:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		if msg.All {
			a.statusBar.Notify("Cleared every month")
		} else {
			a.statusBar.Notify("Cleared " + msg.Period.Label())
		}
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blinks) to the active view.
	switch a.currentView {
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewMenu, messages.ViewDashboard, messages.ViewHelp:
	}
	return a, cmd
}

// acceptsHelpKey reports whether "?" toggles help rather than being typed.
func (a *App) acceptsHelpKey() bool {
	switch a.currentView {
	case messages.ViewUpload:
		return false
	case messages.ViewSettings:
		return !a.settingsView.Editing()
	case messages.ViewDashboard:
		return !a.dashboardView.ConfirmPending()
	default:
		return true
	}
}

func (a *App) toggleHelp() tea.Cmd {
	if a.currentView == messages.ViewHelp {
		a.currentView = a.previousView
		a.statusBar.Clear()
		return nil
	}
	a.previousView = a.currentView
	a.currentView = messages.ViewHelp
	a.statusBar.SetState(status.StateHelp)
	return nil
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewDashboard:
		return a.dashboardView.Init()
	case messages.ViewUpload:
		a.uploadView.SetPeriod(a.dashboardView.Period())
		a.statusBar.Clear()
		return a.uploadView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewHelp:
		a.previousView = messages.ViewMenu
		a.statusBar.SetState(status.StateHelp)
	case messages.ViewMenu:
	}
	return nil
}

// syncConfirm mirrors the dashboard's reset-all confirmation in the status bar.
func (a *App) syncConfirm(wasConfirming bool) {
	confirming := a.dashboardView.ConfirmPending()
	switch {
	case confirming && !wasConfirming:
		a.statusBar.SetState(status.StateConfirm)
		a.statusBar.SetMessage("Reset every month?")
	case !confirming && wasConfirming:
		a.statusBar.Clear()
	}
}

func (a *App) fail(err error) {
	a.err = err
	logger.Error("%v", err)
	a.statusBar.Fail(err)
}

func uploadNotice(summary *domain.UploadSummary) string {
	if summary == nil {
		return "Uploaded"
	}
	return fmt.Sprintf("Uploaded %d rows for %s (%d counted, %d dropped)",
		summary.RowsRead, summary.Period.Label(), summary.RowsCounted, summary.RowsDropped)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewDashboard:
		return a.withStatus(a.dashboardView.View())
	case messages.ViewUpload:
		return a.withStatus(a.uploadView.View())
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.withStatus(a.viewHelp())
	default:
		return a.menuView.View()
	}
}

// withStatus pins the status bar to the bottom of the screen.
func (a *App) withStatus(body string) string {
	bar := a.statusBar.View()
	gap := a.height - strings.Count(body, "\n") - strings.Count(bar, "\n") - 2
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + bar
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("Figures show xxxx until a CSV export is uploaded for the month."))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("Uploads are kept for this session only."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc/?] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Period returns the month selected on the dashboard.
func (a *App) Period() domain.Period {
	return a.dashboardView.Period()
}

// Stats returns the stats shown on the dashboard.
func (a *App) Stats() *domain.Stats {
	return a.dashboardView.Stats()
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.dashboardView.SetDimensions(width, height)
	a.uploadView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
