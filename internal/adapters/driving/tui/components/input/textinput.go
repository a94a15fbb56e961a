// Package input provides text input components for the TUI.
package input

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/commsdash/internal/adapters/driving/tui/styles"
)

// PathInput wraps a bubbles textinput for entering a CSV file path, with
// tab completion over the .csv files next to what has been typed.
type PathInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int

	// completions is the candidate list for the prefix being completed;
	// next indexes the candidate the following Complete call will insert.
	completions []string
	next        int
}

// NewPathInput creates a new path input component.
func NewPathInput(s *styles.Styles) *PathInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "path/to/export.csv"
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 50

	return &PathInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the path input.
func (p *PathInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. Any edit discards pending completions.
func (p *PathInput) Update(msg tea.Msg) (*PathInput, tea.Cmd) {
	before := p.textinput.Value()
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	if p.textinput.Value() != before {
		p.completions = nil
	}
	return p, cmd
}

// View renders the path input.
func (p *PathInput) View() string {
	label := p.styles.Title.Render("CSV file: ")
	field := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Complete replaces the value with the next .csv file or directory that
// matches it. It returns false when nothing matches.
func (p *PathInput) Complete() bool {
	if p.completions == nil {
		p.completions = Candidates(p.textinput.Value())
		p.next = 0
	}
	if len(p.completions) == 0 {
		p.completions = nil
		return false
	}

	p.textinput.SetValue(p.completions[p.next])
	p.textinput.CursorEnd()
	p.next = (p.next + 1) % len(p.completions)
	return true
}

// Candidates lists the directories and .csv files that start with prefix,
// sorted. Directories carry a trailing separator.
func Candidates(prefix string) []string {
	dir, base := filepath.Split(prefix)
	searchDir := dir
	if searchDir == "" {
		searchDir = "."
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return []string{}
	}

	matches := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) || strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		switch {
		case e.IsDir():
			matches = append(matches, dir+name+string(filepath.Separator))
		case strings.EqualFold(filepath.Ext(name), ".csv"):
			matches = append(matches, dir+name)
		}
	}
	sort.Strings(matches)
	return matches
}

// Value returns the current input value.
func (p *PathInput) Value() string {
	return strings.TrimSpace(p.textinput.Value())
}

// SetValue sets the input value.
func (p *PathInput) SetValue(value string) {
	p.textinput.SetValue(value)
	p.completions = nil
}

// Focus sets focus on the input.
func (p *PathInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PathInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PathInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PathInput) SetWidth(width int) {
	p.width = width
	// Account for label and padding
	inputWidth := width - 16
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *PathInput) Width() int {
	return p.width
}

// Reset clears the input.
func (p *PathInput) Reset() {
	p.textinput.Reset()
	p.completions = nil
}
