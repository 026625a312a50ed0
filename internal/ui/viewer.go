// Package ui is the interactive terminal viewer for a finished comparison.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/envwrangler/envwrangler/internal/report"
	"github.com/envwrangler/envwrangler/pkg/envdiff"
)

// Viewer shows a report in a scrollable viewport. The differences can be
// narrowed down to a single change kind.
type Viewer struct {
	Width, Height int
	Theme         Theme

	report      report.Report
	reportTheme report.Theme
	only        envdiff.ChangeType // Unchanged shows everything

	viewport     viewport.Model
	shuttingDown bool
}

var _ tea.Model = Viewer{}

func NewViewer(theme Theme, r report.Report, reportTheme report.Theme) Viewer {
	v := Viewer{
		Theme:       theme,
		report:      r,
		reportTheme: reportTheme,
		viewport:    viewport.New(80, 20),
	}
	v.renderContent()
	return v
}

func (v Viewer) Init() tea.Cmd {
	return nil
}

// Visible returns the report as currently displayed.
func (v Viewer) Visible() report.Report {
	if v.only == envdiff.Unchanged {
		return v.report
	}
	return v.report.Only(v.only)
}

func (v *Viewer) renderContent() {
	v.viewport.SetContent(report.RenderText(v.Visible(), v.reportTheme))
	v.viewport.GotoTop()
}

func (v *Viewer) toggle(kind envdiff.ChangeType) {
	if v.only == kind {
		kind = envdiff.Unchanged
	}
	v.only = kind
	v.renderContent()
}

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.Width = msg.Width
		v.Height = msg.Height
		// title line + border + status bar
		v.viewport.Width = max(msg.Width-2, 0)
		v.viewport.Height = max(msg.Height-4, 0)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			v.shuttingDown = true
			return v, tea.Quit
		case "a":
			v.toggle(envdiff.Added)
		case "r":
			v.toggle(envdiff.Removed)
		case "m":
			v.toggle(envdiff.Modified)
		case "x":
			v.toggle(envdiff.Unchanged)
		default:
			ScrollViewport(msg, &v.viewport)
		}
	}
	return v, nil
}

func (v Viewer) breadcrumb() string {
	if v.only == envdiff.Unchanged {
		return "all"
	}
	return v.only.String()
}

func (v Viewer) title() string {
	counts := v.report.Count()
	return fmt.Sprintf("%s %s %s  %s",
		v.Theme.TitleTextStyle.Render(v.report.LeftLabel),
		v.Theme.MutedTextStyle.Render("⟷"),
		v.Theme.TitleTextStyle.Render(v.report.RightLabel),
		v.Theme.MutedTextStyle.Render(fmt.Sprintf("+%d -%d ~%d",
			counts[envdiff.Added], counts[envdiff.Removed], counts[envdiff.Modified])),
	)
}

func (v Viewer) renderBar() string {
	help := NewShortcuts(
		"↑/↓", "scroll",
		"a", "added",
		"r", "removed",
		"m", "modified",
		"x", "all",
		"q", "quit",
	).Render(v.Theme)

	breadcrumbRender := v.Theme.BreadcrumbBarStyle.Render(v.breadcrumb())
	helpRender := v.Theme.HelpBarStyle.
		Width(max(v.Width-lipgloss.Width(breadcrumbRender), 0)).
		Render(help)

	return lipgloss.JoinHorizontal(lipgloss.Top, helpRender, breadcrumbRender)
}

func (v Viewer) View() string {
	if v.shuttingDown {
		// this makes sure the whole screen won't show in the terminal after quitting
		return ""
	}
	return v.title() + "\n" +
		v.Theme.BorderContainerStyle.Render(v.viewport.View()) + "\n" +
		v.renderBar()
}

// Run blocks until the user quits the viewer.
func Run(v Viewer, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(v, opts...).Run()
	return err
}
