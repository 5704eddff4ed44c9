// Package tui provides the interactive Bubble Tea results browser.
package tui

import (
	"fmt"

	"github.com/theirongolddev/aliasim/internal/cli"
	"github.com/theirongolddev/aliasim/internal/config"
	"github.com/theirongolddev/aliasim/internal/econ"
	"github.com/theirongolddev/aliasim/internal/grid"
	"github.com/theirongolddev/aliasim/internal/tui/components"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const chromeHeight = 5 // title + tab bar + status bar + padding

// App is the root Bubble Tea model.
type App struct {
	model   econ.CostModel
	mix     econ.QueryMix
	grid    grid.Grid
	results []econ.Result

	activeTab int
	width     int
	height    int
	viewport  viewport.Model
	ready     bool
}

// New evaluates the configured grid and builds the browser around the
// results. Evaluation is a bounded arithmetic sweep, fast enough to run
// before the first frame.
func New(cfg config.Config) App {
	g := grid.Grid{
		SessionLengths: cfg.Grid.SessionLengths,
		Evictions:      cfg.Grid.EvictionRates,
		Formats:        cfg.Grid.Formats,
	}
	model := cfg.CostModel()
	mix := cfg.QueryMix()

	return App{
		model:   model,
		mix:     mix,
		grid:    g,
		results: grid.Evaluate(model, mix, g, nil),
	}
}

// Run starts the browser in the alternate screen.
func Run(cfg config.Config) error {
	_, err := tea.NewProgram(New(cfg), tea.WithAltScreen()).Run()
	return err
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		vpHeight := msg.Height - chromeHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !a.ready {
			a.viewport = viewport.New(msg.Width, vpHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = vpHeight
		}
		a.viewport.SetContent(a.tabContent())
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "tab", "right", "l":
			a.setTab((a.activeTab + 1) % len(components.Tabs))
			return a, nil
		case "shift+tab", "left":
			a.setTab((a.activeTab + len(components.Tabs) - 1) % len(components.Tabs))
			return a, nil
		case "g":
			a.viewport.GotoTop()
			return a, nil
		case "G":
			a.viewport.GotoBottom()
			return a, nil
		}
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.setTab(idx)
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) setTab(idx int) {
	a.activeTab = idx
	if a.ready {
		a.viewport.SetContent(a.tabContent())
		a.viewport.GotoTop()
	}
}

func (a App) View() string {
	if !a.ready {
		return "\n  Loading..."
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(cli.ColorText).
		Render(" aliasim — field-alias token economics")
	status := lipgloss.NewStyle().Foreground(cli.ColorTextMuted).
		Render(fmt.Sprintf(" %d scenarios  •  tab/←/→ switch  ↑/↓ scroll  q quit", len(a.results)))

	return title + "\n" +
		components.RenderTabBar(a.activeTab) + "\n\n" +
		a.viewport.View() + "\n" +
		status
}

func (a App) tabContent() string {
	switch a.activeTab {
	case 0:
		return a.formatTab(econ.FormatCompact)
	case 1:
		return a.formatTab(econ.FormatJSON)
	case 2:
		return a.headToHeadTab()
	case 3:
		return a.constantsTab()
	}
	return ""
}
