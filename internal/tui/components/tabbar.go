package components

import (
	"strings"

	"github.com/theirongolddev/aliasim/internal/cli"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Compact", Key: 'c'},
	{Name: "JSON", Key: 'o'},
	{Name: "Head-to-Head", Key: 'h'},
	{Name: "Constants", Key: 'n'},
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int) string {
	activeStyle := lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(cli.ColorTextDim)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		parts = append(parts, inactiveStyle.Render(tab.Name)+
			dimStyle.Render("[")+keyStyle.Render(string(tab.Key))+dimStyle.Render("]"))
	}

	return " " + strings.Join(parts, "  ")
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
