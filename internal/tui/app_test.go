package tui

import (
	"strings"
	"testing"

	"github.com/theirongolddev/aliasim/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	a := New(config.DefaultConfig())
	model, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(App)
}

func TestNewEvaluatesGrid(t *testing.T) {
	a := New(config.DefaultConfig())
	if len(a.results) != a.grid.Size() {
		t.Fatalf("results = %d, want %d", len(a.results), a.grid.Size())
	}
}

func TestTabContentPerTab(t *testing.T) {
	a := newTestApp(t)
	wants := []string{"Compact Format", "JSON Format", "Compact vs JSON", "Cost Model"}
	for i, want := range wants {
		a.setTab(i)
		content := a.tabContent()
		if !strings.Contains(content, want) {
			t.Fatalf("tab %d content missing %q", i, want)
		}
	}
}

func TestTabKeyNavigation(t *testing.T) {
	a := newTestApp(t)

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = model.(App)
	if a.activeTab != 1 {
		t.Fatalf("activeTab after tab = %d, want 1", a.activeTab)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}) // Constants tab
	a = model.(App)
	if a.activeTab != 3 {
		t.Fatalf("activeTab after 'n' = %d, want 3", a.activeTab)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	a = model.(App)
	if a.activeTab != 2 {
		t.Fatalf("activeTab after shift+tab = %d, want 2", a.activeTab)
	}
}

func TestQuitKey(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q did not produce a command")
	}
	if msg := cmd(); msg == nil {
		t.Fatal("q command produced nil message")
	}
}

func TestViewIncludesStatus(t *testing.T) {
	a := newTestApp(t)
	view := a.View()
	if !strings.Contains(view, "aliasim") {
		t.Fatal("view missing title")
	}
	if !strings.Contains(view, "scenarios") {
		t.Fatal("view missing status bar")
	}
}
