package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// viewState represents the currently active view.
type viewState int

const (
	viewBoard viewState = iota
	viewRoadmap
	viewTeam
	viewDashboard
	viewSettings
)

var viewNames = []string{"Board", "Roadmap", "Team", "Dashboard", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

// truncate shortens s to at most n runes, with an ellipsis when cut.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// progressBar renders pct (0–100) as a fixed-width bar.
func progressBar(pct, width int) string {
	if width < 1 {
		width = 1
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	bar := lipgloss.NewStyle().Foreground(colorPrimary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(colorSubtle).Render(strings.Repeat("░", width-filled))
	return bar
}

func clampCursor(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
