package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quietblock/deskboard/internal/board"
	"github.com/quietblock/deskboard/internal/config"
)

// teamModel shows the roster from the config file together with per-member
// task counts aggregated from the board. Assignees are matched by initials;
// tasks assigned to initials outside the roster show up in a trailing row.
type teamModel struct {
	svc    *board.Service
	cfg    *config.Config
	width  int
	height int

	open  map[string]int // initials -> tasks outside the last column
	total map[string]int // initials -> all tasks
}

func newTeamModel(svc *board.Service, cfg *config.Config) teamModel {
	return teamModel{svc: svc, cfg: cfg}
}

func (m *teamModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type teamDataMsg struct {
	open  map[string]int
	total map[string]int
}

func (m teamModel) refresh() tea.Cmd {
	return func() tea.Msg {
		b := m.svc.Board()
		open := make(map[string]int)
		total := make(map[string]int)

		// Tasks in the rightmost column count as finished.
		lastCol := ""
		if len(b.ColumnOrder) > 0 {
			lastCol = b.ColumnOrder[len(b.ColumnOrder)-1]
		}
		for _, colID := range b.ColumnOrder {
			for _, taskID := range b.Columns[colID].TaskIDs {
				t, ok := b.Tasks[taskID]
				if !ok || t.Assignee == "" {
					continue
				}
				total[t.Assignee]++
				if colID != lastCol {
					open[t.Assignee]++
				}
			}
		}
		return teamDataMsg{open: open, total: total}
	}
}

func (m teamModel) update(msg tea.Msg) (teamModel, tea.Cmd) {
	if msg, ok := msg.(teamDataMsg); ok {
		m.open = msg.open
		m.total = msg.total
	}
	return m, nil
}

func (m teamModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Team")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-4s %-24s %-14s %8s %8s", "", "Name", "Role", "Open", "Total"))
	rows = append(rows, header)

	seen := make(map[string]bool)
	for _, member := range m.cfg.Team {
		seen[member.Initials] = true
		rows = append(rows, fmt.Sprintf("  %s %-24s %-14s %8d %8d",
			highlightStyle.Render(fmt.Sprintf("%-4s", member.Initials)),
			member.Name, member.Role,
			m.open[member.Initials], m.total[member.Initials],
		))
	}

	// Assignees on the board that are not in the roster.
	var unknown []string
	for initials := range m.total {
		if !seen[initials] {
			unknown = append(unknown, initials)
		}
	}
	sort.Strings(unknown)
	for _, initials := range unknown {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-4s %-24s %-14s %8d %8d",
			initials, "(not in roster)", "", m.open[initials], m.total[initials],
		)))
	}

	if len(m.cfg.Team) == 0 && len(unknown) == 0 {
		rows = append(rows, mutedStyle.Render("  No team members configured."))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  Roster comes from config.yaml; counts from the board."))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n")))
}
