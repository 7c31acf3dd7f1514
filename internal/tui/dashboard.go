package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quietblock/deskboard/internal/board"
	"github.com/quietblock/deskboard/internal/roadmap"
)

// dashboardModel renders a bar chart of tasks per column, stacked by
// priority, plus a roadmap progress summary.
type dashboardModel struct {
	boardSvc   *board.Service
	roadmapSvc *roadmap.Service
	width      int
	height     int

	b     board.Board
	r     roadmap.Roadmap
	chart barchart.Model
}

func newDashboardModel(boardSvc *board.Service, roadmapSvc *roadmap.Service) dashboardModel {
	return dashboardModel{
		boardSvc:   boardSvc,
		roadmapSvc: roadmapSvc,
		chart:      barchart.New(40, 10),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *dashboardModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type dashboardDataMsg struct {
	b board.Board
	r roadmap.Roadmap
}

func (m dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return dashboardDataMsg{b: m.boardSvc.Board(), r: m.roadmapSvc.Roadmap()}
	}
}

func (m dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		m.b = msg.b
		m.r = msg.r
		m.buildChart()
	}
	return m, nil
}

func (m *dashboardModel) buildChart() {
	chartWidth := m.width/2 - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 28 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, colID := range m.b.ColumnOrder {
		col := m.b.Columns[colID]

		counts := make(map[board.Priority]int)
		for _, taskID := range col.TaskIDs {
			if t, ok := m.b.Tasks[taskID]; ok {
				counts[t.Priority]++
			}
		}

		var values []barchart.BarValue
		for _, p := range board.Priorities {
			if counts[p] == 0 {
				continue
			}
			values = append(values, barchart.BarValue{
				Name:  string(p),
				Value: float64(counts[p]),
				Style: lipgloss.NewStyle().Foreground(priorityColors[p]),
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  truncate(col.Title, 10),
			Values: values,
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m dashboardModel) view() string {
	w := m.width - 4

	left := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Tasks by column"),
		"",
		m.chart.View(),
		"",
		m.renderLegend(),
	)

	right := m.renderRoadmapSummary()

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(w/2).Render(left),
		right,
	)
	return panelStyle.Width(w).Render(content)
}

func (m dashboardModel) renderLegend() string {
	var items []string
	for _, p := range board.Priorities {
		dot := lipgloss.NewStyle().Foreground(priorityColors[p]).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, p))
	}
	return "  " + strings.Join(items, "  ")
}

func (m dashboardModel) renderRoadmapSummary() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Project progress"))
	rows = append(rows, "")

	if len(m.r) == 0 {
		rows = append(rows, mutedStyle.Render("No projects."))
	}

	for _, p := range m.r {
		status := projectStatusStyles[p.Status].Render(fmt.Sprintf("%-9s", p.Status))
		rows = append(rows, fmt.Sprintf("%-24s %s", truncate(p.Name, 24), status))
		rows = append(rows, fmt.Sprintf("%s %3d%%  %s", progressBar(p.Progress, 24), p.Progress,
			mutedStyle.Render(fmt.Sprintf("%d milestones", len(p.Milestones)))))
		rows = append(rows, "")
	}

	total := len(m.b.Tasks)
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d tasks on the board", total)))

	return strings.Join(rows, "\n")
}
