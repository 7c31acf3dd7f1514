package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quietblock/deskboard/internal/board"
	"github.com/quietblock/deskboard/internal/config"
	"github.com/quietblock/deskboard/internal/export"
	"github.com/quietblock/deskboard/internal/roadmap"
	"github.com/quietblock/deskboard/internal/storage"
)

// App is the root Bubble Tea model.
type App struct {
	boardSvc   *board.Service
	roadmapSvc *roadmap.Service
	store      *storage.Store
	cfg        *config.Config
	width      int
	height     int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	boardView   boardModel
	roadmapView roadmapModel
	teamView    teamModel
	dashboard   dashboardModel
	settings    settingsModel

	help   help.Model
	status string
}

func NewApp(boardSvc *board.Service, roadmapSvc *roadmap.Service, store *storage.Store, cfg *config.Config) App {
	h := help.New()
	h.ShowAll = false

	return App{
		boardSvc:    boardSvc,
		roadmapSvc:  roadmapSvc,
		store:       store,
		cfg:         cfg,
		activeView:  viewBoard,
		boardView:   newBoardModel(boardSvc, store, cfg),
		roadmapView: newRoadmapModel(roadmapSvc),
		teamView:    newTeamModel(boardSvc, cfg),
		dashboard:   newDashboardModel(boardSvc, roadmapSvc),
		settings:    newSettingsModel(store),
		help:        h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.boardView.refresh(),
		a.dashboard.refresh(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.boardView.setSize(a.width, contentHeight)
		a.roadmapView.setSize(a.width, contentHeight)
		a.teamView.setSize(a.width, contentHeight)
		a.dashboard.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewBoard
			return a, a.boardView.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewRoadmap
			return a, a.roadmapView.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewTeam
			return a, a.teamView.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewDashboard
			return a, a.dashboard.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewBoard:
		a.boardView, cmd = a.boardView.update(msg)
	case viewRoadmap:
		a.roadmapView, cmd = a.roadmapView.update(msg)
	case viewTeam:
		a.teamView, cmd = a.teamView.update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewBoard:
		return a.boardView.formActive
	case viewRoadmap:
		return a.roadmapView.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewBoard:
		return a.boardView.refresh()
	case viewRoadmap:
		return a.roadmapView.refresh()
	case viewTeam:
		return a.teamView.refresh()
	case viewDashboard:
		return a.dashboard.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewBoard:
		content = a.boardView.view()
	case viewRoadmap:
		content = a.roadmapView.view()
	case viewTeam:
		content = a.teamView.view()
	case viewDashboard:
		content = a.dashboard.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("deskboard")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV (board)", "JSON (board + roadmap)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		b := a.boardSvc.Board()
		r := a.roadmapSvc.Roadmap()

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("deskboard-export-%s.csv", dateStr))
			if err := export.ToCSV(b, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("deskboard-export-%s.json", dateStr))
			if err := export.ToJSON(b, r, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
