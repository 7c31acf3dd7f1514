package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/quietblock/deskboard/internal/board"
	"github.com/quietblock/deskboard/internal/storage"
)

type settingsModel struct {
	store  *storage.Store
	width  int
	height int

	settings   []storage.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	defaultAssignee *string
	defaultPriority *string
	confirmDelete   *string
}

func newSettingsModel(s *storage.Store) settingsModel {
	da, dp, cd := "", "", ""
	return settingsModel{
		store:           s,
		defaultAssignee: &da,
		defaultPriority: &dp,
		confirmDelete:   &cd,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type settingsDataMsg struct {
	settings []storage.Setting
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := m.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.settings = msg.settings
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.defaultAssignee = m.getVal("default_assignee", "")
	*m.defaultPriority = m.getVal("default_priority", string(board.PriorityMedium))
	*m.confirmDelete = m.getVal("confirm_delete", "true")

	prioOptions := make([]huh.Option[string], len(board.Priorities))
	for i, p := range board.Priorities {
		prioOptions[i] = huh.NewOption(string(p), string(p))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Default assignee (initials)").Value(m.defaultAssignee),
			huh.NewSelect[string]().Title("Default priority").Options(prioOptions...).Value(m.defaultPriority),
			huh.NewSelect[string]().Title("Confirm before delete").
				Options(
					huh.NewOption("Yes", "true"),
					huh.NewOption("No", "false"),
				).Value(m.confirmDelete),
		).Title("Board"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.saveSettings()
		return m, m.refresh()
	}

	return m, cmd
}

func (m settingsModel) saveSettings() {
	m.store.SetSetting("default_assignee", *m.defaultAssignee)
	m.store.SetSetting("default_priority", *m.defaultPriority)
	m.store.SetSetting("confirm_delete", *m.confirmDelete)
}

func (m settingsModel) getVal(k, fallback string) string {
	v, err := m.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		formView := m.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range m.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := setting.Value
		if value == "" {
			value = "(unset)"
		}
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(value)))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
