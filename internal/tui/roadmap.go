package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/quietblock/deskboard/internal/roadmap"
)

type roadmapModel struct {
	svc    *roadmap.Service
	width  int
	height int

	r                 roadmap.Roadmap
	cursor            int
	msCursor          int
	viewingMilestones bool

	formActive bool
	form       *huh.Form
	formType   string // "project", "edit_project", "milestone", "edit_milestone"

	// Form field pointers (survive value copies)
	formName     *string
	formDesc     *string
	formStart    *string
	formEnd      *string
	formStatus   *string
	formDate     *string
	formProgress *string
	formTeam     *string

	editingID string
}

func newRoadmapModel(svc *roadmap.Service) roadmapModel {
	name, desc, start, end, status := "", "", "", "", ""
	date, progress, team := "", "", ""
	return roadmapModel{
		svc:          svc,
		r:            svc.Roadmap(),
		formName:     &name,
		formDesc:     &desc,
		formStart:    &start,
		formEnd:      &end,
		formStatus:   &status,
		formDate:     &date,
		formProgress: &progress,
		formTeam:     &team,
	}
}

func (m *roadmapModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type roadmapDataMsg struct {
	r roadmap.Roadmap
}

func (m roadmapModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return roadmapDataMsg{r: m.svc.Roadmap()}
	}
}

func (m roadmapModel) currentProject() (roadmap.Project, bool) {
	if m.cursor >= len(m.r) {
		return roadmap.Project{}, false
	}
	return m.r[m.cursor], true
}

func (m roadmapModel) currentMilestone() (roadmap.Milestone, bool) {
	p, ok := m.currentProject()
	if !ok || m.msCursor >= len(p.Milestones) {
		return roadmap.Milestone{}, false
	}
	return p.Milestones[m.msCursor], true
}

func (m roadmapModel) update(msg tea.Msg) (roadmapModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case roadmapDataMsg:
		m.r = msg.r
		m.cursor = clampCursor(m.cursor, len(m.r))
		if p, ok := m.currentProject(); ok {
			m.msCursor = clampCursor(m.msCursor, len(p.Milestones))
		}
		return m, nil

	case tea.KeyMsg:
		if m.viewingMilestones {
			return m.updateMilestoneView(msg)
		}
		return m.updateProjectList(msg)
	}
	return m, nil
}

func (m roadmapModel) updateProjectList(msg tea.KeyMsg) (roadmapModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.r)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.r) > 0 {
			m.viewingMilestones = true
			m.msCursor = 0
		}
	case key.Matches(msg, keys.New):
		return m.showProjectForm(roadmap.Project{}, false)
	case key.Matches(msg, keys.Edit):
		if p, ok := m.currentProject(); ok {
			return m.showProjectForm(p, true)
		}
	case key.Matches(msg, keys.Delete):
		if p, ok := m.currentProject(); ok {
			m.svc.DeleteProject(p.ID)
			return m, tea.Batch(m.refresh(), statusCmd("Project deleted"))
		}
	}
	return m, nil
}

func (m roadmapModel) updateMilestoneView(msg tea.KeyMsg) (roadmapModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.viewingMilestones = false
	case key.Matches(msg, keys.Up):
		if m.msCursor > 0 {
			m.msCursor--
		}
	case key.Matches(msg, keys.Down):
		if p, ok := m.currentProject(); ok && m.msCursor < len(p.Milestones)-1 {
			m.msCursor++
		}
	case key.Matches(msg, keys.New):
		return m.showMilestoneForm(roadmap.Milestone{}, false)
	case key.Matches(msg, keys.Edit):
		if ms, ok := m.currentMilestone(); ok {
			return m.showMilestoneForm(ms, true)
		}
	case key.Matches(msg, keys.Delete):
		if ms, ok := m.currentMilestone(); ok {
			p, _ := m.currentProject()
			m.svc.DeleteMilestone(p.ID, ms.ID)
			return m, tea.Batch(m.refresh(), statusCmd("Milestone deleted"))
		}
	}
	return m, nil
}

func (m roadmapModel) showProjectForm(p roadmap.Project, editing bool) (roadmapModel, tea.Cmd) {
	if editing {
		*m.formName = p.Name
		*m.formDesc = p.Description
		*m.formStart = p.StartDate
		*m.formEnd = p.EndDate
		*m.formStatus = string(p.Status)
		m.formType = "edit_project"
		m.editingID = p.ID
	} else {
		*m.formName = ""
		*m.formDesc = ""
		*m.formStart = ""
		*m.formEnd = ""
		*m.formStatus = string(roadmap.ProjectPlanned)
		m.formType = "project"
	}

	statusOptions := make([]huh.Option[string], len(roadmap.ProjectStatuses))
	for i, s := range roadmap.ProjectStatuses {
		statusOptions[i] = huh.NewOption(string(s), string(s))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(m.formName),
			huh.NewInput().Title("Description").Value(m.formDesc),
			huh.NewInput().Title("Start (YYYY-MM-DD)").Value(m.formStart),
			huh.NewInput().Title("End (YYYY-MM-DD)").Value(m.formEnd),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(m.formStatus),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m roadmapModel) showMilestoneForm(ms roadmap.Milestone, editing bool) (roadmapModel, tea.Cmd) {
	if editing {
		*m.formName = ms.Title
		*m.formDesc = ms.Description
		*m.formDate = ms.Date
		*m.formStatus = string(ms.Status)
		*m.formProgress = strconv.Itoa(ms.Progress)
		*m.formTeam = strings.Join(ms.Team, ", ")
		m.formType = "edit_milestone"
		m.editingID = ms.ID
	} else {
		*m.formName = ""
		*m.formDesc = ""
		*m.formDate = ""
		*m.formStatus = string(roadmap.MilestoneUpcoming)
		*m.formProgress = "0"
		*m.formTeam = ""
		m.formType = "milestone"
	}

	statusOptions := make([]huh.Option[string], len(roadmap.MilestoneStatuses))
	for i, s := range roadmap.MilestoneStatuses {
		statusOptions[i] = huh.NewOption(string(s), string(s))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Milestone Title").Value(m.formName),
			huh.NewInput().Title("Description").Value(m.formDesc),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(m.formDate),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(m.formStatus),
			huh.NewInput().Title("Progress (0-100)").Value(m.formProgress),
			huh.NewInput().Title("Team (comma-separated initials)").Value(m.formTeam),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m roadmapModel) updateForm(msg tea.Msg) (roadmapModel, tea.Cmd) {
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
		return m.submitForm()
	}

	return m, cmd
}

func (m roadmapModel) submitForm() (roadmapModel, tea.Cmd) {
	// The name gate lives here, not in the engine: a blank name means the
	// submission is dropped.
	if strings.TrimSpace(*m.formName) == "" {
		return m, errorCmd("Name is required")
	}

	switch m.formType {
	case "project":
		m.svc.CreateProject(roadmap.ProjectFields{
			Name:        *m.formName,
			Description: *m.formDesc,
			StartDate:   *m.formStart,
			EndDate:     *m.formEnd,
			Status:      roadmap.ProjectStatus(*m.formStatus),
		})
		return m, tea.Batch(m.refresh(), statusCmd("Project created"))

	case "edit_project":
		status := roadmap.ProjectStatus(*m.formStatus)
		m.svc.UpdateProject(m.editingID, roadmap.ProjectPatch{
			Name:        m.formName,
			Description: m.formDesc,
			StartDate:   m.formStart,
			EndDate:     m.formEnd,
			Status:      &status,
		})
		return m, tea.Batch(m.refresh(), statusCmd("Project updated"))

	case "milestone":
		p, ok := m.currentProject()
		if !ok {
			return m, nil
		}
		m.svc.CreateMilestone(p.ID, roadmap.MilestoneFields{
			Title:       *m.formName,
			Description: *m.formDesc,
			Date:        *m.formDate,
			Status:      roadmap.MilestoneStatus(*m.formStatus),
			Progress:    parseProgress(*m.formProgress),
			Team:        parseTeam(*m.formTeam),
		})
		return m, tea.Batch(m.refresh(), statusCmd("Milestone created"))

	case "edit_milestone":
		p, ok := m.currentProject()
		if !ok {
			return m, nil
		}
		status := roadmap.MilestoneStatus(*m.formStatus)
		progress := parseProgress(*m.formProgress)
		team := parseTeam(*m.formTeam)
		m.svc.UpdateMilestone(p.ID, m.editingID, roadmap.MilestonePatch{
			Title:       m.formName,
			Description: m.formDesc,
			Date:        m.formDate,
			Status:      &status,
			Progress:    &progress,
			Team:        &team,
		})
		return m, tea.Batch(m.refresh(), statusCmd("Milestone updated"))
	}
	return m, m.refresh()
}

func parseProgress(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseTeam(s string) []string {
	var team []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			team = append(team, p)
		}
	}
	return team
}

func (m roadmapModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Project")
		switch m.formType {
		case "edit_project":
			title = titleStyle.Render("Edit Project")
		case "milestone":
			title = titleStyle.Render("New Milestone")
		case "edit_milestone":
			title = titleStyle.Render("Edit Milestone")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(m.width - 4).Render(content)
	}

	if m.viewingMilestones {
		return m.renderMilestones()
	}
	return m.renderProjectList()
}

var projectStatusStyles = map[roadmap.ProjectStatus]lipgloss.Style{
	roadmap.ProjectActive:    successStyle,
	roadmap.ProjectCompleted: highlightStyle,
	roadmap.ProjectPlanned:   mutedStyle,
}

var milestoneStatusStyles = map[roadmap.MilestoneStatus]lipgloss.Style{
	roadmap.MilestoneCompleted:  successStyle,
	roadmap.MilestoneInProgress: warningStyle,
	roadmap.MilestoneUpcoming:   mutedStyle,
}

func (m roadmapModel) renderProjectList() string {
	w := m.width - 4
	title := titleStyle.Render("Roadmap")

	if len(m.r) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, p := range m.r {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		status := projectStatusStyles[p.Status].Render(string(p.Status))
		bar := progressBar(p.Progress, 20)
		rows = append(rows, fmt.Sprintf("%s%-28s %s %s %3d%%  %s",
			cursor, style.Render(truncate(p.Name, 28)), status, bar, p.Progress,
			mutedStyle.Render(fmt.Sprintf("%s → %s", p.StartDate, p.EndDate)),
		))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  enter: milestones"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m roadmapModel) renderMilestones() string {
	w := m.width - 4
	p, ok := m.currentProject()
	if !ok {
		return panelStyle.Width(w).Render(mutedStyle.Render("No project selected."))
	}

	title := titleStyle.Render(fmt.Sprintf("%s — Milestones", p.Name))
	summary := fmt.Sprintf("%s %3d%%  %s", progressBar(p.Progress, 30), p.Progress,
		projectStatusStyles[p.Status].Render(string(p.Status)))

	var rows []string
	rows = append(rows, title)
	rows = append(rows, summary)
	rows = append(rows, "")

	if len(p.Milestones) == 0 {
		rows = append(rows, mutedStyle.Render("No milestones. Press n to add one."))
	}

	for i, ms := range p.Milestones {
		cursor := "  "
		style := normalItemStyle
		if i == m.msCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		status := milestoneStatusStyles[ms.Status].Render(fmt.Sprintf("%-11s", ms.Status))
		team := ""
		if len(ms.Team) > 0 {
			team = mutedStyle.Render(" [" + strings.Join(ms.Team, " ") + "]")
		}
		rows = append(rows, fmt.Sprintf("%s%-10s %s %s %3d%%  %s%s",
			cursor, ms.Date, status, progressBar(ms.Progress, 14), ms.Progress,
			style.Render(truncate(ms.Title, 30)), team,
		))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
