package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/quietblock/deskboard/internal/board"
	"github.com/quietblock/deskboard/internal/config"
	"github.com/quietblock/deskboard/internal/storage"
)

type boardModel struct {
	svc    *board.Service
	store  *storage.Store
	cfg    *config.Config
	width  int
	height int

	b          board.Board
	colCursor  int
	taskCursor int

	confirming bool // delete confirmation pending

	formActive bool
	form       *huh.Form
	formType   string // "task", "edit_task"

	// Form field pointers (survive value copies)
	formTitle    *string
	formDesc     *string
	formPriority *string
	formAssignee *string
	formDue      *string

	editingID string // task ID being edited
}

func newBoardModel(svc *board.Service, store *storage.Store, cfg *config.Config) boardModel {
	title, desc, prio, assignee, due := "", "", "", "", ""
	return boardModel{
		svc:          svc,
		store:        store,
		cfg:          cfg,
		b:            svc.Board(),
		formTitle:    &title,
		formDesc:     &desc,
		formPriority: &prio,
		formAssignee: &assignee,
		formDue:      &due,
	}
}

func (m *boardModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type boardDataMsg struct {
	b board.Board
}

func (m boardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return boardDataMsg{b: m.svc.Board()}
	}
}

// currentColumn returns the column under the cursor, or false when the
// board has no columns.
func (m boardModel) currentColumn() (board.Column, bool) {
	if m.colCursor >= len(m.b.ColumnOrder) {
		return board.Column{}, false
	}
	col, ok := m.b.Columns[m.b.ColumnOrder[m.colCursor]]
	return col, ok
}

// currentTask returns the task under the cursor, or false when the active
// column is empty.
func (m boardModel) currentTask() (board.Task, bool) {
	col, ok := m.currentColumn()
	if !ok || m.taskCursor >= len(col.TaskIDs) {
		return board.Task{}, false
	}
	t, ok := m.b.Tasks[col.TaskIDs[m.taskCursor]]
	return t, ok
}

func (m boardModel) update(msg tea.Msg) (boardModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case boardDataMsg:
		m.b = msg.b
		m.colCursor = clampCursor(m.colCursor, len(m.b.ColumnOrder))
		if col, ok := m.currentColumn(); ok {
			m.taskCursor = clampCursor(m.taskCursor, len(col.TaskIDs))
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m boardModel) updateKeys(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		if m.colCursor > 0 {
			m.colCursor--
			m.taskCursor = 0
		}
	case key.Matches(msg, keys.Right):
		if m.colCursor < len(m.b.ColumnOrder)-1 {
			m.colCursor++
			m.taskCursor = 0
		}
	case key.Matches(msg, keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case key.Matches(msg, keys.Down):
		if col, ok := m.currentColumn(); ok && m.taskCursor < len(col.TaskIDs)-1 {
			m.taskCursor++
		}
	case key.Matches(msg, keys.MoveUp):
		return m.moveWithin(-1)
	case key.Matches(msg, keys.MoveDown):
		return m.moveWithin(1)
	case key.Matches(msg, keys.MoveLeft):
		return m.moveAcross(-1)
	case key.Matches(msg, keys.MoveRight):
		return m.moveAcross(1)
	case key.Matches(msg, keys.New):
		return m.showTaskForm(board.Task{}, false)
	case key.Matches(msg, keys.Edit):
		if t, ok := m.currentTask(); ok {
			return m.showTaskForm(t, true)
		}
	case key.Matches(msg, keys.Delete):
		if _, ok := m.currentTask(); ok {
			if m.confirmDeleteEnabled() {
				m.confirming = true
				return m, nil
			}
			return m.deleteCurrent()
		}
	}
	return m, nil
}

func (m boardModel) updateConfirm(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirming = false
		return m.deleteCurrent()
	default:
		m.confirming = false
	}
	return m, nil
}

func (m boardModel) deleteCurrent() (boardModel, tea.Cmd) {
	t, ok := m.currentTask()
	if !ok {
		return m, nil
	}
	m.svc.DeleteTask(t.ID)
	return m, tea.Batch(m.refresh(), statusCmd("Task deleted"))
}

func (m boardModel) moveWithin(delta int) (boardModel, tea.Cmd) {
	col, ok := m.currentColumn()
	if !ok {
		return m, nil
	}
	t, ok := m.currentTask()
	if !ok {
		return m, nil
	}
	target := m.taskCursor + delta
	if target < 0 || target >= len(col.TaskIDs) {
		return m, nil
	}
	m.svc.MoveTaskWithinColumn(col.ID, t.ID, target)
	m.taskCursor = target
	return m, m.refresh()
}

func (m boardModel) moveAcross(delta int) (boardModel, tea.Cmd) {
	t, ok := m.currentTask()
	if !ok {
		return m, nil
	}
	targetCol := m.colCursor + delta
	if targetCol < 0 || targetCol >= len(m.b.ColumnOrder) {
		return m, nil
	}
	from := m.b.ColumnOrder[m.colCursor]
	to := m.b.ColumnOrder[targetCol]
	m.svc.MoveTaskAcrossColumns(t.ID, from, to, -1)
	m.colCursor = targetCol
	m.taskCursor = len(m.b.Columns[to].TaskIDs) // appended at the end
	return m, m.refresh()
}

func (m boardModel) showTaskForm(t board.Task, editing bool) (boardModel, tea.Cmd) {
	if editing {
		*m.formTitle = t.Title
		*m.formDesc = t.Description
		*m.formPriority = string(t.Priority)
		*m.formAssignee = t.Assignee
		*m.formDue = t.DueDate
		m.formType = "edit_task"
		m.editingID = t.ID
	} else {
		*m.formTitle = ""
		*m.formDesc = ""
		*m.formPriority = m.defaultPriority()
		*m.formAssignee = m.defaultAssignee()
		*m.formDue = ""
		m.formType = "task"
	}

	prioOptions := make([]huh.Option[string], len(board.Priorities))
	for i, p := range board.Priorities {
		prioOptions[i] = huh.NewOption(string(p), string(p))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewInput().Title("Description").Value(m.formDesc),
			huh.NewSelect[string]().Title("Priority").Options(prioOptions...).Value(m.formPriority),
			huh.NewInput().Title("Assignee (initials)").Value(m.formAssignee),
			huh.NewInput().Title("Due date (YYYY-MM-DD)").Value(m.formDue),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m boardModel) updateForm(msg tea.Msg) (boardModel, tea.Cmd) {
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

func (m boardModel) submitForm() (boardModel, tea.Cmd) {
	// An empty title never reaches the engine; the form is simply dropped.
	if strings.TrimSpace(*m.formTitle) == "" {
		return m, errorCmd("Title is required")
	}

	switch m.formType {
	case "task":
		col, ok := m.currentColumn()
		if !ok {
			return m, nil
		}
		err := m.svc.CreateTask(col.ID, board.TaskFields{
			Title:       *m.formTitle,
			Description: *m.formDesc,
			Priority:    board.Priority(*m.formPriority),
			Assignee:    *m.formAssignee,
			DueDate:     *m.formDue,
		})
		if errors.Is(err, board.ErrEmptyTitle) {
			return m, errorCmd("Title is required")
		}
		m.taskCursor = len(col.TaskIDs) // new task lands at the end
		return m, tea.Batch(m.refresh(), statusCmd("Task created"))

	case "edit_task":
		prio := board.Priority(*m.formPriority)
		m.svc.UpdateTask(m.editingID, board.TaskPatch{
			Title:       m.formTitle,
			Description: m.formDesc,
			Priority:    &prio,
			Assignee:    m.formAssignee,
			DueDate:     m.formDue,
		})
		return m, tea.Batch(m.refresh(), statusCmd("Task updated"))
	}
	return m, m.refresh()
}

func (m boardModel) defaultAssignee() string {
	if v, err := m.store.GetSetting("default_assignee"); err == nil && v != "" {
		return v
	}
	return m.cfg.DefaultAssignee
}

func (m boardModel) defaultPriority() string {
	if v, err := m.store.GetSetting("default_priority"); err == nil && v != "" {
		return v
	}
	if m.cfg.DefaultPriority != "" {
		return m.cfg.DefaultPriority
	}
	return string(board.PriorityMedium)
}

func (m boardModel) confirmDeleteEnabled() bool {
	v, err := m.store.GetSetting("confirm_delete")
	if err != nil {
		return true
	}
	return v != "false"
}

func (m boardModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.formType == "edit_task" {
			title = titleStyle.Render("Edit Task")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(m.width - 4).Render(content)
	}

	if len(m.b.ColumnOrder) == 0 {
		return panelStyle.Width(m.width - 4).Render(mutedStyle.Render("The board has no columns."))
	}

	colWidth := (m.width-2)/len(m.b.ColumnOrder) - 4
	if colWidth < 16 {
		colWidth = 16
	}

	var cols []string
	for i, colID := range m.b.ColumnOrder {
		cols = append(cols, m.renderColumn(i, m.b.Columns[colID], colWidth))
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	if m.confirming {
		if t, ok := m.currentTask(); ok {
			prompt := errorStyle.Render(fmt.Sprintf("  Delete %q? y/n", truncate(t.Title, 40)))
			view = lipgloss.JoinVertical(lipgloss.Left, view, prompt)
		}
	}
	return view
}

func (m boardModel) renderColumn(idx int, col board.Column, w int) string {
	colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(col.Color)).Render("●")
	header := fmt.Sprintf("%s %s %s", colorDot, titleStyle.Render(col.Title),
		mutedStyle.Render(fmt.Sprintf("(%d)", len(col.TaskIDs))))

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	if len(col.TaskIDs) == 0 {
		rows = append(rows, mutedStyle.Render("  —"))
	}

	for j, taskID := range col.TaskIDs {
		t, ok := m.b.Tasks[taskID]
		if !ok {
			continue
		}
		cursor := "  "
		style := normalItemStyle
		if idx == m.colCursor && j == m.taskCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		prioDot := lipgloss.NewStyle().Foreground(priorityColors[t.Priority]).Render("●")
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, prioDot, style.Render(truncate(t.Title, w-8))))

		meta := ""
		if t.Assignee != "" {
			meta = t.Assignee
		}
		if t.DueDate != "" {
			if meta != "" {
				meta += "  "
			}
			meta += t.DueDate
		}
		if meta != "" {
			rows = append(rows, mutedStyle.Render("    "+truncate(meta, w-6)))
		}
	}

	style := columnStyle
	if idx == m.colCursor {
		style = activeColumnStyle
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}
