// Package board implements the kanban board: its data model and the pure
// operations that produce new board snapshots.
package board

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists all priorities in ascending order of urgency.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Task is a single card on the board. Assignee is a free-text short label
// (display initials); there is no referential tie to a team member.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Assignee    string   `json:"assignee"`
	DueDate     string   `json:"dueDate"`
}

// Column holds an ordered list of task ids. The order of TaskIDs is the
// rendered order within the column.
type Column struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Color   string   `json:"color"`
	TaskIDs []string `json:"taskIds"`
}

// Board is a complete snapshot of the kanban state. Every task id in Tasks
// appears in exactly one column's TaskIDs, and every id in every TaskIDs
// resolves to a task in Tasks.
type Board struct {
	Tasks       map[string]Task   `json:"tasks"`
	Columns     map[string]Column `json:"columns"`
	ColumnOrder []string          `json:"columnOrder"`
}

// clone deep-copies the board so operations never mutate the snapshot they
// were handed.
func (b Board) clone() Board {
	next := Board{
		Tasks:       make(map[string]Task, len(b.Tasks)),
		Columns:     make(map[string]Column, len(b.Columns)),
		ColumnOrder: append([]string(nil), b.ColumnOrder...),
	}
	for id, t := range b.Tasks {
		next.Tasks[id] = t
	}
	for id, c := range b.Columns {
		c.TaskIDs = append([]string(nil), c.TaskIDs...)
		next.Columns[id] = c
	}
	return next
}

// ColumnOf returns the id of the column whose TaskIDs contains taskID, or
// "" if no column does.
func (b Board) ColumnOf(taskID string) string {
	for _, colID := range b.ColumnOrder {
		if indexOf(b.Columns[colID].TaskIDs, taskID) >= 0 {
			return colID
		}
	}
	return ""
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
