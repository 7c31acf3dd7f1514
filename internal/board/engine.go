package board

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// ErrEmptyTitle is returned when a task is created with a blank title.
var ErrEmptyTitle = errors.New("task title must not be empty")

// TaskFields carries the user-supplied fields for a new task.
type TaskFields struct {
	Title       string
	Description string
	Priority    Priority
	Assignee    string
	DueDate     string
}

// TaskPatch is a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Assignee    *string
	DueDate     *string
}

var lastID atomic.Int64

// newID returns a fresh time-based identifier. The counter guard keeps ids
// unique even when the clock does not advance between calls.
func newID(prefix string) string {
	for {
		now := time.Now().UnixNano()
		last := lastID.Load()
		if now <= last {
			now = last + 1
		}
		if lastID.CompareAndSwap(last, now) {
			return fmt.Sprintf("%s-%d", prefix, now)
		}
	}
}

// CreateTask adds a new task to the end of the given column. A blank title
// is rejected with ErrEmptyTitle and leaves the board unchanged. An unknown
// column id is a silent no-op.
func CreateTask(b Board, columnID string, f TaskFields) (Board, error) {
	if strings.TrimSpace(f.Title) == "" {
		return b, ErrEmptyTitle
	}
	if _, ok := b.Columns[columnID]; !ok {
		return b, nil
	}

	next := b.clone()
	t := Task{
		ID:          newID("task"),
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		Assignee:    f.Assignee,
		DueDate:     f.DueDate,
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	next.Tasks[t.ID] = t

	col := next.Columns[columnID]
	col.TaskIDs = append(col.TaskIDs, t.ID)
	next.Columns[columnID] = col
	return next, nil
}

// UpdateTask merges patch into the task. Unknown ids are tolerated silently;
// the board is returned unchanged.
func UpdateTask(b Board, taskID string, p TaskPatch) Board {
	t, ok := b.Tasks[taskID]
	if !ok {
		return b
	}

	next := b.clone()
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	next.Tasks[taskID] = t
	return next
}

// DeleteTask removes the task and its column membership. Deleting a missing
// task is a no-op, so the operation is idempotent.
func DeleteTask(b Board, taskID string) Board {
	if _, ok := b.Tasks[taskID]; !ok {
		return b
	}

	next := b.clone()
	delete(next.Tasks, taskID)
	for id, col := range next.Columns {
		if i := indexOf(col.TaskIDs, taskID); i >= 0 {
			col.TaskIDs = append(col.TaskIDs[:i], col.TaskIDs[i+1:]...)
			next.Columns[id] = col
			break
		}
	}
	return next
}

// MoveTaskWithinColumn relocates taskID to targetIndex inside its column.
// This is a stable array move: all other ids keep their relative order.
// The index is clamped to the valid range.
func MoveTaskWithinColumn(b Board, columnID, taskID string, targetIndex int) Board {
	col, ok := b.Columns[columnID]
	if !ok {
		return b
	}
	from := indexOf(col.TaskIDs, taskID)
	if from < 0 {
		return b
	}

	next := b.clone()
	col = next.Columns[columnID]
	ids := append(col.TaskIDs[:from], col.TaskIDs[from+1:]...)
	to := targetIndex
	if to < 0 {
		to = 0
	}
	if to > len(ids) {
		to = len(ids)
	}
	col.TaskIDs = insertAt(ids, to, taskID)
	next.Columns[columnID] = col
	return next
}

// MoveTaskAcrossColumns transfers column membership of taskID from one
// column to another, inserting at targetIndex in the destination. A
// negative or out-of-range index appends. The task record itself is
// untouched.
func MoveTaskAcrossColumns(b Board, taskID, fromColumnID, toColumnID string, targetIndex int) Board {
	if fromColumnID == toColumnID {
		return MoveTaskWithinColumn(b, fromColumnID, taskID, targetIndex)
	}
	src, ok := b.Columns[fromColumnID]
	if !ok {
		return b
	}
	if _, ok := b.Columns[toColumnID]; !ok {
		return b
	}
	i := indexOf(src.TaskIDs, taskID)
	if i < 0 {
		return b
	}

	next := b.clone()
	src = next.Columns[fromColumnID]
	src.TaskIDs = append(src.TaskIDs[:i], src.TaskIDs[i+1:]...)
	next.Columns[fromColumnID] = src

	dst := next.Columns[toColumnID]
	to := targetIndex
	if to < 0 || to > len(dst.TaskIDs) {
		to = len(dst.TaskIDs)
	}
	dst.TaskIDs = insertAt(dst.TaskIDs, to, taskID)
	next.Columns[toColumnID] = dst
	return next
}

// CreateColumn appends a new empty column. Not reachable from the UI; kept
// so the board can grow beyond the seeded three columns.
func CreateColumn(b Board, title, color string) (Board, error) {
	if strings.TrimSpace(title) == "" {
		return b, ErrEmptyTitle
	}
	next := b.clone()
	col := Column{ID: newID("column"), Title: title, Color: color}
	next.Columns[col.ID] = col
	next.ColumnOrder = append(next.ColumnOrder, col.ID)
	return next, nil
}

// DeleteColumn removes the column together with every task it holds, which
// keeps the one-column-per-task invariant intact.
func DeleteColumn(b Board, columnID string) Board {
	col, ok := b.Columns[columnID]
	if !ok {
		return b
	}

	next := b.clone()
	for _, taskID := range col.TaskIDs {
		delete(next.Tasks, taskID)
	}
	delete(next.Columns, columnID)
	if i := indexOf(next.ColumnOrder, columnID); i >= 0 {
		next.ColumnOrder = append(next.ColumnOrder[:i], next.ColumnOrder[i+1:]...)
	}
	return next
}

func insertAt(ids []string, i int, id string) []string {
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}
