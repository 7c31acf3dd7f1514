package board

import (
	"reflect"
	"testing"
)

// checkInvariants verifies that every task id lives in exactly one column's
// TaskIDs and that every listed id resolves to a task.
func checkInvariants(t *testing.T, b Board) {
	t.Helper()

	seen := make(map[string]int)
	for colID, col := range b.Columns {
		inCol := make(map[string]bool)
		for _, taskID := range col.TaskIDs {
			if inCol[taskID] {
				t.Fatalf("column %s lists task %s twice", colID, taskID)
			}
			inCol[taskID] = true
			seen[taskID]++
			if _, ok := b.Tasks[taskID]; !ok {
				t.Fatalf("column %s references missing task %s", colID, taskID)
			}
		}
	}
	for taskID := range b.Tasks {
		if seen[taskID] != 1 {
			t.Fatalf("task %s appears in %d columns, want exactly 1", taskID, seen[taskID])
		}
	}
	for _, colID := range b.ColumnOrder {
		if _, ok := b.Columns[colID]; !ok {
			t.Fatalf("columnOrder references missing column %s", colID)
		}
	}
}

func taskOrder(b Board, columnID string) []string {
	return b.Columns[columnID].TaskIDs
}

// ============================================================
// Seed
// ============================================================

func TestSeedShape(t *testing.T) {
	b := Seed()
	checkInvariants(t, b)

	if len(b.ColumnOrder) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(b.ColumnOrder))
	}
	if len(b.Tasks) != 5 {
		t.Fatalf("expected 5 seed tasks, got %d", len(b.Tasks))
	}

	wantCounts := map[string]int{"todo": 2, "in-progress": 2, "done": 1}
	for colID, want := range wantCounts {
		if got := len(b.Columns[colID].TaskIDs); got != want {
			t.Errorf("column %s: expected %d tasks, got %d", colID, want, got)
		}
	}
}

func TestSeedDeterministic(t *testing.T) {
	if !reflect.DeepEqual(Seed(), Seed()) {
		t.Fatal("seed board is not deterministic")
	}
}

// ============================================================
// CreateTask
// ============================================================

func TestCreateTask(t *testing.T) {
	b := Seed()
	next, err := CreateTask(b, "todo", TaskFields{
		Title:    "Ship newsletter signup",
		Priority: PriorityHigh,
		Assignee: "JK",
	})
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, next)

	if len(next.Tasks) != 6 {
		t.Fatalf("expected 6 tasks, got %d", len(next.Tasks))
	}
	ids := taskOrder(next, "todo")
	newID := ids[len(ids)-1]
	task := next.Tasks[newID]
	if task.Title != "Ship newsletter signup" || task.Priority != PriorityHigh {
		t.Fatalf("unexpected task: %+v", task)
	}
	// Appended at the end of the column.
	if len(ids) != 3 || ids[0] != "task-1" || ids[1] != "task-2" {
		t.Fatalf("new task should append, got %v", ids)
	}
}

func TestCreateTaskEmptyTitle(t *testing.T) {
	b := Seed()
	next, err := CreateTask(b, "todo", TaskFields{Title: "   "})
	if err != ErrEmptyTitle {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if !reflect.DeepEqual(next, b) {
		t.Fatal("board must be unchanged after a rejected create")
	}
}

func TestCreateTaskUnknownColumn(t *testing.T) {
	b := Seed()
	next, err := CreateTask(b, "nope", TaskFields{Title: "Lost"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(next, b) {
		t.Fatal("unknown column must be a no-op")
	}
}

func TestCreateTaskDefaultsPriority(t *testing.T) {
	b := Seed()
	next, _ := CreateTask(b, "todo", TaskFields{Title: "No priority"})
	ids := taskOrder(next, "todo")
	if got := next.Tasks[ids[len(ids)-1]].Priority; got != PriorityMedium {
		t.Fatalf("expected medium default, got %q", got)
	}
}

func TestCreateTaskUniqueIDs(t *testing.T) {
	b := Seed()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		var err error
		b, err = CreateTask(b, "todo", TaskFields{Title: "T"})
		if err != nil {
			t.Fatal(err)
		}
	}
	for id := range b.Tasks {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
	checkInvariants(t, b)
}

func TestCreateTaskDoesNotMutateInput(t *testing.T) {
	b := Seed()
	before := len(taskOrder(b, "todo"))
	if _, err := CreateTask(b, "todo", TaskFields{Title: "New"}); err != nil {
		t.Fatal(err)
	}
	if got := len(taskOrder(b, "todo")); got != before {
		t.Fatal("input snapshot was mutated")
	}
}

// ============================================================
// UpdateTask
// ============================================================

func TestUpdateTaskPartial(t *testing.T) {
	b := Seed()
	title := "Redesign homepage hero"
	next := UpdateTask(b, "task-1", TaskPatch{Title: &title})
	checkInvariants(t, next)

	got := next.Tasks["task-1"]
	if got.Title != title {
		t.Fatalf("title not updated: %q", got.Title)
	}
	// Untouched fields survive.
	if got.Assignee != b.Tasks["task-1"].Assignee || got.Priority != b.Tasks["task-1"].Priority {
		t.Fatal("unpatched fields changed")
	}
}

func TestUpdateTaskUnknownID(t *testing.T) {
	b := Seed()
	title := "ghost"
	next := UpdateTask(b, "task-999", TaskPatch{Title: &title})
	if !reflect.DeepEqual(next, b) {
		t.Fatal("unknown id must be a silent no-op")
	}
}

// ============================================================
// DeleteTask
// ============================================================

func TestDeleteTask(t *testing.T) {
	b := Seed()
	next := DeleteTask(b, "task-1")
	checkInvariants(t, next)

	if _, ok := next.Tasks["task-1"]; ok {
		t.Fatal("task still present")
	}
	if got := taskOrder(next, "todo"); len(got) != 1 || got[0] != "task-2" {
		t.Fatalf("column membership not cleaned up: %v", got)
	}
}

func TestDeleteTaskIdempotent(t *testing.T) {
	b := Seed()
	once := DeleteTask(b, "task-3")
	twice := DeleteTask(once, "task-3")
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("second delete must be a no-op")
	}
}

// ============================================================
// MoveTaskWithinColumn
// ============================================================

func TestMoveWithinColumnStable(t *testing.T) {
	b := Seed()
	// Build a column with a known order.
	for _, title := range []string{"a", "b", "c"} {
		var err error
		b, err = CreateTask(b, "todo", TaskFields{Title: title})
		if err != nil {
			t.Fatal(err)
		}
	}
	ids := taskOrder(b, "todo") // [task-1 task-2 a b c]

	next := MoveTaskWithinColumn(b, "todo", ids[4], 1)
	want := []string{ids[0], ids[4], ids[1], ids[2], ids[3]}
	if got := taskOrder(next, "todo"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected stable move %v, got %v", want, got)
	}
	checkInvariants(t, next)
}

func TestMoveWithinColumnClamped(t *testing.T) {
	b := Seed()
	next := MoveTaskWithinColumn(b, "todo", "task-1", 99)
	if got := taskOrder(next, "todo"); !reflect.DeepEqual(got, []string{"task-2", "task-1"}) {
		t.Fatalf("index should clamp to end, got %v", got)
	}
	next = MoveTaskWithinColumn(b, "todo", "task-2", -5)
	if got := taskOrder(next, "todo"); !reflect.DeepEqual(got, []string{"task-2", "task-1"}) {
		t.Fatalf("index should clamp to start, got %v", got)
	}
}

func TestMoveWithinColumnUnknown(t *testing.T) {
	b := Seed()
	if next := MoveTaskWithinColumn(b, "todo", "task-5", 0); !reflect.DeepEqual(next, b) {
		t.Fatal("task not in column must be a no-op")
	}
	if next := MoveTaskWithinColumn(b, "nope", "task-1", 0); !reflect.DeepEqual(next, b) {
		t.Fatal("unknown column must be a no-op")
	}
}

// ============================================================
// MoveTaskAcrossColumns
// ============================================================

func TestMoveAcrossColumns(t *testing.T) {
	b := Seed()
	next := MoveTaskAcrossColumns(b, "task-1", "todo", "in-progress", 0)
	checkInvariants(t, next)

	if indexOf(taskOrder(next, "todo"), "task-1") != -1 {
		t.Fatal("task still in source column")
	}
	if got := taskOrder(next, "in-progress"); got[0] != "task-1" {
		t.Fatalf("task should be at index 0, got %v", got)
	}
	// The task record is untouched.
	if !reflect.DeepEqual(next.Tasks["task-1"], b.Tasks["task-1"]) {
		t.Fatal("task record changed during move")
	}
}

func TestMoveAcrossColumnsAppend(t *testing.T) {
	b := Seed()
	next := MoveTaskAcrossColumns(b, "task-1", "todo", "done", -1)
	if got := taskOrder(next, "done"); got[len(got)-1] != "task-1" {
		t.Fatalf("negative index should append, got %v", got)
	}
	checkInvariants(t, next)
}

func TestMoveAcrossColumnsSameColumn(t *testing.T) {
	b := Seed()
	next := MoveTaskAcrossColumns(b, "task-2", "todo", "todo", 0)
	if got := taskOrder(next, "todo"); !reflect.DeepEqual(got, []string{"task-2", "task-1"}) {
		t.Fatalf("same-column move should reorder, got %v", got)
	}
	checkInvariants(t, next)
}

func TestMoveAcrossColumnsUnknown(t *testing.T) {
	b := Seed()
	if next := MoveTaskAcrossColumns(b, "task-9", "todo", "done", 0); !reflect.DeepEqual(next, b) {
		t.Fatal("unknown task must be a no-op")
	}
	if next := MoveTaskAcrossColumns(b, "task-1", "todo", "nope", 0); !reflect.DeepEqual(next, b) {
		t.Fatal("unknown destination must be a no-op")
	}
}

// ============================================================
// Columns
// ============================================================

func TestCreateColumn(t *testing.T) {
	b := Seed()
	next, err := CreateColumn(b, "Review", "#9B59B6")
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, next)
	if len(next.ColumnOrder) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(next.ColumnOrder))
	}
	newID := next.ColumnOrder[3]
	if next.Columns[newID].Title != "Review" {
		t.Fatalf("unexpected column: %+v", next.Columns[newID])
	}
}

func TestCreateColumnEmptyTitle(t *testing.T) {
	b := Seed()
	if _, err := CreateColumn(b, "", "#fff"); err != ErrEmptyTitle {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestDeleteColumnRemovesTasks(t *testing.T) {
	b := Seed()
	next := DeleteColumn(b, "todo")
	checkInvariants(t, next)

	if len(next.ColumnOrder) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(next.ColumnOrder))
	}
	if _, ok := next.Tasks["task-1"]; ok {
		t.Fatal("tasks of a deleted column must go with it")
	}
	if len(next.Tasks) != 3 {
		t.Fatalf("expected 3 remaining tasks, got %d", len(next.Tasks))
	}
}

// ============================================================
// Mixed sequences keep the membership invariant
// ============================================================

func TestOperationSequenceInvariant(t *testing.T) {
	b := Seed()
	var err error

	b, err = CreateTask(b, "todo", TaskFields{Title: "one"})
	if err != nil {
		t.Fatal(err)
	}
	b = MoveTaskAcrossColumns(b, "task-2", "todo", "done", 0)
	b = MoveTaskWithinColumn(b, "in-progress", "task-4", 0)
	b = DeleteTask(b, "task-3")
	b = DeleteTask(b, "task-3") // repeat on purpose
	b = MoveTaskAcrossColumns(b, "task-5", "done", "todo", 1)
	checkInvariants(t, b)
}

func TestColumnOf(t *testing.T) {
	b := Seed()
	if got := b.ColumnOf("task-4"); got != "in-progress" {
		t.Fatalf("expected in-progress, got %q", got)
	}
	if got := b.ColumnOf("task-999"); got != "" {
		t.Fatalf("expected empty for unknown task, got %q", got)
	}
}
