// Package export writes board and roadmap data to CSV and JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/quietblock/deskboard/internal/board"
)

// ToCSV writes every task on the board as one row, in column order and in
// each column's rendered task order.
func ToCSV(b board.Board, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Column", "Position", "Title", "Priority", "Assignee", "Due", "Description"}); err != nil {
		return err
	}

	for _, colID := range b.ColumnOrder {
		col := b.Columns[colID]
		for pos, taskID := range col.TaskIDs {
			t, ok := b.Tasks[taskID]
			if !ok {
				continue
			}
			row := []string{
				col.Title,
				strconv.Itoa(pos + 1),
				t.Title,
				string(t.Priority),
				t.Assignee,
				t.DueDate,
				t.Description,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}
