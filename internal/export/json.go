package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/quietblock/deskboard/internal/board"
	"github.com/quietblock/deskboard/internal/roadmap"
)

type jsonExport struct {
	ExportedAt string          `json:"exported_at"`
	TaskCount  int             `json:"task_count"`
	Columns    []jsonColumn    `json:"columns"`
	Projects   roadmap.Roadmap `json:"projects"`
}

type jsonColumn struct {
	Title string       `json:"title"`
	Tasks []board.Task `json:"tasks"`
}

// ToJSON writes a combined board and roadmap report. Tasks are grouped
// under their column in rendered order.
func ToJSON(b board.Board, r roadmap.Roadmap, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		TaskCount:  len(b.Tasks),
		Projects:   r,
	}

	for _, colID := range b.ColumnOrder {
		col := b.Columns[colID]
		jc := jsonColumn{Title: col.Title}
		for _, taskID := range col.TaskIDs {
			if t, ok := b.Tasks[taskID]; ok {
				jc.Tasks = append(jc.Tasks, t)
			}
		}
		export.Columns = append(export.Columns, jc)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
