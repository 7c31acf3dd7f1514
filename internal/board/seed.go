package board

// Seed returns the board a fresh installation starts from: three columns
// with five example tasks, two in To Do, two in In Progress, one in Done.
func Seed() Board {
	tasks := []Task{
		{
			ID:          "task-1",
			Title:       "Design homepage hero",
			Description: "New hero section with the updated brand palette",
			Priority:    PriorityHigh,
			Assignee:    "AM",
			DueDate:     "2026-09-12",
		},
		{
			ID:          "task-2",
			Title:       "Write client proposal",
			Description: "Scope and estimate for the bakery redesign",
			Priority:    PriorityMedium,
			Assignee:    "JK",
			DueDate:     "2026-09-15",
		},
		{
			ID:          "task-3",
			Title:       "Migrate blog to CMS",
			Description: "Move remaining articles and set up redirects",
			Priority:    PriorityMedium,
			Assignee:    "TV",
			DueDate:     "2026-09-18",
		},
		{
			ID:          "task-4",
			Title:       "Fix checkout validation",
			Description: "Postal code field rejects valid input on mobile",
			Priority:    PriorityHigh,
			Assignee:    "JK",
			DueDate:     "2026-09-10",
		},
		{
			ID:          "task-5",
			Title:       "Update pricing page copy",
			Description: "Align package names with the new offering",
			Priority:    PriorityLow,
			Assignee:    "AM",
			DueDate:     "2026-09-05",
		},
	}

	b := Board{
		Tasks: make(map[string]Task, len(tasks)),
		Columns: map[string]Column{
			"todo": {
				ID:      "todo",
				Title:   "To Do",
				Color:   "#6C63FF",
				TaskIDs: []string{"task-1", "task-2"},
			},
			"in-progress": {
				ID:      "in-progress",
				Title:   "In Progress",
				Color:   "#F39C12",
				TaskIDs: []string{"task-3", "task-4"},
			},
			"done": {
				ID:      "done",
				Title:   "Done",
				Color:   "#2ECC71",
				TaskIDs: []string{"task-5"},
			},
		},
		ColumnOrder: []string{"todo", "in-progress", "done"},
	}
	for _, t := range tasks {
		b.Tasks[t.ID] = t
	}
	return b
}
