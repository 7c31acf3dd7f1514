package roadmap

// Seed returns the roadmap a fresh installation starts from: two example
// projects with milestones. Project progress values are the derived means
// of their milestones.
func Seed() Roadmap {
	r := Roadmap{
		{
			ID:          "project-1",
			Name:        "Agency site relaunch",
			Description: "Full redesign of the marketing site with the new brand",
			StartDate:   "2026-07-01",
			EndDate:     "2026-11-30",
			Status:      ProjectActive,
			Milestones: []Milestone{
				{
					ID:          "milestone-1",
					Title:       "Discovery & content audit",
					Description: "Inventory existing pages and interview stakeholders",
					Date:        "2026-07-15",
					Status:      MilestoneCompleted,
					Progress:    100,
					Team:        []string{"AM", "JK"},
					Icon:        "search",
					Color:       "#6C63FF",
				},
				{
					ID:          "milestone-2",
					Title:       "Design system",
					Description: "Components, typography and color tokens",
					Date:        "2026-08-20",
					Status:      MilestoneInProgress,
					Progress:    60,
					Team:        []string{"AM"},
					Icon:        "palette",
					Color:       "#2EC4B6",
				},
				{
					ID:          "milestone-3",
					Title:       "Launch",
					Description: "DNS cutover and announcement",
					Date:        "2026-11-25",
					Status:      MilestoneUpcoming,
					Progress:    0,
					Team:        []string{"JK", "TV"},
					Icon:        "rocket",
					Color:       "#FF6B6B",
				},
			},
		},
		{
			ID:          "project-2",
			Name:        "Client portal",
			Description: "Self-service portal for project status and invoices",
			StartDate:   "2026-10-01",
			EndDate:     "2027-02-28",
			Status:      ProjectPlanned,
			Milestones: []Milestone{
				{
					ID:          "milestone-4",
					Title:       "Requirements workshop",
					Description: "Scope the first release with the three pilot clients",
					Date:        "2026-10-10",
					Status:      MilestoneUpcoming,
					Progress:    0,
					Team:        []string{"JK"},
					Icon:        "users",
					Color:       "#F39C12",
				},
			},
		},
	}
	for i := range r {
		r[i].Progress = deriveProgress(r[i].Milestones)
	}
	return r
}
