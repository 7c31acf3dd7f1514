// Package roadmap implements the project timeline: projects, their inline
// milestones, and the derived-progress rule.
package roadmap

// MilestoneStatus of a single milestone.
type MilestoneStatus string

const (
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneInProgress MilestoneStatus = "in-progress"
	MilestoneUpcoming   MilestoneStatus = "upcoming"
)

// MilestoneStatuses lists all milestone statuses in timeline order.
var MilestoneStatuses = []MilestoneStatus{MilestoneCompleted, MilestoneInProgress, MilestoneUpcoming}

// ProjectStatus of a project as a whole.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectPlanned   ProjectStatus = "planned"
)

// ProjectStatuses lists all project statuses.
var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectCompleted, ProjectPlanned}

// Milestone is one step on a project's timeline. Status and Progress are
// independently editable; completing a milestone does not force its
// progress to 100. Team holds free-text member initials.
type Milestone struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Status      MilestoneStatus `json:"status"`
	Progress    int             `json:"progress"`
	Team        []string        `json:"team"`
	Icon        string          `json:"icon"`
	Color       string          `json:"color"`
}

// Project owns its milestones inline. Progress is derived: after any
// milestone change it is recomputed as the rounded mean of the milestones'
// progress values, or 0 when there are none.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Status      ProjectStatus `json:"status"`
	Progress    int           `json:"progress"`
	Milestones  []Milestone   `json:"milestones"`
}

// Roadmap is a complete snapshot: all projects in display order. It
// serializes as a plain JSON array of projects.
type Roadmap []Project

// clone deep-copies the roadmap so operations never mutate the snapshot
// they were handed.
func (r Roadmap) clone() Roadmap {
	next := make(Roadmap, len(r))
	for i, p := range r {
		p.Milestones = append([]Milestone(nil), p.Milestones...)
		for j, m := range p.Milestones {
			m.Team = append([]string(nil), m.Team...)
			p.Milestones[j] = m
		}
		next[i] = p
	}
	return next
}

// Find returns the index of the project with the given id, or -1.
func (r Roadmap) Find(projectID string) int {
	for i, p := range r {
		if p.ID == projectID {
			return i
		}
	}
	return -1
}
