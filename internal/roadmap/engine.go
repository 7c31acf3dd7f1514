package roadmap

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// ProjectFields carries the user-supplied fields for a new project.
type ProjectFields struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string
	Status      ProjectStatus
}

// ProjectPatch is a partial update. Progress is deliberately absent: it is
// derived from milestones and cannot be set directly.
type ProjectPatch struct {
	Name        *string
	Description *string
	StartDate   *string
	EndDate     *string
	Status      *ProjectStatus
}

// MilestoneFields carries the user-supplied fields for a new milestone.
type MilestoneFields struct {
	Title       string
	Description string
	Date        string
	Status      MilestoneStatus
	Progress    int
	Team        []string
	Icon        string
	Color       string
}

// MilestonePatch is a partial update; nil fields are left unchanged.
type MilestonePatch struct {
	Title       *string
	Description *string
	Date        *string
	Status      *MilestoneStatus
	Progress    *int
	Team        *[]string
	Icon        *string
	Color       *string
}

var lastID atomic.Int64

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

// deriveProgress is the rounded mean of the milestones' progress values,
// or 0 when there are none.
func deriveProgress(ms []Milestone) int {
	if len(ms) == 0 {
		return 0
	}
	total := 0
	for _, m := range ms {
		total += m.Progress
	}
	return int(math.Round(float64(total) / float64(len(ms))))
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// CreateProject appends a new project with no milestones and zero progress.
// Name validation is the caller's gate; the engine accepts what it is given.
func CreateProject(r Roadmap, f ProjectFields) Roadmap {
	next := r.clone()
	p := Project{
		ID:          newID("project"),
		Name:        f.Name,
		Description: f.Description,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Status:      f.Status,
	}
	if p.Status == "" {
		p.Status = ProjectPlanned
	}
	return append(next, p)
}

// UpdateProject merges patch into the project. When the project has
// milestones its progress is recomputed afterwards, so the derived value
// always wins. With no milestones the explicitly set progress is kept.
// Unknown ids are tolerated silently.
func UpdateProject(r Roadmap, projectID string, patch ProjectPatch) Roadmap {
	i := r.Find(projectID)
	if i < 0 {
		return r
	}

	next := r.clone()
	p := next[i]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = *patch.EndDate
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if len(p.Milestones) > 0 {
		p.Progress = deriveProgress(p.Milestones)
	}
	next[i] = p
	return next
}

// DeleteProject removes the project and everything it owns.
func DeleteProject(r Roadmap, projectID string) Roadmap {
	i := r.Find(projectID)
	if i < 0 {
		return r
	}
	next := r.clone()
	return append(next[:i], next[i+1:]...)
}

// CreateMilestone appends a milestone to the project and recomputes the
// project's progress.
func CreateMilestone(r Roadmap, projectID string, f MilestoneFields) Roadmap {
	i := r.Find(projectID)
	if i < 0 {
		return r
	}

	next := r.clone()
	p := next[i]
	m := Milestone{
		ID:          newID("milestone"),
		Title:       f.Title,
		Description: f.Description,
		Date:        f.Date,
		Status:      f.Status,
		Progress:    clampProgress(f.Progress),
		Team:        append([]string(nil), f.Team...),
		Icon:        f.Icon,
		Color:       f.Color,
	}
	if m.Status == "" {
		m.Status = MilestoneUpcoming
	}
	p.Milestones = append(p.Milestones, m)
	p.Progress = deriveProgress(p.Milestones)
	next[i] = p
	return next
}

// UpdateMilestone merges patch into the milestone and recomputes the
// project's progress. Unknown project or milestone ids are tolerated
// silently.
func UpdateMilestone(r Roadmap, projectID, milestoneID string, patch MilestonePatch) Roadmap {
	i := r.Find(projectID)
	if i < 0 {
		return r
	}
	j := findMilestone(r[i].Milestones, milestoneID)
	if j < 0 {
		return r
	}

	next := r.clone()
	p := next[i]
	m := p.Milestones[j]
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Date != nil {
		m.Date = *patch.Date
	}
	if patch.Status != nil {
		m.Status = *patch.Status
	}
	if patch.Progress != nil {
		m.Progress = clampProgress(*patch.Progress)
	}
	if patch.Team != nil {
		m.Team = append([]string(nil), (*patch.Team)...)
	}
	if patch.Icon != nil {
		m.Icon = *patch.Icon
	}
	if patch.Color != nil {
		m.Color = *patch.Color
	}
	p.Milestones[j] = m
	p.Progress = deriveProgress(p.Milestones)
	next[i] = p
	return next
}

// DeleteMilestone removes the milestone and recomputes the project's
// progress, which drops to 0 when the last milestone goes.
func DeleteMilestone(r Roadmap, projectID, milestoneID string) Roadmap {
	i := r.Find(projectID)
	if i < 0 {
		return r
	}
	j := findMilestone(r[i].Milestones, milestoneID)
	if j < 0 {
		return r
	}

	next := r.clone()
	p := next[i]
	p.Milestones = append(p.Milestones[:j], p.Milestones[j+1:]...)
	p.Progress = deriveProgress(p.Milestones)
	next[i] = p
	return next
}

func findMilestone(ms []Milestone, id string) int {
	for i, m := range ms {
		if m.ID == id {
			return i
		}
	}
	return -1
}
