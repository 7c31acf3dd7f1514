package roadmap

import (
	"reflect"
	"testing"
)

// newProject is a test helper building a roadmap with one project that has
// the given milestone progress values.
func newProject(t *testing.T, progresses ...int) (Roadmap, string) {
	t.Helper()
	r := CreateProject(Roadmap{}, ProjectFields{Name: "Test project", Status: ProjectActive})
	id := r[0].ID
	for _, p := range progresses {
		r = CreateMilestone(r, id, MilestoneFields{Title: "m", Progress: p})
	}
	return r, id
}

// ============================================================
// Seed
// ============================================================

func TestSeedProjects(t *testing.T) {
	r := Seed()
	if len(r) != 2 {
		t.Fatalf("expected 2 seed projects, got %d", len(r))
	}
	for _, p := range r {
		if p.Progress != deriveProgress(p.Milestones) {
			t.Errorf("project %s: progress %d out of sync with milestones", p.ID, p.Progress)
		}
	}
}

// ============================================================
// Projects
// ============================================================

func TestCreateProject(t *testing.T) {
	r := CreateProject(Roadmap{}, ProjectFields{
		Name:      "Portal",
		StartDate: "2026-10-01",
	})
	if len(r) != 1 {
		t.Fatalf("expected 1 project, got %d", len(r))
	}
	p := r[0]
	if p.Name != "Portal" || p.Progress != 0 || len(p.Milestones) != 0 {
		t.Fatalf("unexpected project: %+v", p)
	}
	if p.Status != ProjectPlanned {
		t.Fatalf("expected planned default status, got %q", p.Status)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestUpdateProjectMerge(t *testing.T) {
	r, id := newProject(t)
	name := "Renamed"
	status := ProjectCompleted
	r = UpdateProject(r, id, ProjectPatch{Name: &name, Status: &status})

	p := r[0]
	if p.Name != "Renamed" || p.Status != ProjectCompleted {
		t.Fatalf("patch not applied: %+v", p)
	}
}

func TestUpdateProjectRecomputesProgress(t *testing.T) {
	r, id := newProject(t, 40, 60)
	// Any update recomputes from milestones, so a stale value cannot stick.
	name := "x"
	r = UpdateProject(r, id, ProjectPatch{Name: &name})
	if r[0].Progress != 50 {
		t.Fatalf("expected derived progress 50, got %d", r[0].Progress)
	}
}

func TestUpdateProjectNoMilestonesKeepsProgress(t *testing.T) {
	r, id := newProject(t)
	name := "x"
	r = UpdateProject(r, id, ProjectPatch{Name: &name})
	if r[0].Progress != 0 {
		t.Fatalf("expected progress 0 untouched, got %d", r[0].Progress)
	}
}

func TestUpdateProjectUnknownID(t *testing.T) {
	r, _ := newProject(t)
	name := "ghost"
	next := UpdateProject(r, "project-999", ProjectPatch{Name: &name})
	if !reflect.DeepEqual(next, r) {
		t.Fatal("unknown id must be a silent no-op")
	}
}

func TestDeleteProject(t *testing.T) {
	r, id := newProject(t, 10, 20)
	next := DeleteProject(r, id)
	if len(next) != 0 {
		t.Fatalf("expected empty roadmap, got %d projects", len(next))
	}
	// Deleting again is harmless.
	if got := DeleteProject(next, id); len(got) != 0 {
		t.Fatal("second delete must be a no-op")
	}
}

// ============================================================
// Milestones and derived progress
// ============================================================

func TestDerivedProgressMean(t *testing.T) {
	r, _ := newProject(t, 100, 100, 60, 0, 0)
	if r[0].Progress != 52 {
		t.Fatalf("expected progress 52, got %d", r[0].Progress)
	}
}

func TestDerivedProgressRounding(t *testing.T) {
	r, _ := newProject(t, 50, 51)
	// Mean 50.5 rounds half away from zero.
	if r[0].Progress != 51 {
		t.Fatalf("expected progress 51, got %d", r[0].Progress)
	}
	r, _ = newProject(t, 33, 33, 34)
	if r[0].Progress != 33 {
		t.Fatalf("expected progress 33, got %d", r[0].Progress)
	}
}

func TestCreateMilestone(t *testing.T) {
	r, id := newProject(t)
	r = CreateMilestone(r, id, MilestoneFields{
		Title:    "Kickoff",
		Date:     "2026-10-10",
		Progress: 30,
		Team:     []string{"AM", "JK"},
	})

	p := r[0]
	if len(p.Milestones) != 1 {
		t.Fatalf("expected 1 milestone, got %d", len(p.Milestones))
	}
	m := p.Milestones[0]
	if m.Title != "Kickoff" || m.Progress != 30 {
		t.Fatalf("unexpected milestone: %+v", m)
	}
	if m.Status != MilestoneUpcoming {
		t.Fatalf("expected upcoming default status, got %q", m.Status)
	}
	if p.Progress != 30 {
		t.Fatalf("expected derived progress 30, got %d", p.Progress)
	}
}

func TestCreateMilestoneClampsProgress(t *testing.T) {
	r, id := newProject(t)
	r = CreateMilestone(r, id, MilestoneFields{Title: "m", Progress: 150})
	if got := r[0].Milestones[0].Progress; got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
}

func TestUpdateMilestoneRecomputes(t *testing.T) {
	r, id := newProject(t, 0, 0)
	msID := r[0].Milestones[0].ID

	progress := 100
	status := MilestoneCompleted
	r = UpdateMilestone(r, id, msID, MilestonePatch{Progress: &progress, Status: &status})

	if r[0].Progress != 50 {
		t.Fatalf("expected derived progress 50, got %d", r[0].Progress)
	}
	m := r[0].Milestones[0]
	if m.Progress != 100 || m.Status != MilestoneCompleted {
		t.Fatalf("patch not applied: %+v", m)
	}
}

func TestCompletedStatusDoesNotForceProgress(t *testing.T) {
	r, id := newProject(t, 40)
	msID := r[0].Milestones[0].ID

	// Status and progress are independent: completing a milestone leaves
	// its progress where it was.
	status := MilestoneCompleted
	r = UpdateMilestone(r, id, msID, MilestonePatch{Status: &status})

	m := r[0].Milestones[0]
	if m.Status != MilestoneCompleted || m.Progress != 40 {
		t.Fatalf("expected completed/40, got %s/%d", m.Status, m.Progress)
	}
}

func TestDeleteMilestoneRecomputes(t *testing.T) {
	r, id := newProject(t, 100, 0)
	msID := r[0].Milestones[1].ID

	r = DeleteMilestone(r, id, msID)
	if len(r[0].Milestones) != 1 {
		t.Fatalf("expected 1 milestone, got %d", len(r[0].Milestones))
	}
	if r[0].Progress != 100 {
		t.Fatalf("expected derived progress 100, got %d", r[0].Progress)
	}
}

func TestDeleteLastMilestoneZeroesProgress(t *testing.T) {
	r, id := newProject(t, 80)
	msID := r[0].Milestones[0].ID

	r = DeleteMilestone(r, id, msID)
	if r[0].Progress != 0 {
		t.Fatalf("expected progress 0 with no milestones, got %d", r[0].Progress)
	}
}

func TestMilestoneUnknownIDs(t *testing.T) {
	r, id := newProject(t, 10)
	title := "ghost"

	if next := UpdateMilestone(r, "project-999", "x", MilestonePatch{Title: &title}); !reflect.DeepEqual(next, r) {
		t.Fatal("unknown project must be a no-op")
	}
	if next := UpdateMilestone(r, id, "milestone-999", MilestonePatch{Title: &title}); !reflect.DeepEqual(next, r) {
		t.Fatal("unknown milestone must be a no-op")
	}
	if next := DeleteMilestone(r, id, "milestone-999"); !reflect.DeepEqual(next, r) {
		t.Fatal("unknown milestone delete must be a no-op")
	}
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	r, id := newProject(t, 10, 20)
	snapshot := r.clone()

	CreateMilestone(r, id, MilestoneFields{Title: "m", Progress: 90})
	progress := 99
	UpdateMilestone(r, id, r[0].Milestones[0].ID, MilestonePatch{Progress: &progress})
	DeleteMilestone(r, id, r[0].Milestones[1].ID)
	DeleteProject(r, id)

	if !reflect.DeepEqual(r, snapshot) {
		t.Fatal("input snapshot was mutated")
	}
}
