package roadmap

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/quietblock/deskboard/internal/state"
	"github.com/quietblock/deskboard/internal/storage"
)

// Service owns the roadmap snapshot, mirroring the board service: pure
// engine transform, state swap, one snapshot write per operation.
type Service struct {
	mu    sync.Mutex
	state *state.Store[Roadmap]
	db    *storage.Store
	log   *slog.Logger
}

// NewService loads the persisted roadmap, or seeds a fresh one when no
// usable snapshot exists.
func NewService(db *storage.Store, log *slog.Logger) (*Service, error) {
	var r Roadmap
	ok, err := db.LoadSnapshot(storage.KeyRoadmap, &r)
	if err != nil {
		return nil, fmt.Errorf("load roadmap: %w", err)
	}
	if !ok {
		r = Seed()
	}

	s := &Service{state: state.New(r), db: db, log: log}
	if !ok {
		s.persist()
	}
	return s, nil
}

// Roadmap returns the current snapshot.
func (s *Service) Roadmap() Roadmap {
	return s.state.Get()
}

func (s *Service) CreateProject(f ProjectFields) error {
	return s.mutate(func(r Roadmap) Roadmap {
		return CreateProject(r, f)
	})
}

func (s *Service) UpdateProject(projectID string, p ProjectPatch) error {
	return s.mutate(func(r Roadmap) Roadmap {
		return UpdateProject(r, projectID, p)
	})
}

func (s *Service) DeleteProject(projectID string) error {
	return s.mutate(func(r Roadmap) Roadmap {
		return DeleteProject(r, projectID)
	})
}

func (s *Service) CreateMilestone(projectID string, f MilestoneFields) error {
	return s.mutate(func(r Roadmap) Roadmap {
		return CreateMilestone(r, projectID, f)
	})
}

func (s *Service) UpdateMilestone(projectID, milestoneID string, p MilestonePatch) error {
	return s.mutate(func(r Roadmap) Roadmap {
		return UpdateMilestone(r, projectID, milestoneID, p)
	})
}

func (s *Service) DeleteMilestone(projectID, milestoneID string) error {
	return s.mutate(func(r Roadmap) Roadmap {
		return DeleteMilestone(r, projectID, milestoneID)
	})
}

// Reset discards the current roadmap and reseeds.
func (s *Service) Reset() error {
	return s.mutate(func(Roadmap) Roadmap {
		return Seed()
	})
}

func (s *Service) mutate(fn func(Roadmap) Roadmap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Replace(fn(s.state.Get()))
	s.persist()
	return nil
}

func (s *Service) persist() {
	if err := s.db.SaveSnapshot(storage.KeyRoadmap, s.state.Get()); err != nil {
		s.log.Error("save roadmap snapshot", "err", err)
	}
}
