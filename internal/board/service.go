package board

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/quietblock/deskboard/internal/state"
	"github.com/quietblock/deskboard/internal/storage"
)

// Service owns the board snapshot. Each operation computes a new snapshot
// through the pure engine functions, swaps it into the state store, and
// writes it to storage. A failed write is logged and the in-memory snapshot
// stays authoritative for the rest of the session.
type Service struct {
	mu    sync.Mutex
	state *state.Store[Board]
	db    *storage.Store
	log   *slog.Logger
}

// NewService loads the persisted board, or seeds a fresh one when no usable
// snapshot exists.
func NewService(db *storage.Store, log *slog.Logger) (*Service, error) {
	var b Board
	ok, err := db.LoadSnapshot(storage.KeyBoard, &b)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	if !ok {
		b = Seed()
	}

	s := &Service{state: state.New(b), db: db, log: log}
	if !ok {
		s.persist()
	}
	return s, nil
}

// Board returns the current snapshot.
func (s *Service) Board() Board {
	return s.state.Get()
}

func (s *Service) CreateTask(columnID string, f TaskFields) error {
	return s.mutate(func(b Board) (Board, error) {
		return CreateTask(b, columnID, f)
	})
}

func (s *Service) UpdateTask(taskID string, p TaskPatch) error {
	return s.mutate(func(b Board) (Board, error) {
		return UpdateTask(b, taskID, p), nil
	})
}

func (s *Service) DeleteTask(taskID string) error {
	return s.mutate(func(b Board) (Board, error) {
		return DeleteTask(b, taskID), nil
	})
}

func (s *Service) MoveTaskWithinColumn(columnID, taskID string, targetIndex int) error {
	return s.mutate(func(b Board) (Board, error) {
		return MoveTaskWithinColumn(b, columnID, taskID, targetIndex), nil
	})
}

func (s *Service) MoveTaskAcrossColumns(taskID, fromColumnID, toColumnID string, targetIndex int) error {
	return s.mutate(func(b Board) (Board, error) {
		return MoveTaskAcrossColumns(b, taskID, fromColumnID, toColumnID, targetIndex), nil
	})
}

// Reset discards the current board and reseeds.
func (s *Service) Reset() error {
	return s.mutate(func(Board) (Board, error) {
		return Seed(), nil
	})
}

// mutate serializes read-compute-replace cycles so concurrent Bubble Tea
// commands cannot interleave partial updates, and performs exactly one
// snapshot write per operation.
func (s *Service) mutate(fn func(Board) (Board, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state.Get())
	if err != nil {
		return err
	}
	s.state.Replace(next)
	s.persist()
	return nil
}

func (s *Service) persist() {
	if err := s.db.SaveSnapshot(storage.KeyBoard, s.state.Get()); err != nil {
		s.log.Error("save board snapshot", "err", err)
	}
}
