package repository

import (
	"sync"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/model"
)

// MemoryStore keeps the intake table in process memory. Used by tests and
// the "memory" dev driver; contents are lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	rows []model.Reservation
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) EnsureSchema() error {
	return nil
}

func (s *MemoryStore) AppendRow(res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *res)
	return nil
}

func (s *MemoryStore) ScanRows() ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Reservation, len(s.rows))
	copy(out, s.rows)
	return out, nil
}
