package repository

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/model"
)

const pebbleKeyPrefix = "res/"

// PebbleStore keeps the intake table in an embedded pebble database, for
// single-binary deployments without a PostgreSQL server. Rows are stored as
// JSON under zero-padded sequence keys so key order equals append order.
type PebbleStore struct {
	db *pebble.DB

	mu  sync.Mutex
	seq uint64
}

// OpenPebbleStore opens (or creates) the store at dirname. opts may be nil;
// tests pass a vfs.NewMem filesystem through it.
func OpenPebbleStore(dirname string, opts *pebble.Options) (*PebbleStore, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}
	db, err := pebble.Open(dirname, opts)
	if err != nil {
		return nil, fmt.Errorf("open pebble store: %w", err)
	}
	s := &PebbleStore{db: db}
	if err := s.loadSeq(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}

func (s *PebbleStore) EnsureSchema() error {
	// The schema is implicit in the JSON encoding; nothing to provision.
	return nil
}

func (s *PebbleStore) AppendRow(res *model.Reservation) error {
	buf, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode reservation row: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if err := s.db.Set(keyFor(s.seq), buf, pebble.Sync); err != nil {
		s.seq--
		return fmt.Errorf("append reservation row: %w", err)
	}
	return nil
}

func (s *PebbleStore) ScanRows() ([]model.Reservation, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(pebbleKeyPrefix),
		UpperBound: []byte(pebbleKeyPrefix + "~"),
	})
	if err != nil {
		return nil, fmt.Errorf("scan reservation rows: %w", err)
	}
	defer iter.Close()

	rows := []model.Reservation{}
	for iter.First(); iter.Valid(); iter.Next() {
		var res model.Reservation
		if err := json.Unmarshal(iter.Value(), &res); err != nil {
			return nil, fmt.Errorf("decode reservation row %q: %w", iter.Key(), err)
		}
		rows = append(rows, res)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("scan reservation rows: %w", err)
	}
	return rows, nil
}

// loadSeq restores the append counter from the highest existing key.
func (s *PebbleStore) loadSeq() error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(pebbleKeyPrefix),
		UpperBound: []byte(pebbleKeyPrefix + "~"),
	})
	if err != nil {
		return fmt.Errorf("restore sequence: %w", err)
	}
	defer iter.Close()

	if iter.Last() && iter.Valid() {
		var seq uint64
		if _, err := fmt.Sscanf(string(iter.Key()), pebbleKeyPrefix+"%d", &seq); err != nil {
			return fmt.Errorf("restore sequence from key %q: %w", iter.Key(), err)
		}
		s.seq = seq
	}
	return iter.Error()
}

func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%012d", pebbleKeyPrefix, seq))
}
