package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/uccalint/pkg/errors"
)

// MemoryStore keeps records in a map. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Save(_ context.Context, rec *Record) error {
	if rec == nil || rec.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "record without ID")
	}
	cp := *rec
	s.mu.Lock()
	s.records[rec.ID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "report %s not found", id)
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) History(_ context.Context, passageID string, limit int) ([]*Record, error) {
	s.mu.RLock()
	var out []*Record
	for _, rec := range s.records {
		if rec.PassageID == passageID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

var _ ReportStore = (*MemoryStore)(nil)
