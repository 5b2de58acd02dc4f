// Package storemem provides an in-memory record store used by --no-hubspot
// mode and by unit tests. It mirrors the gateway contract exactly, including
// unspecified page order and not-found behavior.
package storemem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kuitang/crm-notes/internal/errs"
	"github.com/kuitang/crm-notes/internal/summaries"
)

// Store is an in-memory summaries.Store.
type Store struct {
	mu      sync.Mutex
	records []summaries.Record
	now     func() time.Time
}

// New creates an empty in-memory store using the wall clock.
func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock creates a store whose record timestamps come from the given
// clock. Tests use this to place records at known instants.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// Seed inserts a record with a fixed timestamp and returns its id.
func (s *Store) Seed(body string, createdAt time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	s.records = append(s.records, summaries.Record{
		ID:        id,
		CreatedAt: createdAt,
		Body:      body,
	})
	return id
}

// ListPage returns at most maxCount records in insertion order.
func (s *Store) ListPage(_ context.Context, maxCount int) ([]summaries.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.records)
	if maxCount > 0 && n > maxCount {
		n = maxCount
	}
	out := make([]summaries.Record, n)
	copy(out, s.records[:n])
	return out, nil
}

func (s *Store) GetByID(_ context.Context, id string) (summaries.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return summaries.Record{}, errs.New(errs.NotFound, fmt.Sprintf("summary note not found: %s", id))
}

func (s *Store) Create(_ context.Context, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	s.records = append(s.records, summaries.Record{
		ID:        id,
		CreatedAt: s.now(),
		Body:      body,
	})
	return id, nil
}

func (s *Store) UpdateBody(_ context.Context, id, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Body = body
			return nil
		}
	}
	return errs.New(errs.NotFound, fmt.Sprintf("summary note not found: %s", id))
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return errs.New(errs.NotFound, fmt.Sprintf("summary note not found: %s", id))
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
