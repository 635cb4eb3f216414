package codestore

import (
	"context"
	"sync"
	"time"

	"portfolio/models"
	"portfolio/utils"

	"go.uber.org/zap"
)

// MemoryStore is a process-local Store. Records are lost on restart and are
// not shared between instances.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]models.PendingVerification
	now     Clock
}

func NewMemoryStore(now Clock) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]models.PendingVerification),
		now:     orNow(now),
	}
}

func (s *MemoryStore) Put(_ context.Context, record models.PendingVerification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Email] = record
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (*models.PendingVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[email]
	if !ok {
		return nil, ErrNotFound
	}
	if record.Expired(s.now()) {
		delete(s.records, email)
		return nil, ErrExpired
	}
	return &record, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
	return nil
}

// Sweep drops every expired record and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for email, record := range s.records {
		if record.Expired(now) {
			delete(s.records, email)
			removed++
		}
	}
	return removed
}

// Len returns the number of records held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// StartSweeper runs Sweep every interval until ctx is done. A non-positive
// interval disables sweeping.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					utils.GetLogger().Debug("codestore: swept expired codes", zap.Int("removed", n))
				}
			}
		}
	}()
}
