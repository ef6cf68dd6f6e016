// Package reportstore keeps submitted analysis reports in memory between the
// POST that produced them and the GET that renders them.
package reportstore

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-ui/internal/types"
)

// ErrNotFound is returned for unknown or expired report ids.
var ErrNotFound = errors.New("report not found")

// Entry is a stored report. Exactly one of Analysis and Bulk is set.
// Warnings are upload notices shown with a bulk report, such as resumes
// skipped from the selection.
type Entry struct {
	ID        string
	Mode      types.Mode
	Analysis  *types.AnalysisReport
	Bulk      *types.BulkReport
	Warnings  []string
	CreatedAt time.Time
}

// Config holds store limits.
type Config struct {
	TTL             time.Duration
	Capacity        int
	CleanupInterval time.Duration
}

// DefaultConfig returns a one hour TTL and room for 500 reports.
func DefaultConfig() Config {
	return Config{
		TTL:             time.Hour,
		Capacity:        500,
		CleanupInterval: 5 * time.Minute,
	}
}

// Store is a TTL and capacity bounded map of reports.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string // insertion order, oldest first
	config  Config
	now     func() time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// New creates a store and starts its cleanup goroutine when
// CleanupInterval is positive.
func New(config Config) *Store {
	if config.TTL <= 0 {
		config.TTL = DefaultConfig().TTL
	}
	if config.Capacity <= 0 {
		config.Capacity = DefaultConfig().Capacity
	}

	s := &Store{
		entries: make(map[string]*Entry),
		config:  config,
		now:     time.Now,
	}

	if config.CleanupInterval > 0 {
		s.cleanupTicker = time.NewTicker(config.CleanupInterval)
		s.cleanupStop = make(chan struct{})
		go s.cleanup()
	}
	return s
}

// PutAnalysis stores a mode 1 or mode 2 report and returns its id.
func (s *Store) PutAnalysis(mode types.Mode, r *types.AnalysisReport) string {
	return s.put(&Entry{Mode: mode, Analysis: r})
}

// PutBulk stores a mode 4 report with its upload warnings and returns its id.
func (s *Store) PutBulk(r *types.BulkReport, warnings ...string) string {
	return s.put(&Entry{Mode: types.ModeBulkJD, Bulk: r, Warnings: warnings})
}

func (s *Store) put(e *Entry) string {
	e.ID = uuid.NewString()
	e.CreatedAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[e.ID] = e
	s.order = append(s.order, e.ID)

	// Evict the oldest reports once over capacity.
	for len(s.entries) > s.config.Capacity && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}
	return e.ID
}

// Get returns the report stored under id.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || s.expired(e) {
		return nil, ErrNotFound
	}
	return e, nil
}

// Len returns the number of stored reports, expired ones included until the
// next cleanup.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) expired(e *Entry) bool {
	return s.now().Sub(e.CreatedAt) > s.config.TTL
}

func (s *Store) cleanup() {
	for {
		select {
		case <-s.cleanupTicker.C:
			s.removeExpired()
		case <-s.cleanupStop:
			return
		}
	}
}

// removeExpired drops expired reports and returns how many were removed.
func (s *Store) removeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	removed := 0
	for _, id := range s.order {
		e, ok := s.entries[id]
		if !ok {
			continue
		}
		if s.expired(e) {
			delete(s.entries, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return removed
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		if s.cleanupTicker != nil {
			s.cleanupTicker.Stop()
		}
		if s.cleanupStop != nil {
			close(s.cleanupStop)
		}
	})
}
