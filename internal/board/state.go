package board

import (
	"sync"
	"time"

	"github.com/deevus/arrivals-tui/internal/transit"
)

// State holds the latest arrivals snapshot and the exit flag. It is written
// by the refresh loop and by key handling, and read by the renderer.
type State struct {
	mu        sync.RWMutex
	lines     []transit.LineSpec
	known     map[string]bool
	snapshot  transit.Snapshot
	updatedAt time.Time
	exit      bool
}

// New creates an empty State for the given lines.
func New(lines []transit.LineSpec) *State {
	known := make(map[string]bool, len(lines))
	for _, l := range lines {
		known[l.Name] = true
	}
	return &State{
		lines:    lines,
		known:    known,
		snapshot: transit.Snapshot{},
	}
}

// Lines returns the lines shown on the board, in display order.
func (s *State) Lines() []transit.LineSpec {
	return s.lines
}

// CurrentSnapshot returns a copy of the latest snapshot.
func (s *State) CurrentSnapshot() transit.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Value returns the current value for a line and whether it has been polled.
func (s *State) Value(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.snapshot[name]
	return v, ok
}

// ApplySnapshot replaces the current snapshot. Entries for lines that are not
// on the board are dropped.
func (s *State) ApplySnapshot(snap transit.Snapshot, at time.Time) {
	next := s.filter(snap)

	s.mu.Lock()
	s.snapshot = next
	s.updatedAt = at
	s.mu.Unlock()
}

// ApplyIfNewer applies snap only when at is later than the current update
// time, so a snapshot delivered twice or out of order never replaces a
// fresher one. It reports whether snap was applied.
func (s *State) ApplyIfNewer(snap transit.Snapshot, at time.Time) bool {
	next := s.filter(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !at.After(s.updatedAt) {
		return false
	}
	s.snapshot = next
	s.updatedAt = at
	return true
}

func (s *State) filter(snap transit.Snapshot) transit.Snapshot {
	next := make(transit.Snapshot, len(snap))
	for name, v := range snap {
		if s.known[name] {
			next[name] = v
		}
	}
	return next
}

// UpdatedAt returns when the last snapshot was applied, or the zero time.
func (s *State) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// RequestExit marks the board as exiting.
func (s *State) RequestExit() {
	s.mu.Lock()
	s.exit = true
	s.mu.Unlock()
}

// ShouldExit reports whether exit has been requested.
func (s *State) ShouldExit() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exit
}
