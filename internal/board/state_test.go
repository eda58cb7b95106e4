package board_test

import (
	"sync"
	"testing"
	"time"

	"github.com/deevus/arrivals-tui/internal/board"
	"github.com/deevus/arrivals-tui/internal/transit"
)

func TestNew_Empty(t *testing.T) {
	s := board.New(transit.DefaultLines)

	if got := len(s.Lines()); got != 3 {
		t.Errorf("expected 3 lines, got %d", got)
	}
	if got := len(s.CurrentSnapshot()); got != 0 {
		t.Errorf("expected empty snapshot, got %d entries", got)
	}
	if _, ok := s.Value("9"); ok {
		t.Error("expected no value before the first poll")
	}
	if !s.UpdatedAt().IsZero() {
		t.Error("expected zero UpdatedAt before the first poll")
	}
	if s.ShouldExit() {
		t.Error("expected ShouldExit to be false")
	}
}

func TestState_ApplySnapshot(t *testing.T) {
	s := board.New(transit.DefaultLines)
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	s.ApplySnapshot(transit.Snapshot{"9": "5 min ", "7": "Sin buses ", "12": "Sin datos "}, at)

	if v, ok := s.Value("9"); !ok || v != "5 min " {
		t.Errorf("line 9: expected %q, got %q (ok=%v)", "5 min ", v, ok)
	}
	if !s.UpdatedAt().Equal(at) {
		t.Errorf("expected UpdatedAt %v, got %v", at, s.UpdatedAt())
	}
}

func TestState_ApplySnapshot_ReplacesWhole(t *testing.T) {
	s := board.New(transit.DefaultLines)
	s.ApplySnapshot(transit.Snapshot{"9": "5 min ", "7": "2 min "}, time.Now())
	s.ApplySnapshot(transit.Snapshot{"9": "4 min "}, time.Now())

	if _, ok := s.Value("7"); ok {
		t.Error("expected line 7 to be cleared by the newer snapshot")
	}
	if v, _ := s.Value("9"); v != "4 min " {
		t.Errorf("line 9: expected %q, got %q", "4 min ", v)
	}
}

func TestState_ApplySnapshot_DropsUnknownLines(t *testing.T) {
	s := board.New(transit.DefaultLines)
	s.ApplySnapshot(transit.Snapshot{"9": "5 min ", "42": "1 min "}, time.Now())

	snap := s.CurrentSnapshot()
	if _, ok := snap["42"]; ok {
		t.Error("expected unknown line 42 to be dropped")
	}
	if len(snap) != 1 {
		t.Errorf("expected 1 entry, got %d", len(snap))
	}
}

func TestState_CurrentSnapshot_IsCopy(t *testing.T) {
	s := board.New(transit.DefaultLines)
	in := transit.Snapshot{"9": "5 min "}
	s.ApplySnapshot(in, time.Now())

	in["9"] = "mutated input"
	out := s.CurrentSnapshot()
	out["9"] = "mutated output"

	if v, _ := s.Value("9"); v != "5 min " {
		t.Errorf("expected state to be isolated from callers, got %q", v)
	}
}

func TestState_ApplyIfNewer(t *testing.T) {
	s := board.New(transit.DefaultLines)
	t0 := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	if !s.ApplyIfNewer(transit.Snapshot{"9": "5 min "}, t0) {
		t.Fatal("expected first snapshot to be applied")
	}
	if s.ApplyIfNewer(transit.Snapshot{"9": "5 min "}, t0) {
		t.Error("expected a snapshot with the same time to be skipped")
	}
	if s.ApplyIfNewer(transit.Snapshot{"9": "9 min "}, t0.Add(-time.Minute)) {
		t.Error("expected an older snapshot to be skipped")
	}
	if v, _ := s.Value("9"); v != "5 min " {
		t.Errorf("expected fresher value kept, got %q", v)
	}

	if !s.ApplyIfNewer(transit.Snapshot{"9": "4 min ", "42": "1 min "}, t0.Add(time.Minute)) {
		t.Fatal("expected newer snapshot to be applied")
	}
	if v, _ := s.Value("9"); v != "4 min " {
		t.Errorf("expected %q, got %q", "4 min ", v)
	}
	if _, ok := s.Value("42"); ok {
		t.Error("expected unknown line 42 to be dropped")
	}
}

func TestState_RequestExit(t *testing.T) {
	s := board.New(transit.DefaultLines)
	s.RequestExit()
	if !s.ShouldExit() {
		t.Error("expected ShouldExit after RequestExit")
	}
	s.RequestExit()
	if !s.ShouldExit() {
		t.Error("expected RequestExit to be idempotent")
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	s := board.New(transit.DefaultLines)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.ApplySnapshot(transit.Snapshot{"9": "1 min ", "7": "2 min ", "12": "3 min "}, time.Now())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snap := s.CurrentSnapshot()
				if len(snap) != 0 && len(snap) != 3 {
					t.Errorf("observed partial snapshot %v", snap)
					return
				}
				_ = s.UpdatedAt()
				_ = s.ShouldExit()
			}
		}()
	}
	wg.Wait()
}
