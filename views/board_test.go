package views_test

import (
	"strings"
	"testing"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"github.com/deevus/arrivals-tui/internal/board"
	"github.com/deevus/arrivals-tui/internal/transit"
	"github.com/deevus/arrivals-tui/views"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newBoardView(state *board.State, busy bool) *views.BoardView {
	return views.NewBoardView(views.BoardViewParams{
		State:           state,
		RefreshInterval: time.Minute,
		Busy:            func() bool { return busy },
		Now:             func() time.Time { return testNow },
	})
}

func containsLine(lines []string, text string) bool {
	for _, l := range lines {
		if strings.Contains(l, text) {
			return true
		}
	}
	return false
}

func TestBoardView_Rows_Placeholder(t *testing.T) {
	bv := newBoardView(board.New(transit.DefaultLines), false)

	rows := bv.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Value != transit.Placeholder {
			t.Errorf("%s: expected placeholder, got %q", r.Label, r.Value)
		}
		if r.Urgent {
			t.Errorf("%s: placeholder should not be urgent", r.Label)
		}
	}
	if rows[0].Label != "Línea 9:" || rows[1].Label != "Línea 7:" || rows[2].Label != "Línea 12:" {
		t.Errorf("unexpected label order: %+v", rows)
	}
}

func TestBoardView_Rows_Values(t *testing.T) {
	state := board.New(transit.DefaultLines)
	state.ApplySnapshot(transit.Snapshot{
		"9":  "5 min | 12 min ",
		"7":  "LLEGANDO | 9 min ",
		"12": transit.NoData + " ",
	}, testNow)
	bv := newBoardView(state, false)

	rows := bv.Rows()
	if rows[0].Value != "5 min | 12 min " || rows[0].Urgent {
		t.Errorf("unexpected row 0: %+v", rows[0])
	}
	if !rows[1].Urgent {
		t.Errorf("expected line 7 to be urgent: %+v", rows[1])
	}
	if rows[2].Value != transit.NoData+" " {
		t.Errorf("expected sentinel for line 12, got %q", rows[2].Value)
	}
}

func TestBoardView_StatusText(t *testing.T) {
	state := board.New(transit.DefaultLines)
	bv := newBoardView(state, false)

	if got := bv.StatusText(); !strings.HasPrefix(got, "not updated yet") {
		t.Errorf("unexpected status before poll: %q", got)
	}

	state.ApplySnapshot(transit.Snapshot{}, testNow.Add(-30*time.Second))
	if got := bv.StatusText(); !strings.HasPrefix(got, "updated 30 seconds ago") {
		t.Errorf("unexpected status after poll: %q", got)
	}
	if !strings.Contains(bv.StatusText(), "q quit") {
		t.Error("expected key hint in status")
	}
}

func TestBoardView_Draw_Content(t *testing.T) {
	state := board.New(transit.DefaultLines)
	state.ApplySnapshot(transit.Snapshot{
		"9": "5 min | 12 min ",
		"7": "12 min ",
	}, testNow.Add(-15*time.Second))
	bv := newBoardView(state, false)

	s, err := bv.Draw(testDrawContext(70, 14))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size.Width != 70 || s.Size.Height != 14 {
		t.Fatalf("expected 70x14 surface, got %dx%d", s.Size.Width, s.Size.Height)
	}

	lines := screenText(s)
	for _, want := range []string{
		"TIEMPOS DE LLEGADA",
		"Línea 9:",
		"5 min | 12 min",
		"Línea 7:",
		"Línea 12:",
		transit.Placeholder,
		"in 45s",
		"updated 15 seconds ago",
	} {
		if !containsLine(lines, want) {
			t.Errorf("expected %q on screen:\n%s", want, strings.Join(lines, "\n"))
		}
	}
}

func TestBoardView_Draw_UrgentStyle(t *testing.T) {
	state := board.New(transit.DefaultLines)
	state.ApplySnapshot(transit.Snapshot{
		"9": "LLEGANDO ",
		"7": "8 min ",
	}, testNow)
	bv := newBoardView(state, false)

	s, err := bv.Draw(testDrawContext(70, 14))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	urgent, ok := findCell(s, "LLEGANDO")
	if !ok {
		t.Fatal("urgent value not drawn")
	}
	if urgent.Style.Foreground != vaxis.IndexColor(1) || urgent.Style.Attribute&vaxis.AttrBold == 0 {
		t.Errorf("expected red bold for urgent value, got %+v", urgent.Style)
	}

	normal, ok := findCell(s, "8 min")
	if !ok {
		t.Fatal("normal value not drawn")
	}
	if normal.Style.Foreground != vaxis.IndexColor(3) {
		t.Errorf("expected yellow for normal value, got %+v", normal.Style)
	}
}

func TestBoardView_Draw_Busy(t *testing.T) {
	state := board.New(transit.DefaultLines)
	state.ApplySnapshot(transit.Snapshot{}, testNow)
	bv := newBoardView(state, true)

	s, err := bv.Draw(testDrawContext(70, 14))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !containsLine(screenText(s), "refreshing…") {
		t.Error("expected refreshing hint while busy")
	}
}

func TestBoardView_Draw_Tiny(t *testing.T) {
	bv := newBoardView(board.New(transit.DefaultLines), false)

	for _, size := range [][2]uint16{{0, 0}, {1, 1}, {3, 3}, {10, 4}} {
		if _, err := bv.Draw(testDrawContext(size[0], size[1])); err != nil {
			t.Errorf("%dx%d: unexpected error: %v", size[0], size[1], err)
		}
	}
}
