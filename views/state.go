package views

import (
	"time"

	"github.com/deevus/arrivals-tui/internal/transit"
)

// SnapshotPolled is a custom vaxis event posted when a background poll
// finishes. It carries the complete snapshot for the cycle.
type SnapshotPolled struct {
	Snapshot transit.Snapshot
	At       time.Time
}

// Tick is posted periodically so time-dependent parts of the board (the
// refresh countdown and "updated ... ago" text) are redrawn between polls.
type Tick struct{}
