package internal

import (
	"context"

	"github.com/deevus/arrivals-tui/internal/transit"
)

// MockArrivalPoller is an ArrivalPoller whose behaviour is set per test.
type MockArrivalPoller struct {
	LinesFunc func() []transit.LineSpec
	PollFunc  func(ctx context.Context) transit.Snapshot
}

// Lines calls LinesFunc, or returns transit.DefaultLines.
func (m *MockArrivalPoller) Lines() []transit.LineSpec {
	if m.LinesFunc != nil {
		return m.LinesFunc()
	}
	return transit.DefaultLines
}

// Poll calls PollFunc, or returns an empty snapshot.
func (m *MockArrivalPoller) Poll(ctx context.Context) transit.Snapshot {
	if m.PollFunc != nil {
		return m.PollFunc(ctx)
	}
	return transit.Snapshot{}
}
