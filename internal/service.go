package internal

import (
	"context"

	"github.com/deevus/arrivals-tui/internal/transit"
)

// ArrivalPoller produces a complete arrivals snapshot for the board's lines.
type ArrivalPoller interface {
	Lines() []transit.LineSpec
	Poll(ctx context.Context) transit.Snapshot
}

// Services holds the data sources used by the board.
type Services struct {
	Arrivals ArrivalPoller
}

// NewServices creates a Services container from the given poller.
func NewServices(arrivals ArrivalPoller) *Services {
	return &Services{
		Arrivals: arrivals,
	}
}
