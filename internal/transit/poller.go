package transit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves the formatted arrivals for a single line.
type Fetcher interface {
	Fetch(ctx context.Context, line LineSpec) (string, error)
}

// PollerParams holds configuration for creating a Poller.
type PollerParams struct {
	Fetcher Fetcher
	Lines   []LineSpec
	// Concurrency is the number of lines fetched at once. Defaults to 1.
	Concurrency int
}

// Poller builds a Snapshot by fetching every configured line.
type Poller struct {
	fetcher     Fetcher
	lines       []LineSpec
	concurrency int
}

// NewPoller creates a Poller. Lines defaults to DefaultLines.
func NewPoller(p PollerParams) *Poller {
	pl := &Poller{
		fetcher:     p.Fetcher,
		lines:       p.Lines,
		concurrency: p.Concurrency,
	}
	if len(pl.lines) == 0 {
		pl.lines = DefaultLines
	}
	if pl.concurrency < 1 {
		pl.concurrency = 1
	}
	return pl
}

// Lines returns the lines polled by Poll.
func (p *Poller) Lines() []LineSpec {
	return p.lines
}

// Poll polls the configured lines.
func (p *Poller) Poll(ctx context.Context) Snapshot {
	return p.PollAll(ctx, p.lines)
}

// PollAll fetches every line in specs and returns a new Snapshot once all of
// them have been attempted. A line that fails gets NoData; the others are
// unaffected. Every value carries one trailing space that separates it from
// whatever the renderer draws next.
func (p *Poller) PollAll(ctx context.Context, specs []LineSpec) Snapshot {
	cycle := uuid.NewString()
	start := time.Now()
	values := make([]string, len(specs))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			v, err := p.fetcher.Fetch(ctx, spec)
			if err != nil {
				log.Printf("poll %s: line %s: %s error: %v", cycle, spec.Name, KindOf(err), err)
				v = NoData
			}
			values[i] = v + " "
			return nil
		})
	}
	_ = g.Wait()

	snap := make(Snapshot, len(specs))
	failed := 0
	for i, spec := range specs {
		snap[spec.Name] = values[i]
		if values[i] == NoData+" " {
			failed++
		}
	}
	log.Printf("poll %s: %d lines, %d failed, took %s", cycle, len(specs), failed, time.Since(start).Round(time.Millisecond))
	return snap
}
