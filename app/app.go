package app

import (
	"context"
	"sync"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/deevus/arrivals-tui/internal"
	"github.com/deevus/arrivals-tui/internal/board"
	"github.com/deevus/arrivals-tui/views"
)

// Phase is the scheduler's run state.
type Phase int

const (
	Running Phase = iota
	Exiting
)

func (p Phase) String() string {
	if p == Exiting {
		return "exiting"
	}
	return "running"
}

// Params holds configuration for creating an App.
type Params struct {
	Services        *internal.Services
	RefreshInterval time.Duration
	// TickInterval is how often the refresh deadline is checked and the
	// countdown redrawn. Defaults to one second.
	TickInterval time.Duration
	// Now defaults to time.Now; tests can replace it.
	Now func() time.Time
}

// App is the root vxfw widget. It owns the board state and schedules polls
// in the background so the event loop never waits on the network.
type App struct {
	services        *internal.Services
	state           *board.State
	view            *views.BoardView
	refreshInterval time.Duration
	tickInterval    time.Duration
	now             func() time.Time
	postEvent       func(vaxis.Event)

	mu       sync.Mutex
	phase    Phase
	polling  bool
	lastPoll time.Time
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates the root App widget for the given services.
func New(p Params) *App {
	a := &App{
		services:        p.Services,
		state:           board.New(p.Services.Arrivals.Lines()),
		refreshInterval: p.RefreshInterval,
		tickInterval:    p.TickInterval,
		now:             p.Now,
	}
	if a.refreshInterval <= 0 {
		a.refreshInterval = time.Minute
	}
	if a.tickInterval <= 0 {
		a.tickInterval = time.Second
	}
	if a.now == nil {
		a.now = time.Now
	}
	a.view = views.NewBoardView(views.BoardViewParams{
		State:           a.state,
		RefreshInterval: a.refreshInterval,
		Busy:            a.Polling,
		Now:             a.now,
	})
	return a
}

// SetPostEvent sets the function used to post events to the vaxis event loop.
// Must be called before the app starts running.
func (a *App) SetPostEvent(fn func(vaxis.Event)) {
	a.postEvent = fn
}

// State returns the board state.
func (a *App) State() *board.State {
	return a.state
}

// Phase returns the current run state.
func (a *App) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Polling reports whether a poll is in flight.
func (a *App) Polling() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.polling
}

// PollNow performs a poll on the calling goroutine and applies the result.
// It is used once before the event loop starts so the first frame has data.
func (a *App) PollNow(ctx context.Context) {
	a.mu.Lock()
	a.lastPoll = a.now()
	a.mu.Unlock()

	snap := a.services.Arrivals.Poll(ctx)
	a.state.ApplySnapshot(snap, a.now())
}

// Refresh starts a background poll unless one is already in flight or the
// app is exiting. The result is applied to the board state as soon as the
// poll finishes and then posted as a views.SnapshotPolled event to trigger a
// redraw. PostEvent drops events when the queue is full, so the state never
// depends on the event being delivered.
func (a *App) Refresh(ctx context.Context) bool {
	a.mu.Lock()
	if a.polling || a.phase == Exiting {
		a.mu.Unlock()
		return false
	}
	a.polling = true
	a.lastPoll = a.now()
	a.mu.Unlock()

	go func() {
		snap := a.services.Arrivals.Poll(ctx)
		at := a.now()

		a.mu.Lock()
		a.polling = false
		a.mu.Unlock()

		if ctx.Err() != nil || a.state.ShouldExit() {
			return
		}
		a.state.ApplyIfNewer(snap, at)
		a.post(views.SnapshotPolled{Snapshot: snap, At: at})
	}()
	return true
}

// Due reports whether the refresh interval has elapsed since the last poll.
func (a *App) Due() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.now().Sub(a.lastPoll) >= a.refreshInterval
}

// Start launches the refresh loop. It checks the refresh deadline every
// tick and posts a views.Tick so the countdown is redrawn.
func (a *App) Start(ctx context.Context) {
	a.mu.Lock()
	if a.cancel != nil || a.phase == Exiting {
		a.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	a.ctx = loopCtx
	a.cancel = cancel
	a.mu.Unlock()

	go a.run(loopCtx)
}

func (a *App) run(ctx context.Context) {
	ticker := time.NewTicker(a.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if a.Due() {
				a.Refresh(ctx)
			}
			a.post(views.Tick{})
		}
	}
}

// Quit moves the app to Exiting, stops the refresh loop and cancels any
// in-flight poll.
func (a *App) Quit() {
	a.mu.Lock()
	a.phase = Exiting
	cancel := a.cancel
	a.mu.Unlock()

	a.state.RequestExit()
	if cancel != nil {
		cancel()
	}
}

func (a *App) loopContext() context.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

func (a *App) post(ev vaxis.Event) {
	if a.postEvent != nil && !a.state.ShouldExit() {
		a.postEvent(ev)
	}
}

// Draw renders the board.
func (a *App) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, a)

	viewSurf, err := a.view.Draw(ctx)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, viewSurf)

	return s, nil
}

// CaptureEvent handles global keybindings.
func (a *App) CaptureEvent(ev vaxis.Event) (vxfw.Command, error) {
	switch ev := ev.(type) {
	case vaxis.Key:
		switch {
		case ev.Matches('q'), ev.Matches('c', vaxis.ModCtrl):
			a.Quit()
			return vxfw.QuitCmd{}, nil
		case ev.Matches('r'):
			a.Refresh(a.loopContext())
			return vxfw.ConsumeAndRedraw(), nil
		}
	}
	return nil, nil
}

// HandleEvent starts the refresh loop on Init and applies polled snapshots
// that are newer than the board state.
func (a *App) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	switch ev := ev.(type) {
	case vxfw.Init:
		a.Start(context.Background())
		return nil, nil
	case views.SnapshotPolled:
		if a.state.ShouldExit() {
			return nil, nil
		}
		a.state.ApplyIfNewer(ev.Snapshot, ev.At)
		return vxfw.RedrawCmd{}, nil
	case views.Tick:
		if a.state.ShouldExit() {
			return nil, nil
		}
		return vxfw.RedrawCmd{}, nil
	}
	return nil, nil
}
