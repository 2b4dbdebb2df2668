// Package drawer implements a serialized open/close controller for a
// sliding side panel. All transitions run to completion before the next
// command is accepted, so open and close animations can never race.
package drawer

import (
	"errors"
	"sync"
	"time"
)

// ErrTransitioning is returned when a command arrives while an open or
// close animation is still running.
var ErrTransitioning = errors.New("drawer: transition in progress")

type State int

const (
	Idle State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

const (
	defaultOpenDuration  = 250 * time.Millisecond
	defaultCloseDuration = 200 * time.Millisecond
)

// Scheduler runs fn once after d elapses. The returned stop function
// cancels the pending run. time.AfterFunc satisfies this shape; tests
// substitute a manual scheduler.
type Scheduler func(d time.Duration, fn func()) (stop func())

// Controller is the drawer state machine. The zero value is not usable;
// construct with New.
type Controller struct {
	mu       sync.Mutex
	state    State
	isOpen   bool
	width    int
	openDur  time.Duration
	closeDur time.Duration
	schedule Scheduler
}

type Option func(*Controller)

// WithDurations overrides the open and close animation durations.
func WithDurations(open, close time.Duration) Option {
	return func(c *Controller) {
		if open > 0 {
			c.openDur = open
		}
		if close > 0 {
			c.closeDur = close
		}
	}
}

// WithScheduler substitutes the transition timer, for tests.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.schedule = s }
}

func New(opts ...Option) *Controller {
	c := &Controller{
		openDur:  defaultOpenDuration,
		closeDur: defaultCloseDuration,
		schedule: func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open starts the opening animation with the given panel width. The
// drawer reports open immediately; the state settles to Open when the
// animation completes. Opening an already open drawer is a no-op.
func (c *Controller) Open(width int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Opening, Closing:
		return ErrTransitioning
	case Open:
		return nil
	}

	c.state = Opening
	c.isOpen = true
	c.width = width
	c.schedule(c.openDur, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state == Opening {
			c.state = Open
		}
	})
	return nil
}

// Close starts the closing animation. The drawer keeps reporting open
// until the animation completes, then flips closed. Closing an already
// idle drawer is a no-op.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Opening, Closing:
		return ErrTransitioning
	case Idle:
		return nil
	}

	c.state = Closing
	c.schedule(c.closeDur, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state == Closing {
			c.state = Idle
			c.isOpen = false
			c.width = 0
		}
	})
	return nil
}

// IsOpen reports the externally visible open flag. It turns true the
// moment Open is accepted and false only when a close completes.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Width returns the panel width supplied to the active Open call, or 0
// when idle.
func (c *Controller) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}
