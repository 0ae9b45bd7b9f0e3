package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
)

// CheckFunc asks the backend whether a candidate username is free.
type CheckFunc func(ctx context.Context, candidate string) (bool, error)

// Result is one settled availability probe.
type Result struct {
	Candidate string
	Available bool
	Err       error
}

// AvailabilityChecker collapses rapid keystrokes into a single probe per
// settle window. Every submission bumps a generation counter; a probe whose
// generation is no longer current is cancelled and its result dropped, so a
// slow response for an old candidate can never overwrite a newer one.
type AvailabilityChecker struct {
	check    CheckFunc
	debounce time.Duration
	results  chan Result

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	cancel     context.CancelFunc
	closed     bool
}

func NewAvailabilityChecker(check CheckFunc, debounce time.Duration) *AvailabilityChecker {
	return &AvailabilityChecker{
		check:    check,
		debounce: debounce,
		results:  make(chan Result, 1),
	}
}

// Results delivers the latest settled probe. The channel holds at most one
// pending result; stale entries are replaced, not queued.
func (c *AvailabilityChecker) Results() <-chan Result {
	return c.results
}

// Submit registers a keystroke. Candidates below the username minimum length
// never trigger a probe; they only invalidate whatever was in flight.
func (c *AvailabilityChecker) Submit(raw string) {
	candidate := profile.NormalizeUsername(raw)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.generation++
	gen := c.generation

	if c.timer != nil {
		c.timer.Stop()
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if len(candidate) < profile.UsernameMinLength {
		return
	}

	c.timer = time.AfterFunc(c.debounce, func() {
		c.fire(gen, candidate)
	})
}

func (c *AvailabilityChecker) fire(gen uint64, candidate string) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	available, err := c.check(ctx, candidate)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return
	}

	// Replace, never queue: only the latest settled probe matters.
	select {
	case <-c.results:
	default:
	}
	c.results <- Result{Candidate: candidate, Available: available, Err: err}
}

// Close stops the pending timer and cancels any in-flight probe. Submit
// becomes a no-op afterwards.
func (c *AvailabilityChecker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
}
