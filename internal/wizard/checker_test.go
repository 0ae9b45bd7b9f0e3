package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settle = 20 * time.Millisecond

func waitResult(t *testing.T, c *AvailabilityChecker) Result {
	t.Helper()
	select {
	case r := <-c.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a checker result")
		return Result{}
	}
}

func TestCheckerDebouncesKeystrokes(t *testing.T) {
	var mu sync.Mutex
	var probed []string

	check := func(_ context.Context, candidate string) (bool, error) {
		mu.Lock()
		probed = append(probed, candidate)
		mu.Unlock()
		return true, nil
	}

	c := NewAvailabilityChecker(check, settle)
	defer c.Close()

	// A typing burst: only the final candidate may reach the backend.
	c.Submit("ada")
	c.Submit("ada-")
	c.Submit("ada-l")

	r := waitResult(t, c)
	assert.Equal(t, "ada-l", r.Candidate)
	assert.True(t, r.Available)
	require.NoError(t, r.Err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ada-l"}, probed)
}

func TestCheckerDropsStaleResponses(t *testing.T) {
	release := make(chan struct{})

	check := func(ctx context.Context, candidate string) (bool, error) {
		if candidate == "slow-one" {
			select {
			case <-release:
			case <-ctx.Done():
				return false, ctx.Err()
			}
			return true, nil
		}
		return false, nil
	}

	c := NewAvailabilityChecker(check, settle)
	defer c.Close()

	c.Submit("slow-one")
	// Give the slow probe time to start, then type again.
	time.Sleep(settle * 3)
	c.Submit("fast-two")
	close(release)

	r := waitResult(t, c)
	assert.Equal(t, "fast-two", r.Candidate, "the stale in-flight answer must never surface")
	assert.False(t, r.Available)
}

func TestCheckerSkipsShortCandidates(t *testing.T) {
	probes := make(chan string, 8)
	check := func(_ context.Context, candidate string) (bool, error) {
		probes <- candidate
		return true, nil
	}

	c := NewAvailabilityChecker(check, settle)
	defer c.Close()

	c.Submit("a")
	c.Submit("ab")
	c.Submit(" AB ")

	select {
	case candidate := <-probes:
		t.Fatalf("short candidate %q should never be probed", candidate)
	case <-time.After(settle * 5):
	}
}

func TestCheckerShortCandidateInvalidatesInFlight(t *testing.T) {
	check := func(_ context.Context, candidate string) (bool, error) {
		return true, nil
	}

	c := NewAvailabilityChecker(check, settle)
	defer c.Close()

	c.Submit("ada-l")
	// Deleting back below the minimum cancels the pending probe.
	c.Submit("ab")

	select {
	case r := <-c.Results():
		t.Fatalf("unexpected result for %q after invalidation", r.Candidate)
	case <-time.After(settle * 5):
	}
}

func TestCheckerNormalizesBeforeProbing(t *testing.T) {
	check := func(_ context.Context, candidate string) (bool, error) {
		return candidate == "ada-l", nil
	}

	c := NewAvailabilityChecker(check, settle)
	defer c.Close()

	c.Submit("  Ada-L ")
	r := waitResult(t, c)
	assert.Equal(t, "ada-l", r.Candidate)
	assert.True(t, r.Available)
}

func TestCheckerCloseStopsEverything(t *testing.T) {
	check := func(_ context.Context, candidate string) (bool, error) {
		return true, nil
	}

	c := NewAvailabilityChecker(check, settle)
	c.Submit("ada-l")
	c.Close()

	c.Submit("after-close")
	select {
	case r := <-c.Results():
		t.Fatalf("no result expected after Close, got %q", r.Candidate)
	case <-time.After(settle * 5):
	}
}
