package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds contexts created by Context.
const DefaultTimeout = 5 * time.Second

// Context returns a context canceled when the test ends or the timeout elapses,
// whichever comes first. It never outlives the test deadline.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := t.Deadline(); ok {
		if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
