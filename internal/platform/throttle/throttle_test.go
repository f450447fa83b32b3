package throttle

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowUpToLimit(t *testing.T) {
	w := New(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, w.Allow("login:budi"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, w.Allow("login:budi"))
	assert.False(t, w.Allow("login:budi"))
}

func TestKeysAreIndependent(t *testing.T) {
	w := New(2, 15*time.Minute)

	assert.True(t, w.Allow("login:budi"))
	assert.True(t, w.Allow("login:budi"))
	assert.False(t, w.Allow("login:budi"))

	assert.True(t, w.Allow("login:siti"))
	assert.True(t, w.Allow("anonymous"))
}

func TestWindowSlides(t *testing.T) {
	current := time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)
	w := New(2, 15*time.Minute)
	w.now = func() time.Time { return current }

	assert.True(t, w.Allow("login:budi"))

	current = current.Add(10 * time.Minute)
	assert.True(t, w.Allow("login:budi"))
	assert.False(t, w.Allow("login:budi"))

	// First attempt ages out, second is still in the window.
	current = current.Add(6 * time.Minute)
	assert.True(t, w.Allow("login:budi"))
	assert.False(t, w.Allow("login:budi"))

	current = current.Add(16 * time.Minute)
	assert.True(t, w.Allow("login:budi"))
}

func TestStaleKeysAreEvicted(t *testing.T) {
	current := time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)
	w := New(5, 15*time.Minute)
	w.now = func() time.Time { return current }

	// A username spray leaves one entry per distinct key.
	for i := 0; i < 1000; i++ {
		assert.True(t, w.Allow(fmt.Sprintf("login:user%d", i)))
	}
	assert.Len(t, w.hits, 1000)

	// Once every event has aged out, the next call sweeps them all.
	current = current.Add(time.Hour)
	assert.True(t, w.Allow("login:budi"))
	assert.Len(t, w.hits, 1)
}

func TestExhaustedKeyStartsFreshAfterWindow(t *testing.T) {
	current := time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)
	w := New(5, 15*time.Minute)
	w.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		assert.True(t, w.Allow("login:budi"))
	}
	assert.False(t, w.Allow("login:budi"))

	current = current.Add(16 * time.Minute)
	assert.True(t, w.Allow("login:budi"))
	assert.Len(t, w.hits["login:budi"], 1)
}

func TestRejectedAttemptsDoNotExtendWindow(t *testing.T) {
	current := time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)
	w := New(1, 15*time.Minute)
	w.now = func() time.Time { return current }

	assert.True(t, w.Allow("login:budi"))
	for i := 0; i < 10; i++ {
		current = current.Add(time.Minute)
		assert.False(t, w.Allow("login:budi"))
	}

	current = current.Add(6 * time.Minute)
	assert.True(t, w.Allow("login:budi"))
}
