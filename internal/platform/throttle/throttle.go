package throttle

import (
	"sync"
	"time"
)

// SlidingWindow counts events per key over a trailing window. A key whose
// events have all aged out is deleted the next time it is touched, and a
// full sweep over all keys runs at most once per window, so the map stays
// bounded even when callers never repeat a key.
type SlidingWindow struct {
	mu        sync.Mutex
	hits      map[string][]time.Time
	limit     int
	window    time.Duration
	lastSweep time.Time

	now func() time.Time
}

func New(limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records an attempt for key and reports whether it is within the
// limit. Rejected attempts are not recorded.
func (w *SlidingWindow) Allow(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	cutoff := now.Add(-w.window)

	if now.Sub(w.lastSweep) >= w.window {
		for k := range w.hits {
			w.prune(k, cutoff)
		}
		w.lastSweep = now
	}

	kept := w.prune(key, cutoff)

	if len(kept) >= w.limit {
		return false
	}

	w.hits[key] = append(kept, now)
	return true
}

// prune drops aged-out events for key and deletes the entry outright when
// nothing remains. Callers must hold the mutex.
func (w *SlidingWindow) prune(key string, cutoff time.Time) []time.Time {
	kept := w.hits[key][:0]
	for _, t := range w.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(w.hits, key)
		return nil
	}
	w.hits[key] = kept
	return kept
}
