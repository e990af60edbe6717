package stats

import (
	"sync"
	"time"
)

// Counter accumulates per-category usage counts for the daily report.
// Only counts are kept; question text is never stored.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int
	since  time.Time
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int), since: time.Now().UTC()}
}

func (c *Counter) Inc(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[category]++
}

// Snapshot returns the current counts and the start of the window, then
// resets both. Called once per report period.
func (c *Counter) Snapshot() (map[string]int, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.counts
	since := c.since
	c.counts = make(map[string]int)
	c.since = time.Now().UTC()
	return out, since
}
