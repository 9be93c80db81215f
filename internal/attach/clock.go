package attach

import (
	"sync"
	"time"
)

// Clock hands out strictly increasing millisecond timestamps, so two uploads
// in the same millisecond still get distinct paths.
type Clock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return ms
}
