package schedule

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cached memoizes the wrapped channel's schedule for a fixed TTL. Each
// channel owns its own slot; concurrent misses are coalesced so at most one
// upstream fetch is in flight per channel. Failed fetches are never cached,
// so the next call retries immediately.
type Cached struct {
	channel Channel
	ttl     time.Duration

	group  singleflight.Group
	mu     sync.Mutex
	value  *Schedule
	expiry time.Time

	now func() time.Time
}

func NewCached(channel Channel, ttl time.Duration) *Cached {
	return &Cached{
		channel: channel,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cached) Name() string {
	return c.channel.Name()
}

func (c *Cached) FetchSchedule(ctx context.Context) (*Schedule, error) {
	c.mu.Lock()
	if c.value != nil && c.now().Before(c.expiry) {
		value := c.value
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(c.channel.Name(), func() (any, error) {
		value, err := c.channel.FetchSchedule(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.value = value
		c.expiry = c.now().Add(c.ttl)
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Schedule), nil
}
