package reconcile

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// PlanCache holds the last built plan for fast repeated reads.
type PlanCache struct {
	mu    sync.RWMutex
	plan  *ReconcilePlan
	built time.Time
	ttl   time.Duration
	sf    singleflight.Group
	build func() (*ReconcilePlan, error)
}

// NewPlanCache returns a cache building plans with build. A zero ttl
// disables caching; concurrent rebuilds are still collapsed.
func NewPlanCache(ttl time.Duration, build func() (*ReconcilePlan, error)) *PlanCache {
	return &PlanCache{ttl: ttl, build: build}
}

// IsExpired returns true if the cached plan has expired based on its TTL.
func (c *PlanCache) IsExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expired()
}

func (c *PlanCache) expired() bool {
	if c.plan == nil || c.ttl == 0 {
		return true
	}
	return time.Since(c.built) > c.ttl
}

// Get returns the cached plan, or builds a new one if it doesn't exist or
// has expired. Uses singleflight to prevent rebuild stampedes.
func (c *PlanCache) Get() (*ReconcilePlan, error) {
	// Fast path: check if plan exists and is fresh
	c.mu.RLock()
	if !c.expired() {
		plan := c.plan
		c.mu.RUnlock()
		return plan, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("plan", func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		if !c.expired() {
			plan := c.plan
			c.mu.RUnlock()
			return plan, nil
		}
		c.mu.RUnlock()

		plan, err := c.build()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.plan = plan
		c.built = time.Now()
		c.mu.Unlock()

		return plan, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*ReconcilePlan), nil
}

// Invalidate drops the cached plan.
func (c *PlanCache) Invalidate() {
	c.mu.Lock()
	c.plan = nil
	c.mu.Unlock()
}
