package content

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachedLoader memoises successful loads and collapses concurrent loads of
// the same file into one read. Level sets are immutable once loaded, so
// sharing them between sessions is safe.
type CachedLoader struct {
	next  Loader
	group singleflight.Group

	mu   sync.RWMutex
	sets map[string]*LevelSet
}

// NewCachedLoader wraps next with a cache.
func NewCachedLoader(next Loader) *CachedLoader {
	return &CachedLoader{next: next, sets: make(map[string]*LevelSet)}
}

func (c *CachedLoader) Load(ctx context.Context, grade Grade, subject string) (*LevelSet, error) {
	key := string(grade) + "/" + subject

	c.mu.RLock()
	set, ok := c.sets[key]
	c.mu.RUnlock()
	if ok {
		return set, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		set, err := c.next.Load(ctx, grade, subject)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.sets[key] = set
		c.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*LevelSet), nil
}

// Invalidate drops every cached set.
func (c *CachedLoader) Invalidate() {
	c.mu.Lock()
	clear(c.sets)
	c.mu.Unlock()
}
