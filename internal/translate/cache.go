package translate

import (
	"context"
	"sync"
)

// Cached memoizes translations for the lifetime of a run. Listing pages
// repeat short phrases constantly (property types, station names, layout
// labels), so this cuts API traffic by an order of magnitude.
type Cached struct {
	backend Translator
	mutex   sync.RWMutex
	entries map[string]string
}

// NewCached wraps a translator with an in-memory cache.
func NewCached(backend Translator) *Cached {
	return &Cached{
		backend: backend,
		entries: make(map[string]string),
	}
}

func (c *Cached) Translate(ctx context.Context, text string) (string, error) {
	c.mutex.RLock()
	cached, ok := c.entries[text]
	c.mutex.RUnlock()
	if ok {
		return cached, nil
	}

	result, err := c.backend.Translate(ctx, text)
	if err != nil {
		// Failures are not cached; the next occurrence retries.
		return "", err
	}

	c.mutex.Lock()
	c.entries[text] = result
	c.mutex.Unlock()
	return result, nil
}

// Size returns the number of cached phrases.
func (c *Cached) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}
