package cache

import "sync"

// RefCache is a generic thread-safe cache whose entries are reference
// counted. An entry lives from the first Acquire of its key until the
// matching number of Release calls.
//
// RefCache must not be copied after creation (has mutex).
type RefCache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*refEntry[V]
}

// refEntry holds a cached value with its reference count.
type refEntry[V any] struct {
	value V
	refs  int
}

// NewRef creates an empty reference-counted cache.
func NewRef[K comparable, V any]() *RefCache[K, V] {
	return &RefCache[K, V]{
		entries: make(map[K]*refEntry[V]),
	}
}

// Acquire returns the value for key, creating it with create when absent,
// and increments its reference count.
//
// create is called under lock so concurrent acquirers of the same key never
// create duplicates. If create fails nothing is stored.
func (c *RefCache[K, V]) Acquire(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.refs++
		return e.value, nil
	}

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.entries[key] = &refEntry[V]{value: value, refs: 1}
	return value, nil
}

// Release drops one reference to key. When the count reaches zero the entry
// is removed and returned with last set to true; the caller owns it from
// then on. Releasing an absent key returns (zero, false).
func (c *RefCache[K, V]) Release(key K) (value V, last bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return value, false
	}
	e.refs--
	if e.refs > 0 {
		return e.value, false
	}
	delete(c.entries, key)
	return e.value, true
}

// Refs returns the reference count of key, or 0 if absent.
func (c *RefCache[K, V]) Refs(key K) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of live entries.
func (c *RefCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Drain removes every entry regardless of its count and returns the values.
// Used on shutdown; outstanding holders must not release afterwards.
func (c *RefCache[K, V]) Drain() []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]V, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.value)
	}
	c.entries = make(map[K]*refEntry[V])
	return out
}

// Stats returns cache statistics.
func (c *RefCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Len: len(c.entries)}
	for _, e := range c.entries {
		s.Refs += e.refs
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the number of live entries.
	Len int
	// Refs is the sum of all reference counts.
	Refs int
}
