package cache

import "sync"

// Table is a generic thread-safe reference-counted table.
// Values must be comparable so they can be found again by identity
// (typically pointers).
//
// Table must not be copied after creation (has mutex).
type Table[K, V comparable] struct {
	mu      sync.Mutex
	entries map[K]*tableEntry[K, V]
	byValue map[V]*tableEntry[K, V]
	destroy func(K, V)

	hits         uint64
	misses       uint64
	destructions uint64
}

// tableEntry holds a shared value with its reference count.
// refs is always >= 1 while the entry is in the table.
type tableEntry[K, V comparable] struct {
	key   K
	value V
	refs  int
}

// New creates an empty table. destroy, if non-nil, is called with the
// table lock held whenever an entry's count drops to zero or the table is
// cleared; it must not call back into the table.
func New[K, V comparable](destroy func(K, V)) *Table[K, V] {
	return &Table[K, V]{
		entries: make(map[K]*tableEntry[K, V]),
		byValue: make(map[V]*tableEntry[K, V]),
		destroy: destroy,
	}
}

// Acquire returns the value stored for key, incrementing its count.
// On a miss create is called (under lock, so concurrent Acquires of the
// same key never create twice) and the result is stored with count 1.
// If create fails nothing is stored and its error is returned.
// created reports whether the value was made by this call.
func (t *Table[K, V]) Acquire(key K, create func() (V, error)) (value V, created bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[key]; ok {
		e.refs++
		t.hits++
		return e.value, false, nil
	}

	t.misses++
	v, err := create()
	if err != nil {
		var zero V
		return zero, false, err
	}

	e := &tableEntry[K, V]{key: key, value: v, refs: 1}
	t.entries[key] = e
	t.byValue[v] = e
	return v, true, nil
}

// Release drops one reference to value. When the count reaches zero the
// entry is removed and destroyed before Release returns.
// remaining is the count after the call; tracked is false (and nothing
// happens) when value is not in the table.
func (t *Table[K, V]) Release(value V) (remaining int, tracked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.byValue[value]
	if !ok {
		return 0, false
	}

	e.refs--
	if e.refs == 0 {
		t.remove(e)
	}
	return e.refs, true
}

// Refs returns the current count of value, or 0 if it is not tracked.
func (t *Table[K, V]) Refs(value V) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.byValue[value]; ok {
		return e.refs
	}
	return 0
}

// Lookup returns the value stored for key without changing its count.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[key]; ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Len returns the number of entries in the table.
func (t *Table[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Clear destroys and removes every entry regardless of its count and
// returns how many were removed.
func (t *Table[K, V]) Clear() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.entries)
	for _, e := range t.entries {
		t.remove(e)
	}
	return n
}

// Stats returns table statistics.
func (t *Table[K, V]) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Stats{
		Len:          len(t.entries),
		Hits:         t.hits,
		Misses:       t.misses,
		Destructions: t.destructions,
	}
	for _, e := range t.entries {
		s.Refs += e.refs
	}
	if total := t.hits + t.misses; total > 0 {
		s.HitRate = float64(t.hits) / float64(total)
	}
	return s
}

// remove deletes e from both indexes and destroys its value.
// Caller must hold t.mu.
func (t *Table[K, V]) remove(e *tableEntry[K, V]) {
	delete(t.entries, e.key)
	delete(t.byValue, e.value)
	t.destructions++
	if t.destroy != nil {
		t.destroy(e.key, e.value)
	}
}

// Stats contains table statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Refs is the sum of all reference counts.
	Refs int
	// Hits is the number of Acquires that found an existing entry.
	Hits uint64
	// Misses is the number of Acquires that called create.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0.0 to 1.0.
	HitRate float64
	// Destructions is the number of entries destroyed so far.
	Destructions uint64
}
