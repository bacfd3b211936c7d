// Package cache provides a generic reference-counted table.
//
// A [Table] maps a comparable key to a single shared value. The first
// Acquire of a key creates the value; later Acquires of an equal key share
// it and bump its reference count. Release finds the entry by value
// identity, and the value is destroyed and removed in the same locked step
// that drops its count to zero, so no entry is ever observable at zero.
//
//	t := cache.New[string, *Thing](func(_ string, v *Thing) { v.Close() })
//	v, _, err := t.Acquire("key", func() (*Thing, error) { return newThing(), nil })
//	...
//	t.Release(v)
//
// # Thread Safety
//
// Table is safe for concurrent use and must not be copied after creation.
package cache
