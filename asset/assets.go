// Package asset stores shared resources such as meshes and materials behind
// typed handles and watches the asset folder for changes.
package asset

import "fmt"

// Handle refers to a value in an Assets store. The zero Handle is invalid.
type Handle[T any] struct {
	id uint64
}

// ID returns the numeric handle id.
func (h Handle[T]) ID() uint64 { return h.id }

// IsValid reports whether h was issued by a store.
func (h Handle[T]) IsValid() bool { return h.id != 0 }

func (h Handle[T]) String() string {
	return fmt.Sprintf("Handle(%d)", h.id)
}

// Assets is the store for one asset type. It is inserted as a resource.
type Assets[T any] struct {
	items map[uint64]*T
	next  uint64
}

// NewAssets returns an empty store.
func NewAssets[T any]() *Assets[T] {
	return &Assets[T]{items: make(map[uint64]*T)}
}

// Add stores v and returns its handle.
func (a *Assets[T]) Add(v T) Handle[T] {
	a.next++
	p := new(T)
	*p = v
	a.items[a.next] = p
	return Handle[T]{id: a.next}
}

// Get returns the stored value, or nil for an unknown handle.
func (a *Assets[T]) Get(h Handle[T]) *T {
	return a.items[h.id]
}

// Set replaces the value behind h. It returns false for an unknown handle.
func (a *Assets[T]) Set(h Handle[T], v T) bool {
	p, ok := a.items[h.id]
	if !ok {
		return false
	}
	*p = v
	return true
}

// Remove deletes the value behind h. Handles are never reused.
func (a *Assets[T]) Remove(h Handle[T]) {
	delete(a.items, h.id)
}

// Len returns the number of stored values.
func (a *Assets[T]) Len() int {
	return len(a.items)
}

// Handles returns every live handle in issue order.
func (a *Assets[T]) Handles() []Handle[T] {
	out := make([]Handle[T], 0, len(a.items))
	for id := uint64(1); id <= a.next; id++ {
		if _, ok := a.items[id]; ok {
			out = append(out, Handle[T]{id: id})
		}
	}
	return out
}
