package ecs

import (
	"fmt"
	"reflect"
)

// Resources holds world-global values such as configuration, asset stores and
// input state, at most one per type. Resources are stored as pointers and
// looked up by their pointer type.
type Resources struct {
	items   []any
	types   map[reflect.Type]int
	freeIDs []int
}

// Add adds a resource and returns its ID. Panics if res is nil or a resource of
// the same type already exists.
func (r *Resources) Add(res any) int {
	if res == nil {
		panic("ecs: cannot add nil resource")
	}
	t := reflect.TypeOf(res)
	if r.types == nil {
		r.types = make(map[reflect.Type]int)
	}
	if _, ok := r.types[t]; ok {
		panic(fmt.Sprintf("ecs: resource of type %s already exists", t))
	}
	var id int
	if len(r.freeIDs) > 0 {
		id = r.freeIDs[len(r.freeIDs)-1]
		r.freeIDs = r.freeIDs[:len(r.freeIDs)-1]
		r.items[id] = res
	} else {
		r.items = append(r.items, res)
		id = len(r.items) - 1
	}
	r.types[t] = id
	return id
}

// Insert adds res or replaces the resource of the same type, keeping its ID.
func (r *Resources) Insert(res any) int {
	if res == nil {
		panic("ecs: cannot insert nil resource")
	}
	if id, ok := r.types[reflect.TypeOf(res)]; ok {
		r.items[id] = res
		return id
	}
	return r.Add(res)
}

// Has checks if a resource with the given ID exists.
func (r *Resources) Has(id int) bool {
	return id >= 0 && id < len(r.items) && r.items[id] != nil
}

// Get retrieves the resource by ID, or nil if it doesn't exist.
func (r *Resources) Get(id int) any {
	if !r.Has(id) {
		return nil
	}
	return r.items[id]
}

// Remove removes the resource by ID if it exists, marking the ID as free for reuse.
func (r *Resources) Remove(id int) {
	if !r.Has(id) {
		return
	}
	delete(r.types, reflect.TypeOf(r.items[id]))
	r.items[id] = nil
	r.freeIDs = append(r.freeIDs, id)
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	return len(r.types)
}

// Clear removes all resources, resetting the free list.
func (r *Resources) Clear() {
	clear(r.items)
	r.items = r.items[:0]
	clear(r.types)
	r.freeIDs = r.freeIDs[:0]
}

// HasResource checks if a resource of type T exists, returning true and its ID, or false and -1.
func HasResource[T any](r *Resources) (bool, int) {
	if id, ok := r.types[reflect.TypeFor[*T]()]; ok {
		return true, id
	}
	return false, -1
}

// GetResource retrieves the resource of type T if it exists, returning it as *T and its ID, or nil and -1.
func GetResource[T any](r *Resources) (*T, int) {
	if id, ok := r.types[reflect.TypeFor[*T]()]; ok {
		return r.items[id].(*T), id
	}
	return nil, -1
}

// MustResource returns the resource of type T and panics when it is missing.
// Systems use it for resources their plugin guarantees.
func MustResource[T any](r *Resources) *T {
	res, _ := GetResource[T](r)
	if res == nil {
		panic(fmt.Sprintf("ecs: missing resource %s", reflect.TypeFor[T]()))
	}
	return res
}

// Resource is shorthand for MustResource on w's store.
func Resource[T any](w *World) *T {
	return MustResource[T](w.resources)
}
