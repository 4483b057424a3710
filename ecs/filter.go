package ecs

import (
	"reflect"
	"slices"
)

// FilterOption narrows the entities a filter matches.
type FilterOption struct {
	exclude reflect.Type
}

// Without excludes entities carrying a component of type T.
func Without[T any]() FilterOption {
	return FilterOption{exclude: reflect.TypeFor[T]()}
}

// queryCache holds the matching entity snapshot shared by all filter arities.
// The snapshot is rebuilt on Reset when the world mutated since it was taken,
// so systems may queue commands while iterating.
type queryCache struct {
	world    *World
	columns  []*column
	include  bitmask256
	exclude  bitmask256
	entities []Entity
	version  uint32
	valid    bool
	cur      int
	curEnt   Entity
}

func newQueryCache(w *World, opts []FilterOption, types ...reflect.Type) queryCache {
	q := queryCache{world: w, cur: -1}
	for _, t := range types {
		q.columns = append(q.columns, w.columnFor(t))
		q.include.set(w.components.typeToID[t])
	}
	for _, o := range opts {
		if o.exclude == nil {
			continue
		}
		w.columnFor(o.exclude)
		q.exclude.set(w.components.typeToID[o.exclude])
	}
	return q
}

// IsStale reports whether the world changed since the last snapshot.
func (q *queryCache) IsStale() bool {
	return !q.valid || q.version != q.world.mutationVersion
}

// refresh rebuilds the snapshot from the smallest included column.
func (q *queryCache) refresh() {
	driver := q.columns[0]
	for _, c := range q.columns[1:] {
		if len(c.dense) < len(driver.dense) {
			driver = c
		}
	}
	q.entities = q.entities[:0]
	for _, e := range driver.dense {
		mask := q.world.entities.metas[e.ID].mask
		if mask.contains(q.include) && !mask.intersects(q.exclude) {
			q.entities = append(q.entities, e)
		}
	}
	slices.SortFunc(q.entities, func(a, b Entity) int {
		return int(a.ID) - int(b.ID)
	})
	q.version = q.world.mutationVersion
	q.valid = true
}

// Reset rewinds the iterator to the first matching entity.
func (q *queryCache) Reset() {
	if q.IsStale() {
		q.refresh()
	}
	q.cur = -1
}

// Next advances to the next matching entity. It returns false once the
// iteration is complete.
//
// Example:
//
//	f := ecs.NewFilter[Transform](world)
//	for f.Next() {
//	    t := f.Get()
//	}
func (q *queryCache) Next() bool {
	if q.cur == -1 && q.IsStale() {
		q.refresh()
	}
	for {
		q.cur++
		if q.cur >= len(q.entities) {
			return false
		}
		// Entities despawned during iteration are skipped.
		if q.world.IsValid(q.entities[q.cur]) {
			q.curEnt = q.entities[q.cur]
			return true
		}
	}
}

// Entity returns the current entity. Only valid after Next returned true.
func (q *queryCache) Entity() Entity {
	return q.curEnt
}

// Len returns the number of matching entities.
func (q *queryCache) Len() int {
	if q.IsStale() {
		q.refresh()
	}
	return len(q.entities)
}

// Entities returns all matching entities in ascending ID order. The slice is
// owned by the filter; copy it for long-term use.
func (q *queryCache) Entities() []Entity {
	if q.IsStale() {
		q.refresh()
	}
	return q.entities
}

// Filter iterates over all entities that have a component of type T.
type Filter[T any] struct {
	queryCache
}

// NewFilter creates a new Filter over entities carrying T.
func NewFilter[T any](w *World, opts ...FilterOption) *Filter[T] {
	return &Filter[T]{queryCache: newQueryCache(w, opts, reflect.TypeFor[T]())}
}

// Get returns the current entity's T.
func (f *Filter[T]) Get() *T {
	v, _ := f.columns[0].get(f.curEnt.ID).(*T)
	return v
}

// Filter2 iterates over entities that have both A and B.
type Filter2[A, B any] struct {
	queryCache
}

// NewFilter2 creates a new Filter2.
func NewFilter2[A, B any](w *World, opts ...FilterOption) *Filter2[A, B] {
	return &Filter2[A, B]{queryCache: newQueryCache(w, opts, reflect.TypeFor[A](), reflect.TypeFor[B]())}
}

// Get returns the current entity's components.
func (f *Filter2[A, B]) Get() (*A, *B) {
	id := f.curEnt.ID
	a, _ := f.columns[0].get(id).(*A)
	b, _ := f.columns[1].get(id).(*B)
	return a, b
}

// Filter3 iterates over entities that have A, B and C.
type Filter3[A, B, C any] struct {
	queryCache
}

// NewFilter3 creates a new Filter3.
func NewFilter3[A, B, C any](w *World, opts ...FilterOption) *Filter3[A, B, C] {
	return &Filter3[A, B, C]{queryCache: newQueryCache(w, opts, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]())}
}

// Get returns the current entity's components.
func (f *Filter3[A, B, C]) Get() (*A, *B, *C) {
	id := f.curEnt.ID
	a, _ := f.columns[0].get(id).(*A)
	b, _ := f.columns[1].get(id).(*B)
	c, _ := f.columns[2].get(id).(*C)
	return a, b, c
}
