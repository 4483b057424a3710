package ecs

import (
	"reflect"
)

// entityRegistry tracks live entities and recycled IDs.
type entityRegistry struct {
	freeIDs       []uint32     // stack of recycled entity IDs
	metas         []entityMeta // indexed by entity ID
	capacity      int          // current maximum number of entities
	alive         int          // number of live entities
	nextEntityVer uint32       // version for the next created entity
}

// World owns every entity, component, resource and event of an application.
type World struct {
	resources       *Resources
	events          *EventBus
	commands        *Commands
	components      componentRegistry
	columns         []*column // indexed by component ID
	entities        entityRegistry
	mutationVersion uint32 // incremented on entity mutations
}

// NewWorld creates and initializes a new World with a specified initial
// capacity for entities. It pre-allocates memory for the entity metadata and
// free ID list; the world grows past it on demand.
//
// Parameters:
//   - initialCapacity: The number of entities to pre-allocate memory for.
//
// Returns:
//   - The newly created World.
func NewWorld(initialCapacity int) *World {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	w := &World{
		resources: &Resources{},
		events:    &EventBus{},
		components: componentRegistry{
			typeToID: make(map[reflect.Type]uint8, 16),
		},
		entities: entityRegistry{
			capacity:      initialCapacity,
			freeIDs:       make([]uint32, initialCapacity),
			metas:         make([]entityMeta, initialCapacity),
			nextEntityVer: 1,
		},
	}
	w.commands = &Commands{world: w}
	for i := range w.entities.freeIDs {
		w.entities.freeIDs[i] = uint32(initialCapacity - 1 - i)
	}
	return w
}

// Resources returns the world's resource store.
func (w *World) Resources() *Resources {
	return w.resources
}

// Events returns the world's event bus.
func (w *World) Events() *EventBus {
	return w.events
}

// Commands returns the deferred command queue. Queued commands are applied by
// Flush.
func (w *World) Commands() *Commands {
	return w.commands
}

// Flush applies all queued commands.
func (w *World) Flush() {
	w.commands.apply()
}

// IsValid checks if the entity is currently alive in the world. An entity is
// valid if its ID is within bounds and its version matches the world's current
// version for that ID. This prevents stale references from reaching a recycled
// ID.
func (w *World) IsValid(e Entity) bool {
	if int(e.ID) >= len(w.entities.metas) {
		return false
	}
	meta := w.entities.metas[e.ID]
	return meta.version != 0 && meta.version == e.Version
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.alive
}

// Entities returns every live entity in ascending ID order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, w.entities.alive)
	for id, meta := range w.entities.metas {
		if meta.version != 0 {
			out = append(out, Entity{ID: uint32(id), Version: meta.version})
		}
	}
	return out
}

// ComponentTypes lists the component types attached to e, in registration
// order. It returns nil for an invalid entity.
func (w *World) ComponentTypes(e Entity) []reflect.Type {
	if !w.IsValid(e) {
		return nil
	}
	mask := w.entities.metas[e.ID].mask
	out := make([]reflect.Type, 0, mask.count())
	for id, t := range w.components.idToType {
		if mask.containsBit(uint8(id)) {
			out = append(out, t)
		}
	}
	return out
}

// MutationVersion changes whenever an entity or component is added or removed.
func (w *World) MutationVersion() uint32 {
	return w.mutationVersion
}

// expand automatically increases capacity when full.
func (w *World) expand(additional int) {
	oldCap := w.entities.capacity
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = 1
	}
	if newCap < oldCap+additional {
		newCap = oldCap + additional
	}
	delta := newCap - oldCap
	w.entities.metas = append(w.entities.metas, make([]entityMeta, delta)...)
	newFree := make([]uint32, delta)
	for i := range delta {
		newFree[i] = uint32(newCap - 1 - i)
	}
	w.entities.freeIDs = append(w.entities.freeIDs, newFree...)
	w.entities.capacity = newCap
}

// Spawn creates a new entity with no components.
func (w *World) Spawn() Entity {
	if len(w.entities.freeIDs) == 0 {
		w.expand(1)
	}
	last := len(w.entities.freeIDs) - 1
	id := w.entities.freeIDs[last]
	w.entities.freeIDs = w.entities.freeIDs[:last]
	meta := &w.entities.metas[id]
	meta.mask = bitmask256{}
	meta.version = w.entities.nextEntityVer
	w.entities.nextEntityVer++
	w.entities.alive++
	w.mutationVersion++
	return Entity{ID: id, Version: meta.version}
}

// SpawnWith creates an entity and attaches components, flattening bundles.
func (w *World) SpawnWith(components ...any) Entity {
	e := w.Spawn()
	w.InsertAll(e, components...)
	return e
}

// InsertAll attaches components to e. Values implementing Bundle are expanded
// into their parts. Invalid entities are ignored.
func (w *World) InsertAll(e Entity, components ...any) {
	if !w.IsValid(e) {
		return
	}
	for _, c := range flatten(components) {
		col := w.columnFor(reflect.TypeOf(c))
		col.putValue(e, c)
		w.entities.metas[e.ID].mask.set(w.components.typeToID[col.typ])
	}
	w.mutationVersion++
}

// Despawn removes the entity and all its components. Invalid entities are
// ignored.
func (w *World) Despawn(e Entity) {
	if !w.IsValid(e) {
		return
	}
	meta := &w.entities.metas[e.ID]
	for id, col := range w.columns {
		if meta.mask.containsBit(uint8(id)) {
			col.remove(e.ID)
		}
	}
	meta.mask = bitmask256{}
	meta.version = 0
	w.entities.freeIDs = append(w.entities.freeIDs, e.ID)
	w.entities.alive--
	w.mutationVersion++
}

// ClearEntities removes all entities from the world, recycling their IDs.
// Registered component types, resources and subscriptions are kept.
func (w *World) ClearEntities() {
	for i := range w.entities.metas {
		w.entities.metas[i] = entityMeta{}
	}
	w.entities.freeIDs = w.entities.freeIDs[:0]
	for i := w.entities.capacity - 1; i >= 0; i-- {
		w.entities.freeIDs = append(w.entities.freeIDs, uint32(i))
	}
	for _, col := range w.columns {
		col.clear()
	}
	w.entities.alive = 0
	w.mutationVersion++
}

// columnFor returns the column for t, registering the type on first use.
func (w *World) columnFor(t reflect.Type) *column {
	id := w.components.id(t)
	for int(id) >= len(w.columns) {
		w.columns = append(w.columns, nil)
	}
	if w.columns[id] == nil {
		w.columns[id] = newColumn(t)
	}
	return w.columns[id]
}

// existingColumn returns the column for t if the type was ever registered.
func (w *World) existingColumn(t reflect.Type) (*column, uint8, bool) {
	id, ok := w.components.lookup(t)
	if !ok || int(id) >= len(w.columns) || w.columns[id] == nil {
		return nil, 0, false
	}
	return w.columns[id], id, true
}
