package ecs

import "reflect"

// Insert attaches comp to e, replacing any existing component of type T.
// The first Insert of a type registers it with the world.
//
// Parameters:
//   - w: The world that owns e.
//   - e: The target entity.
//   - comp: The component value; it is copied.
//
// Returns:
//   - false if e is not alive, true otherwise.
func Insert[T any](w *World, e Entity, comp T) bool {
	if !w.IsValid(e) {
		return false
	}
	col := w.columnFor(reflect.TypeFor[T]())
	p := new(T)
	*p = comp
	col.put(e, p)
	w.entities.metas[e.ID].mask.set(w.components.typeToID[col.typ])
	w.mutationVersion++
	return true
}

// Get returns a pointer to the component of type T on e. The pointer stays
// valid until the component is removed or e is despawned.
//
// Parameters:
//   - w: The world that owns e.
//   - e: The entity to read.
//
// Returns:
//   - A pointer to the component, or nil if e is not alive or carries no T.
func Get[T any](w *World, e Entity) *T {
	if !w.IsValid(e) {
		return nil
	}
	col, id, ok := w.existingColumn(reflect.TypeFor[T]())
	if !ok || !w.entities.metas[e.ID].mask.containsBit(id) {
		return nil
	}
	return col.get(e.ID).(*T)
}

// Has reports whether e carries a component of type T.
func Has[T any](w *World, e Entity) bool {
	if !w.IsValid(e) {
		return false
	}
	_, id, ok := w.existingColumn(reflect.TypeFor[T]())
	return ok && w.entities.metas[e.ID].mask.containsBit(id)
}

// Remove detaches the component of type T from e. It returns false if there
// was nothing to remove.
func Remove[T any](w *World, e Entity) bool {
	if !Has[T](w, e) {
		return false
	}
	col, id, _ := w.existingColumn(reflect.TypeFor[T]())
	col.remove(e.ID)
	w.entities.metas[e.ID].mask.unset(id)
	w.mutationVersion++
	return true
}

// Single returns the only entity carrying T together with its component. ok is
// false when there are zero or several such entities.
func Single[T any](w *World) (e Entity, comp *T, ok bool) {
	f := NewFilter[T](w)
	if f.Len() != 1 {
		return Entity{}, nil, false
	}
	f.Next()
	return f.Entity(), f.Get(), true
}
