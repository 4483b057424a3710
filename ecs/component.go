package ecs

import (
	"fmt"
	"reflect"
)

// MaxComponentTypes defines the maximum number of unique component types that can be
// registered in a World.
const MaxComponentTypes = 256

// componentRegistry assigns world-local IDs to component types. Each World has
// its own, so two worlds built the same way assign the same IDs.
type componentRegistry struct {
	typeToID map[reflect.Type]uint8
	idToType []reflect.Type
}

// id registers or fetches the component ID for t.
func (r *componentRegistry) id(t reflect.Type) uint8 {
	if id, ok := r.typeToID[t]; ok {
		return id
	}
	if len(r.idToType) >= MaxComponentTypes {
		panic(fmt.Sprintf("ecs: cannot register component %s: too many component types", t))
	}
	id := uint8(len(r.idToType))
	r.typeToID[t] = id
	r.idToType = append(r.idToType, t)
	return id
}

// lookup returns the ID for t without registering it.
func (r *componentRegistry) lookup(t reflect.Type) (uint8, bool) {
	id, ok := r.typeToID[t]
	return id, ok
}

// column stores every value of one component type. Values are held as *T so
// pointers handed out by Get stay valid while other entities come and go.
type column struct {
	typ    reflect.Type
	sparse map[uint32]int // entity ID -> index in dense/values
	dense  []Entity
	values []any
}

func newColumn(t reflect.Type) *column {
	return &column{typ: t, sparse: make(map[uint32]int)}
}

// put stores ptr (a *T matching typ) for e, replacing any previous value.
func (c *column) put(e Entity, ptr any) {
	if i, ok := c.sparse[e.ID]; ok {
		c.dense[i] = e
		c.values[i] = ptr
		return
	}
	c.sparse[e.ID] = len(c.dense)
	c.dense = append(c.dense, e)
	c.values = append(c.values, ptr)
}

// putValue boxes v into a fresh pointer and stores it.
func (c *column) putValue(e Entity, v any) {
	p := reflect.New(c.typ)
	p.Elem().Set(reflect.ValueOf(v))
	c.put(e, p.Interface())
}

func (c *column) get(id uint32) any {
	if i, ok := c.sparse[id]; ok {
		return c.values[i]
	}
	return nil
}

// remove swaps the last element into the removed slot.
func (c *column) remove(id uint32) {
	i, ok := c.sparse[id]
	if !ok {
		return
	}
	last := len(c.dense) - 1
	if i < last {
		c.dense[i] = c.dense[last]
		c.values[i] = c.values[last]
		c.sparse[c.dense[i].ID] = i
	}
	c.dense = c.dense[:last]
	c.values[last] = nil
	c.values = c.values[:last]
	delete(c.sparse, id)
}

func (c *column) clear() {
	clear(c.sparse)
	clear(c.values)
	c.dense = c.dense[:0]
	c.values = c.values[:0]
}
