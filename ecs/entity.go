// Package ecs is the entity store the application is built on: entities with
// typed components, filters over them, world-global resources, an event bus and
// a deferred command queue.
package ecs

import "fmt"

// Entity represents a unique identifier for an object in the World. It combines
// a 32-bit ID with a 32-bit version to ensure that recycled IDs are not confused
// with new entities.
type Entity struct {
	// ID is the unique, recyclable identifier for the entity.
	ID uint32
	// Version is a generation counter to protect against stale entity references.
	// It is incremented each time an entity ID is reused.
	Version uint32
}

// String formats the entity as "ID.Version".
func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.ID, e.Version)
}

// entityMeta holds the component set and liveness of an entity.
type entityMeta struct {
	mask    bitmask256
	version uint32 // current version, 0 if the entity is dead
}
