package ecs

// Bundle groups components that are usually spawned together.
type Bundle interface {
	Components() []any
}

// flatten expands bundles (recursively) into plain component values.
func flatten(components []any) []any {
	out := make([]any, 0, len(components))
	for _, c := range components {
		switch v := c.(type) {
		case nil:
		case Bundle:
			out = append(out, flatten(v.Components())...)
		default:
			out = append(out, v)
		}
	}
	return out
}

// Commands queues structural world changes so systems can request them while
// iterating. The queue is applied by World.Flush.
type Commands struct {
	world *World
	queue []func(*World)
}

// EntityCommands targets one entity in a Commands queue.
type EntityCommands struct {
	commands *Commands
	entity   Entity
}

// Spawn reserves an entity now and queues the insertion of its components.
// The returned handle is valid immediately; the components appear on Flush.
func (c *Commands) Spawn(components ...any) *EntityCommands {
	e := c.world.Spawn()
	ec := &EntityCommands{commands: c, entity: e}
	return ec.Insert(components...)
}

// Entity returns a command handle for an existing entity.
func (c *Commands) Entity(e Entity) *EntityCommands {
	return &EntityCommands{commands: c, entity: e}
}

// Despawn queues removal of e.
func (c *Commands) Despawn(e Entity) {
	c.queue = append(c.queue, func(w *World) { w.Despawn(e) })
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

func (c *Commands) apply() {
	// Commands queued while applying run in the same pass.
	for i := 0; i < len(c.queue); i++ {
		c.queue[i](c.world)
	}
	clear(c.queue)
	c.queue = c.queue[:0]
}

// Insert queues components (or bundles) for the entity.
func (ec *EntityCommands) Insert(components ...any) *EntityCommands {
	if len(components) == 0 {
		return ec
	}
	e := ec.entity
	ec.commands.queue = append(ec.commands.queue, func(w *World) { w.InsertAll(e, components...) })
	return ec
}

// ID returns the targeted entity.
func (ec *EntityCommands) ID() Entity {
	return ec.entity
}
