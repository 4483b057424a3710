package ecs

import "reflect"

// MaxEventTypes defines the maximum number of unique event types that can be
// registered in the EventBus.
const MaxEventTypes = 256

// EventBus provides type-safe communication between systems. Publish delivers
// an event to subscribers immediately; Send queues it until the next Flush,
// which the application calls between stages.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]any
	queued          []func()
	nextEventTypeID uint16
}

// Subscribe registers a handler function to be called when an event of type T
// is published. Handlers run in the order they were subscribed.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	id := bus.getEventTypeID(reflect.TypeFor[T]())
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish broadcasts an event of type T to all registered handlers
// synchronously.
func Publish[T any](bus *EventBus, event T) {
	if id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]; ok {
		for _, h := range bus.handlers[id] {
			h.(func(T))(event)
		}
	}
}

// Send queues event for delivery on the next Flush.
func Send[T any](bus *EventBus, event T) {
	bus.queued = append(bus.queued, func() { Publish(bus, event) })
}

// Pending returns the number of queued events.
func (bus *EventBus) Pending() int {
	return len(bus.queued)
}

// Flush delivers queued events in send order. Events sent by handlers during
// the flush are delivered in the same call.
func (bus *EventBus) Flush() {
	for i := 0; i < len(bus.queued); i++ {
		bus.queued[i]()
	}
	clear(bus.queued)
	bus.queued = bus.queued[:0]
}

// getEventTypeID retrieves or assigns an ID for the event type.
func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if int(bus.nextEventTypeID) >= MaxEventTypes {
		panic("ecs: too many event types")
	}
	id := uint8(bus.nextEventTypeID)
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}
