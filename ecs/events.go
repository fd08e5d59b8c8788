package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventTypeCollision = "collision"

// CollisionEventKind identifies collision event types.
type CollisionEventKind string

const CollisionEventHitHazard CollisionEventKind = "hazard"

// CollisionEvent is emitted when collision state changes.
type CollisionEvent struct {
	Entity Entity
	Other  Entity
	Kind   CollisionEventKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
