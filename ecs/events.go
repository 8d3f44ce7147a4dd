package ecs

// EventKind identifies gameplay event types.
type EventKind string

const (
	EventShoot    EventKind = "shoot"
	EventHit      EventKind = "hit"
	EventHurt     EventKind = "hurt"
	EventGameOver EventKind = "game_over"
	EventPickup   EventKind = "pickup"
	EventMusic    EventKind = "music"
)

// Event is emitted by systems during a tick and drained by the audio system.
type Event struct {
	Kind   EventKind
	Entity Entity
	Other  Entity
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

// Len reports how many events are pending.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
