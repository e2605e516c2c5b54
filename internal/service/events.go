package service

import "sync"

// EventType defines the type of event
type EventType string

const (
	EventDeviceCreated     EventType = "device_created"
	EventDeviceUpdated     EventType = "device_updated"
	EventDeviceDeleted     EventType = "device_deleted"
	EventConnectionCreated EventType = "connection_created"
	EventConnectionDeleted EventType = "connection_deleted"
	EventZoneCreated       EventType = "zone_created"
	EventZoneUpdated       EventType = "zone_updated"
	EventZoneDeleted       EventType = "zone_deleted"
	EventNetworkUpdated    EventType = "network_updated"
	EventSelectionChanged  EventType = "selection_changed"
	EventViewChanged       EventType = "view_changed"
	EventStateImported     EventType = "state_imported"
	EventStateCleared      EventType = "state_cleared"
	EventSnapshotSaved     EventType = "snapshot_saved"
)

// Event represents a change to the session
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// EventBus allows publishing and subscribing to events
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan<- Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers = append(eb.subscribers, ch)
}

// Unsubscribe removes a subscriber. The channel is not closed.
func (eb *EventBus) Unsubscribe(ch chan<- Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	for i, sub := range eb.subscribers {
		if sub == ch {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers without blocking
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
