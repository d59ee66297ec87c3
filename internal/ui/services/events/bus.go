package events

import (
	"fmt"
	"sync"
)

type listener struct {
	id      uint64
	handler func(interface{})
}

// Bus is a synchronous event bus for UI components. Publish runs every
// handler on the caller's goroutine before returning, so handlers invoked
// from a bubbletea Update stay on the event loop.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]listener
	nextID    uint64
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]listener),
	}
}

// Subscribe registers a listener for an event type and returns the function
// that removes it. The returned function is idempotent.
func (b *Bus) Subscribe(eventType string, handler func(interface{})) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[eventType] = append(b.listeners[eventType], listener{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		ls := b.listeners[eventType]
		for i, l := range ls {
			if l.id == id {
				b.listeners[eventType] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
		if len(b.listeners[eventType]) == 0 {
			delete(b.listeners, eventType)
		}
	}
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	ls := make([]listener, len(b.listeners[TypeOf(event)]))
	copy(ls, b.listeners[TypeOf(event)])
	b.mu.RUnlock()

	// Handlers may subscribe or unsubscribe, so the lock is not held here
	for _, l := range ls {
		l.handler(event)
	}
}

// Listeners returns how many handlers are registered for eventType
func (b *Bus) Listeners(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[eventType])
}

// TypeOf returns the event type key used for subscriptions
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
