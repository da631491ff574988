// Package events distributes domain events (round results, match
// completions, reward grants, season rollovers) to registered observers,
// keeping the engines free of any direct presentation coupling.
package events

import (
	"log"
	"sync"
)

// Event is one dispatched domain event. Payload holds one of the typed
// structs from messages.go.
type Event struct {
	Type    string
	Payload any
}

// Observer receives dispatched events. ShouldHandle lets an observer
// filter to the event types it cares about.
type Observer interface {
	OnEvent(event Event) error
	Name() string
	ShouldHandle(eventType string) bool
}

// Dispatcher fans events out to observers in registration order.
// Thread-safe for concurrent use.
type Dispatcher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register adds an observer for all future events.
func (d *Dispatcher) Register(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, observer)
}

// Unregister removes a previously registered observer.
func (d *Dispatcher) Unregister(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, obs := range d.observers {
		if obs == observer {
			d.observers[i] = d.observers[len(d.observers)-1]
			d.observers = d.observers[:len(d.observers)-1]
			return
		}
	}
}

// Dispatch notifies every interested observer sequentially. An observer
// error is logged and does not stop delivery to the rest.
func (d *Dispatcher) Dispatch(event Event) {
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	for _, observer := range observers {
		if !observer.ShouldHandle(event.Type) {
			continue
		}
		if err := observer.OnEvent(event); err != nil {
			log.Printf("[Dispatcher] observer %s failed on %s: %v", observer.Name(), event.Type, err)
		}
	}
}

// ObserverCount returns the number of registered observers.
func (d *Dispatcher) ObserverCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.observers)
}
