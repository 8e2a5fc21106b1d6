package host

import (
	"nodelete/internal/models"
	"sync"
)

type registration struct {
	id      models.SubscriptionID
	handler models.Handler
}

// Dispatcher is the host notification bus. Handlers run synchronously in
// subscription order and one Dispatch at a time. Dispatch is not reentrant:
// a handler that calls Dispatch on the same Dispatcher blocks forever, so
// follow-up events must be dispatched after the handler returns.
type Dispatcher struct {
	mu         sync.Mutex
	dispatchMu sync.Mutex
	nextID     models.SubscriptionID
	handlers   map[string][]registration
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]registration)}
}

func (d *Dispatcher) Subscribe(eventType string, handler models.Handler) models.SubscriptionID {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	d.handlers[eventType] = append(d.handlers[eventType], registration{id: d.nextID, handler: handler})
	return d.nextID
}

// Unsubscribe reports whether id was registered for eventType.
func (d *Dispatcher) Unsubscribe(eventType string, id models.SubscriptionID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	regs := d.handlers[eventType]
	for i, r := range regs {
		if r.id != id {
			continue
		}
		d.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
		if len(d.handlers[eventType]) == 0 {
			delete(d.handlers, eventType)
		}
		return true
	}
	return false
}

// Dispatch returns the number of handlers that received e.
func (d *Dispatcher) Dispatch(e models.Event) int {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.Lock()
	regs := make([]registration, len(d.handlers[e.Type]))
	copy(regs, d.handlers[e.Type])
	d.mu.Unlock()

	for _, r := range regs {
		r.handler(e)
	}
	return len(regs)
}

func (d *Dispatcher) SubscriberCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, regs := range d.handlers {
		n += len(regs)
	}
	return n
}
