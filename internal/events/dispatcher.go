package events

import (
	"context"
	"sync"
)

// EventHandler consumes a single published event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans events out to subscribed handlers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// memoryDispatcher delivers events synchronously, in subscription order,
// within the publishing goroutine.
type memoryDispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewInMemoryDispatcher returns a process-local Dispatcher.
func NewInMemoryDispatcher() Dispatcher {
	return &memoryDispatcher{handlers: make(map[EventType][]EventHandler)}
}

// Publish invokes every handler subscribed to the event's type. A failing
// handler never blocks the rest; event delivery is best effort.
func (d *memoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	subscribed := append([]EventHandler(nil), d.handlers[event.Type]...)
	d.mu.RUnlock()

	for _, handle := range subscribed {
		_ = handle(ctx, event)
	}
	return nil
}

// Subscribe registers handle for events of the given type.
func (d *memoryDispatcher) Subscribe(eventType EventType, handle EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handle)
}
