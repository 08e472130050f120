package bus

import (
	"context"
	"sync"

	"github.com/partsearch/parts-search/internal/pkg/logger"
)

// Handler receives events from the in-process bus.
type Handler func(ctx context.Context, event Event)

// MemoryBus fans events out to in-process subscribers. Handlers run
// synchronously in Publish; keep them short.
type MemoryBus struct {
	log *logger.Logger

	mu       sync.RWMutex
	handlers map[string][]Handler
	closed   bool
}

// NewMemoryBus creates an empty in-process bus.
func NewMemoryBus(log *logger.Logger) *MemoryBus {
	return &MemoryBus{
		log:      log.WithComponent("bus"),
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for one topic.
func (b *MemoryBus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

func (b *MemoryBus) Publish(ctx context.Context, topic string, event Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	handlers := b.handlers[topic]
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, event)
	}
	b.log.Debug("event published", "topic", topic, "type", event.Type)
	return nil
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
