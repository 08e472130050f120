package bus

import (
	"context"
	"testing"
	"time"

	"github.com/partsearch/parts-search/internal/config"
	"github.com/partsearch/parts-search/internal/pkg/logger"
)

func TestMemoryBusFanout(t *testing.T) {
	b := NewMemoryBus(logger.Default())

	var searchEvents, importEvents []Event
	b.Subscribe(TopicSearchPerformed, func(_ context.Context, e Event) {
		searchEvents = append(searchEvents, e)
	})
	b.Subscribe(TopicSearchPerformed, func(_ context.Context, e Event) {
		searchEvents = append(searchEvents, e)
	})
	b.Subscribe(TopicImportCompleted, func(_ context.Context, e Event) {
		importEvents = append(importEvents, e)
	})

	event := Event{ID: "1", Type: TopicSearchPerformed, Source: "test", Timestamp: time.Now()}
	if err := b.Publish(context.Background(), TopicSearchPerformed, event); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if len(searchEvents) != 2 {
		t.Errorf("search handlers called %d times, want 2", len(searchEvents))
	}
	if len(importEvents) != 0 {
		t.Errorf("import handler called %d times, want 0", len(importEvents))
	}
}

func TestMemoryBusClosedDropsEvents(t *testing.T) {
	b := NewMemoryBus(logger.Default())

	called := false
	b.Subscribe(TopicImportStarted, func(_ context.Context, e Event) { called = true })

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := b.Publish(context.Background(), TopicImportStarted, Event{ID: "1"}); err != nil {
		t.Fatalf("Publish() after close error: %v", err)
	}
	if called {
		t.Error("handler must not run after close")
	}
}

func TestNewDefaultsToMemory(t *testing.T) {
	p, err := New(config.BusConfig{Type: "memory"}, logger.Default())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := p.(*MemoryBus); !ok {
		t.Errorf("expected memory bus, got %T", p)
	}
}
