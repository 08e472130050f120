// Package bus publishes search and import lifecycle events, either
// in-process or to Kafka.
package bus

import (
	"context"
	"time"

	"github.com/partsearch/parts-search/internal/config"
	"github.com/partsearch/parts-search/internal/pkg/logger"
)

// Topics.
const (
	TopicSearchPerformed = "search.performed"
	TopicImportStarted   = "import.started"
	TopicImportCompleted = "import.completed"
)

// Event is one lifecycle notification.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Source    string         `json:"source"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Publisher delivers events to a topic. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close() error
}

// New selects the publisher from configuration; the in-process bus is the
// default.
func New(cfg config.BusConfig, log *logger.Logger) (Publisher, error) {
	if cfg.Type == "kafka" {
		return NewKafkaPublisher(cfg, log)
	}
	return NewMemoryBus(log), nil
}
