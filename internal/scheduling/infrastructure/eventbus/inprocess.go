package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// InProcessPublisher logs every published event at debug level and keeps no
// subscriber list: the scheduling core has no in-process consumer for its
// own events, only (optionally) the RabbitMQ audit trail below.
type InProcessPublisher struct {
	mu     sync.Mutex
	logger *slog.Logger
}

// NewInProcessPublisher constructs a publisher. logger may be nil, in which
// case slog.Default() is used.
func NewInProcessPublisher(logger *slog.Logger) *InProcessPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessPublisher{logger: logger}
}

// Publish logs the event; it never returns an error since there is no
// delivery to fail.
func (p *InProcessPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger.Debug("domain event published", "routing_key", routingKey, "payload", string(payload))
	return nil
}

// Close is a no-op; present to satisfy Publisher.
func (p *InProcessPublisher) Close() error { return nil }
