// Package eventbus publishes scheduling domain events. Events in this spec
// are audit-only — nothing subscribes to them to drive BN training, so the
// bus is a simple fire-and-forget publisher rather than the teacher's
// consumer-registry/dispatch machinery.
package eventbus

import "context"

// Publisher publishes a domain event's JSON payload under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}
