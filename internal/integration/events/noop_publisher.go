// Package events publishes ledger change events.
package events

import (
	"context"
	"log/slog"

	"github.com/financy/backend/internal/application/adapter"
)

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that discards every event.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish logs the event at debug level and drops it.
func (NoopPublisher) Publish(ctx context.Context, event adapter.ChangeEvent) error {
	slog.DebugContext(ctx, "Dropping change event",
		"kind", event.Kind,
		"action", event.Action,
		"id", event.ID)
	return nil
}

// Close does nothing.
func (NoopPublisher) Close() error {
	return nil
}
