// Package notify delivers readiness events to chat platforms (Slack,
// Discord). Delivery is best-effort and outbound-only: failures are
// logged, never propagated back into the engine.
package notify

import (
	"context"
	"log"
	"time"
)

// EventType identifies the kind of readiness event.
type EventType string

const (
	EventProductionReady   EventType = "production_ready"
	EventInstanceCompleted EventType = "instance_completed"
	EventOrphanCategories  EventType = "orphan_categories"
	EventDailyDigest       EventType = "daily_digest"
)

// Event is a readiness event formatted for chat delivery.
type Event struct {
	Type      EventType
	Title     string
	Body      string
	Severity  string // "info", "warning", "success"
	Color     string // sidebar color hint (e.g. "#36a64f" for success)
	Fields    []Field
	Timestamp time.Time
}

// Field is a key-value pair displayed in an event attachment.
type Field struct {
	Name  string
	Value string
	Short bool // hint: render side-by-side with another field
}

// Adapter is the interface platform-specific senders must satisfy.
type Adapter interface {
	// Send delivers an event to the platform.
	Send(ctx context.Context, evt Event) error

	// Close releases the adapter's connection.
	Close() error
}

// Notifier fans events out to all configured adapters.
type Notifier struct {
	adapters []Adapter
}

// NewNotifier creates a Notifier over the given adapters.
func NewNotifier(adapters ...Adapter) *Notifier {
	return &Notifier{adapters: adapters}
}

// Notify sends an event to every adapter. Best-effort: a failing
// adapter is logged and the rest still receive the event.
func (n *Notifier) Notify(ctx context.Context, evt Event) {
	for _, a := range n.adapters {
		if err := a.Send(ctx, evt); err != nil {
			log.Printf("notify: send %s event: %v", evt.Type, err)
		}
	}
}

// Close closes all adapters.
func (n *Notifier) Close() {
	for _, a := range n.adapters {
		if err := a.Close(); err != nil {
			log.Printf("notify: close adapter: %v", err)
		}
	}
}

// Enabled reports whether any adapter is configured.
func (n *Notifier) Enabled() bool {
	return len(n.adapters) > 0
}
