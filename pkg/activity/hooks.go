// Package activity captures the delivery trail sinks emit alongside
// their primary work. Hosts subscribe hooks to feed audit stores.
package activity

import (
	"context"
	"maps"
	"time"
)

// Verbs emitted by the sink layer.
const (
	VerbDelivered      = "audience.delivered"
	VerbDeliveryFailed = "audience.delivery_failed"
)

// Event describes one delivery observation.
type Event struct {
	Verb       string
	ViewerID   string
	ActorID    string
	ObjectType string
	ObjectID   string
	Sink       string
	Locale     string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Hook receives activity events. Sinks notify from whatever goroutine
// performed the delivery, so implementations must tolerate concurrent
// calls.
type Hook interface {
	Notify(ctx context.Context, evt Event)
}

// Hooks fans an event out to every non-nil hook in order.
type Hooks []Hook

func (h Hooks) Notify(ctx context.Context, evt Event) {
	if len(h) == 0 {
		return
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	for _, hook := range h {
		if hook != nil {
			hook.Notify(ctx, evt)
		}
	}
}

// Nop swallows events.
type Nop struct{}

func (Nop) Notify(context.Context, Event) {}

// CloneMetadata copies the metadata map so hooks and callers never share
// one. Empty input collapses to nil.
func CloneMetadata(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}
