package usersink

import (
	"context"
	"time"

	"github.com/goliatone/go-audience/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook bridges delivery activity onto a go-users ActivitySink. Viewer
// and actor ids only survive the mapping when they parse as UUIDs.
type Hook struct {
	Sink types.ActivitySink
}

func (h Hook) Notify(ctx context.Context, evt activity.Event) {
	if h.Sink == nil {
		return
	}
	when := evt.OccurredAt
	if when.IsZero() {
		when = time.Now().UTC()
	}
	_ = h.Sink.Log(ctx, types.ActivityRecord{
		ID:         uuid.New(),
		UserID:     asUUID(evt.ViewerID),
		ActorID:    asUUID(evt.ActorID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Sink,
		Data:       dataFor(evt),
		OccurredAt: when,
	})
}

// dataFor merges the event metadata with the locale, which go-users has
// no column for.
func dataFor(evt activity.Event) map[string]any {
	data := activity.CloneMetadata(evt.Metadata)
	if data == nil {
		data = make(map[string]any, 1)
	}
	if evt.Locale != "" {
		data["locale"] = evt.Locale
	}
	return data
}

func asUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
