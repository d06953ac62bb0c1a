package sinks

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-audience/pkg/activity"
	"github.com/goliatone/go-audience/pkg/audience"
	"github.com/goliatone/go-audience/pkg/media"
	"github.com/google/uuid"
)

type fakeHandler struct {
	name   string
	events []Event
	fail   error
}

func (h *fakeHandler) Name() string { return h.name }

func (h *fakeHandler) Deliver(_ context.Context, _ *Viewer, evt Event) error {
	if h.fail != nil {
		return h.fail
	}
	h.events = append(h.events, evt)
	return nil
}

type recordingHook struct {
	events []activity.Event
}

func (h *recordingHook) Notify(_ context.Context, evt activity.Event) {
	h.events = append(h.events, evt)
}

func TestNewRequiresHandler(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrHandlerRequired) {
		t.Fatalf("expected ErrHandlerRequired, got %v", err)
	}
}

func TestViewerDispatchBuildsEvents(t *testing.T) {
	h := &fakeHandler{name: "fake"}
	v, err := New(h, WithName("tester"))
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}

	v.SendMessage(media.Text("hello"))
	v.SendActionBar(media.Text("status"))
	v.ShowTitle(media.Title{Title: media.Text("welcome")})
	v.ClearTitle()
	v.PlaySoundAt(media.NewSound("chime"), 1, 2, 3)
	v.StopSound(media.StopNamed("chime"))
	v.OpenBook(media.Book{Title: media.Text("guide")})

	wantKinds := []Kind{
		KindMessage, KindActionBar, KindTitleShow, KindTitleClear,
		KindSoundPositional, KindSoundStop, KindBook,
	}
	if len(h.events) != len(wantKinds) {
		t.Fatalf("expected %d events, got %d", len(wantKinds), len(h.events))
	}
	for i, kind := range wantKinds {
		if h.events[i].Kind != kind {
			t.Fatalf("expected event %d kind %s, got %s", i, kind, h.events[i].Kind)
		}
	}
	if h.events[0].Message.Text != "hello" {
		t.Fatalf("expected message payload, got %+v", h.events[0].Message)
	}
	if pos := h.events[4].Position; pos == nil || pos.X != 1 || pos.Y != 2 || pos.Z != 3 {
		t.Fatalf("expected positional payload, got %+v", pos)
	}
	if h.events[5].Stop.Name != "chime" {
		t.Fatalf("expected stop filter, got %+v", h.events[5].Stop)
	}
	if h.events[0].At.IsZero() {
		t.Fatalf("expected events stamped with a delivery time")
	}
}

func TestViewerCapabilityGate(t *testing.T) {
	h := &fakeHandler{name: "fake"}
	v, err := New(h, WithCapabilities(audience.CapabilityMessages))
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}

	if !v.CanSendMessage() {
		t.Fatalf("expected messages capability")
	}
	if v.CanPlaySound() || v.CanShowTitle() || v.CanOpenBook() {
		t.Fatalf("expected undeclared capabilities denied")
	}

	v.PlaySound(media.NewSound("chime"))
	v.ShowTitle(media.Title{})
	v.SendMessage(media.Text("only this"))

	if len(h.events) != 1 || h.events[0].Kind != KindMessage {
		t.Fatalf("expected only the capable send delivered, got %+v", h.events)
	}
}

func TestViewerDeliveryFailureStaysSilent(t *testing.T) {
	hook := &recordingHook{}
	h := &fakeHandler{name: "fake", fail: errors.New("transport down")}
	v, err := New(h, WithActivity(hook))
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}

	v.SendMessage(media.Text("lost"))

	if len(hook.events) != 1 {
		t.Fatalf("expected one activity event, got %d", len(hook.events))
	}
	evt := hook.events[0]
	if evt.Verb != activity.VerbDeliveryFailed {
		t.Fatalf("expected failure verb, got %s", evt.Verb)
	}
	if evt.Metadata["error"] != "transport down" {
		t.Fatalf("expected error metadata, got %+v", evt.Metadata)
	}
}

func TestViewerActivityOnDelivered(t *testing.T) {
	hook := &recordingHook{}
	id := uuid.New()
	h := &fakeHandler{name: "console"}
	v, err := New(h, WithID(id), WithLocale("es"), WithActivity(hook))
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}

	v.SendMessage(media.Text("hola"))

	if len(hook.events) != 1 {
		t.Fatalf("expected one activity event, got %d", len(hook.events))
	}
	evt := hook.events[0]
	if evt.Verb != activity.VerbDelivered {
		t.Fatalf("expected delivered verb, got %s", evt.Verb)
	}
	if evt.ViewerID != id.String() || evt.Sink != "console" || evt.Locale != "es" {
		t.Fatalf("unexpected activity fields: %+v", evt)
	}
	if evt.Metadata["kind"] != string(KindMessage) {
		t.Fatalf("expected kind metadata, got %+v", evt.Metadata)
	}
}

func TestViewerPerform(t *testing.T) {
	h := &fakeHandler{name: "fake"}
	v, err := New(h, WithCapabilities(audience.CapabilitySounds))
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}

	invoked := 0
	got := v.Perform(audience.CapabilitySounds, func(audience.Viewer) { invoked++ })
	if invoked != 1 || got != audience.Audience(v) {
		t.Fatalf("expected eligible viewer returned, got %T after %d invocations", got, invoked)
	}

	got = v.Perform(audience.CapabilityBooks, nil)
	if got != audience.Empty() {
		t.Fatalf("expected the empty audience for undeclared capability")
	}
}

func TestViewerDefaults(t *testing.T) {
	h := &fakeHandler{name: "fake"}
	v, err := New(h)
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}
	if v.ID() == uuid.Nil {
		t.Fatalf("expected a generated id")
	}
	if v.Name() != v.ID().String() {
		t.Fatalf("expected name fallback to id, got %s", v.Name())
	}
	if v.Capabilities() != audience.All {
		t.Fatalf("expected full capability set, got %s", v.Capabilities())
	}
}
