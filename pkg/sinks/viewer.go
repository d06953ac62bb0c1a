package sinks

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-audience/pkg/activity"
	"github.com/goliatone/go-audience/pkg/audience"
	"github.com/goliatone/go-audience/pkg/interfaces/logger"
	"github.com/goliatone/go-audience/pkg/media"
	"github.com/google/uuid"
)

// ErrHandlerRequired is returned when a viewer is built without a handler.
var ErrHandlerRequired = errors.New("sinks: handler is required")

// Viewer is the concrete audience leaf: a single recipient bound to a
// delivery handler. Sends outside its capability set are dropped silently;
// handler failures are logged and reported to activity hooks, never
// surfaced to the sender.
type Viewer struct {
	id      uuid.UUID
	name    string
	locale  string
	meta    map[string]any
	caps    audience.Capability
	handler Handler
	log     logger.Logger
	hooks   activity.Hooks
	ctx     context.Context
}

// Option customizes a viewer during construction.
type Option func(*Viewer)

func WithID(id uuid.UUID) Option {
	return func(v *Viewer) { v.id = id }
}

func WithName(name string) Option {
	return func(v *Viewer) { v.name = name }
}

func WithLocale(locale string) Option {
	return func(v *Viewer) { v.locale = locale }
}

func WithMeta(meta map[string]any) Option {
	return func(v *Viewer) { v.meta = activity.CloneMetadata(meta) }
}

func WithCapabilities(caps audience.Capability) Option {
	return func(v *Viewer) { v.caps = caps }
}

func WithLogger(l logger.Logger) Option {
	return func(v *Viewer) {
		if l != nil {
			v.log = l
		}
	}
}

func WithActivity(hooks ...activity.Hook) Option {
	return func(v *Viewer) { v.hooks = append(v.hooks, hooks...) }
}

// WithContext sets the base context passed to the handler on every
// delivery. Audience operations carry no context of their own.
func WithContext(ctx context.Context) Option {
	return func(v *Viewer) {
		if ctx != nil {
			v.ctx = ctx
		}
	}
}

// New builds a viewer delivering through handler. Viewers default to a
// random id, the full capability set, a no-op logger, and a background
// context.
func New(handler Handler, opts ...Option) (*Viewer, error) {
	if handler == nil {
		return nil, ErrHandlerRequired
	}
	v := &Viewer{
		id:      uuid.New(),
		caps:    audience.All,
		handler: handler,
		log:     &logger.Nop{},
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v, nil
}

func (v *Viewer) ID() uuid.UUID { return v.id }

// Name returns the display name, falling back to the id.
func (v *Viewer) Name() string {
	if v.name != "" {
		return v.name
	}
	return v.id.String()
}

// Locale returns the viewer locale, empty when unset.
func (v *Viewer) Locale() string { return v.locale }

// Meta returns a copy of the viewer metadata.
func (v *Viewer) Meta() map[string]any { return activity.CloneMetadata(v.meta) }

// Handler returns the delivery handler.
func (v *Viewer) Handler() Handler { return v.handler }

var _ audience.Viewer = (*Viewer)(nil)

func (v *Viewer) Capabilities() audience.Capability { return v.caps }

func (v *Viewer) CanSendMessage() bool { return v.caps.Has(audience.CapabilityMessages) }

func (v *Viewer) SendMessage(msg media.Message) {
	v.dispatch(audience.CapabilityMessages, Event{Kind: KindMessage, Message: msg})
}

func (v *Viewer) CanSendActionBar() bool { return v.caps.Has(audience.CapabilityActionBars) }

func (v *Viewer) SendActionBar(msg media.Message) {
	v.dispatch(audience.CapabilityActionBars, Event{Kind: KindActionBar, Message: msg})
}

func (v *Viewer) CanShowTitle() bool { return v.caps.Has(audience.CapabilityTitles) }

func (v *Viewer) ShowTitle(title media.Title) {
	v.dispatch(audience.CapabilityTitles, Event{Kind: KindTitleShow, Title: title})
}

func (v *Viewer) ClearTitle() {
	v.dispatch(audience.CapabilityTitles, Event{Kind: KindTitleClear})
}

func (v *Viewer) ResetTitle() {
	v.dispatch(audience.CapabilityTitles, Event{Kind: KindTitleReset})
}

func (v *Viewer) CanShowBossBar() bool { return v.caps.Has(audience.CapabilityBossBars) }

func (v *Viewer) ShowBossBar(bar *media.BossBar) {
	v.dispatch(audience.CapabilityBossBars, Event{Kind: KindBossBarShow, BossBar: bar})
}

func (v *Viewer) HideBossBar(bar *media.BossBar) {
	v.dispatch(audience.CapabilityBossBars, Event{Kind: KindBossBarHide, BossBar: bar})
}

func (v *Viewer) CanPlaySound() bool { return v.caps.Has(audience.CapabilitySounds) }

func (v *Viewer) PlaySound(sound media.Sound) {
	v.dispatch(audience.CapabilitySounds, Event{Kind: KindSound, Sound: sound})
}

func (v *Viewer) PlaySoundAt(sound media.Sound, x, y, z float64) {
	v.dispatch(audience.CapabilitySounds, Event{
		Kind:     KindSoundPositional,
		Sound:    sound,
		Position: &Position{X: x, Y: y, Z: z},
	})
}

func (v *Viewer) StopSound(stop media.SoundStop) {
	v.dispatch(audience.CapabilitySounds, Event{Kind: KindSoundStop, Stop: stop})
}

func (v *Viewer) CanOpenBook() bool { return v.caps.Has(audience.CapabilityBooks) }

func (v *Viewer) OpenBook(book media.Book) {
	v.dispatch(audience.CapabilityBooks, Event{Kind: KindBook, Book: book})
}

func (v *Viewer) Perform(c audience.Capability, action func(audience.Viewer)) audience.Audience {
	return audience.Apply(v, c, action)
}

// dispatch gates on the capability set, stamps the event, and hands it to
// the handler.
func (v *Viewer) dispatch(c audience.Capability, evt Event) {
	if !v.caps.Has(c) {
		return
	}
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	if err := v.handler.Deliver(v.ctx, v, evt); err != nil {
		v.log.Error("sink delivery failed",
			logger.Field{Key: "sink", Value: v.handler.Name()},
			logger.Field{Key: "viewer", Value: v.Name()},
			logger.Field{Key: "kind", Value: string(evt.Kind)},
			logger.Field{Key: "error", Value: err})
		v.notify(activity.VerbDeliveryFailed, evt, err)
		return
	}
	v.notify(activity.VerbDelivered, evt, nil)
}

func (v *Viewer) notify(verb string, evt Event, deliverErr error) {
	if len(v.hooks) == 0 {
		return
	}
	meta := map[string]any{"kind": string(evt.Kind)}
	if deliverErr != nil {
		meta["error"] = deliverErr.Error()
	}
	v.hooks.Notify(v.ctx, activity.Event{
		Verb:       verb,
		ViewerID:   v.id.String(),
		ObjectType: "media_event",
		Sink:       v.handler.Name(),
		Locale:     v.locale,
		Metadata:   meta,
		OccurredAt: evt.At,
	})
}
