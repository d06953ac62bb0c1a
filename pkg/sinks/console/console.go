package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/goliatone/go-audience/pkg/interfaces/logger"
	"github.com/goliatone/go-audience/pkg/media"
	"github.com/goliatone/go-audience/pkg/sinks"
	"github.com/goliatone/go-audience/pkg/translate"
)

// Sink renders media events as human-readable lines. It stands in for a real
// client connection during development and demos.
type Sink struct {
	name     string
	base     sinks.BaseHandler
	opts     Options
	renderer *translate.Renderer

	mu  sync.Mutex // viewers may share one sink across goroutines; writes are serialized
	out io.Writer
}

type Option func(*Sink)

// Options tweak console output.
type Options struct {
	Structured bool // when true, emit structured log fields instead of a formatted line
}

// WithName overrides the sink name (defaults to "console").
func WithName(name string) Option {
	return func(s *Sink) {
		if name != "" {
			s.name = name
		}
	}
}

// WithStructured enables structured logging mode.
func WithStructured(enabled bool) Option {
	return func(s *Sink) {
		s.opts.Structured = enabled
	}
}

// WithWriter redirects formatted lines away from stdout.
func WithWriter(w io.Writer) Option {
	return func(s *Sink) {
		if w != nil {
			s.out = w
		}
	}
}

// WithRenderer resolves translatable messages before printing. Without a
// renderer keyed messages print their key.
func WithRenderer(r *translate.Renderer) Option {
	return func(s *Sink) {
		s.renderer = r
	}
}

// New constructs a console sink.
func New(l logger.Logger, opts ...Option) *Sink {
	sink := &Sink{
		name: "console",
		out:  os.Stdout,
	}
	sink.base = sinks.NewBaseHandler(l)
	for _, opt := range opts {
		if opt != nil {
			opt(sink)
		}
	}
	return sink
}

// Name implements sinks.Handler.
func (s *Sink) Name() string {
	return s.name
}

// Deliver formats the event for the viewer and writes or logs it.
func (s *Sink) Deliver(ctx context.Context, v *sinks.Viewer, evt sinks.Event) error {
	line := s.describe(v, evt)

	if s.opts.Structured {
		s.base.Logger().Info("console delivery",
			logger.Field{Key: "sink", Value: s.name},
			logger.Field{Key: "viewer", Value: v.Name()},
			logger.Field{Key: "locale", Value: v.Locale()},
			logger.Field{Key: "kind", Value: string(evt.Kind)},
			logger.Field{Key: "line", Value: line},
		)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.out, "[%s][%s] %s: %s\n", s.name, evt.Kind, v.Name(), line)
	return err
}

// describe renders one event as a single line in the viewer's locale.
func (s *Sink) describe(v *sinks.Viewer, evt sinks.Event) string {
	switch evt.Kind {
	case sinks.KindMessage:
		return fmt.Sprintf("chat %q", s.text(v, evt.Message))
	case sinks.KindActionBar:
		return fmt.Sprintf("action bar %q", s.text(v, evt.Message))
	case sinks.KindTitleShow:
		line := fmt.Sprintf("title %q", s.text(v, evt.Title.Title))
		if sub := s.text(v, evt.Title.Subtitle); sub != "" {
			line += fmt.Sprintf(" / %q", sub)
		}
		times := evt.Title.Times
		if times.FadeIn > 0 || times.Stay > 0 || times.FadeOut > 0 {
			line += fmt.Sprintf(" (in %s, stay %s, out %s)", times.FadeIn, times.Stay, times.FadeOut)
		}
		return line
	case sinks.KindTitleClear:
		return "title cleared"
	case sinks.KindTitleReset:
		return "title reset"
	case sinks.KindBossBarShow:
		if evt.BossBar == nil {
			return "boss bar (nil)"
		}
		return fmt.Sprintf("boss bar %q %d%% %s/%s",
			s.text(v, evt.BossBar.Title),
			int(evt.BossBar.Progress*100),
			evt.BossBar.Color,
			evt.BossBar.Overlay,
		)
	case sinks.KindBossBarHide:
		if evt.BossBar == nil {
			return "boss bar hidden (nil)"
		}
		return fmt.Sprintf("boss bar %q hidden", s.text(v, evt.BossBar.Title))
	case sinks.KindSound:
		return fmt.Sprintf("sound %s (%s, vol %.2f, pitch %.2f)",
			evt.Sound.Name, evt.Sound.Source, evt.Sound.Volume, evt.Sound.Pitch)
	case sinks.KindSoundPositional:
		pos := evt.Position
		if pos == nil {
			pos = &sinks.Position{}
		}
		return fmt.Sprintf("sound %s at (%.1f, %.1f, %.1f)", evt.Sound.Name, pos.X, pos.Y, pos.Z)
	case sinks.KindSoundStop:
		filters := make([]string, 0, 2)
		if evt.Stop.Name != "" {
			filters = append(filters, "name="+evt.Stop.Name)
		}
		if evt.Stop.Source != "" {
			filters = append(filters, "source="+string(evt.Stop.Source))
		}
		if len(filters) == 0 {
			return "all sounds stopped"
		}
		return "sounds stopped (" + strings.Join(filters, ", ") + ")"
	case sinks.KindBook:
		line := fmt.Sprintf("book %q", s.text(v, evt.Book.Title))
		if author := s.text(v, evt.Book.Author); author != "" {
			line += " by " + author
		}
		return line + fmt.Sprintf(", %d pages", len(evt.Book.Pages))
	default:
		return fmt.Sprintf("unknown event %q", evt.Kind)
	}
}

// text resolves a message for the viewer's locale. Without a renderer keyed
// messages degrade to their key.
func (s *Sink) text(v *sinks.Viewer, msg media.Message) string {
	if s.renderer != nil {
		return s.renderer.Resolve(s.renderer.LocaleFor(v), msg)
	}
	if msg.Translatable() {
		return msg.Key
	}
	return msg.Text
}
