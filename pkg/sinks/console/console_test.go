package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goliatone/go-audience/pkg/interfaces/logger"
	"github.com/goliatone/go-audience/pkg/media"
	"github.com/goliatone/go-audience/pkg/sinks"
	"github.com/goliatone/go-audience/pkg/translate"
)

func TestSinkWritesFormattedLines(t *testing.T) {
	var buf bytes.Buffer
	sink := New(nil, WithWriter(&buf), WithRenderer(newTestRenderer(t)))

	viewer, err := sinks.New(sink, sinks.WithName("alice"), sinks.WithLocale("es"))
	if err != nil {
		t.Fatalf("viewer: %v", err)
	}

	viewer.SendMessage(media.Translatable("home.title"))
	viewer.SendActionBar(media.Text("quick note"))
	viewer.PlaySound(media.NewSound("ui.click"))
	viewer.PlaySoundAt(media.NewSound("ambient.cave"), 10, 64, -3)
	viewer.StopSound(media.StopNamed("music.overworld"))
	viewer.StopSound(media.StopAll())

	bar := media.NewBossBar(media.Text("Raid"))
	bar.Progress = 0.4
	viewer.ShowBossBar(bar)
	viewer.HideBossBar(bar)

	viewer.OpenBook(media.Book{
		Title:  media.Text("Server Rules"),
		Author: media.Text("Staff"),
		Pages:  []media.Message{media.Text("Be kind.")},
	})

	out := buf.String()
	for _, want := range []string{
		`[console][message] alice: chat "Bienvenido"`,
		`[console][action_bar] alice: action bar "quick note"`,
		`[console][sound] alice: sound ui.click (master, vol 1.00, pitch 1.00)`,
		`[console][sound_positional] alice: sound ambient.cave at (10.0, 64.0, -3.0)`,
		`[console][sound_stop] alice: sounds stopped (name=music.overworld)`,
		`[console][sound_stop] alice: all sounds stopped`,
		`[console][boss_bar_show] alice: boss bar "Raid" 40% purple/progress`,
		`[console][boss_bar_hide] alice: boss bar "Raid" hidden`,
		`[console][book] alice: book "Server Rules" by Staff, 1 pages`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestSinkFormatsTitles(t *testing.T) {
	var buf bytes.Buffer
	sink := New(nil, WithWriter(&buf))

	viewer, err := sinks.New(sink, sinks.WithName("bob"))
	if err != nil {
		t.Fatalf("viewer: %v", err)
	}

	viewer.ShowTitle(media.Title{Title: media.Text("Night falls")})
	viewer.ClearTitle()
	viewer.ResetTitle()

	out := buf.String()
	for _, want := range []string{
		`[console][title_show] bob: title "Night falls"`,
		`[console][title_clear] bob: title cleared`,
		`[console][title_reset] bob: title reset`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestSinkWithoutRendererPrintsKeys(t *testing.T) {
	var buf bytes.Buffer
	sink := New(nil, WithWriter(&buf))

	viewer, err := sinks.New(sink, sinks.WithName("carol"))
	if err != nil {
		t.Fatalf("viewer: %v", err)
	}
	viewer.SendMessage(media.Translatable("home.title"))

	if !strings.Contains(buf.String(), `chat "home.title"`) {
		t.Fatalf("expected key passthrough, got %q", buf.String())
	}
}

func TestSinkStructuredMode(t *testing.T) {
	var buf bytes.Buffer
	log := &captureLogger{}
	sink := New(log, WithWriter(&buf), WithStructured(true), WithName("debug"))

	if sink.Name() != "debug" {
		t.Fatalf("expected renamed sink, got %q", sink.Name())
	}

	viewer, err := sinks.New(sink, sinks.WithName("dave"))
	if err != nil {
		t.Fatalf("viewer: %v", err)
	}
	viewer.SendMessage(media.Text("hello"))

	if buf.Len() != 0 {
		t.Fatalf("structured mode must not write lines, got %q", buf.String())
	}
	if len(log.infos) != 1 || log.infos[0] != "console delivery" {
		t.Fatalf("expected one structured entry, got %v", log.infos)
	}
	if got := log.fields["viewer"]; got != "dave" {
		t.Fatalf("expected viewer field, got %v", got)
	}
}

func newTestRenderer(t *testing.T) *translate.Renderer {
	t.Helper()
	translator, err := translate.Catalog("en", map[string]map[string]string{
		"en": {"home.title": "Welcome"},
		"es": {"home.title": "Bienvenido"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	renderer, err := translate.New(translate.Dependencies{Translator: translator})
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return renderer
}

type captureLogger struct {
	infos  []string
	fields map[string]any
}

func (c *captureLogger) With(fields ...logger.Field) logger.Logger { return c }

func (c *captureLogger) Debug(msg string, fields ...logger.Field) {}

func (c *captureLogger) Info(msg string, fields ...logger.Field) {
	c.infos = append(c.infos, msg)
	if c.fields == nil {
		c.fields = make(map[string]any)
	}
	for _, f := range fields {
		c.fields[f.Key] = f.Value
	}
}

func (c *captureLogger) Warn(msg string, fields ...logger.Field) {}

func (c *captureLogger) Error(msg string, fields ...logger.Field) {}
