package aws_ses

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/goliatone/go-audience/pkg/media"
	"github.com/goliatone/go-audience/pkg/retry"
	"github.com/goliatone/go-audience/pkg/sinks"
	"github.com/goliatone/go-audience/pkg/translate"
)

func TestDigestBatchesPerViewer(t *testing.T) {
	ctx := context.Background()
	client := &fakeSES{}
	sink := newTestSink(t, client, Config{Sender: "updates@example.com"})

	alice := newTestViewer(t, sink, "Alice", "alice@example.com", "es")
	bob := newTestViewer(t, sink, "Bob", "bob@example.com", "en")

	alice.SendMessage(media.Translatable("home.title"))
	alice.PlaySound(media.NewSound("ui.click"))
	bob.SendMessage(media.Text("see you tomorrow"))

	if got := sink.Pending(); got != 3 {
		t.Fatalf("expected 3 pending events, got %d", got)
	}
	if len(client.inputs) != 0 {
		t.Fatalf("expected no sends before flush")
	}

	if err := sink.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if sink.Pending() != 0 {
		t.Fatalf("expected empty buffer after flush")
	}
	if len(client.inputs) != 2 {
		t.Fatalf("expected one email per viewer, got %d", len(client.inputs))
	}

	first := client.inputs[0]
	if first.Destination.ToAddresses[0] != "alice@example.com" {
		t.Fatalf("expected alice first, got %v", first.Destination.ToAddresses)
	}
	if aws.ToString(first.Source) != "updates@example.com" {
		t.Fatalf("unexpected source %q", aws.ToString(first.Source))
	}
	if got := aws.ToString(first.Message.Subject.Data); got != "Activity digest for Alice" {
		t.Fatalf("unexpected subject %q", got)
	}
	html := aws.ToString(first.Message.Body.Html.Data)
	if !strings.Contains(html, "Bienvenido") {
		t.Fatalf("expected localized line in html, got %q", html)
	}
	if !strings.Contains(html, "played ui.click") {
		t.Fatalf("expected sound line in html, got %q", html)
	}
	text := aws.ToString(first.Message.Body.Text.Data)
	if !strings.Contains(text, "Bienvenido") || strings.Contains(text, "<table>") {
		t.Fatalf("expected plain text alternative, got %q", text)
	}

	second := client.inputs[1]
	if second.Destination.ToAddresses[0] != "bob@example.com" {
		t.Fatalf("expected bob second, got %v", second.Destination.ToAddresses)
	}
}

func TestDigestSizeTriggeredFlush(t *testing.T) {
	client := &fakeSES{}
	sink := newTestSink(t, client, Config{Sender: "updates@example.com", MaxEvents: 2})

	alice := newTestViewer(t, sink, "Alice", "alice@example.com", "en")
	alice.SendMessage(media.Text("one"))
	if len(client.inputs) != 0 {
		t.Fatalf("expected no send below the threshold")
	}
	alice.SendMessage(media.Text("two"))
	if len(client.inputs) != 1 {
		t.Fatalf("expected size-triggered flush, got %d sends", len(client.inputs))
	}
	if sink.Pending() != 0 {
		t.Fatalf("expected drained batch after auto flush")
	}
	html := aws.ToString(client.inputs[0].Message.Body.Html.Data)
	if !strings.Contains(html, "one") || !strings.Contains(html, "two") {
		t.Fatalf("expected both lines in digest, got %q", html)
	}
}

func TestDigestRetriesTransientFailures(t *testing.T) {
	ctx := context.Background()
	client := &fakeSES{failures: 2}
	sink := newTestSink(t, client, Config{Sender: "updates@example.com", MaxAttempts: 3})

	alice := newTestViewer(t, sink, "Alice", "alice@example.com", "en")
	alice.SendMessage(media.Text("hello"))

	if err := sink.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if client.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", client.calls)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("expected one delivered email, got %d", len(client.inputs))
	}
}

func TestDigestReportsExhaustedRetries(t *testing.T) {
	ctx := context.Background()
	client := &fakeSES{failures: 10}
	sink := newTestSink(t, client, Config{Sender: "updates@example.com", MaxAttempts: 2})

	alice := newTestViewer(t, sink, "Alice", "alice@example.com", "en")
	alice.SendMessage(media.Text("hello"))

	err := sink.Flush(ctx)
	if err == nil || !strings.Contains(err.Error(), "send digest") {
		t.Fatalf("expected send error, got %v", err)
	}
	if client.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", client.calls)
	}
}

func TestDigestDryRun(t *testing.T) {
	ctx := context.Background()
	client := &fakeSES{}
	sink := newTestSink(t, client, Config{Sender: "updates@example.com", DryRun: true})

	alice := newTestViewer(t, sink, "Alice", "alice@example.com", "en")
	alice.SendMessage(media.Text("hello"))

	if err := sink.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("dry run must not send, got %d calls", client.calls)
	}
}

func TestDigestSkipsTransientOps(t *testing.T) {
	client := &fakeSES{}
	sink := newTestSink(t, client, Config{Sender: "updates@example.com"})

	alice := newTestViewer(t, sink, "Alice", "alice@example.com", "en")
	alice.ClearTitle()
	alice.ResetTitle()
	alice.StopSound(media.StopAll())

	if got := sink.Pending(); got != 0 {
		t.Fatalf("expected transient ops to be skipped, got %d pending", got)
	}
}

func TestDigestRequiresAddress(t *testing.T) {
	ctx := context.Background()
	sink := newTestSink(t, &fakeSES{}, Config{Sender: "updates@example.com"})

	anon, err := sinks.New(sink, sinks.WithName("anon"))
	if err != nil {
		t.Fatalf("viewer: %v", err)
	}
	evt := sinks.Event{Kind: sinks.KindMessage, Message: media.Text("hi"), At: time.Now()}
	if err := sink.Deliver(ctx, anon, evt); err == nil {
		t.Fatalf("expected error for viewer without address")
	}
}

func newTestSink(t *testing.T, client SESClient, cfg Config) *Sink {
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
	sink, err := New(nil,
		WithConfig(cfg),
		WithClient(client),
		WithRenderer(renderer),
		WithBackoff(retry.ExponentialBackoff{Base: time.Millisecond, Max: time.Millisecond}),
	)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	return sink
}

func newTestViewer(t *testing.T, sink *Sink, name, address, locale string) *sinks.Viewer {
	t.Helper()
	viewer, err := sinks.New(sink,
		sinks.WithName(name),
		sinks.WithLocale(locale),
		sinks.WithMeta(map[string]any{"address": address}),
	)
	if err != nil {
		t.Fatalf("viewer %s: %v", name, err)
	}
	return viewer
}

type fakeSES struct {
	mu       sync.Mutex
	inputs   []*ses.SendEmailInput
	calls    int
	failures int
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("throttled")
	}
	f.inputs = append(f.inputs, params)
	return &ses.SendEmailOutput{}, nil
}
