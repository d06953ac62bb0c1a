package aws_ses

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/goliatone/go-audience/pkg/interfaces/logger"
	"github.com/goliatone/go-audience/pkg/media"
	"github.com/goliatone/go-audience/pkg/retry"
	"github.com/goliatone/go-audience/pkg/sinks"
	"github.com/goliatone/go-audience/pkg/translate"
	masker "github.com/goliatone/go-masker"
	gotemplate "github.com/goliatone/go-template"
	"github.com/jaytaylor/html2text"
)

// Sink batches media events per viewer and flushes them as one digest email
// per recipient via AWS SES. Viewers must carry an email address in their
// metadata under "address" (or "email").
type Sink struct {
	name         string
	base         sinks.BaseHandler
	cfg          Config
	client       SESClient
	engine       *gotemplate.Engine
	translations *translate.Renderer
	backoff      retry.Backoff

	mu      sync.Mutex
	batches map[string]*batch

	renderMu sync.Mutex
}

// Config holds SES digest settings.
type Config struct {
	Sender           string
	Subject          string
	Region           string
	Profile          string
	ConfigurationSet string
	MaxEvents        int
	MaxAttempts      int
	DryRun           bool
}

type batch struct {
	viewer  string
	address string
	locale  string
	events  []sinks.Event
}

type Option func(*Sink)

// SESClient abstracts the SES client for testing.
type SESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// WithName overrides the sink name.
func WithName(name string) Option {
	return func(s *Sink) {
		if strings.TrimSpace(name) != "" {
			s.name = name
		}
	}
}

// WithConfig sets the sink configuration.
func WithConfig(cfg Config) Option {
	return func(s *Sink) {
		s.cfg = cfg
	}
}

// WithClient injects a custom SES client.
func WithClient(c SESClient) Option {
	return func(s *Sink) {
		if c != nil {
			s.client = c
		}
	}
}

// WithRenderer resolves translatable messages per viewer locale before they
// land in the digest body.
func WithRenderer(r *translate.Renderer) Option {
	return func(s *Sink) {
		s.translations = r
	}
}

// WithBackoff overrides the retry policy for transient send failures.
func WithBackoff(b retry.Backoff) Option {
	return func(s *Sink) {
		if b != nil {
			s.backoff = b
		}
	}
}

// New constructs the SES digest sink.
func New(l logger.Logger, opts ...Option) (*Sink, error) {
	engine, err := gotemplate.NewRenderer(gotemplate.WithBaseDir("."))
	if err != nil {
		return nil, fmt.Errorf("aws_ses: renderer: %w", err)
	}
	s := &Sink{
		name:    "aws_ses",
		base:    sinks.NewBaseHandler(l),
		engine:  engine,
		backoff: retry.DefaultBackoff(),
		batches: make(map[string]*batch),
		cfg: Config{
			Region: "us-east-1",
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Name implements sinks.Handler.
func (s *Sink) Name() string { return s.name }

// Pending returns the number of batched events awaiting a flush.
func (s *Sink) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, b := range s.batches {
		total += len(b.events)
	}
	return total
}

// Deliver appends the event to the viewer's batch. Reaching MaxEvents
// flushes that viewer immediately.
func (s *Sink) Deliver(ctx context.Context, v *sinks.Viewer, evt sinks.Event) error {
	switch evt.Kind {
	case sinks.KindTitleClear, sinks.KindTitleReset, sinks.KindBossBarHide, sinks.KindSoundStop:
		// Transient screen-state operations carry nothing worth emailing.
		return nil
	}

	addr := addressFor(v)
	if addr == "" {
		return fmt.Errorf("aws_ses: viewer %q has no email address", v.Name())
	}

	key := v.ID().String()
	s.mu.Lock()
	b := s.batches[key]
	if b == nil {
		b = &batch{viewer: v.Name(), address: addr, locale: v.Locale()}
		s.batches[key] = b
	}
	b.events = append(b.events, evt)
	var due *batch
	if s.cfg.MaxEvents > 0 && len(b.events) >= s.cfg.MaxEvents {
		due = b
		delete(s.batches, key)
	}
	s.mu.Unlock()

	if due != nil {
		return s.send(ctx, due)
	}
	return nil
}

// Flush emails every pending batch and clears the buffer. Batches that fail
// to send are dropped, not re-queued.
func (s *Sink) Flush(ctx context.Context) error {
	s.mu.Lock()
	due := make([]*batch, 0, len(s.batches))
	for _, b := range s.batches {
		due = append(due, b)
	}
	s.batches = make(map[string]*batch)
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].address < due[j].address })

	var errs []error
	for _, b := range due {
		if err := s.send(ctx, b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Sink) ensureClient(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(s.cfg.Region),
	}
	if s.cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(s.cfg.Profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return fmt.Errorf("aws_ses: load config: %w", err)
	}
	s.client = ses.NewFromConfig(cfg)
	return nil
}

func (s *Sink) send(ctx context.Context, b *batch) error {
	if len(b.events) == 0 {
		return nil
	}
	masked := maskAddress(b.address)

	if s.cfg.DryRun {
		s.base.Logger().Info("digest skipped (dry run)",
			logger.Field{Key: "to", Value: masked},
			logger.Field{Key: "events", Value: len(b.events)},
		)
		return nil
	}

	from := strings.TrimSpace(s.cfg.Sender)
	if from == "" {
		return fmt.Errorf("aws_ses: sender required")
	}

	subject, htmlBody, err := s.renderDigest(b)
	if err != nil {
		return err
	}
	textBody := htmlToText(htmlBody)

	if err := s.ensureClient(ctx); err != nil {
		return err
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{b.address},
		},
		Source: aws.String(from),
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(textBody)},
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
	}
	if cs := strings.TrimSpace(s.cfg.ConfigurationSet); cs != "" {
		input.ConfigurationSetName = aws.String(cs)
	}

	attempts := s.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	err = retry.Do(ctx, attempts, s.backoff, func(ctx context.Context) error {
		_, sendErr := s.client.SendEmail(ctx, input)
		return sendErr
	})
	if err != nil {
		s.base.Logger().Error("digest send failed",
			logger.Field{Key: "to", Value: masked},
			logger.Field{Key: "events", Value: len(b.events)},
			logger.Field{Key: "error", Value: err},
		)
		return fmt.Errorf("aws_ses: send digest: %w", err)
	}
	s.base.Logger().Info("digest delivered",
		logger.Field{Key: "to", Value: masked},
		logger.Field{Key: "events", Value: len(b.events)},
	)
	return nil
}

const (
	defaultSubjectTemplate = "Activity digest for {{ name }}"
	headerTemplate         = "<h2>{{ subject }}</h2><p>Hi {{ name }}, while you were away:</p>"
	rowTemplate            = "<tr><td>{{ time }}</td><td>{{ kind }}</td><td>{{ line }}</td></tr>"
	footerTemplate         = "<p>{{ count }} events total.</p>"
)

// renderDigest builds the subject and HTML body for one batch.
func (s *Sink) renderDigest(b *batch) (string, string, error) {
	data := map[string]any{
		"name":  b.viewer,
		"count": len(b.events),
	}

	subjectTpl := strings.TrimSpace(s.cfg.Subject)
	if subjectTpl == "" {
		subjectTpl = defaultSubjectTemplate
	}

	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	subject, err := s.engine.RenderString(subjectTpl, data)
	if err != nil {
		return "", "", fmt.Errorf("aws_ses: render subject: %w", err)
	}
	data["subject"] = subject

	header, err := s.engine.RenderString(headerTemplate, data)
	if err != nil {
		return "", "", fmt.Errorf("aws_ses: render header: %w", err)
	}

	var body strings.Builder
	body.WriteString(header)
	body.WriteString("<table>")
	for _, evt := range b.events {
		row, err := s.engine.RenderString(rowTemplate, map[string]any{
			"time": evt.At.Format("15:04"),
			"kind": string(evt.Kind),
			"line": s.summarize(b.locale, evt),
		})
		if err != nil {
			return "", "", fmt.Errorf("aws_ses: render row: %w", err)
		}
		body.WriteString(row)
	}
	body.WriteString("</table>")

	footer, err := s.engine.RenderString(footerTemplate, data)
	if err != nil {
		return "", "", fmt.Errorf("aws_ses: render footer: %w", err)
	}
	body.WriteString(footer)

	return subject, body.String(), nil
}

// summarize renders one event as a short digest line in the batch locale.
func (s *Sink) summarize(locale string, evt sinks.Event) string {
	text := func(msg media.Message) string {
		if s.translations != nil {
			return s.translations.Resolve(locale, msg)
		}
		if msg.Translatable() {
			return msg.Key
		}
		return msg.Text
	}

	switch evt.Kind {
	case sinks.KindMessage, sinks.KindActionBar:
		return text(evt.Message)
	case sinks.KindTitleShow:
		line := text(evt.Title.Title)
		if sub := text(evt.Title.Subtitle); sub != "" {
			line += " / " + sub
		}
		return line
	case sinks.KindBossBarShow:
		if evt.BossBar == nil {
			return "boss bar"
		}
		return fmt.Sprintf("%s (%d%%)", text(evt.BossBar.Title), int(evt.BossBar.Progress*100))
	case sinks.KindSound:
		return "played " + evt.Sound.Name
	case sinks.KindSoundPositional:
		return "played " + evt.Sound.Name + " nearby"
	case sinks.KindBook:
		return fmt.Sprintf("book %q (%d pages)", text(evt.Book.Title), len(evt.Book.Pages))
	default:
		return string(evt.Kind)
	}
}

func addressFor(v *sinks.Viewer) string {
	meta := v.Meta()
	for _, key := range []string{"address", "email"} {
		if raw, ok := meta[key]; ok {
			if addr := strings.TrimSpace(fmt.Sprint(raw)); addr != "" {
				return addr
			}
		}
	}
	return ""
}

func htmlToText(html string) string {
	plain, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err == nil {
		if trimmed := strings.TrimSpace(plain); trimmed != "" {
			return trimmed
		}
	}
	return stripHTML(html)
}

func stripHTML(html string) string {
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch r {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				b.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func maskAddress(addr string) string {
	if masked, err := masker.Default.String("preserveEnds(2,2)", addr); err == nil && masked != "" {
		return masked
	}
	runes := []rune(addr)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
