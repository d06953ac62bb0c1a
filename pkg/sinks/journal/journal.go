package journal

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/logger"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	"github.com/goliatone/go-audience/pkg/media"
	"github.com/goliatone/go-audience/pkg/sinks"
	"golang.org/x/crypto/chacha20poly1305"
)

// ErrRepositoryRequired is returned when the sink is built without storage.
var ErrRepositoryRequired = errors.New("journal: delivery record repository is required")

// Sink persists every delivered event as a domain.DeliveryRecord. With
// encryption enabled the payload is sealed at rest and only readable through
// Payload.
type Sink struct {
	name string
	repo store.DeliveryRecordRepository
	base sinks.BaseHandler
	key  []byte
	aead cipherSuite
}

type cipherSuite interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	NonceSize() int
}

type Option func(*Sink)

// WithName overrides the sink name (defaults to "journal").
func WithName(name string) Option {
	return func(s *Sink) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger attaches a logger for delivery diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *Sink) {
		s.base = sinks.NewBaseHandler(l)
	}
}

// WithEncryption seals payloads at rest with XChaCha20-Poly1305. The key
// must be chacha20poly1305.KeySize bytes.
func WithEncryption(key []byte) Option {
	return func(s *Sink) {
		s.key = key
	}
}

// New constructs a journal sink writing through repo.
func New(repo store.DeliveryRecordRepository, opts ...Option) (*Sink, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	s := &Sink{
		name: "journal",
		repo: repo,
		base: sinks.NewBaseHandler(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.key != nil {
		if len(s.key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("journal: key must be %d bytes", chacha20poly1305.KeySize)
		}
		aead, err := chacha20poly1305.NewX(s.key)
		if err != nil {
			return nil, err
		}
		s.aead = aead
		s.key = nil
	}
	return s, nil
}

// Name implements sinks.Handler.
func (s *Sink) Name() string {
	return s.name
}

// Encrypting reports whether payloads are sealed before persisting.
func (s *Sink) Encrypting() bool {
	return s.aead != nil
}

// Deliver records the event for the viewer.
func (s *Sink) Deliver(ctx context.Context, v *sinks.Viewer, evt sinks.Event) error {
	rec := &domain.DeliveryRecord{
		ViewerID:    v.ID().String(),
		ViewerName:  v.Name(),
		Sink:        s.name,
		Kind:        string(evt.Kind),
		Locale:      v.Locale(),
		Status:      domain.DeliveryStatusDelivered,
		DeliveredAt: evt.At,
	}

	payload := payloadFor(evt)
	if s.aead != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("journal: encode payload: %w", err)
		}
		nonce := make([]byte, s.aead.NonceSize())
		if _, err := rand.Read(nonce); err != nil {
			return fmt.Errorf("journal: nonce: %w", err)
		}
		rec.Ciphertext = s.aead.Seal(nil, nonce, raw, nil)
		rec.Nonce = nonce
	} else {
		rec.Payload = payload
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return fmt.Errorf("journal: persist record: %w", err)
	}
	s.base.Logger().Debug("journal event",
		logger.Field{Key: "viewer", Value: v.Name()},
		logger.Field{Key: "kind", Value: string(evt.Kind)},
		logger.Field{Key: "encrypted", Value: s.aead != nil},
	)
	return nil
}

// Payload returns the record payload, opening the sealed form when needed.
func (s *Sink) Payload(rec *domain.DeliveryRecord) (domain.JSONMap, error) {
	if rec == nil {
		return nil, errors.New("journal: record is nil")
	}
	if !rec.Encrypted() {
		return rec.Payload, nil
	}
	if s.aead == nil {
		return nil, errors.New("journal: record is encrypted and no key is configured")
	}
	raw, err := s.aead.Open(nil, rec.Nonce, rec.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("journal: decrypt payload: %w", err)
	}
	var payload domain.JSONMap
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("journal: decode payload: %w", err)
	}
	return payload, nil
}

// payloadFor flattens the event fields matching its kind.
func payloadFor(evt sinks.Event) domain.JSONMap {
	payload := domain.JSONMap{}
	switch evt.Kind {
	case sinks.KindMessage, sinks.KindActionBar:
		putMessage(payload, "message", evt.Message)
	case sinks.KindTitleShow:
		putMessage(payload, "title", evt.Title.Title)
		putMessage(payload, "subtitle", evt.Title.Subtitle)
		if t := evt.Title.Times; t.FadeIn > 0 || t.Stay > 0 || t.FadeOut > 0 {
			payload["times"] = map[string]any{
				"fade_in_ms":  t.FadeIn.Milliseconds(),
				"stay_ms":     t.Stay.Milliseconds(),
				"fade_out_ms": t.FadeOut.Milliseconds(),
			}
		}
	case sinks.KindBossBarShow, sinks.KindBossBarHide:
		if evt.BossBar != nil {
			putMessage(payload, "title", evt.BossBar.Title)
			payload["progress"] = evt.BossBar.Progress
			payload["color"] = string(evt.BossBar.Color)
			payload["overlay"] = string(evt.BossBar.Overlay)
		}
	case sinks.KindSound, sinks.KindSoundPositional:
		payload["name"] = evt.Sound.Name
		payload["source"] = string(evt.Sound.Source)
		payload["volume"] = evt.Sound.Volume
		payload["pitch"] = evt.Sound.Pitch
		if evt.Position != nil {
			payload["position"] = map[string]any{
				"x": evt.Position.X,
				"y": evt.Position.Y,
				"z": evt.Position.Z,
			}
		}
	case sinks.KindSoundStop:
		if evt.Stop.Name != "" {
			payload["name"] = evt.Stop.Name
		}
		if evt.Stop.Source != "" {
			payload["source"] = string(evt.Stop.Source)
		}
	case sinks.KindBook:
		putMessage(payload, "title", evt.Book.Title)
		putMessage(payload, "author", evt.Book.Author)
		pages := make([]any, 0, len(evt.Book.Pages))
		for _, page := range evt.Book.Pages {
			pages = append(pages, messageMap(page))
		}
		payload["pages"] = pages
	}
	return payload
}

func putMessage(payload domain.JSONMap, field string, msg media.Message) {
	if m := messageMap(msg); m != nil {
		payload[field] = m
	}
}

func messageMap(msg media.Message) map[string]any {
	if msg.Translatable() {
		m := map[string]any{"key": msg.Key}
		if len(msg.Args) > 0 {
			m["args"] = msg.Args
		}
		return m
	}
	if msg.Text == "" {
		return nil
	}
	return map[string]any{"text": msg.Text}
}
