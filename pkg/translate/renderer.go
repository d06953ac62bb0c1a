package translate

import (
	"errors"
	"strings"

	"github.com/goliatone/go-audience/pkg/audience"
	"github.com/goliatone/go-audience/pkg/interfaces/logger"
	"github.com/goliatone/go-audience/pkg/media"
	i18n "github.com/goliatone/go-i18n"
)

// Renderer resolves translatable messages into locale-specific text.
// Literal messages pass through untouched.
type Renderer struct {
	translator    i18n.Translator
	fallbacks     i18n.FallbackResolver
	logger        logger.Logger
	defaultLocale string
}

// Dependencies wires the translator stack required by the renderer.
type Dependencies struct {
	Translator i18n.Translator
	Fallbacks  i18n.FallbackResolver
	Logger     logger.Logger
}

// ErrTranslatorRequired is returned when New is called without a translator.
var ErrTranslatorRequired = errors.New("translate: translator is required")

type rendererOptions struct {
	defaultLocale string
}

// Option configures the renderer.
type Option func(*rendererOptions)

// WithDefaultLocale overrides the locale used when a viewer does not declare one.
func WithDefaultLocale(locale string) Option {
	return func(ro *rendererOptions) {
		ro.defaultLocale = locale
	}
}

// New builds a renderer from the provided dependencies.
func New(deps Dependencies, opts ...Option) (*Renderer, error) {
	if deps.Translator == nil {
		return nil, ErrTranslatorRequired
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}

	settings := rendererOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	defaultLocale := strings.TrimSpace(settings.defaultLocale)
	if defaultLocale == "" {
		if provider, ok := deps.Translator.(interface{ DefaultLocale() string }); ok {
			defaultLocale = provider.DefaultLocale()
		}
	}
	if defaultLocale == "" {
		defaultLocale = "en"
	}

	return &Renderer{
		translator:    deps.Translator,
		fallbacks:     deps.Fallbacks,
		logger:        deps.Logger,
		defaultLocale: defaultLocale,
	}, nil
}

// DefaultLocale returns the locale used when a viewer declares none.
func (r *Renderer) DefaultLocale() string {
	if r == nil {
		return "en"
	}
	return r.defaultLocale
}

// LocaleFor returns the locale an audience member wants content in. Members
// advertise one by implementing Locale() string; everyone else gets the
// renderer's default.
func (r *Renderer) LocaleFor(a audience.Audience) string {
	if provider, ok := a.(interface{ Locale() string }); ok {
		if locale := strings.TrimSpace(provider.Locale()); locale != "" {
			return locale
		}
	}
	return r.DefaultLocale()
}

// Resolve renders a message for the given locale. Keyed messages walk the
// locale fallback chain and degrade to the key text when no catalog carries
// them, so a half-translated deployment still shows something legible.
func (r *Renderer) Resolve(locale string, msg media.Message) string {
	if !msg.Translatable() {
		return msg.Text
	}
	if r == nil {
		return msg.Key
	}

	for _, candidate := range r.localeChain(locale) {
		text, err := r.translator.Translate(candidate, msg.Key, msg.Args...)
		if err == nil {
			return text
		}
		if !errors.Is(err, i18n.ErrMissingTranslation) {
			r.logger.Error("translate message",
				logger.Field{Key: "key", Value: msg.Key},
				logger.Field{Key: "locale", Value: candidate},
				logger.Field{Key: "error", Value: err})
			return msg.Key
		}
	}

	r.logger.Warn("missing translation",
		logger.Field{Key: "key", Value: msg.Key},
		logger.Field{Key: "locale", Value: locale})
	return msg.Key
}

// Localize rewrites a message into its literal form for the given locale.
func (r *Renderer) Localize(locale string, msg media.Message) media.Message {
	if !msg.Translatable() {
		return msg
	}
	return media.Text(r.Resolve(locale, msg))
}

func (r *Renderer) localeChain(requested string) []string {
	chain := make([]string, 0, 4)
	appendUnique := func(locale string) {
		if locale == "" {
			return
		}
		for _, existing := range chain {
			if strings.EqualFold(existing, locale) {
				return
			}
		}
		chain = append(chain, locale)
	}

	appendUnique(strings.TrimSpace(requested))
	if r.fallbacks != nil {
		for _, fb := range r.fallbacks.Resolve(requested) {
			appendUnique(fb)
		}
	}
	appendUnique(r.defaultLocale)
	appendUnique("en")
	return chain
}
