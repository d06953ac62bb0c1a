package config

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/goliatone/go-config/cfgx"
	"golang.org/x/crypto/chacha20poly1305"
)

// Config captures module-level configuration knobs. Feature packages
// (translate, journal, digest, ratelimit) pull from these nested structs.
type Config struct {
	Localization LocalizationConfig `mapstructure:"localization" json:"localization"`
	Journal      JournalConfig      `mapstructure:"journal" json:"journal"`
	Digest       DigestConfig       `mapstructure:"digest" json:"digest"`
	Limits       LimitsConfig       `mapstructure:"limits" json:"limits"`
}

// LocalizationConfig controls default locale + fallback chains.
type LocalizationConfig struct {
	DefaultLocale string `mapstructure:"default_locale" json:"default_locale"`
}

// JournalConfig governs delivery persistence. EncryptionKey, when set, is
// the hex form of a 32-byte XChaCha20-Poly1305 key.
type JournalConfig struct {
	Enabled       bool   `mapstructure:"enabled" json:"enabled"`
	EncryptionKey string `mapstructure:"encryption_key" json:"encryption_key,omitempty"`
}

// Key decodes the configured encryption key, nil when none is set.
func (j JournalConfig) Key() ([]byte, error) {
	if j.EncryptionKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(j.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("config: journal.encryption_key: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("config: journal.encryption_key must decode to %d bytes", chacha20poly1305.KeySize)
	}
	return key, nil
}

// DigestConfig scopes the email digest sink.
type DigestConfig struct {
	Enabled     bool   `mapstructure:"enabled" json:"enabled"`
	Sender      string `mapstructure:"sender" json:"sender"`
	Subject     string `mapstructure:"subject" json:"subject"`
	MaxEvents   int    `mapstructure:"max_events" json:"max_events"`
	MaxAttempts int    `mapstructure:"max_attempts" json:"max_attempts"`
	DryRun      bool   `mapstructure:"dry_run" json:"dry_run"`
}

// LimitsConfig feeds the rate limiting wrapper. A zero PerSecond leaves
// sends unshed.
type LimitsConfig struct {
	PerSecond float64 `mapstructure:"per_second" json:"per_second"`
	Burst     int     `mapstructure:"burst" json:"burst"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Localization: LocalizationConfig{DefaultLocale: "en"},
		Journal: JournalConfig{
			Enabled: true,
		},
		Digest: DigestConfig{
			Subject:     "Activity digest",
			MaxEvents:   20,
			MaxAttempts: 3,
		},
		Limits: LimitsConfig{
			PerSecond: 10,
			Burst:     10,
		},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.Localization.DefaultLocale == "" {
		return errors.New("localization.default_locale is required")
	}
	if _, err := c.Journal.Key(); err != nil {
		return err
	}
	if c.Digest.MaxEvents <= 0 {
		return fmt.Errorf("digest.max_events must be > 0")
	}
	if c.Digest.MaxAttempts <= 0 {
		return fmt.Errorf("digest.max_attempts must be > 0")
	}
	if c.Digest.Enabled && c.Digest.Sender == "" {
		return fmt.Errorf("digest.sender is required when the digest is enabled")
	}
	if c.Limits.PerSecond < 0 {
		return fmt.Errorf("limits.per_second must be >= 0")
	}
	if c.Limits.Burst < 0 {
		return fmt.Errorf("limits.burst must be >= 0")
	}
	return nil
}

// Load builds a Config from input (a map, a Config value, or anything
// cfgx understands), fills defaults, and validates. cfgx.Build yields a
// zero struct for inputs it does not recognize yet; a JSON round-trip
// picks up the slack for those.
func Load(input any, opts ...LoadOption) (Config, error) {
	var settings loadOptions
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}
	if reflect.DeepEqual(cfg, Config{}) {
		if err := decodeInto(&cfg, input); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

// withDefaults backfills unset scalar knobs. Booleans are left alone so
// an explicit false survives loading.
func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Localization.DefaultLocale == "" {
		c.Localization.DefaultLocale = defaults.Localization.DefaultLocale
	}
	if c.Digest.Subject == "" {
		c.Digest.Subject = defaults.Digest.Subject
	}
	if c.Digest.MaxEvents == 0 {
		c.Digest.MaxEvents = defaults.Digest.MaxEvents
	}
	if c.Digest.MaxAttempts == 0 {
		c.Digest.MaxAttempts = defaults.Digest.MaxAttempts
	}
	return c
}

func decodeInto(cfg *Config, input any) error {
	switch v := input.(type) {
	case nil:
	case Config:
		*cfg = v
	case *Config:
		if v != nil {
			*cfg = *v
		}
	case map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, cfg)
	default:
		return fmt.Errorf("config: cannot decode %T", input)
	}
	return nil
}
