package options

import (
	"testing"

	"github.com/goliatone/go-audience/pkg/audience"
	opts "github.com/goliatone/go-options"
)

func TestNewResolverMergesSnapshots(t *testing.T) {
	resolver, err := NewResolver(
		Defaults(map[string]any{
			KeyEnabled: true,
			KeyLocale:  "en",
			KeyMuted:   []any{"sounds"},
		}),
		Viewer(map[string]any{
			KeyEnabled: false,
			KeyLocale:  "es",
			KeyMuted:   []string{"books"},
		}),
	)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	enabled, trace, err := resolver.ResolveBool(KeyEnabled)
	if err != nil {
		t.Fatalf("resolve bool: %v", err)
	}
	if enabled {
		t.Fatalf("expected viewer override to disable delivery")
	}
	if trace.Path != KeyEnabled || len(trace.Layers) != 2 {
		t.Fatalf("unexpected trace contents: %+v", trace)
	}

	locale, _, err := resolver.ResolveString(KeyLocale)
	if err != nil {
		t.Fatalf("resolve string: %v", err)
	}
	if locale != "es" {
		t.Fatalf("expected locale es, got %s", locale)
	}

	muted, _, err := resolver.ResolveStringSlice(KeyMuted)
	if err != nil {
		t.Fatalf("resolve list: %v", err)
	}
	if len(muted) != 1 || muted[0] != "books" {
		t.Fatalf("muted merge incorrect: %+v", muted)
	}

	if _, err := resolver.Schema(); err != nil {
		t.Fatalf("schema: %v", err)
	}
}

func TestNewResolverValidation(t *testing.T) {
	_, err := NewResolver()
	if err != ErrNoSnapshots {
		t.Fatalf("expected ErrNoSnapshots, got %v", err)
	}

	_, err = NewResolver(Snapshot{
		Scope: opts.Scope{},
		Data:  map[string]any{},
	})
	if err == nil {
		t.Fatalf("expected error for missing scope name")
	}
}

func TestEffectiveCapabilities(t *testing.T) {
	cases := []struct {
		name string
		data map[string]any
		want audience.Capability
	}{
		{
			name: "no keys means everything",
			data: map[string]any{},
			want: audience.All,
		},
		{
			name: "declared capabilities only",
			data: map[string]any{
				KeyCapabilities: []string{"messages", "sounds"},
			},
			want: audience.CapabilityMessages | audience.CapabilitySounds,
		},
		{
			name: "muted removed from declared",
			data: map[string]any{
				KeyCapabilities: []string{"messages", "sounds"},
				KeyMuted:        []string{"sounds"},
			},
			want: audience.CapabilityMessages,
		},
		{
			name: "muted alone narrows everything",
			data: map[string]any{
				KeyMuted: []string{"boss_bars", "books"},
			},
			want: audience.All &^ (audience.CapabilityBossBars | audience.CapabilityBooks),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver, err := NewResolver(Viewer(tc.data))
			if err != nil {
				t.Fatalf("NewResolver: %v", err)
			}
			if got := resolver.EffectiveCapabilities(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestLayeredCapabilityResolution(t *testing.T) {
	resolver, err := NewResolver(
		Defaults(map[string]any{
			KeyCapabilities: []string{"messages", "titles", "sounds"},
		}),
		Group(map[string]any{
			KeyMuted: []string{"sounds"},
		}),
		Viewer(map[string]any{
			KeyLocale: "es",
		}),
	)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	want := audience.CapabilityMessages | audience.CapabilityTitles
	if got := resolver.EffectiveCapabilities(); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := resolver.Locale(); got != "es" {
		t.Fatalf("expected es, got %q", got)
	}
	if !resolver.Enabled() {
		t.Fatalf("expected enabled when no layer disables delivery")
	}
}

func TestEnabledDefaultsTrueWhenMissing(t *testing.T) {
	resolver, err := NewResolver(Viewer(map[string]any{KeyLocale: "en"}))
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	if !resolver.Enabled() {
		t.Fatalf("expected missing key to mean enabled")
	}
	if got := resolver.Locale(); got != "en" {
		t.Fatalf("expected en, got %q", got)
	}

	disabled, err := NewResolver(Viewer(map[string]any{KeyEnabled: false}))
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if disabled.Enabled() {
		t.Fatalf("expected disabled")
	}
	if got := disabled.Locale(); got != "" {
		t.Fatalf("expected empty locale, got %q", got)
	}
}
