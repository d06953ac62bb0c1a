package options

import (
	"context"
	"testing"

	"github.com/goliatone/go-audience/internal/storage/memory"
	"github.com/goliatone/go-audience/pkg/audience"
	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/google/uuid"
)

func TestProfileSnapshotStoreLoad(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewViewerProfileRepository()
	snapStore := ProfileSnapshotStore{Repository: repo}

	record := &domain.ViewerProfile{
		ViewerID:     "v1",
		Name:         "Quartz",
		Locale:       "es",
		Capabilities: domain.StringList{"messages", "sounds"},
		Muted:        domain.StringList{"sounds"},
		Enabled:      true,
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	snapshots, err := snapStore.Load(ctx, []ProfileScopeRef{
		{Scope: ViewerScope(), ViewerID: "v1"},
		{Scope: GroupScope(), ViewerID: "group:ops"},
	})
	if err != nil {
		t.Fatalf("load snapshots: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("expected missing group profile to be skipped, got %d snapshots", len(snapshots))
	}
	if snapshots[0].Scope.Name != "viewer" {
		t.Fatalf("unexpected scope name %s", snapshots[0].Scope.Name)
	}
	if snapshots[0].Data[KeyLocale] != "es" {
		t.Fatalf("expected locale in payload, got %+v", snapshots[0].Data)
	}
	if snapshots[0].SnapshotID != record.ID.String() {
		t.Fatalf("expected snapshot id from record")
	}
}

func TestProfileSnapshotStoreSaveCreatesAndUpdates(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewViewerProfileRepository()
	snapStore := ProfileSnapshotStore{Repository: repo}

	ref := ProfileScopeRef{Scope: ViewerScope(), ViewerID: "v2"}

	created, err := snapStore.Save(ctx, ProfileSnapshotInput{
		Ref:          ref,
		Locale:       stringPtr("en"),
		Capabilities: []string{"messages", "titles"},
	})
	if err != nil {
		t.Fatalf("save create: %v", err)
	}
	if created == nil || created.ID == uuid.Nil {
		t.Fatalf("expected created record with ID")
	}
	if !created.Enabled {
		t.Fatalf("expected new profiles to default enabled")
	}
	if len(created.Capabilities) != 2 {
		t.Fatalf("capabilities not stored: %+v", created.Capabilities)
	}

	updated, err := snapStore.Save(ctx, ProfileSnapshotInput{
		Ref:     ref,
		Muted:   []string{"titles"},
		Enabled: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("save update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected update to mutate existing record")
	}
	if updated.Enabled {
		t.Fatalf("expected enabled override")
	}
	if updated.Locale != "en" {
		t.Fatalf("expected untouched locale, got %q", updated.Locale)
	}
	if len(updated.Muted) != 1 || updated.Muted[0] != "titles" {
		t.Fatalf("muted not updated: %+v", updated.Muted)
	}
}

func TestProfileSnapshotStoreResolver(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewViewerProfileRepository()
	snapStore := ProfileSnapshotStore{Repository: repo}

	group := &domain.ViewerProfile{
		ViewerID: "group:ops",
		Muted:    domain.StringList{"boss_bars"},
		Enabled:  true,
	}
	viewer := &domain.ViewerProfile{
		ViewerID:     "v3",
		Locale:       "es",
		Capabilities: domain.StringList{"messages", "boss_bars", "sounds"},
		Enabled:      true,
	}
	for _, record := range []*domain.ViewerProfile{group, viewer} {
		if err := repo.Create(ctx, record); err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}

	resolver, err := snapStore.Resolver(ctx,
		[]ProfileScopeRef{
			{Scope: GroupScope(), ViewerID: "group:ops"},
			{Scope: ViewerScope(), ViewerID: "v3"},
		},
		Defaults(map[string]any{KeyEnabled: true, KeyLocale: "en"}),
	)
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}

	want := audience.CapabilityMessages | audience.CapabilitySounds
	if got := resolver.EffectiveCapabilities(); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := resolver.Locale(); got != "es" {
		t.Fatalf("expected viewer locale, got %q", got)
	}
	if !resolver.Enabled() {
		t.Fatalf("expected delivery enabled")
	}
}

func TestProfileSnapshotStoreRequiresRepository(t *testing.T) {
	var snapStore ProfileSnapshotStore

	if _, err := snapStore.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected repository requirement error")
	}
	if _, err := snapStore.Save(context.Background(), ProfileSnapshotInput{}); err == nil {
		t.Fatalf("expected repository requirement error")
	}
}

func boolPtr(v bool) *bool { return &v }

func stringPtr(v string) *string { return &v }
