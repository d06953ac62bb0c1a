package options

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	opts "github.com/goliatone/go-options"
	layering "github.com/goliatone/go-options/layering"
)

// ProfileScopeRef names a stored profile and the scope its snapshot joins.
// Group policy lives in the same table under the group's own viewer id.
type ProfileScopeRef struct {
	Scope    opts.Scope
	ViewerID string
}

func (ref ProfileScopeRef) validate() (string, error) {
	id := strings.TrimSpace(ref.ViewerID)
	if id == "" {
		return "", fmt.Errorf("options: scope %s has no viewer id", ref.Scope.Name)
	}
	if ref.Scope.Name == "" {
		return "", fmt.Errorf("options: scope for viewer %s has no name", id)
	}
	return id, nil
}

// ProfileSnapshotInput captures the mutable fields persisted for a scope.
// Nil pointers leave the stored value untouched.
type ProfileSnapshotInput struct {
	Ref          ProfileScopeRef
	Name         *string
	Address      *string
	Locale       *string
	Capabilities []string
	Muted        []string
	Enabled      *bool
	Metadata     domain.JSONMap
}

func (in ProfileSnapshotInput) apply(profile *domain.ViewerProfile) {
	if in.Name != nil {
		profile.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		profile.Address = strings.TrimSpace(*in.Address)
	}
	if in.Locale != nil {
		profile.Locale = strings.TrimSpace(*in.Locale)
	}
	if in.Capabilities != nil {
		profile.Capabilities = domain.StringList(slices.Clone(in.Capabilities))
	}
	if in.Muted != nil {
		profile.Muted = domain.StringList(slices.Clone(in.Muted))
	}
	if in.Enabled != nil {
		profile.Enabled = *in.Enabled
	}
	if in.Metadata != nil {
		profile.Metadata = cloneJSON(in.Metadata)
	}
}

// ProfileSnapshotStore adapts the viewer profile repository to scope
// snapshots consumable by NewResolver.
type ProfileSnapshotStore struct {
	Repository store.ViewerProfileRepository
}

var errProfileRepositoryRequired = errors.New("options: profile repository is required")

// Load pulls profiles for the supplied scope references and converts them
// into scope snapshots. Missing profiles contribute no layer.
func (s ProfileSnapshotStore) Load(ctx context.Context, refs []ProfileScopeRef) ([]Snapshot, error) {
	if s.Repository == nil {
		return nil, errProfileRepositoryRequired
	}

	var snapshots []Snapshot
	for _, ref := range refs {
		viewerID, err := ref.validate()
		if err != nil {
			return nil, err
		}
		profile, err := s.Repository.GetByViewerID(ctx, viewerID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, profileSnapshot(ref.Scope, profile))
	}
	return snapshots, nil
}

// Save upserts a profile for the provided scope reference. New profiles
// start enabled unless the input says otherwise.
func (s ProfileSnapshotStore) Save(ctx context.Context, input ProfileSnapshotInput) (*domain.ViewerProfile, error) {
	if s.Repository == nil {
		return nil, errProfileRepositoryRequired
	}
	viewerID := strings.TrimSpace(input.Ref.ViewerID)
	if viewerID == "" {
		return nil, errors.New("options: viewer id is required")
	}

	profile, err := s.Repository.GetByViewerID(ctx, viewerID)
	if errors.Is(err, store.ErrNotFound) {
		return s.insert(ctx, viewerID, input)
	}
	if err != nil {
		return nil, err
	}

	input.apply(profile)
	if err := s.Repository.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s ProfileSnapshotStore) insert(ctx context.Context, viewerID string, input ProfileSnapshotInput) (*domain.ViewerProfile, error) {
	record := &domain.ViewerProfile{ViewerID: viewerID, Enabled: true}
	input.apply(record)
	if err := s.Repository.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Resolver loads the referenced profiles and merges them under the provided
// base snapshots, typically a Defaults layer.
func (s ProfileSnapshotStore) Resolver(ctx context.Context, refs []ProfileScopeRef, base ...Snapshot) (*Resolver, error) {
	loaded, err := s.Load(ctx, refs)
	if err != nil {
		return nil, err
	}
	snapshots := make([]Snapshot, 0, len(base)+len(loaded))
	snapshots = append(snapshots, base...)
	snapshots = append(snapshots, loaded...)
	return NewResolver(snapshots...)
}

func profileSnapshot(scope opts.Scope, profile *domain.ViewerProfile) Snapshot {
	data := map[string]any{KeyEnabled: profile.Enabled}
	if len(profile.Capabilities) > 0 {
		data[KeyCapabilities] = slices.Clone([]string(profile.Capabilities))
	}
	if len(profile.Muted) > 0 {
		data[KeyMuted] = slices.Clone([]string(profile.Muted))
	}
	if profile.Locale != "" {
		data[KeyLocale] = profile.Locale
	}
	if len(profile.Metadata) > 0 {
		data["metadata"] = cloneJSON(profile.Metadata)
	}
	return Snapshot{
		Scope:      scope,
		Data:       data,
		SnapshotID: profile.ID.String(),
	}
}

// cloneJSON deep-copies nested metadata so snapshots never alias rows.
func cloneJSON(src domain.JSONMap) domain.JSONMap {
	if len(src) == 0 {
		return nil
	}
	return domain.JSONMap(layering.Clone(map[string]any(src)))
}
