// Package options resolves per-viewer delivery options by merging scope
// layers: shipped defaults, then group policy, then the viewer's own
// profile. Higher-priority layers win per key.
package options

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-audience/pkg/audience"
	opts "github.com/goliatone/go-options"
	layering "github.com/goliatone/go-options/layering"
)

// Payload keys understood by the delivery helpers.
const (
	KeyCapabilities = "capabilities"
	KeyMuted        = "muted"
	KeyLocale       = "locale"
	KeyEnabled      = "enabled"
)

// DefaultsScope is the lowest-priority layer, holding shipped defaults.
func DefaultsScope() opts.Scope {
	return opts.NewScope("defaults", opts.ScopePrioritySystem, opts.WithScopeLabel("Defaults"))
}

// GroupScope holds policy shared by a group of viewers.
func GroupScope() opts.Scope {
	return opts.NewScope("group", opts.ScopePriorityTenant, opts.WithScopeLabel("Group"))
}

// ViewerScope is the highest-priority layer, holding the viewer's own
// profile values.
func ViewerScope() opts.Scope {
	return opts.NewScope("viewer", opts.ScopePriorityUser, opts.WithScopeLabel("Viewer"))
}

// Snapshot is one scope layer's payload. The payload is cloned on merge,
// so callers may keep mutating the map they passed in.
type Snapshot struct {
	Scope      opts.Scope
	Data       map[string]any
	SnapshotID string
}

// Defaults builds a defaults-scope snapshot from literal values.
func Defaults(data map[string]any) Snapshot {
	return Snapshot{Scope: DefaultsScope(), Data: data}
}

// Group builds a group-scope snapshot from literal values.
func Group(data map[string]any) Snapshot {
	return Snapshot{Scope: GroupScope(), Data: data}
}

// Viewer builds a viewer-scope snapshot from literal values.
func Viewer(data map[string]any) Snapshot {
	return Snapshot{Scope: ViewerScope(), Data: data}
}

func (s Snapshot) layer() (opts.Layer[map[string]any], error) {
	if s.Scope.Name == "" {
		return opts.Layer[map[string]any]{}, errors.New("options: snapshot scope has no name")
	}
	var extra []opts.LayerOption[map[string]any]
	if s.SnapshotID != "" {
		extra = append(extra, opts.WithSnapshotID[map[string]any](s.SnapshotID))
	}
	var data map[string]any
	if len(s.Data) > 0 {
		data = layering.Clone(s.Data)
	}
	return opts.NewLayer(s.Scope, data, extra...), nil
}

// Resolver answers typed lookups against a merged scope stack.
type Resolver struct {
	merged *opts.Options[map[string]any]
}

// ErrNoSnapshots signals that at least one scope snapshot must be provided.
var ErrNoSnapshots = errors.New("options: at least one snapshot is required")

// NewResolver merges the given snapshots, ordered by their scope priority.
func NewResolver(snapshots ...Snapshot) (*Resolver, error) {
	if len(snapshots) == 0 {
		return nil, ErrNoSnapshots
	}

	layers := make([]opts.Layer[map[string]any], len(snapshots))
	for i, snap := range snapshots {
		layer, err := snap.layer()
		if err != nil {
			return nil, err
		}
		layers[i] = layer
	}

	stack, err := opts.NewStack(layers...)
	if err != nil {
		return nil, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return nil, err
	}
	return &Resolver{merged: merged}, nil
}

// Resolve fetches the value stored at path and returns the accompanying trace.
func (r *Resolver) Resolve(path string) (any, opts.Trace, error) {
	if r == nil || r.merged == nil {
		return nil, opts.Trace{Path: path}, errors.New("options: resolver is empty")
	}
	return r.merged.ResolveWithTrace(path)
}

// ResolveBool returns the boolean stored at path.
func (r *Resolver) ResolveBool(path string) (bool, opts.Trace, error) {
	return resolveAs[bool](r, path, "boolean")
}

// ResolveString returns the string stored at path.
func (r *Resolver) ResolveString(path string) (string, opts.Trace, error) {
	return resolveAs[string](r, path, "string")
}

// ResolveStringSlice returns the value at path coerced into []string.
// JSON round-trips turn lists into []any, so both element shapes decode.
func (r *Resolver) ResolveStringSlice(path string) ([]string, opts.Trace, error) {
	value, trace, err := r.Resolve(path)
	if err != nil {
		return nil, trace, err
	}
	switch v := value.(type) {
	case []string:
		return slices.Clone(v), trace, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, trace, fmt.Errorf("options: path %s holds a non-string entry", path)
			}
			out = append(out, str)
		}
		return out, trace, nil
	}
	return nil, trace, fmt.Errorf("options: path %s is not a list of strings", path)
}

// Schema exports the schema of the merged stack.
func (r *Resolver) Schema() (opts.SchemaDocument, error) {
	if r == nil || r.merged == nil {
		return opts.SchemaDocument{}, errors.New("options: resolver is empty")
	}
	return r.merged.Schema()
}

// EffectiveCapabilities returns the declared capability set minus muted
// kinds. A viewer that declares no capabilities key receives everything.
func (r *Resolver) EffectiveCapabilities() audience.Capability {
	declared := audience.All
	if names, _, err := r.ResolveStringSlice(KeyCapabilities); err == nil {
		declared = audience.ParseCapabilities(names...)
	}
	if muted, _, err := r.ResolveStringSlice(KeyMuted); err == nil {
		declared &^= audience.ParseCapabilities(muted...)
	}
	return declared
}

// Locale returns the resolved viewer locale, empty when no layer sets one.
func (r *Resolver) Locale() string {
	locale, _, err := r.ResolveString(KeyLocale)
	if err != nil {
		return ""
	}
	return locale
}

// Enabled reports whether delivery is switched on. Absence means enabled.
func (r *Resolver) Enabled() bool {
	enabled, _, err := r.ResolveBool(KeyEnabled)
	if err != nil {
		return true
	}
	return enabled
}

func resolveAs[T any](r *Resolver, path, want string) (T, opts.Trace, error) {
	var zero T
	value, trace, err := r.Resolve(path)
	if err != nil {
		return zero, trace, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, trace, fmt.Errorf("options: path %s is not a %s", path, want)
	}
	return typed, trace, nil
}
