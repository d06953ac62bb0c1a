package commands

import (
	internalcommands "github.com/goliatone/go-audience/internal/commands"
	"github.com/goliatone/go-audience/pkg/audience"
	"github.com/goliatone/go-audience/pkg/interfaces/logger"
	command "github.com/goliatone/go-command"
)

// Re-export request types so consumers need not import internal packages.
type (
	MessageInput     = internalcommands.MessageInput
	BroadcastMessage = internalcommands.BroadcastMessage
	ShowTitle        = internalcommands.ShowTitle
	PlaySound        = internalcommands.PlaySound
	ShowBossBar      = internalcommands.ShowBossBar
	HideBossBar      = internalcommands.HideBossBar
	StopSounds       = internalcommands.StopSounds
	OpenBook         = internalcommands.OpenBook
)

// Registry exposes go-command compatible handlers backed by a broadcast audience.
type Registry struct {
	Catalog          *internalcommands.Catalog
	BroadcastMessage command.Commander[BroadcastMessage]
	ShowTitle        command.Commander[ShowTitle]
	PlaySound        command.Commander[PlaySound]
	ShowBossBar      command.Commander[ShowBossBar]
	HideBossBar      command.Commander[HideBossBar]
	StopSounds       command.Commander[StopSounds]
	OpenBook         command.Commander[OpenBook]
}

// Dependencies mirror the internal command dependencies but keep them public.
type Dependencies struct {
	Target audience.Audience
	Logger logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	catalog, err := internalcommands.NewCatalog(internalcommands.Dependencies{
		Target: deps.Target,
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:          catalog,
		BroadcastMessage: catalog.BroadcastMessage,
		ShowTitle:        catalog.ShowTitle,
		PlaySound:        catalog.PlaySound,
		ShowBossBar:      catalog.ShowBossBar,
		HideBossBar:      catalog.HideBossBar,
		StopSounds:       catalog.StopSounds,
		OpenBook:         catalog.OpenBook,
	}, nil
}

// Commanders returns every handler so callers can register them with go-command registries.
func (r *Registry) Commanders() []any {
	if r == nil {
		return nil
	}
	return []any{
		r.BroadcastMessage,
		r.ShowTitle,
		r.PlaySound,
		r.ShowBossBar,
		r.HideBossBar,
		r.StopSounds,
		r.OpenBook,
	}
}
