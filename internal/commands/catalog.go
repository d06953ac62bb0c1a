package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-audience/pkg/audience"
	"github.com/goliatone/go-audience/pkg/interfaces/logger"
	"github.com/goliatone/go-audience/pkg/media"
	command "github.com/goliatone/go-command"
)

// Catalog exposes go-command compatible handlers for host transports. Every
// handler dispatches into a single broadcast target audience.
type Catalog struct {
	BroadcastMessage command.Commander[BroadcastMessage]
	ShowTitle        command.Commander[ShowTitle]
	PlaySound        command.Commander[PlaySound]
	ShowBossBar      command.Commander[ShowBossBar]
	HideBossBar      command.Commander[HideBossBar]
	StopSounds       command.Commander[StopSounds]
	OpenBook         command.Commander[OpenBook]
}

// Dependencies wires the broadcast target into the command catalog.
type Dependencies struct {
	Target audience.Audience
	Logger logger.Logger
}

// core is shared by every handler. Boss bars travel by pointer, so the
// catalog keeps the bars it has shown keyed by caller-supplied id until a
// hide releases them.
type core struct {
	target audience.Audience
	log    logger.Logger

	mu   sync.Mutex
	bars map[string]*media.BossBar
}

// NewCatalog builds the command catalog using the supplied dependencies.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Target == nil {
		return nil, errors.New("commands: broadcast target is required")
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}

	c := &core{
		target: deps.Target,
		log:    deps.Logger,
		bars:   make(map[string]*media.BossBar),
	}
	return &Catalog{
		BroadcastMessage: messageCommand{core: c},
		ShowTitle:        titleCommand{core: c},
		PlaySound:        soundCommand{core: c},
		ShowBossBar:      bossBarShowCommand{core: c},
		HideBossBar:      bossBarHideCommand{core: c},
		StopSounds:       soundStopCommand{core: c},
		OpenBook:         bookCommand{core: c},
	}, nil
}

// MessageInput names either literal text or a translation key with optional
// format arguments.
type MessageInput struct {
	Text string `json:"text,omitempty"`
	Key  string `json:"key,omitempty"`
	Args []any  `json:"args,omitempty"`
}

func (m MessageInput) empty() bool {
	return strings.TrimSpace(m.Text) == "" && strings.TrimSpace(m.Key) == ""
}

func (m MessageInput) toMedia() media.Message {
	if key := strings.TrimSpace(m.Key); key != "" {
		return media.Translatable(key, m.Args...)
	}
	return media.Text(m.Text)
}

// BroadcastMessage sends chat or action bar text to the broadcast target.
type BroadcastMessage struct {
	Message   MessageInput `json:"message"`
	ActionBar bool         `json:"action_bar"`
}

type messageCommand struct {
	core *core
}

func (c messageCommand) Execute(ctx context.Context, msg BroadcastMessage) error {
	if msg.Message.empty() {
		return errors.New("commands: message text or key is required")
	}
	payload := msg.Message.toMedia()
	if msg.ActionBar {
		c.core.target.SendActionBar(payload)
	} else {
		c.core.target.SendMessage(payload)
	}
	c.core.log.Debug("broadcast message", logger.Field{Key: "action_bar", Value: msg.ActionBar})
	return nil
}

// ShowTitle displays a title with optional subtitle and timing overrides in
// milliseconds. Zero timings defer to the displaying platform.
type ShowTitle struct {
	Title     MessageInput `json:"title"`
	Subtitle  MessageInput `json:"subtitle"`
	FadeInMS  int          `json:"fade_in_ms"`
	StayMS    int          `json:"stay_ms"`
	FadeOutMS int          `json:"fade_out_ms"`
}

type titleCommand struct {
	core *core
}

func (c titleCommand) Execute(ctx context.Context, msg ShowTitle) error {
	if msg.Title.empty() && msg.Subtitle.empty() {
		return errors.New("commands: title or subtitle is required")
	}
	c.core.target.ShowTitle(media.Title{
		Title:    msg.Title.toMedia(),
		Subtitle: msg.Subtitle.toMedia(),
		Times: media.Times{
			FadeIn:  time.Duration(msg.FadeInMS) * time.Millisecond,
			Stay:    time.Duration(msg.StayMS) * time.Millisecond,
			FadeOut: time.Duration(msg.FadeOutMS) * time.Millisecond,
		},
	})
	return nil
}

// PlaySound plays a named sound, optionally at a world position.
type PlaySound struct {
	Name       string  `json:"name"`
	Source     string  `json:"source"`
	Volume     float32 `json:"volume"`
	Pitch      float32 `json:"pitch"`
	Positional bool    `json:"positional"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
}

type soundCommand struct {
	core *core
}

func (c soundCommand) Execute(ctx context.Context, msg PlaySound) error {
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		return errors.New("commands: sound name is required")
	}
	source, err := parseSoundSource(msg.Source)
	if err != nil {
		return err
	}

	sound := media.NewSound(name)
	sound.Source = source
	if msg.Volume > 0 {
		sound.Volume = msg.Volume
	}
	if msg.Pitch > 0 {
		sound.Pitch = msg.Pitch
	}

	if msg.Positional {
		c.core.target.PlaySoundAt(sound, msg.X, msg.Y, msg.Z)
	} else {
		c.core.target.PlaySound(sound)
	}
	return nil
}

// ShowBossBar shows or updates the bar registered under ID.
type ShowBossBar struct {
	ID       string       `json:"id"`
	Title    MessageInput `json:"title"`
	Progress float32      `json:"progress"`
	Color    string       `json:"color"`
	Overlay  string       `json:"overlay"`
}

type bossBarShowCommand struct {
	core *core
}

func (c bossBarShowCommand) Execute(ctx context.Context, msg ShowBossBar) error {
	id := strings.TrimSpace(msg.ID)
	if id == "" {
		return errors.New("commands: boss bar id is required")
	}
	if msg.Title.empty() {
		return errors.New("commands: boss bar title is required")
	}
	color, err := parseBossBarColor(msg.Color)
	if err != nil {
		return err
	}
	overlay, err := parseBossBarOverlay(msg.Overlay)
	if err != nil {
		return err
	}

	c.core.mu.Lock()
	bar, ok := c.core.bars[id]
	if !ok {
		bar = media.NewBossBar(msg.Title.toMedia())
		c.core.bars[id] = bar
	}
	bar.Title = msg.Title.toMedia()
	bar.Color = color
	bar.Overlay = overlay
	if msg.Progress > 0 {
		bar.Progress = msg.Progress
	}
	c.core.mu.Unlock()

	c.core.target.ShowBossBar(bar)
	return nil
}

// HideBossBar hides the bar previously shown under ID and releases it.
type HideBossBar struct {
	ID string `json:"id"`
}

type bossBarHideCommand struct {
	core *core
}

func (c bossBarHideCommand) Execute(ctx context.Context, msg HideBossBar) error {
	id := strings.TrimSpace(msg.ID)
	if id == "" {
		return errors.New("commands: boss bar id is required")
	}

	c.core.mu.Lock()
	bar, ok := c.core.bars[id]
	delete(c.core.bars, id)
	c.core.mu.Unlock()

	if !ok {
		return fmt.Errorf("commands: unknown boss bar %q", id)
	}
	c.core.target.HideBossBar(bar)
	return nil
}

// StopSounds stops playing sounds matching the filter. Empty fields match
// everything.
type StopSounds struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type soundStopCommand struct {
	core *core
}

func (c soundStopCommand) Execute(ctx context.Context, msg StopSounds) error {
	stop := media.SoundStop{Name: strings.TrimSpace(msg.Name)}
	if msg.Source != "" {
		source, err := parseSoundSource(msg.Source)
		if err != nil {
			return err
		}
		stop.Source = source
	}
	c.core.target.StopSound(stop)
	return nil
}

// OpenBook opens a virtual book built from the given pages.
type OpenBook struct {
	Title  MessageInput   `json:"title"`
	Author MessageInput   `json:"author"`
	Pages  []MessageInput `json:"pages"`
}

type bookCommand struct {
	core *core
}

func (c bookCommand) Execute(ctx context.Context, msg OpenBook) error {
	if len(msg.Pages) == 0 {
		return errors.New("commands: book needs at least one page")
	}
	pages := make([]media.Message, len(msg.Pages))
	for i, page := range msg.Pages {
		pages[i] = page.toMedia()
	}
	c.core.target.OpenBook(media.Book{
		Title:  msg.Title.toMedia(),
		Author: msg.Author.toMedia(),
		Pages:  pages,
	})
	return nil
}

var bossBarColors = map[string]media.BossBarColor{
	"pink":   media.BossBarColorPink,
	"blue":   media.BossBarColorBlue,
	"red":    media.BossBarColorRed,
	"green":  media.BossBarColorGreen,
	"yellow": media.BossBarColorYellow,
	"purple": media.BossBarColorPurple,
	"white":  media.BossBarColorWhite,
}

func parseBossBarColor(s string) (media.BossBarColor, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return media.BossBarColorPurple, nil
	}
	if color, ok := bossBarColors[name]; ok {
		return color, nil
	}
	return "", fmt.Errorf("commands: unknown boss bar color %q", s)
}

var bossBarOverlays = map[string]media.BossBarOverlay{
	"progress":   media.BossBarOverlayProgress,
	"notched_6":  media.BossBarOverlayNotched6,
	"notched_10": media.BossBarOverlayNotched10,
	"notched_12": media.BossBarOverlayNotched12,
	"notched_20": media.BossBarOverlayNotched20,
}

func parseBossBarOverlay(s string) (media.BossBarOverlay, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return media.BossBarOverlayProgress, nil
	}
	if overlay, ok := bossBarOverlays[name]; ok {
		return overlay, nil
	}
	return "", fmt.Errorf("commands: unknown boss bar overlay %q", s)
}

var soundSources = map[string]media.SoundSource{
	"master":  media.SoundSourceMaster,
	"music":   media.SoundSourceMusic,
	"record":  media.SoundSourceRecord,
	"weather": media.SoundSourceWeather,
	"block":   media.SoundSourceBlock,
	"hostile": media.SoundSourceHostile,
	"neutral": media.SoundSourceNeutral,
	"player":  media.SoundSourcePlayer,
	"ambient": media.SoundSourceAmbient,
	"voice":   media.SoundSourceVoice,
}

func parseSoundSource(s string) (media.SoundSource, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return media.SoundSourceMaster, nil
	}
	if source, ok := soundSources[name]; ok {
		return source, nil
	}
	return "", fmt.Errorf("commands: unknown sound source %q", s)
}
