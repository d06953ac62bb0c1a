package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-audience/pkg/activity"
	"github.com/goliatone/go-audience/pkg/audience"
	"github.com/goliatone/go-audience/pkg/commands"
	"github.com/goliatone/go-audience/pkg/config"
	"github.com/goliatone/go-audience/pkg/interfaces/logger"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	"github.com/goliatone/go-audience/pkg/media"
	"github.com/goliatone/go-audience/pkg/options"
	"github.com/goliatone/go-audience/pkg/ratelimit"
	"github.com/goliatone/go-audience/pkg/sinks"
	"github.com/goliatone/go-audience/pkg/sinks/aws_ses"
	"github.com/goliatone/go-audience/pkg/sinks/console"
	"github.com/goliatone/go-audience/pkg/sinks/journal"
	"github.com/goliatone/go-audience/pkg/storage"
	"github.com/goliatone/go-audience/pkg/translate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	ctx := context.Background()

	// Configuration
	cfg, err := config.Load(map[string]any{
		"localization": map[string]any{"default_locale": "en"},
		"journal": map[string]any{
			"enabled":        true,
			"encryption_key": strings.Repeat("ab", 32),
		},
		"digest": map[string]any{
			"enabled": true,
			"sender":  "updates@example.com",
			"dry_run": true,
		},
		"limits": map[string]any{"per_second": 20, "burst": 40},
	})
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.NewConsole(os.Stderr, "debug")

	// Translations
	translator, err := translate.Catalog(cfg.Localization.DefaultLocale, map[string]map[string]string{
		"en": {
			"motd.morning":  "Good morning, %s",
			"raid.title":    "Raid incoming",
			"raid.subtitle": "Defend the gate",
			"rules.page":    "Be kind to each other.",
		},
		"es": {
			"motd.morning": "Buenos dias, %s",
			"raid.title":   "Asalto inminente",
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	renderer, err := translate.New(translate.Dependencies{Translator: translator, Logger: zlog})
	if err != nil {
		log.Fatal(err)
	}

	// Storage (SQLite in memory)
	sqldb, err := sql.Open(sqliteshim.DriverName(), "file::memory:?cache=shared")
	if err != nil {
		log.Fatal(err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()
	if err := createTables(ctx, db); err != nil {
		log.Fatal(err)
	}
	providers := storage.NewBunProviders(db)

	// Stored delivery preferences: group policy mutes boss bars, bob's own
	// profile narrows him to chat and sounds.
	profiles := options.ProfileSnapshotStore{Repository: providers.ViewerProfiles}
	seed := []options.ProfileSnapshotInput{
		{
			Ref:   options.ProfileScopeRef{Scope: options.GroupScope(), ViewerID: "group:keep"},
			Muted: []string{"boss_bars"},
		},
		{
			Ref:          options.ProfileScopeRef{Scope: options.ViewerScope(), ViewerID: "bob"},
			Capabilities: []string{"messages", "sounds"},
		},
	}
	for _, input := range seed {
		if _, err := profiles.Save(ctx, input); err != nil {
			log.Fatal(err)
		}
	}
	bobOptions, err := profiles.Resolver(ctx,
		[]options.ProfileScopeRef{
			{Scope: options.GroupScope(), ViewerID: "group:keep"},
			{Scope: options.ViewerScope(), ViewerID: "bob"},
		},
		options.Defaults(map[string]any{
			options.KeyEnabled: true,
			options.KeyLocale:  cfg.Localization.DefaultLocale,
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	// Sinks
	terminal := console.New(zlog, console.WithWriter(os.Stdout), console.WithRenderer(renderer))

	key, err := cfg.Journal.Key()
	if err != nil {
		log.Fatal(err)
	}
	journalOpts := []journal.Option{journal.WithLogger(zlog)}
	if key != nil {
		journalOpts = append(journalOpts, journal.WithEncryption(key))
	}
	journalSink, err := journal.New(providers.DeliveryRecords, journalOpts...)
	if err != nil {
		log.Fatal(err)
	}

	digest, err := aws_ses.New(zlog,
		aws_ses.WithConfig(aws_ses.Config{
			Sender:      cfg.Digest.Sender,
			Subject:     cfg.Digest.Subject,
			MaxEvents:   cfg.Digest.MaxEvents,
			MaxAttempts: cfg.Digest.MaxAttempts,
			DryRun:      cfg.Digest.DryRun,
		}),
		aws_ses.WithRenderer(renderer),
	)
	if err != nil {
		log.Fatal(err)
	}

	// Viewers
	alice, err := sinks.New(terminal, sinks.WithName("alice"), sinks.WithLocale("es"), sinks.WithLogger(zlog))
	if err != nil {
		log.Fatal(err)
	}
	bob, err := sinks.New(terminal,
		sinks.WithName("bob"),
		sinks.WithLocale(bobOptions.Locale()),
		sinks.WithCapabilities(bobOptions.EffectiveCapabilities()),
		sinks.WithLogger(zlog),
	)
	if err != nil {
		log.Fatal(err)
	}
	scribe, err := sinks.New(journalSink,
		sinks.WithName("scribe"),
		sinks.WithLogger(zlog),
		sinks.WithActivity(trailHook{log: zlog}),
	)
	if err != nil {
		log.Fatal(err)
	}
	priya, err := sinks.New(digest,
		sinks.WithName("Priya"),
		sinks.WithLocale("en"),
		sinks.WithMeta(map[string]any{"address": "priya@example.com"}),
		sinks.WithLogger(zlog),
	)
	if err != nil {
		log.Fatal(err)
	}

	// Composition: bob joins behind a clearable handle so logging off
	// detaches him without rebuilding the crowd.
	bobRef := audience.NewRef(translate.Localized(bob, renderer))
	crowd := audience.Of(
		translate.Localized(alice, renderer),
		audience.Weak(bobRef),
		scribe,
		priya,
	)
	limited := ratelimit.Wrap(crowd, cfg.Limits.PerSecond, cfg.Limits.Burst)

	// Broadcast to everyone.
	limited.SendMessage(media.Translatable("motd.morning", "everyone"))
	limited.SendActionBar(media.Text("The server restarts in 10 minutes"))
	limited.ShowTitle(media.Title{
		Title:    media.Translatable("raid.title"),
		Subtitle: media.Translatable("raid.subtitle"),
		Times:    media.Times{FadeIn: 250 * time.Millisecond, Stay: 2 * time.Second, FadeOut: 500 * time.Millisecond},
	})

	// Host transports drive the same crowd through command handlers. Boss
	// bars pair show and hide by identity; the catalog tracks them by id.
	cmds, err := commands.New(commands.Dependencies{Target: limited, Logger: zlog})
	if err != nil {
		log.Fatal(err)
	}
	for _, progress := range []float32{0.8, 0.35} {
		err := cmds.ShowBossBar.Execute(ctx, commands.ShowBossBar{
			ID:       "dragon",
			Title:    commands.MessageInput{Text: "Dragon"},
			Progress: progress,
		})
		if err != nil {
			log.Fatal(err)
		}
	}
	if err := cmds.HideBossBar.Execute(ctx, commands.HideBossBar{ID: "dragon"}); err != nil {
		log.Fatal(err)
	}

	// Capability-filtered dispatch: only sound-capable viewers hear the horn.
	heard := limited.Perform(audience.CapabilitySounds, func(v audience.Viewer) {
		v.PlaySound(media.NewSound("raid.horn"))
	})
	zlog.Info("sound dispatch", logger.Field{Key: "anyone", Value: heard != audience.Empty()})

	limited.OpenBook(media.Book{
		Title:  media.Text("Server Rules"),
		Author: media.Text("Staff"),
		Pages:  []media.Message{media.Translatable("rules.page")},
	})

	// Bob logs off; later events no longer reach him.
	bobRef.Clear()
	limited.SendMessage(media.Text("bob left the server"))

	// Flush the pending email digest (dry run logs instead of sending).
	if err := digest.Flush(ctx); err != nil {
		log.Fatal(err)
	}

	// Read the journal back, opening sealed payloads.
	records, err := providers.DeliveryRecords.ListByViewer(ctx, scribe.ID().String(), store.ListOptions{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\njournal (%d records, encrypted=%v):\n", records.Total, journalSink.Encrypting())
	for i := range records.Items {
		rec := &records.Items[i]
		payload, err := journalSink.Payload(rec)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  %s %-16s %v\n", rec.DeliveredAt.Format(time.TimeOnly), rec.Kind, payload)
	}
}

func createTables(ctx context.Context, db *bun.DB) error {
	for _, model := range storage.Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// trailHook logs the delivery trail the journal viewer reports.
type trailHook struct {
	log logger.Logger
}

func (h trailHook) Notify(_ context.Context, evt activity.Event) {
	h.log.Debug("activity",
		logger.Field{Key: "verb", Value: evt.Verb},
		logger.Field{Key: "sink", Value: evt.Sink},
		logger.Field{Key: "kind", Value: evt.Metadata["kind"]},
	)
}
