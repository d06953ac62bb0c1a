package media

import "testing"

func TestMessageForms(t *testing.T) {
	plain := Text("hello")
	if plain.Translatable() {
		t.Fatalf("expected literal message, got translatable")
	}
	if plain.Text != "hello" {
		t.Fatalf("expected text %q, got %q", "hello", plain.Text)
	}

	keyed := Translatable("motd.greeting", "Anna")
	if !keyed.Translatable() {
		t.Fatalf("expected translatable message")
	}
	if keyed.Key != "motd.greeting" {
		t.Fatalf("expected key %q, got %q", "motd.greeting", keyed.Key)
	}
	if len(keyed.Args) != 1 || keyed.Args[0] != "Anna" {
		t.Fatalf("expected args [Anna], got %v", keyed.Args)
	}
}

func TestNewSoundDefaults(t *testing.T) {
	snd := NewSound("ui.click")
	if snd.Source != SoundSourceMaster {
		t.Fatalf("expected master source, got %q", snd.Source)
	}
	if snd.Volume != 1 || snd.Pitch != 1 {
		t.Fatalf("expected neutral volume/pitch, got %v/%v", snd.Volume, snd.Pitch)
	}
}

func TestSoundStopFilters(t *testing.T) {
	if stop := StopAll(); stop.Name != "" || stop.Source != "" {
		t.Fatalf("expected empty filter, got %+v", stop)
	}
	if stop := StopNamed("music.disc"); stop.Name != "music.disc" {
		t.Fatalf("expected name filter, got %+v", stop)
	}
}

func TestNewBossBarDefaults(t *testing.T) {
	bar := NewBossBar(Text("raid"))
	if bar.Progress != 1 {
		t.Fatalf("expected full progress, got %v", bar.Progress)
	}
	if bar.Color != BossBarColorPurple || bar.Overlay != BossBarOverlayProgress {
		t.Fatalf("unexpected defaults: %+v", bar)
	}
}
