package sinks

import (
	"time"

	"github.com/goliatone/go-audience/pkg/media"
)

// Kind identifies the media operation carried by an Event.
type Kind string

const (
	KindMessage         Kind = "message"
	KindActionBar       Kind = "action_bar"
	KindTitleShow       Kind = "title_show"
	KindTitleClear      Kind = "title_clear"
	KindTitleReset      Kind = "title_reset"
	KindBossBarShow     Kind = "boss_bar_show"
	KindBossBarHide     Kind = "boss_bar_hide"
	KindSound           Kind = "sound"
	KindSoundPositional Kind = "sound_positional"
	KindSoundStop       Kind = "sound_stop"
	KindBook            Kind = "book"
)

// Position is a point in the world for positional sounds.
type Position struct {
	X, Y, Z float64
}

// Event is one media operation flattened for handlers. Only the fields
// matching Kind are populated.
type Event struct {
	Kind     Kind
	Message  media.Message
	Title    media.Title
	BossBar  *media.BossBar
	Sound    media.Sound
	Stop     media.SoundStop
	Book     media.Book
	Position *Position
	At       time.Time
}
