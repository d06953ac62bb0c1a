package media

// BossBarColor enumerates the client-side bar colors.
type BossBarColor string

const (
	BossBarColorPink   BossBarColor = "pink"
	BossBarColorBlue   BossBarColor = "blue"
	BossBarColorRed    BossBarColor = "red"
	BossBarColorGreen  BossBarColor = "green"
	BossBarColorYellow BossBarColor = "yellow"
	BossBarColorPurple BossBarColor = "purple"
	BossBarColorWhite  BossBarColor = "white"
)

// BossBarOverlay enumerates the bar segmentation styles.
type BossBarOverlay string

const (
	BossBarOverlayProgress  BossBarOverlay = "progress"
	BossBarOverlayNotched6  BossBarOverlay = "notched_6"
	BossBarOverlayNotched10 BossBarOverlay = "notched_10"
	BossBarOverlayNotched12 BossBarOverlay = "notched_12"
	BossBarOverlayNotched20 BossBarOverlay = "notched_20"
)

// BossBar describes a bar pinned to the top of the screen. Bars travel by
// pointer so show and hide calls pair by identity.
type BossBar struct {
	Title    Message
	Progress float32
	Color    BossBarColor
	Overlay  BossBarOverlay
}

// NewBossBar builds a full bar with the default color and overlay.
func NewBossBar(title Message) *BossBar {
	return &BossBar{
		Title:    title,
		Progress: 1,
		Color:    BossBarColorPurple,
		Overlay:  BossBarOverlayProgress,
	}
}
