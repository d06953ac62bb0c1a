package media

import "time"

// Times controls the title animation. Zero durations defer to the
// displaying platform's defaults.
type Times struct {
	FadeIn  time.Duration
	Stay    time.Duration
	FadeOut time.Duration
}

// Title is a full-screen title with an optional subtitle.
type Title struct {
	Title    Message
	Subtitle Message
	Times    Times
}
