// Package ratelimit sheds sends that exceed a token-bucket budget. Dropped
// sends are silent, which the fire-and-forget delivery contract permits.
package ratelimit

import (
	"github.com/goliatone/go-audience/pkg/audience"
	"github.com/goliatone/go-audience/pkg/media"
	"golang.org/x/time/rate"
)

// limitedAudience forwards to a delegate behind a shared token bucket.
// Content sends cost one token each. Clear, reset, hide, and stop
// operations pass uncharged; a drop must not strand a title or bar on
// screen. Capability queries are free.
type limitedAudience struct {
	delegate audience.Audience
	limiter  *rate.Limiter
}

var _ audience.Forwarding = (*limitedAudience)(nil)

// Wrap returns an audience relaying to a, dropping content sends once the
// bucket empties. limit is tokens replenished per second and burst is the
// bucket size. A nil delegate yields the empty audience; a non-positive
// limit disables shedding and returns a unchanged.
func Wrap(a audience.Audience, limit float64, burst int) audience.Audience {
	if a == nil {
		return audience.Empty()
	}
	if limit <= 0 {
		return a
	}
	if burst <= 0 {
		burst = 1
	}
	return &limitedAudience{
		delegate: a,
		limiter:  rate.NewLimiter(rate.Limit(limit), burst),
	}
}

// Delegate returns the wrapped audience.
func (l *limitedAudience) Delegate() audience.Audience {
	return l.delegate
}

func (l *limitedAudience) CanSendMessage() bool {
	return l.delegate.CanSendMessage()
}

func (l *limitedAudience) SendMessage(msg media.Message) {
	if !l.limiter.Allow() {
		return
	}
	l.delegate.SendMessage(msg)
}

func (l *limitedAudience) CanSendActionBar() bool {
	return l.delegate.CanSendActionBar()
}

func (l *limitedAudience) SendActionBar(msg media.Message) {
	if !l.limiter.Allow() {
		return
	}
	l.delegate.SendActionBar(msg)
}

func (l *limitedAudience) CanShowTitle() bool {
	return l.delegate.CanShowTitle()
}

func (l *limitedAudience) ShowTitle(title media.Title) {
	if !l.limiter.Allow() {
		return
	}
	l.delegate.ShowTitle(title)
}

func (l *limitedAudience) ClearTitle() {
	l.delegate.ClearTitle()
}

func (l *limitedAudience) ResetTitle() {
	l.delegate.ResetTitle()
}

func (l *limitedAudience) CanShowBossBar() bool {
	return l.delegate.CanShowBossBar()
}

func (l *limitedAudience) ShowBossBar(bar *media.BossBar) {
	if !l.limiter.Allow() {
		return
	}
	l.delegate.ShowBossBar(bar)
}

func (l *limitedAudience) HideBossBar(bar *media.BossBar) {
	l.delegate.HideBossBar(bar)
}

func (l *limitedAudience) CanPlaySound() bool {
	return l.delegate.CanPlaySound()
}

func (l *limitedAudience) PlaySound(sound media.Sound) {
	if !l.limiter.Allow() {
		return
	}
	l.delegate.PlaySound(sound)
}

func (l *limitedAudience) PlaySoundAt(sound media.Sound, x, y, z float64) {
	if !l.limiter.Allow() {
		return
	}
	l.delegate.PlaySoundAt(sound, x, y, z)
}

func (l *limitedAudience) StopSound(stop media.SoundStop) {
	l.delegate.StopSound(stop)
}

func (l *limitedAudience) CanOpenBook() bool {
	return l.delegate.CanOpenBook()
}

func (l *limitedAudience) OpenBook(book media.Book) {
	if !l.limiter.Allow() {
		return
	}
	l.delegate.OpenBook(book)
}

// Perform dispatches through the delegate. Viewers the action reaches are
// handed over directly, so actions bypass the bucket.
func (l *limitedAudience) Perform(c audience.Capability, action func(audience.Viewer)) audience.Audience {
	return audience.PerformForward(l, l.delegate, c, action)
}
