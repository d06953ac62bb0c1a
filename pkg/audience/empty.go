package audience

import "github.com/goliatone/go-audience/pkg/media"

// emptyAudience swallows every event. A single package-level instance backs
// Empty so callers and composites can compare against it by identity.
type emptyAudience struct{}

var empty = &emptyAudience{}

// Empty returns the audience with no viewers. Every send is a no-op, every
// CanSendX query is false, and Perform returns the empty audience itself.
// All calls return the same instance.
func Empty() Audience {
	return empty
}

var _ Audience = (*emptyAudience)(nil)

func (e *emptyAudience) CanSendMessage() bool { return false }

func (e *emptyAudience) SendMessage(media.Message) {}

func (e *emptyAudience) CanSendActionBar() bool { return false }

func (e *emptyAudience) SendActionBar(media.Message) {}

func (e *emptyAudience) CanShowTitle() bool { return false }

func (e *emptyAudience) ShowTitle(media.Title) {}

func (e *emptyAudience) ClearTitle() {}

func (e *emptyAudience) ResetTitle() {}

func (e *emptyAudience) CanShowBossBar() bool { return false }

func (e *emptyAudience) ShowBossBar(*media.BossBar) {}

func (e *emptyAudience) HideBossBar(*media.BossBar) {}

func (e *emptyAudience) CanPlaySound() bool { return false }

func (e *emptyAudience) PlaySound(media.Sound) {}

func (e *emptyAudience) PlaySoundAt(media.Sound, float64, float64, float64) {}

func (e *emptyAudience) StopSound(media.SoundStop) {}

func (e *emptyAudience) CanOpenBook() bool { return false }

func (e *emptyAudience) OpenBook(media.Book) {}

func (e *emptyAudience) Perform(Capability, func(Viewer)) Audience {
	return e
}
