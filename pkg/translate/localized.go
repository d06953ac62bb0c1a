package translate

import (
	"github.com/goliatone/go-audience/pkg/audience"
	"github.com/goliatone/go-audience/pkg/media"
)

// localizedViewer resolves translatable payloads against a fixed locale
// before handing them to the wrapped viewer. Boss bars travel by pointer so
// show and hide pair by identity; their titles are left for the sink to
// resolve.
type localizedViewer struct {
	viewer   audience.Viewer
	renderer *Renderer
	locale   string
}

var _ audience.Viewer = (*localizedViewer)(nil)
var _ audience.Forwarding = (*localizedViewer)(nil)

// Localized wraps a viewer so translatable messages arrive at the viewer as
// resolved text. The locale is captured once, at wrap time, via LocaleFor.
// A nil viewer yields the empty audience; a nil renderer returns the viewer
// unwrapped.
func Localized(v audience.Viewer, r *Renderer) audience.Audience {
	if v == nil {
		return audience.Empty()
	}
	if r == nil {
		return v
	}
	return &localizedViewer{viewer: v, renderer: r, locale: r.LocaleFor(v)}
}

// Delegate returns the wrapped viewer.
func (l *localizedViewer) Delegate() audience.Audience {
	return l.viewer
}

// Locale returns the locale payloads are resolved against.
func (l *localizedViewer) Locale() string {
	return l.locale
}

// Capabilities reports the wrapped viewer's capability set.
func (l *localizedViewer) Capabilities() audience.Capability {
	return l.viewer.Capabilities()
}

func (l *localizedViewer) CanSendMessage() bool {
	return l.viewer.CanSendMessage()
}

// SendMessage sends the message resolved to literal text.
func (l *localizedViewer) SendMessage(msg media.Message) {
	l.viewer.SendMessage(l.renderer.Localize(l.locale, msg))
}

func (l *localizedViewer) CanSendActionBar() bool {
	return l.viewer.CanSendActionBar()
}

// SendActionBar sends the action bar text resolved to literal text.
func (l *localizedViewer) SendActionBar(msg media.Message) {
	l.viewer.SendActionBar(l.renderer.Localize(l.locale, msg))
}

func (l *localizedViewer) CanShowTitle() bool {
	return l.viewer.CanShowTitle()
}

// ShowTitle shows the title with both lines resolved to literal text.
func (l *localizedViewer) ShowTitle(title media.Title) {
	title.Title = l.renderer.Localize(l.locale, title.Title)
	title.Subtitle = l.renderer.Localize(l.locale, title.Subtitle)
	l.viewer.ShowTitle(title)
}

func (l *localizedViewer) ClearTitle() {
	l.viewer.ClearTitle()
}

func (l *localizedViewer) ResetTitle() {
	l.viewer.ResetTitle()
}

func (l *localizedViewer) CanShowBossBar() bool {
	return l.viewer.CanShowBossBar()
}

func (l *localizedViewer) ShowBossBar(bar *media.BossBar) {
	l.viewer.ShowBossBar(bar)
}

func (l *localizedViewer) HideBossBar(bar *media.BossBar) {
	l.viewer.HideBossBar(bar)
}

func (l *localizedViewer) CanPlaySound() bool {
	return l.viewer.CanPlaySound()
}

func (l *localizedViewer) PlaySound(sound media.Sound) {
	l.viewer.PlaySound(sound)
}

func (l *localizedViewer) PlaySoundAt(sound media.Sound, x, y, z float64) {
	l.viewer.PlaySoundAt(sound, x, y, z)
}

func (l *localizedViewer) StopSound(stop media.SoundStop) {
	l.viewer.StopSound(stop)
}

func (l *localizedViewer) CanOpenBook() bool {
	return l.viewer.CanOpenBook()
}

// OpenBook opens the book with title, author, and pages resolved to
// literal text.
func (l *localizedViewer) OpenBook(book media.Book) {
	book.Title = l.renderer.Localize(l.locale, book.Title)
	book.Author = l.renderer.Localize(l.locale, book.Author)
	if len(book.Pages) > 0 {
		pages := make([]media.Message, len(book.Pages))
		for i, page := range book.Pages {
			pages[i] = l.renderer.Localize(l.locale, page)
		}
		book.Pages = pages
	}
	l.viewer.OpenBook(book)
}

// Perform treats the wrapper as the viewer it decorates, so actions selected
// by capability keep flowing through the localization layer.
func (l *localizedViewer) Perform(c audience.Capability, action func(audience.Viewer)) audience.Audience {
	return audience.Apply(l, c, action)
}
