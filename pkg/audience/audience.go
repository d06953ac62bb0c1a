package audience

import "github.com/goliatone/go-audience/pkg/media"

// Audience is a receiver of media events. The per-kind CanSendX queries are
// advisory only: true does not guarantee delivery, and sending while false
// must be accepted as a silent no-op. Sends return nothing and never report
// recipient ineligibility.
type Audience interface {
	// CanSendMessage reports whether there is any way this audience can
	// receive a chat message.
	CanSendMessage() bool
	// SendMessage sends a chat message.
	SendMessage(msg media.Message)

	// CanSendActionBar reports whether this audience can receive action
	// bar text.
	CanSendActionBar() bool
	// SendActionBar sends a message to the action bar.
	SendActionBar(msg media.Message)

	// CanShowTitle reports whether this audience can receive titles. It
	// gates ShowTitle, ClearTitle, and ResetTitle alike.
	CanShowTitle() bool
	// ShowTitle shows a title.
	ShowTitle(title media.Title)
	// ClearTitle clears the currently displayed title.
	ClearTitle()
	// ResetTitle resets the title and its timings back to unset.
	ResetTitle()

	// CanShowBossBar reports whether this audience can receive boss bars.
	CanShowBossBar() bool
	// ShowBossBar shows a boss bar.
	ShowBossBar(bar *media.BossBar)
	// HideBossBar hides a boss bar previously shown to this audience.
	HideBossBar(bar *media.BossBar)

	// CanPlaySound reports whether this audience can receive sounds.
	CanPlaySound() bool
	// PlaySound plays a sound.
	PlaySound(sound media.Sound)
	// PlaySoundAt plays a sound at the given position.
	PlaySoundAt(sound media.Sound, x, y, z float64)
	// StopSound stops playing sounds matching the filter.
	StopSound(stop media.SoundStop)

	// CanOpenBook reports whether this audience can receive books.
	CanOpenBook() bool
	// OpenBook opens a virtual book.
	OpenBook(book media.Book)

	// Perform applies action to every concrete viewer reachable from this
	// audience whose declared capabilities contain c, skipping the rest
	// without error. It returns the minimal audience representing the
	// affected subset: the empty audience when nothing qualified, and the
	// original wrapper when the dispatch was a pure passthrough.
	Perform(c Capability, action func(Viewer)) Audience
}

// Viewer is a concrete recipient: an audience that declares which media
// kinds it supports. Composite audiences are Audiences but not Viewers;
// Perform bottoms out on Viewers.
type Viewer interface {
	Audience

	// Capabilities returns the union of media kinds this viewer receives.
	Capabilities() Capability
}

// Apply is the leaf dispatch shared by viewer implementations: it returns
// the empty audience when v is nil or does not declare c, and otherwise
// invokes action and returns v itself. Viewers implement Perform as
// `return audience.Apply(v, c, action)`.
func Apply(v Viewer, c Capability, action func(Viewer)) Audience {
	if v == nil || !v.Capabilities().Has(c) {
		return Empty()
	}
	if action != nil {
		action(v)
	}
	return v
}
