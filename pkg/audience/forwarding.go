package audience

import "github.com/goliatone/go-audience/pkg/media"

// Forwarding is implemented by audiences that relay every event to a single
// delegate resolved per call. Perform uses it to recognize passthrough
// dispatches and preserve wrapper identity.
type Forwarding interface {
	Audience

	// Delegate returns the audience events are currently relayed to, or
	// nil when there is none.
	Delegate() Audience
}

// forwardingAudience relays to whatever audience its delegate function
// yields at call time. A nil delegate makes it behave as the empty
// audience for that call.
type forwardingAudience struct {
	delegate func() Audience
}

// Forward returns an audience relaying every event to a. Relaying to nil
// behaves as the empty audience.
func Forward(a Audience) Audience {
	return ForwardFunc(func() Audience { return a })
}

// ForwardFunc returns an audience relaying every event to the audience fn
// yields at call time, so the target can change between events. A nil fn
// yields Empty; fn returning nil makes that call a no-op.
func ForwardFunc(fn func() Audience) Audience {
	if fn == nil {
		return Empty()
	}
	return &forwardingAudience{delegate: fn}
}

var _ Forwarding = (*forwardingAudience)(nil)

func (f *forwardingAudience) Delegate() Audience {
	return f.delegate()
}

// relay invokes visit on the current delegate when one is present.
func (f *forwardingAudience) relay(visit func(Audience)) {
	if d := f.delegate(); d != nil {
		visit(d)
	}
}

// ask returns check on the current delegate, false when there is none.
func (f *forwardingAudience) ask(check func(Audience) bool) bool {
	if d := f.delegate(); d != nil {
		return check(d)
	}
	return false
}

func (f *forwardingAudience) CanSendMessage() bool {
	return f.ask(Audience.CanSendMessage)
}

func (f *forwardingAudience) SendMessage(msg media.Message) {
	f.relay(func(a Audience) { a.SendMessage(msg) })
}

func (f *forwardingAudience) CanSendActionBar() bool {
	return f.ask(Audience.CanSendActionBar)
}

func (f *forwardingAudience) SendActionBar(msg media.Message) {
	f.relay(func(a Audience) { a.SendActionBar(msg) })
}

func (f *forwardingAudience) CanShowTitle() bool {
	return f.ask(Audience.CanShowTitle)
}

func (f *forwardingAudience) ShowTitle(title media.Title) {
	f.relay(func(a Audience) { a.ShowTitle(title) })
}

func (f *forwardingAudience) ClearTitle() {
	f.relay(Audience.ClearTitle)
}

func (f *forwardingAudience) ResetTitle() {
	f.relay(Audience.ResetTitle)
}

func (f *forwardingAudience) CanShowBossBar() bool {
	return f.ask(Audience.CanShowBossBar)
}

func (f *forwardingAudience) ShowBossBar(bar *media.BossBar) {
	f.relay(func(a Audience) { a.ShowBossBar(bar) })
}

func (f *forwardingAudience) HideBossBar(bar *media.BossBar) {
	f.relay(func(a Audience) { a.HideBossBar(bar) })
}

func (f *forwardingAudience) CanPlaySound() bool {
	return f.ask(Audience.CanPlaySound)
}

func (f *forwardingAudience) PlaySound(sound media.Sound) {
	f.relay(func(a Audience) { a.PlaySound(sound) })
}

func (f *forwardingAudience) PlaySoundAt(sound media.Sound, x, y, z float64) {
	f.relay(func(a Audience) { a.PlaySoundAt(sound, x, y, z) })
}

func (f *forwardingAudience) StopSound(stop media.SoundStop) {
	f.relay(func(a Audience) { a.StopSound(stop) })
}

func (f *forwardingAudience) CanOpenBook() bool {
	return f.ask(Audience.CanOpenBook)
}

func (f *forwardingAudience) OpenBook(book media.Book) {
	f.relay(func(a Audience) { a.OpenBook(book) })
}

func (f *forwardingAudience) Perform(c Capability, action func(Viewer)) Audience {
	return PerformForward(f, f.delegate(), c, action)
}

// PerformForward dispatches through a relaying audience. When the delegate
// handles the action and remains reachable through the same relay, the
// outer wrapper is returned so callers keep their original handle. Custom
// Forwarding implementations should build their Perform on it.
func PerformForward(outer Audience, delegate Audience, c Capability, action func(Viewer)) Audience {
	if delegate == nil {
		return Empty()
	}
	result := delegate.Perform(c, action)
	if result == delegate {
		return outer
	}
	if fwd, ok := result.(Forwarding); ok && fwd.Delegate() == delegate {
		return outer
	}
	return result
}
