package audience

import (
	"sync/atomic"

	"github.com/goliatone/go-audience/pkg/media"
)

// Ref is a clearable handle to an audience. Holders of a weak audience keep
// the Ref, clear it when the underlying viewer goes away, and every event
// delivered after that resolves to nothing. The handle is safe for
// concurrent Resolve and Clear.
type Ref struct {
	target atomic.Pointer[Audience]
}

// NewRef returns a handle referencing a. A nil a yields a handle that never
// resolves.
func NewRef(a Audience) *Ref {
	r := &Ref{}
	if a != nil {
		r.target.Store(&a)
	}
	return r
}

// Resolve returns the referenced audience. It reports false once the handle
// has been cleared or when it never held an audience. Safe on a nil
// receiver.
func (r *Ref) Resolve() (Audience, bool) {
	if r == nil {
		return nil, false
	}
	p := r.target.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Clear drops the referenced audience. Events sent through weak audiences
// over this handle become no-ops. Safe on a nil receiver.
func (r *Ref) Clear() {
	if r != nil {
		r.target.Store(nil)
	}
}

// weakAudience resolves its handle on every call, so clearing the handle
// detaches the audience without invalidating anything that holds it.
type weakAudience struct {
	ref *Ref
}

// Weak returns an audience that resolves ref on every event and behaves as
// the empty audience once the handle is cleared. A nil ref never resolves.
func Weak(ref *Ref) Audience {
	return &weakAudience{ref: ref}
}

// WeakOf wraps a behind a fresh handle. Audiences that are already weak and
// the empty audience are returned unchanged, since another layer would not
// change behavior. A nil a yields a weak audience over an absent handle.
// Use NewRef and Weak directly when the handle must be cleared later.
func WeakOf(a Audience) Audience {
	switch a.(type) {
	case *weakAudience, *emptyAudience:
		return a
	}
	if a == nil {
		return &weakAudience{}
	}
	return &weakAudience{ref: NewRef(a)}
}

var _ Forwarding = (*weakAudience)(nil)

// Delegate returns the referenced audience, nil once the handle is cleared.
func (w *weakAudience) Delegate() Audience {
	d, ok := w.ref.Resolve()
	if !ok {
		return nil
	}
	return d
}

// relay invokes visit on the referenced audience while the handle resolves.
func (w *weakAudience) relay(visit func(Audience)) {
	if d, ok := w.ref.Resolve(); ok {
		visit(d)
	}
}

// ask returns check on the referenced audience, false once cleared.
func (w *weakAudience) ask(check func(Audience) bool) bool {
	if d, ok := w.ref.Resolve(); ok {
		return check(d)
	}
	return false
}

func (w *weakAudience) CanSendMessage() bool {
	return w.ask(Audience.CanSendMessage)
}

func (w *weakAudience) SendMessage(msg media.Message) {
	w.relay(func(a Audience) { a.SendMessage(msg) })
}

func (w *weakAudience) CanSendActionBar() bool {
	return w.ask(Audience.CanSendActionBar)
}

func (w *weakAudience) SendActionBar(msg media.Message) {
	w.relay(func(a Audience) { a.SendActionBar(msg) })
}

func (w *weakAudience) CanShowTitle() bool {
	return w.ask(Audience.CanShowTitle)
}

func (w *weakAudience) ShowTitle(title media.Title) {
	w.relay(func(a Audience) { a.ShowTitle(title) })
}

func (w *weakAudience) ClearTitle() {
	w.relay(Audience.ClearTitle)
}

func (w *weakAudience) ResetTitle() {
	w.relay(Audience.ResetTitle)
}

func (w *weakAudience) CanShowBossBar() bool {
	return w.ask(Audience.CanShowBossBar)
}

func (w *weakAudience) ShowBossBar(bar *media.BossBar) {
	w.relay(func(a Audience) { a.ShowBossBar(bar) })
}

func (w *weakAudience) HideBossBar(bar *media.BossBar) {
	w.relay(func(a Audience) { a.HideBossBar(bar) })
}

func (w *weakAudience) CanPlaySound() bool {
	return w.ask(Audience.CanPlaySound)
}

func (w *weakAudience) PlaySound(sound media.Sound) {
	w.relay(func(a Audience) { a.PlaySound(sound) })
}

func (w *weakAudience) PlaySoundAt(sound media.Sound, x, y, z float64) {
	w.relay(func(a Audience) { a.PlaySoundAt(sound, x, y, z) })
}

func (w *weakAudience) StopSound(stop media.SoundStop) {
	w.relay(func(a Audience) { a.StopSound(stop) })
}

func (w *weakAudience) CanOpenBook() bool {
	return w.ask(Audience.CanOpenBook)
}

func (w *weakAudience) OpenBook(book media.Book) {
	w.relay(func(a Audience) { a.OpenBook(book) })
}

func (w *weakAudience) Perform(c Capability, action func(Viewer)) Audience {
	return PerformForward(w, w.Delegate(), c, action)
}
