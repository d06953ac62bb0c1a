package audience

import "github.com/goliatone/go-audience/pkg/media"

// multiAudience fans every event out to a group of member audiences. The
// member list is produced per call, so a group built with OfFunc reflects
// membership changes between events.
type multiAudience struct {
	audiences func() []Audience
}

// Of composes audiences into a single one. Nil members are dropped. With no
// remaining members it returns Empty, with exactly one it returns that
// member unchanged, and otherwise it returns a group that forwards every
// event to each member in the order given. The member slice is copied, so
// later mutation of the argument does not affect the group.
func Of(members ...Audience) Audience {
	kept := make([]Audience, 0, len(members))
	for _, m := range members {
		if m != nil {
			kept = append(kept, m)
		}
	}
	switch len(kept) {
	case 0:
		return Empty()
	case 1:
		return kept[0]
	}
	return &multiAudience{audiences: func() []Audience { return kept }}
}

// OfFunc composes a group over a live membership function: fn is invoked on
// every event, so additions and removals from the underlying collection are
// visible without rebuilding the group. Nil entries in the returned slice
// are skipped. A nil fn yields Empty.
func OfFunc(fn func() []Audience) Audience {
	if fn == nil {
		return Empty()
	}
	return &multiAudience{audiences: fn}
}

var _ Audience = (*multiAudience)(nil)

// each invokes visit on every non-nil member in order.
func (m *multiAudience) each(visit func(Audience)) {
	for _, a := range m.audiences() {
		if a != nil {
			visit(a)
		}
	}
}

// any reports whether check is true for at least one member.
func (m *multiAudience) any(check func(Audience) bool) bool {
	for _, a := range m.audiences() {
		if a != nil && check(a) {
			return true
		}
	}
	return false
}

func (m *multiAudience) CanSendMessage() bool {
	return m.any(Audience.CanSendMessage)
}

func (m *multiAudience) SendMessage(msg media.Message) {
	m.each(func(a Audience) { a.SendMessage(msg) })
}

func (m *multiAudience) CanSendActionBar() bool {
	return m.any(Audience.CanSendActionBar)
}

func (m *multiAudience) SendActionBar(msg media.Message) {
	m.each(func(a Audience) { a.SendActionBar(msg) })
}

func (m *multiAudience) CanShowTitle() bool {
	return m.any(Audience.CanShowTitle)
}

func (m *multiAudience) ShowTitle(title media.Title) {
	m.each(func(a Audience) { a.ShowTitle(title) })
}

func (m *multiAudience) ClearTitle() {
	m.each(Audience.ClearTitle)
}

func (m *multiAudience) ResetTitle() {
	m.each(Audience.ResetTitle)
}

func (m *multiAudience) CanShowBossBar() bool {
	return m.any(Audience.CanShowBossBar)
}

func (m *multiAudience) ShowBossBar(bar *media.BossBar) {
	m.each(func(a Audience) { a.ShowBossBar(bar) })
}

func (m *multiAudience) HideBossBar(bar *media.BossBar) {
	m.each(func(a Audience) { a.HideBossBar(bar) })
}

func (m *multiAudience) CanPlaySound() bool {
	return m.any(Audience.CanPlaySound)
}

func (m *multiAudience) PlaySound(sound media.Sound) {
	m.each(func(a Audience) { a.PlaySound(sound) })
}

func (m *multiAudience) PlaySoundAt(sound media.Sound, x, y, z float64) {
	m.each(func(a Audience) { a.PlaySoundAt(sound, x, y, z) })
}

func (m *multiAudience) StopSound(stop media.SoundStop) {
	m.each(func(a Audience) { a.StopSound(stop) })
}

func (m *multiAudience) CanOpenBook() bool {
	return m.any(Audience.CanOpenBook)
}

func (m *multiAudience) OpenBook(book media.Book) {
	m.each(func(a Audience) { a.OpenBook(book) })
}

// Perform forwards the dispatch to every member and gathers the non-empty
// results. When every member returned itself the group is a pure
// passthrough and m is returned unchanged; otherwise the survivors are
// recomposed with Of, which collapses a single survivor down to the bare
// member.
func (m *multiAudience) Perform(c Capability, action func(Viewer)) Audience {
	members := m.audiences()
	kept := make([]Audience, 0, len(members))
	changed := false
	for _, a := range members {
		if a == nil {
			changed = true
			continue
		}
		r := a.Perform(c, action)
		if r == Audience(empty) {
			changed = true
			continue
		}
		if r != a {
			changed = true
		}
		kept = append(kept, r)
	}
	if !changed && len(kept) == len(members) {
		return m
	}
	return Of(kept...)
}
