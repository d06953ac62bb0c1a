package audience

import "strings"

// Capability is a bit set of media kinds a viewer can receive. Capabilities
// are declared up front by viewers and consulted by Perform to select which
// members of a composite audience an action applies to.
type Capability uint

const (
	// CapabilityMessages covers chat messages.
	CapabilityMessages Capability = 1 << iota
	// CapabilityActionBars covers action bar text.
	CapabilityActionBars
	// CapabilityTitles covers titles, including clear and reset.
	CapabilityTitles
	// CapabilityBossBars covers boss bars, including hide.
	CapabilityBossBars
	// CapabilitySounds covers sounds, positioned sounds, and sound stops.
	CapabilitySounds
	// CapabilityBooks covers virtual books.
	CapabilityBooks

	// All is the union of every capability.
	All = CapabilityMessages | CapabilityActionBars | CapabilityTitles |
		CapabilityBossBars | CapabilitySounds | CapabilityBooks
)

// Has reports whether c contains every bit of q.
func (c Capability) Has(q Capability) bool {
	return c&q == q
}

var capabilityNames = []struct {
	bit  Capability
	name string
}{
	{CapabilityMessages, "messages"},
	{CapabilityActionBars, "action_bars"},
	{CapabilityTitles, "titles"},
	{CapabilityBossBars, "boss_bars"},
	{CapabilitySounds, "sounds"},
	{CapabilityBooks, "books"},
}

// ParseCapability returns the capability named by s. Names match the
// String rendering: "messages", "action_bars", "titles", "boss_bars",
// "sounds", "books".
func ParseCapability(s string) (Capability, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, entry := range capabilityNames {
		if entry.name == name {
			return entry.bit, true
		}
	}
	return 0, false
}

// ParseCapabilities folds the named capabilities into a set, ignoring
// names it does not recognize.
func ParseCapabilities(names ...string) Capability {
	var set Capability
	for _, name := range names {
		if bit, ok := ParseCapability(name); ok {
			set |= bit
		}
	}
	return set
}

// String renders the set as pipe-separated names, "none" when empty.
func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, entry := range capabilityNames {
		if c&entry.bit != 0 {
			parts = append(parts, entry.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
