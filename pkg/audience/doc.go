// Package audience composes media-event sinks. An Audience receives chat
// messages, action bar text, titles, boss bars, sounds, and books; it may be
// a single recipient, a weakly-held recipient, or a group, and callers treat
// all of them identically.
//
// Composition is immutable and collapse-aware: Of over zero audiences yields
// the shared empty audience, over one yields that audience unchanged, over
// many yields an ordered fan-out. Perform applies an action to the concrete
// viewers that declare a required capability and folds the affected subset
// back to its minimal representation, preserving wrapper identity across
// passthrough dispatches.
//
// Every operation is synchronous and runs on the caller's goroutine. Send
// eligibility is advisory: sending to an audience that reports a capability
// as unavailable is a silent no-op, never an error. Implementations are
// expected to be pointer-shaped, since collapse relies on interface
// identity.
package audience
