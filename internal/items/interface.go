package items

// Backend reads one metric kind from a concrete local source
// (pseudo-file, system bus, or sensor library).
//
// Availability is decided at construction: a backend constructor
// returns an error when its source is absent on this host, and the
// manager omits the item from the active set. Poll itself never
// reports unavailability, only per-poll failures.
type Backend interface {
	// Poll performs one bounded, synchronous read and returns a
	// Sample. It must complete quickly enough to share the
	// cooperative timeline with every other item; expensive
	// enumeration belongs in the discovery cache, not here.
	Poll() Sample
}

// RenderState is the entire contract the presentation layer may
// depend on, besides Name and Start.
type RenderState struct {
	Text  string
	Icon  string
	Stale bool
}
