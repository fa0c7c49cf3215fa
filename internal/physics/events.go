package physics

// EventKind distinguishes the rising and falling edge of a contact.
type EventKind int

const (
	ContactStarted EventKind = iota
	ContactEnded
)

func (k EventKind) String() string {
	switch k {
	case ContactStarted:
		return "contact-started"
	case ContactEnded:
		return "contact-ended"
	default:
		return "unknown"
	}
}

// CollisionEvent names two bodies whose contact state changed during a step.
type CollisionEvent struct {
	Kind EventKind
	A, B Handle
}

// pair is an unordered pair of handles stored with A < B.
type pair struct {
	a, b Handle
}

func newPair(a, b Handle) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a: a, b: b}
}

func (p pair) has(h Handle) bool {
	return p.a == h || p.b == h
}
