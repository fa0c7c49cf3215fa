package physics

// Handle is an opaque reference to a body in a World. Handles are never
// reused within a World.
type Handle uint64

// BodyKind selects how a body is simulated.
type BodyKind int

const (
	// Dynamic bodies integrate gravity and are pushed out of contacts.
	Dynamic BodyKind = iota
	// Fixed bodies never move.
	Fixed
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// BodyDesc describes a body to insert.
type BodyDesc struct {
	Shape    Shape
	Kind     BodyKind
	Position Vec3
	Rotation Vec3
	LinVel   Vec3
	AngVel   Vec3
	Mass     float64

	// Sleeping bodies do not integrate until something wakes them.
	Sleeping bool
	// LockRotations zeroes angular velocity on every step.
	LockRotations bool
}

// BodyState is the externally visible dynamic state of a body.
type BodyState struct {
	Position Vec3
	Rotation Vec3
	LinVel   Vec3
	AngVel   Vec3
	Mass     float64
	Sleeping bool
}

type body struct {
	shape         Shape
	kind          BodyKind
	state         BodyState
	lockRotations bool

	// restSteps counts consecutive steps under the sleep threshold.
	restSteps int
}

// inverseMass returns the inverse inertial mass; zero for fixed bodies.
func (b *body) inverseMass() float64 {
	if b.kind == Fixed {
		return 0
	}
	m := b.state.Mass
	if m <= 0 {
		m = b.shape.Volume()
	}
	if m <= 0 {
		return 0
	}
	return 1 / m
}

func (b *body) core() core {
	return b.shape.core(b.state.Position)
}

func (b *body) aabb() AABB {
	return b.shape.AABB(b.state.Position)
}

func (b *body) wake() {
	b.state.Sleeping = false
	b.restSteps = 0
}

// awake reports whether the body is a dynamic body that integrates this step.
func (b *body) awake() bool {
	return b.kind == Dynamic && !b.state.Sleeping
}
