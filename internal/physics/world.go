package physics

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"time"
)

const (
	DefaultGravity  = -9.80665
	DefaultTimestep = time.Second / 60

	// contactSkin keeps an existing contact alive while gravity and positional
	// correction alternate within a fraction of a unit. New contacts need
	// real overlap.
	contactSkin = 0.01
	friction    = 0.5

	sleepSpeed = 0.05
	sleepSteps = 30
)

// World is a minimal rigid-body world. It is not safe for concurrent use.
type World struct {
	gravity  Vec3
	timestep time.Duration

	bodies map[Handle]*body
	order  []Handle
	next   Handle

	contacts map[pair]struct{}
}

// NewWorld creates an empty world with Z-up gravity.
func NewWorld(opts ...WorldOpt) *World {
	w := &World{
		gravity:  Vec3{0, 0, DefaultGravity},
		timestep: DefaultTimestep,
		bodies:   make(map[Handle]*body),
		contacts: make(map[pair]struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Gravity returns the acceleration applied to dynamic bodies.
func (w *World) Gravity() Vec3 {
	return w.gravity
}

// Timestep returns the simulated duration of a single Step.
func (w *World) Timestep() time.Duration {
	return w.timestep
}

// Len returns the number of bodies in the world.
func (w *World) Len() int {
	return len(w.bodies)
}

// AddBody inserts a body together with its collider and returns its handle.
func (w *World) AddBody(d BodyDesc) Handle {
	w.next++
	h := w.next

	b := &body{
		shape:         d.Shape,
		kind:          d.Kind,
		lockRotations: d.LockRotations,
		state: BodyState{
			Position: d.Position,
			Rotation: d.Rotation,
			LinVel:   d.LinVel,
			AngVel:   d.AngVel,
			Mass:     d.Mass,
			Sleeping: d.Sleeping,
		},
	}
	if b.kind == Fixed {
		b.state.LinVel = Vec3{}
		b.state.AngVel = Vec3{}
		b.state.Sleeping = false
	}

	w.bodies[h] = b
	w.order = append(w.order, h)
	return h
}

// RemoveBody removes a body and its collider. Contacts involving the body are
// forgotten without emitting ContactEnded. Unknown handles are ignored.
func (w *World) RemoveBody(h Handle) {
	if _, ok := w.bodies[h]; !ok {
		return
	}
	delete(w.bodies, h)
	if i := slices.Index(w.order, h); i >= 0 {
		w.order = slices.Delete(w.order, i, i+1)
	}
	for p := range w.contacts {
		if p.has(h) {
			delete(w.contacts, p)
		}
	}
}

// Body returns the state of the body, or false if the handle is unknown.
func (w *World) Body(h Handle) (BodyState, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return BodyState{}, false
	}
	return b.state, true
}

// SetBody overwrites the state of a body. Fixed bodies only accept position
// and rotation. Returns false if the handle is unknown.
func (w *World) SetBody(h Handle, s BodyState) bool {
	b, ok := w.bodies[h]
	if !ok {
		return false
	}
	if b.kind == Fixed {
		b.state.Position = s.Position
		b.state.Rotation = s.Rotation
		b.state.Mass = s.Mass
		return true
	}
	b.state = s
	b.restSteps = 0
	return true
}

// SetPosition moves a body and wakes it.
func (w *World) SetPosition(h Handle, p Vec3) bool {
	return w.update(h, func(s *BodyState) { s.Position = p })
}

// SetLinVel sets the linear velocity of a body and wakes it.
func (w *World) SetLinVel(h Handle, v Vec3) bool {
	return w.update(h, func(s *BodyState) { s.LinVel = v })
}

// SetRotation sets the rotation of a body and wakes it.
func (w *World) SetRotation(h Handle, r Vec3) bool {
	return w.update(h, func(s *BodyState) { s.Rotation = r })
}

func (w *World) update(h Handle, fn func(*BodyState)) bool {
	b, ok := w.bodies[h]
	if !ok {
		return false
	}
	fn(&b.state)
	if b.kind == Dynamic {
		b.wake()
	} else {
		b.state.LinVel = Vec3{}
	}
	return true
}

// ActiveHandles returns the dynamic bodies that are awake.
func (w *World) ActiveHandles() map[Handle]struct{} {
	active := make(map[Handle]struct{})
	for h, b := range w.bodies {
		if b.awake() {
			active[h] = struct{}{}
		}
	}
	return active
}

// Step advances the world by one timestep and returns the contact changes
// observed during the step, ordered by handle.
func (w *World) Step() []CollisionEvent {
	dt := w.timestep.Seconds()

	for _, h := range w.order {
		b := w.bodies[h]
		if !b.awake() {
			continue
		}
		b.state.LinVel = b.state.LinVel.Add(w.gravity.Scale(dt))
		if b.lockRotations {
			b.state.AngVel = Vec3{}
		}
		b.state.Position = b.state.Position.Add(b.state.LinVel.Scale(dt))
	}

	touching := make(map[pair]struct{}, len(w.contacts))
	for i, ha := range w.order {
		a := w.bodies[ha]
		for _, hb := range w.order[i+1:] {
			b := w.bodies[hb]
			p := newPair(ha, hb)

			// Nothing moved between two resting bodies; keep whatever we knew.
			if !a.awake() && !b.awake() {
				if _, ok := w.contacts[p]; ok {
					touching[p] = struct{}{}
				}
				continue
			}

			if !a.aabb().Expand(contactSkin).Overlaps(b.aabb()) {
				continue
			}
			c := collide(a.core(), b.core())
			_, known := w.contacts[p]
			if c.depth <= 0 && (!known || c.depth <= -contactSkin) {
				continue
			}
			touching[p] = struct{}{}
			if c.depth > 0 {
				separate(a, b, c)
			}
		}
	}

	for _, h := range w.order {
		b := w.bodies[h]
		if !b.awake() {
			continue
		}
		if b.state.LinVel.LenSq() < sleepSpeed*sleepSpeed {
			b.restSteps++
			if b.restSteps >= sleepSteps {
				b.state.Sleeping = true
				b.state.LinVel = Vec3{}
				b.state.AngVel = Vec3{}
			}
		} else {
			b.restSteps = 0
		}
	}

	events := diffContacts(w.contacts, touching)
	w.contacts = touching
	return events
}

func diffContacts(before, after map[pair]struct{}) []CollisionEvent {
	var events []CollisionEvent
	for _, p := range slices.SortedFunc(maps.Keys(after), comparePairs) {
		if _, ok := before[p]; !ok {
			events = append(events, CollisionEvent{Kind: ContactStarted, A: p.a, B: p.b})
		}
	}
	for _, p := range slices.SortedFunc(maps.Keys(before), comparePairs) {
		if _, ok := after[p]; !ok {
			events = append(events, CollisionEvent{Kind: ContactEnded, A: p.a, B: p.b})
		}
	}
	return events
}

func comparePairs(x, y pair) int {
	if c := cmp.Compare(x.a, y.a); c != 0 {
		return c
	}
	return cmp.Compare(x.b, y.b)
}

// separate pushes two interpenetrating bodies apart in proportion to their
// inverse masses, removes the approaching normal velocity and applies Coulomb
// friction to what is left.
func separate(a, b *body, c contact) {
	ia, ib := a.inverseMass(), b.inverseMass()
	sum := ia + ib
	if sum == 0 {
		return
	}

	if b.kind == Dynamic && b.state.Sleeping {
		b.wake()
	}
	if a.kind == Dynamic && a.state.Sleeping {
		a.wake()
	}

	a.state.Position = a.state.Position.Add(c.normal.Scale(c.depth * ia / sum))
	b.state.Position = b.state.Position.Sub(c.normal.Scale(c.depth * ib / sum))

	vn := a.state.LinVel.Sub(b.state.LinVel).Dot(c.normal)
	if vn >= 0 {
		return
	}
	j := -vn / sum
	a.state.LinVel = a.state.LinVel.Add(c.normal.Scale(j * ia))
	b.state.LinVel = b.state.LinVel.Sub(c.normal.Scale(j * ib))

	rel := a.state.LinVel.Sub(b.state.LinVel)
	vt := rel.Sub(c.normal.Scale(rel.Dot(c.normal)))
	vtLen := vt.Len()
	if vtLen == 0 {
		return
	}
	jt := math.Min(vtLen/sum, friction*j)
	t := vt.Scale(1 / vtLen)
	a.state.LinVel = a.state.LinVel.Sub(t.Scale(jt * ia))
	b.state.LinVel = b.state.LinVel.Add(t.Scale(jt * ib))
}
