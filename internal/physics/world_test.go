package physics

import (
	"math"
	"testing"

	"github.com/pixil98/go-testutil"
)

func addFloor(w *World) Handle {
	return w.AddBody(BodyDesc{
		Shape:    Cuboid{HalfExtents: Vec3{100, 100, 0.5}},
		Kind:     Fixed,
		Position: Vec3{0, 0, -0.5},
	})
}

func countEvents(events []CollisionEvent, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestWorld_BallSettlesOnFloor(t *testing.T) {
	w := NewWorld()
	floor := addFloor(w)
	ball := w.AddBody(BodyDesc{
		Shape:         Ball{Radius: 0.5},
		Kind:          Dynamic,
		Position:      Vec3{0, 0, 2},
		LockRotations: true,
	})

	var started, ended int
	for range 180 {
		events := w.Step()
		started += countEvents(events, ContactStarted)
		ended += countEvents(events, ContactEnded)
		for _, e := range events {
			if e.A != floor || e.B != ball {
				t.Fatalf("unexpected event pair %d-%d", e.A, e.B)
			}
		}
	}

	testutil.AssertEqual(t, "contacts started", started, 1)
	testutil.AssertEqual(t, "contacts ended", ended, 0)

	s, ok := w.Body(ball)
	if !ok {
		t.Fatal("expected ball to exist")
	}
	if math.Abs(s.Position.Z-0.5) > 0.05 {
		t.Errorf("ball resting height = %f, want ~0.5", s.Position.Z)
	}
	testutil.AssertEqual(t, "sleeping", s.Sleeping, true)

	_, active := w.ActiveHandles()[ball]
	testutil.AssertEqual(t, "active", active, false)
}

func TestWorld_FixedBodiesDoNotMove(t *testing.T) {
	w := NewWorld()
	floor := addFloor(w)

	for range 10 {
		w.Step()
	}

	s, ok := w.Body(floor)
	testutil.AssertEqual(t, "found", ok, true)
	testutil.AssertEqual(t, "position", s.Position, Vec3{0, 0, -0.5})
	testutil.AssertEqual(t, "active count", len(w.ActiveHandles()), 0)
}

func TestWorld_InelasticHeadOnCollision(t *testing.T) {
	w := NewWorld(WithGravity(Vec3{}))
	a := w.AddBody(BodyDesc{Shape: Ball{Radius: 0.5}, Kind: Dynamic, Position: Vec3{-1, 0, 0}, LinVel: Vec3{5, 0, 0}, Mass: 1})
	b := w.AddBody(BodyDesc{Shape: Ball{Radius: 0.5}, Kind: Dynamic, Position: Vec3{1, 0, 0}, LinVel: Vec3{-5, 0, 0}, Mass: 1})

	var started int
	for range 20 {
		started += countEvents(w.Step(), ContactStarted)
	}
	testutil.AssertEqual(t, "contacts started", started, 1)

	sa, _ := w.Body(a)
	sb, _ := w.Body(b)
	if math.Abs(sa.LinVel.X) > 1e-9 || math.Abs(sb.LinVel.X) > 1e-9 {
		t.Errorf("expected both bodies to stop, got %f and %f", sa.LinVel.X, sb.LinVel.X)
	}
	if sb.Position.X-sa.Position.X < 1-contactSkin {
		t.Errorf("bodies still interpenetrate: %f apart", sb.Position.X-sa.Position.X)
	}
}

func TestWorld_NearMissIsNotAContact(t *testing.T) {
	w := NewWorld(WithGravity(Vec3{}))
	w.AddBody(BodyDesc{Shape: Ball{Radius: 0.5}, Kind: Fixed, Position: Vec3{0, 1.005, 0}})
	w.AddBody(BodyDesc{Shape: Ball{Radius: 0.5}, Kind: Dynamic, Position: Vec3{-2, 0, 0}, LinVel: Vec3{6, 0, 0}, Mass: 1})

	var started int
	for range 60 {
		started += countEvents(w.Step(), ContactStarted)
	}
	testutil.AssertEqual(t, "contacts started", started, 0)
}

func TestWorld_RemoveBody(t *testing.T) {
	w := NewWorld()
	floor := addFloor(w)
	ball := w.AddBody(BodyDesc{Shape: Ball{Radius: 0.5}, Kind: Dynamic, Position: Vec3{0, 0, 0.5}})

	started := countEvents(w.Step(), ContactStarted)
	testutil.AssertEqual(t, "contacts started", started, 1)

	w.RemoveBody(ball)
	w.RemoveBody(ball)

	_, ok := w.Body(ball)
	testutil.AssertEqual(t, "found after remove", ok, false)
	testutil.AssertEqual(t, "len", w.Len(), 1)
	testutil.AssertEqual(t, "set after remove", w.SetPosition(ball, Vec3{}), false)

	events := w.Step()
	testutil.AssertEqual(t, "events after remove", len(events), 0)

	next := w.AddBody(BodyDesc{Shape: Ball{Radius: 0.5}, Kind: Dynamic})
	if next == ball || next == floor {
		t.Errorf("handle %d was reused", next)
	}
}

func TestWorld_SettersWakeBodies(t *testing.T) {
	w := NewWorld()
	h := w.AddBody(BodyDesc{Shape: Ball{Radius: 0.5}, Kind: Dynamic, Position: Vec3{0, 0, 10}, Sleeping: true})

	_, active := w.ActiveHandles()[h]
	testutil.AssertEqual(t, "active before", active, false)

	w.Step()
	s, _ := w.Body(h)
	testutil.AssertEqual(t, "sleeping body did not fall", s.Position.Z, 10.0)

	w.SetLinVel(h, Vec3{0, 0, 3})
	_, active = w.ActiveHandles()[h]
	testutil.AssertEqual(t, "active after", active, true)

	w.Step()
	s, _ = w.Body(h)
	if s.Position.Z <= 10 {
		t.Errorf("expected body to rise, z = %f", s.Position.Z)
	}
}

func TestAABB_Overlaps(t *testing.T) {
	unit := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}

	tests := map[string]struct {
		other AABB
		exp   bool
	}{
		"identical":         {other: unit, exp: true},
		"partial":           {other: AABB{Min: Vec3{0.5, 0.5, 0.5}, Max: Vec3{2, 2, 2}}, exp: true},
		"shared face":       {other: AABB{Min: Vec3{1, 0, 0}, Max: Vec3{2, 1, 1}}, exp: false},
		"separated on x":    {other: AABB{Min: Vec3{3, 0, 0}, Max: Vec3{4, 1, 1}}, exp: false},
		"overlap xy, not z": {other: AABB{Min: Vec3{0, 0, 2}, Max: Vec3{1, 1, 3}}, exp: false},
		"contained":         {other: AABB{Min: Vec3{0.25, 0.25, 0.25}, Max: Vec3{0.75, 0.75, 0.75}}, exp: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "overlaps", unit.Overlaps(tt.other), tt.exp)
			testutil.AssertEqual(t, "symmetric", tt.other.Overlaps(unit), tt.exp)
		})
	}
}

func TestCollide_CapsuleOnBox(t *testing.T) {
	floor := Cuboid{HalfExtents: Vec3{10, 10, 0.5}}.core(Vec3{0, 0, -0.5})
	player := CapsuleZ{HalfHeight: 0.5, Radius: 0.5}.core(Vec3{0, 0, 0.9})

	c := collide(player, floor)
	testutil.AssertEqual(t, "normal", c.normal, Vec3{0, 0, 1})
	if math.Abs(c.depth-0.1) > 1e-9 {
		t.Errorf("depth = %f, want 0.1", c.depth)
	}

	c = collide(floor, player)
	testutil.AssertEqual(t, "reversed normal", c.normal, Vec3{0, 0, -1})
}
