package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-arena/internal/physics"
)

// World is the simulation state of one match: the physics world, the entity
// table over it, and the set of bodies touched during the current tick. It is
// owned by a single goroutine and is not safe for concurrent use.
type World struct {
	physics *physics.World
	table   *EntityTable
	touched map[physics.Handle]struct{}
}

// NewWorld wraps a physics world. The World takes exclusive ownership of it.
func NewWorld(pw *physics.World) *World {
	return &World{
		physics: pw,
		table:   NewEntityTable(pw),
		touched: make(map[physics.Handle]struct{}),
	}
}

// Table returns the entity table of the world.
func (w *World) Table() *EntityTable {
	return w.table
}

// Physics returns the underlying physics world.
func (w *World) Physics() *physics.World {
	return w.physics
}

// Populate upserts every entity and marks each one touched so the first tick
// reports the whole world.
func (w *World) Populate(entities []Entity) {
	for _, e := range entities {
		w.Upsert(e)
	}
}

// Upsert creates or overwrites an entity and marks it touched. It returns
// true when the entity was created.
func (w *World) Upsert(e Entity) bool {
	isNew := w.table.Upsert(e)
	w.touch(w.table.MustResolve(e.ID))
	return isNew
}

// Remove deletes an entity from the world. Unknown ids are ignored.
func (w *World) Remove(id string) {
	w.table.Remove(id)
}

// Move teleports an entity to (x, y), keeping its height.
func (w *World) Move(id string, x, y float64) error {
	h, s, err := w.body(id)
	if err != nil {
		return err
	}
	w.physics.SetPosition(h, physics.Vec3{X: x, Y: y, Z: s.Position.Z})
	w.touch(h)
	return nil
}

// Rotate sets the yaw of an entity.
func (w *World) Rotate(id string, angle float64) error {
	h, _, err := w.body(id)
	if err != nil {
		return err
	}
	m, _ := w.table.Metadata(h)
	r := m.Rotation
	r.Z = angle
	w.table.setRotation(h, r)
	w.physics.SetRotation(h, yaw(r))
	w.touch(h)
	return nil
}

// Jump sets the vertical velocity of an entity.
func (w *World) Jump(id string, linVelZ float64) error {
	h, s, err := w.body(id)
	if err != nil {
		return err
	}
	v := s.LinVel
	v.Z = linVelZ
	w.physics.SetLinVel(h, v)
	w.touch(h)
	return nil
}

func (w *World) body(id string) (physics.Handle, physics.BodyState, error) {
	h, ok := w.table.Resolve(id)
	if !ok {
		return 0, physics.BodyState{}, fmt.Errorf("%q: %w", id, ErrEntityNotFound)
	}
	s, ok := w.physics.Body(h)
	if !ok {
		panic(fmt.Sprintf("game: entity %q has handle %d but no body", id, h))
	}
	return h, s, nil
}

// Step advances the physics world by one timestep.
func (w *World) Step() []physics.CollisionEvent {
	return w.physics.Step()
}

// TouchActive adds every body the physics world considers moving to the touched set.
func (w *World) TouchActive() {
	for h := range w.physics.ActiveHandles() {
		w.touch(h)
	}
}

// TouchAll marks every entity touched.
func (w *World) TouchAll() {
	for _, h := range w.table.Handles() {
		w.touch(h)
	}
}

// TouchEntity marks an entity touched by id. Unknown ids are ignored.
func (w *World) TouchEntity(id string) {
	if h, ok := w.table.Resolve(id); ok {
		w.touch(h)
	}
}

func (w *World) touch(h physics.Handle) {
	w.touched[h] = struct{}{}
}

// Touched returns the touched handles in handle order.
func (w *World) Touched() []physics.Handle {
	return slices.Sorted(maps.Keys(w.touched))
}

// ClearTouched empties the touched set.
func (w *World) ClearTouched() {
	clear(w.touched)
}

// Snapshot materializes every touched entity that still exists. The result is
// never nil so it encodes as an empty array.
func (w *World) Snapshot() []Entity {
	out := make([]Entity, 0, len(w.touched))
	for _, h := range w.Touched() {
		if e, ok := w.table.Materialize(h); ok {
			out = append(out, e)
		}
	}
	return out
}
