package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-arena/internal/physics"
)

// Backend is the part of the physics world the entity table drives.
type Backend interface {
	AddBody(physics.BodyDesc) physics.Handle
	RemoveBody(physics.Handle)
	Body(physics.Handle) (physics.BodyState, bool)
	SetBody(physics.Handle, physics.BodyState) bool
}

// Metadata is the gameplay state kept beside a physics body.
type Metadata struct {
	ID        string
	TeamID    *string
	OwnerID   *string
	Class     Class
	HitPoints int

	// Rotation is cached verbatim: the body only carries yaw.
	Rotation   physics.Vec3
	Dimensions physics.Vec3
}

func metadataOf(e *Entity) *Metadata {
	return &Metadata{
		ID:         e.ID,
		TeamID:     e.TeamID,
		OwnerID:    e.OwnerID,
		Class:      e.Class,
		HitPoints:  e.HitPoints,
		Rotation:   e.Rotation,
		Dimensions: e.Dimensions,
	}
}

// EntityTable correlates entity ids, physics handles and metadata. It is the
// only owner of the mapping: every entry has both a body and metadata, and
// removal drops both together.
type EntityTable struct {
	backend  Backend
	metadata map[physics.Handle]*Metadata
	handles  map[string]physics.Handle
}

// NewEntityTable creates an empty table over the given backend.
func NewEntityTable(backend Backend) *EntityTable {
	return &EntityTable{
		backend:  backend,
		metadata: make(map[physics.Handle]*Metadata),
		handles:  make(map[string]physics.Handle),
	}
}

// Upsert creates the entity if its id is unseen and returns true. Otherwise it
// overwrites position, velocities and rotation of the existing body plus all
// metadata, and returns false.
func (t *EntityTable) Upsert(e Entity) bool {
	h, ok := t.handles[e.ID]
	if !ok {
		h = t.backend.AddBody(bodyDesc(&e))
		t.handles[e.ID] = h
		t.metadata[h] = metadataOf(&e)
		return true
	}

	state, ok := t.backend.Body(h)
	if !ok {
		panic(fmt.Sprintf("game: entity %q has handle %d but no body", e.ID, h))
	}
	state.Position = e.Translation
	state.LinVel = e.LinVel
	state.AngVel = e.AngVel
	state.Rotation = yaw(e.Rotation)
	state.Sleeping = isDefeatedPlayer(&e)
	t.backend.SetBody(h, state)

	t.metadata[h] = metadataOf(&e)
	return false
}

// Remove detaches the entity's body and deletes its metadata. Unknown ids are ignored.
func (t *EntityTable) Remove(id string) {
	h, ok := t.handles[id]
	if !ok {
		return
	}
	t.backend.RemoveBody(h)
	delete(t.handles, id)
	delete(t.metadata, h)
}

// RemoveHandle removes the entity owning the handle. Unknown handles are ignored.
func (t *EntityTable) RemoveHandle(h physics.Handle) {
	if m, ok := t.metadata[h]; ok {
		t.Remove(m.ID)
	}
}

// Resolve returns the handle of an entity.
func (t *EntityTable) Resolve(id string) (physics.Handle, bool) {
	h, ok := t.handles[id]
	return h, ok
}

// MustResolve returns the handle of an entity the caller knows exists. A miss
// means the table is corrupt and panics.
func (t *EntityTable) MustResolve(id string) physics.Handle {
	h, ok := t.handles[id]
	if !ok {
		panic(fmt.Sprintf("game: no handle for entity %q", id))
	}
	return h
}

// Metadata returns a copy of the gameplay state attached to a handle.
func (t *EntityTable) Metadata(h physics.Handle) (Metadata, bool) {
	m, ok := t.metadata[h]
	if !ok {
		return Metadata{}, false
	}
	return *m, true
}

// SetHitPoints overwrites the hit points of the entity owning the handle.
func (t *EntityTable) SetHitPoints(h physics.Handle, hp int) bool {
	m, ok := t.metadata[h]
	if !ok {
		return false
	}
	m.HitPoints = hp
	return true
}

// setRotation overwrites the cached rotation of the entity owning the handle.
func (t *EntityTable) setRotation(h physics.Handle, r physics.Vec3) {
	if m, ok := t.metadata[h]; ok {
		m.Rotation = r
	}
}

// Materialize rebuilds an entity from live body state and stored metadata.
// It returns false if either half is missing, which is how entities removed
// earlier in a tick drop out of that tick's output.
func (t *EntityTable) Materialize(h physics.Handle) (Entity, bool) {
	m, ok := t.metadata[h]
	if !ok {
		return Entity{}, false
	}
	s, ok := t.backend.Body(h)
	if !ok {
		return Entity{}, false
	}

	return Entity{
		ID:          m.ID,
		TeamID:      m.TeamID,
		OwnerID:     m.OwnerID,
		Translation: s.Position,
		Rotation:    m.Rotation,
		LinVel:      s.LinVel,
		AngVel:      s.AngVel,
		Dimensions:  m.Dimensions,
		Mass:        s.Mass,
		Class:       m.Class,
		HitPoints:   m.HitPoints,
	}, true
}

// Len returns the number of entities in the table.
func (t *EntityTable) Len() int {
	return len(t.handles)
}

// Handles returns every handle in the table in insertion order.
func (t *EntityTable) Handles() []physics.Handle {
	return slices.Sorted(maps.Keys(t.metadata))
}

// ForEach calls fn with the metadata of every entity.
func (t *EntityTable) ForEach(fn func(physics.Handle, Metadata)) {
	for h, m := range t.metadata {
		fn(h, *m)
	}
}
