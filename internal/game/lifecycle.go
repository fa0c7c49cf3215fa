package game

import (
	"math"

	"github.com/pixil98/go-arena/internal/physics"
)

// IsOnFloor reports whether the entity has sunk to its own resting height.
func IsOnFloor(e *Entity) bool {
	return e.Translation.Z <= e.Dimensions.Z/2
}

// IsAtRest reports whether every linear velocity component rounds to zero.
// Rounding is to the nearest integer, so anything under half a unit per
// second counts as stopped.
func IsAtRest(e *Entity) bool {
	return math.Round(e.LinVel.X) == 0 &&
		math.Round(e.LinVel.Y) == 0 &&
		math.Round(e.LinVel.Z) == 0
}

// IsStale reports whether the entity should be removed from the world. Only
// projectiles go stale, once they land or stop.
func IsStale(e *Entity) bool {
	switch e.Class {
	case ClassProjectile:
		return IsOnFloor(e) || IsAtRest(e)
	default:
		return false
	}
}

// RemoveStale removes every stale entity among the given handles and returns
// the removed ids. Handles that no longer resolve are skipped.
func (w *World) RemoveStale(handles []physics.Handle) []string {
	var removed []string
	for _, h := range handles {
		e, ok := w.table.Materialize(h)
		if !ok || !IsStale(&e) {
			continue
		}
		w.table.Remove(e.ID)
		removed = append(removed, e.ID)
	}
	return removed
}
