package combat

import (
	"github.com/pixil98/go-arena/internal/game"
	"github.com/pixil98/go-arena/internal/physics"
)

// Table is the part of the entity table the resolver reads and mutates.
type Table interface {
	Metadata(physics.Handle) (game.Metadata, bool)
	SetHitPoints(physics.Handle, int) bool
	RemoveHandle(physics.Handle)
}

// Resolver turns contact events into gameplay consequences. The only rule is
// a projectile striking a player of another team.
type Resolver struct {
	table Table
}

// NewResolver creates a Resolver over the given table.
func NewResolver(t Table) *Resolver {
	return &Resolver{table: t}
}

// Resolve applies every contact-started event in order and returns the hits
// that landed. Contact-ended events are ignored. Events naming a body removed
// earlier in the batch no longer resolve and are skipped.
func (r *Resolver) Resolve(events []physics.CollisionEvent) []Hit {
	var hits []Hit
	for _, ev := range events {
		if ev.Kind != physics.ContactStarted {
			continue
		}
		if hit, ok := r.contact(ev.A, ev.B); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

func (r *Resolver) contact(a, b physics.Handle) (Hit, bool) {
	ma, ok := r.table.Metadata(a)
	if !ok {
		return Hit{}, false
	}
	mb, ok := r.table.Metadata(b)
	if !ok {
		return Hit{}, false
	}

	switch {
	case ma.Class == game.ClassPlayer && mb.Class == game.ClassProjectile:
		return r.strike(a, ma, b, mb)
	case ma.Class == game.ClassProjectile && mb.Class == game.ClassPlayer:
		return r.strike(b, mb, a, ma)
	default:
		return Hit{}, false
	}
}

// strike damages the player and consumes the projectile, unless both are on
// the same team.
func (r *Resolver) strike(player physics.Handle, pm game.Metadata, projectile physics.Handle, bm game.Metadata) (Hit, bool) {
	if game.SameTeam(pm.TeamID, bm.TeamID) {
		return Hit{}, false
	}

	hp := ApplyDamage(pm.HitPoints, ProjectileDamage)
	r.table.SetHitPoints(player, hp)
	r.table.RemoveHandle(projectile)

	return Hit{
		PlayerID:     pm.ID,
		ProjectileID: bm.ID,
		OwnerID:      bm.OwnerID,
		Before:       pm.HitPoints,
		After:        hp,
	}, true
}
