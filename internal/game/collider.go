package game

import (
	"math"

	"github.com/pixil98/go-arena/internal/physics"
)

// PlayerColliderRadius is the radius of the capsule used for every player.
const PlayerColliderRadius = 0.525

// collider returns the shape attached to the body of an entity of the given
// class. Projectile and test radii, and the capsule height of players, come
// from the vertical dimension.
func collider(class Class, dims physics.Vec3) physics.Shape {
	halfHeight := dims.Z / 2

	switch class {
	case ClassPlayer:
		return physics.CapsuleZ{
			HalfHeight: math.Max(halfHeight-PlayerColliderRadius, 0),
			Radius:     PlayerColliderRadius,
		}
	case ClassObstacle:
		return physics.Cuboid{HalfExtents: dims.Scale(0.5)}
	default:
		return physics.Ball{Radius: halfHeight}
	}
}

func bodyKind(class Class) physics.BodyKind {
	if class == ClassObstacle {
		return physics.Fixed
	}
	return physics.Dynamic
}

// yaw keeps only the Z component of a rotation; the others are not simulated.
func yaw(r physics.Vec3) physics.Vec3 {
	return physics.Vec3{Z: r.Z}
}

// isDefeatedPlayer reports whether the body can be left asleep: defeated
// players stay in the world but no longer need simulating.
func isDefeatedPlayer(e *Entity) bool {
	return e.Class == ClassPlayer && e.HitPoints == 0
}

func bodyDesc(e *Entity) physics.BodyDesc {
	return physics.BodyDesc{
		Shape:         collider(e.Class, e.Dimensions),
		Kind:          bodyKind(e.Class),
		Position:      e.Translation,
		Rotation:      yaw(e.Rotation),
		LinVel:        e.LinVel,
		AngVel:        e.AngVel,
		Mass:          e.Mass,
		Sleeping:      isDefeatedPlayer(e),
		LockRotations: true,
	}
}
