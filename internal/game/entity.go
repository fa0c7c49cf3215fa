package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-arena/internal/physics"
	"github.com/pixil98/go-errors"
)

// Class determines the collider shape, whether a body is simulated or held
// fixed, and which combat rules apply to it.
type Class int

const (
	ClassPlayer Class = iota
	ClassProjectile
	ClassObstacle
	ClassTest
)

func (c Class) String() string {
	switch c {
	case ClassPlayer:
		return "player"
	case ClassProjectile:
		return "projectile"
	case ClassObstacle:
		return "obstacle"
	case ClassTest:
		return "test"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

func (c Class) MarshalText() ([]byte, error) {
	switch c {
	case ClassPlayer, ClassProjectile, ClassObstacle, ClassTest:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("unknown class: %d", int(c))
	}
}

func (c *Class) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "player":
		*c = ClassPlayer
	case "projectile", "bullet":
		*c = ClassProjectile
	case "obstacle":
		*c = ClassObstacle
	case "test":
		*c = ClassTest
	default:
		return fmt.Errorf("unknown class: %s", text)
	}
	return nil
}

// Entity is the externally visible unit of simulation: the physical state of
// a body merged with the gameplay state the physics world knows nothing about.
type Entity struct {
	ID string `json:"id"`

	// TeamID is nil for entities that never count toward a win.
	TeamID *string `json:"team_id"`
	// OwnerID names the entity that spawned a projectile.
	OwnerID *string `json:"owner_id"`

	Translation physics.Vec3 `json:"translation"`
	// Rotation is Euler-like; only the Z (yaw) component is simulated.
	Rotation physics.Vec3 `json:"rotation"`
	LinVel   physics.Vec3 `json:"linvel"`
	AngVel   physics.Vec3 `json:"angvel"`

	// Dimensions are bounding extents. Players derive a capsule from the
	// height, projectiles are spheres of diameter Z and obstacles are boxes.
	Dimensions physics.Vec3 `json:"dimensions"`
	Mass       float64      `json:"mass"`
	Class      Class        `json:"class"`

	// HitPoints of zero marks a defeated entity that may still be present.
	HitPoints int `json:"hp"`
}

func (e *Entity) Validate() error {
	el := errors.NewErrorList()

	if e.ID == "" {
		el.Add(fmt.Errorf("id is required"))
	}
	if e.HitPoints < 0 {
		el.Add(fmt.Errorf("hp must not be negative"))
	}
	if e.Mass < 0 {
		el.Add(fmt.Errorf("mass must not be negative"))
	}
	if e.Dimensions.X < 0 || e.Dimensions.Y < 0 || e.Dimensions.Z < 0 {
		el.Add(fmt.Errorf("dimensions must not be negative"))
	}

	return el.Err()
}

// AABB returns the bounding box of the entity's dimensions around its translation.
func (e *Entity) AABB() physics.AABB {
	half := e.Dimensions.Scale(0.5)
	return physics.AABB{Min: e.Translation.Sub(half), Max: e.Translation.Add(half)}
}

// Overlaps reports whether the bounding boxes of two entities intersect on all three axes.
func (e *Entity) Overlaps(o *Entity) bool {
	return e.AABB().Overlaps(o.AABB())
}

// SameTeam reports whether two optional team ids name the same team. A
// missing team never matches, not even another missing team.
func SameTeam(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// Team returns a pointer to a team id, for building entities in code.
func Team(id string) *string {
	return &id
}
