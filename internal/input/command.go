package input

import (
	"github.com/pixil98/go-arena/internal/game"
)

const (
	ActionMove      = "move"
	ActionRotate    = "rotate"
	ActionJump      = "jump"
	ActionShoot     = "shoot"
	ActionAddPlayer = "add_player"
)

// Command is one parsed instruction from a client, applied to the world at
// the start of a tick.
type Command interface {
	Action() string
	EntityID() string
	Apply(w *game.World) error
}

// Move teleports an entity in the horizontal plane.
type Move struct {
	ID string
	X  float64
	Y  float64
}

func (c Move) Action() string { return ActionMove }
func (c Move) EntityID() string { return c.ID }

func (c Move) Apply(w *game.World) error {
	return w.Move(c.ID, c.X, c.Y)
}

// Rotate sets an entity's yaw.
type Rotate struct {
	ID            string
	RotationAngle float64
}

func (c Rotate) Action() string { return ActionRotate }
func (c Rotate) EntityID() string { return c.ID }

func (c Rotate) Apply(w *game.World) error {
	return w.Rotate(c.ID, c.RotationAngle)
}

// Jump sets an entity's vertical velocity.
type Jump struct {
	ID      string
	LinVelZ float64
}

func (c Jump) Action() string { return ActionJump }
func (c Jump) EntityID() string { return c.ID }

func (c Jump) Apply(w *game.World) error {
	return w.Jump(c.ID, c.LinVelZ)
}

// Shoot spawns or overwrites a projectile.
type Shoot struct {
	Entity game.Entity
}

func (c Shoot) Action() string { return ActionShoot }
func (c Shoot) EntityID() string { return c.Entity.ID }

func (c Shoot) Apply(w *game.World) error {
	w.Upsert(c.Entity)
	return nil
}

// AddPlayer spawns or overwrites a player.
type AddPlayer struct {
	Entity game.Entity
}

func (c AddPlayer) Action() string { return ActionAddPlayer }
func (c AddPlayer) EntityID() string { return c.Entity.ID }

func (c AddPlayer) Apply(w *game.World) error {
	w.Upsert(c.Entity)
	return nil
}
