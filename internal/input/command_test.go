package input

import (
	"errors"
	"testing"

	"github.com/pixil98/go-arena/internal/game"
	"github.com/pixil98/go-arena/internal/physics"
	"github.com/pixil98/go-testutil"
)

func newTestWorld() *game.World {
	w := game.NewWorld(physics.NewWorld(physics.WithGravity(physics.Vec3{})))
	w.Upsert(game.Entity{
		ID:          "p1",
		TeamID:      game.Team("red"),
		Translation: physics.Vec3{X: 1, Y: 1, Z: 1},
		Dimensions:  physics.Vec3{X: 1, Y: 1, Z: 2},
		Mass:        80,
		Class:       game.ClassPlayer,
		HitPoints:   3,
	})
	w.ClearTouched()
	return w
}

func TestCommand_Apply(t *testing.T) {
	tests := map[string]struct {
		cmd    Command
		verify func(t *testing.T, e game.Entity)
	}{
		"move keeps height": {
			cmd: Move{ID: "p1", X: 5, Y: -3},
			verify: func(t *testing.T, e game.Entity) {
				testutil.AssertEqual(t, "translation", e.Translation, physics.Vec3{X: 5, Y: -3, Z: 1})
			},
		},
		"rotate sets yaw": {
			cmd: Rotate{ID: "p1", RotationAngle: 1.25},
			verify: func(t *testing.T, e game.Entity) {
				testutil.AssertEqual(t, "yaw", e.Rotation.Z, 1.25)
			},
		},
		"jump sets vertical velocity": {
			cmd: Jump{ID: "p1", LinVelZ: 6},
			verify: func(t *testing.T, e game.Entity) {
				testutil.AssertEqual(t, "linvel z", e.LinVel.Z, 6.0)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld()
			if err := tt.cmd.Apply(w); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			touched := w.Touched()
			testutil.AssertEqual(t, "touched", len(touched), 1)

			e, ok := w.Table().Materialize(w.Table().MustResolve("p1"))
			testutil.AssertEqual(t, "materialized", ok, true)
			tt.verify(t, e)
		})
	}
}

func TestCommand_ApplyUnknownEntity(t *testing.T) {
	tests := map[string]struct {
		cmd Command
	}{
		"move":   {cmd: Move{ID: "ghost"}},
		"rotate": {cmd: Rotate{ID: "ghost"}},
		"jump":   {cmd: Jump{ID: "ghost"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld()
			err := tt.cmd.Apply(w)
			testutil.AssertEqual(t, "not found", errors.Is(err, game.ErrEntityNotFound), true)
			testutil.AssertEqual(t, "touched", len(w.Touched()), 0)
		})
	}
}

func TestCommand_SpawnUpserts(t *testing.T) {
	w := newTestWorld()
	shot := Shoot{Entity: game.Entity{
		ID:          "b1",
		TeamID:      game.Team("blue"),
		Translation: physics.Vec3{X: 10, Z: 1},
		LinVel:      physics.Vec3{X: 20},
		Dimensions:  physics.Vec3{X: 0.2, Y: 0.2, Z: 0.2},
		Mass:        0.1,
		Class:       game.ClassProjectile,
	}}

	if err := shot.Apply(w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "table len", w.Table().Len(), 2)
	testutil.AssertEqual(t, "touched", len(w.Touched()), 1)

	p := AddPlayer{Entity: game.Entity{
		ID:          "p1",
		TeamID:      game.Team("red"),
		Translation: physics.Vec3{X: 1, Y: 1, Z: 1},
		Dimensions:  physics.Vec3{X: 1, Y: 1, Z: 2},
		Mass:        80,
		Class:       game.ClassPlayer,
		HitPoints:   1,
	}}
	if err := p.Apply(w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "table len after overwrite", w.Table().Len(), 2)

	m, _ := w.Table().Metadata(w.Table().MustResolve("p1"))
	testutil.AssertEqual(t, "overwritten hp", m.HitPoints, 1)
}
