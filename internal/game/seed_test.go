package game

import (
	"testing"

	"github.com/pixil98/go-arena/internal/physics"
	"github.com/pixil98/go-testutil"
)

func TestSeeder_ObstaclesDoNotOverlap(t *testing.T) {
	cfg := DefaultSeedConfig()
	entities := NewSeeder(cfg, 42).InitialEntities(nil)

	testutil.AssertEqual(t, "entity count", len(entities), cfg.Obstacles+1)
	testutil.AssertEqual(t, "floor first", entities[0].ID, FloorID)

	for i := range entities {
		for j := i + 1; j < len(entities); j++ {
			if entities[i].Overlaps(&entities[j]) {
				t.Errorf("%s overlaps %s", entities[i].ID, entities[j].ID)
			}
		}
	}
}

func TestSeeder_ObstaclePlacement(t *testing.T) {
	cfg := DefaultSeedConfig()
	limit := cfg.ArenaWidth/2 - cfg.Margin
	ids := map[string]bool{}

	for _, o := range NewSeeder(cfg, 7).Obstacles(nil) {
		testutil.AssertEqual(t, "class", o.Class, ClassObstacle)
		testutil.AssertEqual(t, "mass", o.Mass, cfg.ObstacleMass)
		testutil.AssertEqual(t, "seated on floor", o.Translation.Z, o.Dimensions.Z/2)

		if o.Translation.X < -limit || o.Translation.X > limit || o.Translation.Y < -limit || o.Translation.Y > limit {
			t.Errorf("obstacle %s outside the margin at %+v", o.ID, o.Translation)
		}
		if o.Dimensions.X < cfg.MinFootprint || o.Dimensions.X >= cfg.MaxFootprint {
			t.Errorf("obstacle %s length %f out of range", o.ID, o.Dimensions.X)
		}
		if o.Dimensions.Z < cfg.MinHeight || o.Dimensions.Z >= cfg.MaxHeight {
			t.Errorf("obstacle %s height %f out of range", o.ID, o.Dimensions.Z)
		}
		if ids[o.ID] {
			t.Errorf("duplicate obstacle id %s", o.ID)
		}
		ids[o.ID] = true
	}
}

func TestSeeder_SameSeedSameArena(t *testing.T) {
	cfg := DefaultSeedConfig()
	cfg.Obstacles = 10

	a := NewSeeder(cfg, 99).Obstacles(nil)
	b := NewSeeder(cfg, 99).Obstacles(nil)

	for i := range a {
		testutil.AssertEqual(t, "id", a[i].ID, b[i].ID)
		testutil.AssertEqual(t, "translation", a[i].Translation, b[i].Translation)
		testutil.AssertEqual(t, "dimensions", a[i].Dimensions, b[i].Dimensions)
	}
}

func TestSeeder_AvoidsPrefabs(t *testing.T) {
	cfg := DefaultSeedConfig()
	cfg.Obstacles = 20
	wall := Entity{
		ID:          "wall",
		Translation: physics.Vec3{Z: 2.5},
		Dimensions:  physics.Vec3{X: 100, Y: 4, Z: 5},
		Class:       ClassObstacle,
	}

	entities := NewSeeder(cfg, 3).InitialEntities([]Entity{wall})
	testutil.AssertEqual(t, "prefab kept", entities[1].ID, "wall")

	for _, e := range entities[2:] {
		if e.Overlaps(&wall) {
			t.Errorf("obstacle %s overlaps the prefab wall", e.ID)
		}
	}
}

func TestFloor(t *testing.T) {
	f := Floor(200)

	testutil.AssertEqual(t, "id", f.ID, FloorID)
	testutil.AssertEqual(t, "class", f.Class, ClassObstacle)
	testutil.AssertEqual(t, "mass", f.Mass, 0.0)
	testutil.AssertEqual(t, "top face", f.Translation.Z+f.Dimensions.Z/2, 0.0)
	testutil.AssertEqual(t, "wider than arena", f.Dimensions.X > 200 && f.Dimensions.Y > 200, true)
}

func TestSeedConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(*SeedConfig)
		expErr string
	}{
		"default is valid": {
			mutate: func(*SeedConfig) {},
		},
		"margin swallows arena": {
			mutate: func(c *SeedConfig) { c.Margin = 100 },
			expErr: "margin",
		},
		"negative obstacles": {
			mutate: func(c *SeedConfig) { c.Obstacles = -1 },
			expErr: "obstacle count",
		},
		"inverted height range": {
			mutate: func(c *SeedConfig) { c.MinHeight, c.MaxHeight = 3, 1 },
			expErr: "height range",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultSeedConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}
