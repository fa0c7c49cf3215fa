package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-arena/internal/game"
	"github.com/pixil98/go-arena/internal/physics"
	"github.com/pixil98/go-arena/internal/storage"
	"github.com/pixil98/go-errors"
)

type WorldConfig struct {
	ArenaWidth float64       `json:"arena_width" env:"ARENA_WIDTH"`
	Obstacles  *int          `json:"obstacles" env:"ARENA_OBSTACLES"`
	Margin     float64       `json:"margin" env:"ARENA_MARGIN"`
	Seed       uint64        `json:"seed" env:"ARENA_SEED"`
	Gravity    *physics.Vec3 `json:"gravity"`
	LayoutPath string        `json:"layout_path" env:"ARENA_LAYOUT_PATH"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	sc := c.seedConfig()
	if err := sc.Validate(); err != nil {
		el.Add(fmt.Errorf("world: %w", err))
	}

	if c.LayoutPath != "" {
		if _, err := os.Stat(c.LayoutPath); err != nil {
			el.Add(fmt.Errorf("world: invalid layout_path %q: %w", c.LayoutPath, err))
		}
	}

	return el.Err()
}

func (c *WorldConfig) seedConfig() game.SeedConfig {
	sc := game.DefaultSeedConfig()
	if c.ArenaWidth != 0 {
		sc.ArenaWidth = c.ArenaWidth
	}
	if c.Obstacles != nil {
		sc.Obstacles = *c.Obstacles
	}
	if c.Margin != 0 {
		sc.Margin = c.Margin
	}
	return sc
}

func (c *WorldConfig) buildPhysics() *physics.World {
	var opts []physics.WorldOpt
	if c.Gravity != nil {
		opts = append(opts, physics.WithGravity(*c.Gravity))
	}
	return physics.NewWorld(opts...)
}

func (c *WorldConfig) loadPrefabs() ([]game.Entity, error) {
	if c.LayoutPath == "" {
		return nil, nil
	}
	return storage.LoadLayout(c.LayoutPath)
}
