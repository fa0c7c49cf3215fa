package game

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/pixil98/go-arena/internal/physics"
	"github.com/pixil98/go-errors"
)

const FloorID = "floor"

// SeedConfig controls procedural obstacle placement.
type SeedConfig struct {
	ArenaWidth float64
	Obstacles  int
	// Margin keeps obstacles away from the arena edge.
	Margin float64

	MinFootprint, MaxFootprint float64
	MinHeight, MaxHeight       float64
	ObstacleMass               float64
}

// DefaultSeedConfig returns the standard arena layout parameters.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		ArenaWidth:   200,
		Obstacles:    50,
		Margin:       25,
		MinFootprint: 1,
		MaxFootprint: 5,
		MinHeight:    0.2,
		MaxHeight:    5,
		ObstacleMass: 100,
	}
}

func (c *SeedConfig) Validate() error {
	el := errors.NewErrorList()

	if c.ArenaWidth <= 0 {
		el.Add(fmt.Errorf("arena width must be positive"))
	}
	if c.Obstacles < 0 {
		el.Add(fmt.Errorf("obstacle count must not be negative"))
	}
	if c.Margin < 0 || 2*c.Margin >= c.ArenaWidth {
		el.Add(fmt.Errorf("margin must leave room for obstacles"))
	}
	if c.MinFootprint <= 0 || c.MaxFootprint < c.MinFootprint {
		el.Add(fmt.Errorf("footprint range is invalid"))
	}
	if c.MinHeight <= 0 || c.MaxHeight < c.MinHeight {
		el.Add(fmt.Errorf("height range is invalid"))
	}

	return el.Err()
}

// Floor returns the flat fixed box the arena stands on. It is slightly wider
// than the arena so there are no gaps at the edge, and its top face is z = 0.
func Floor(arenaWidth float64) Entity {
	return Entity{
		ID:          FloorID,
		Translation: physics.Vec3{Z: -0.5},
		Dimensions:  physics.Vec3{X: arenaWidth + 0.1, Y: arenaWidth + 0.1, Z: 1},
		Class:       ClassObstacle,
	}
}

// Seeder places random obstacles. Both placement and obstacle ids are drawn
// from the same source so a seeded source reproduces an arena exactly.
type Seeder struct {
	cfg SeedConfig
	rng *rand.Rand
	ids io.Reader
}

// NewSeeder creates a seeder drawing from a ChaCha8 stream. A zero seed
// draws from a random stream.
func NewSeeder(cfg SeedConfig, seed uint64) *Seeder {
	var key [32]byte
	if seed == 0 {
		seed = rand.Uint64()
	}
	for i := range 8 {
		key[i] = byte(seed >> (8 * i))
	}
	src := rand.NewChaCha8(key)
	return &Seeder{
		cfg: cfg,
		rng: rand.New(src),
		ids: src,
	}
}

func (s *Seeder) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Seeder) obstacleID() string {
	id, err := uuid.NewRandomFromReader(s.ids)
	if err != nil {
		// ChaCha8 reads never fail.
		return uuid.NewString()
	}
	return id.String()
}

// candidate draws one obstacle seated on the floor somewhere inside the margin.
func (s *Seeder) candidate() Entity {
	limit := s.cfg.ArenaWidth/2 - s.cfg.Margin
	length := s.uniform(s.cfg.MinFootprint, s.cfg.MaxFootprint)
	width := s.uniform(s.cfg.MinFootprint, s.cfg.MaxFootprint)
	height := s.uniform(s.cfg.MinHeight, s.cfg.MaxHeight)

	return Entity{
		Translation: physics.Vec3{
			X: s.uniform(-limit, limit),
			Y: s.uniform(-limit, limit),
			Z: height / 2,
		},
		Dimensions: physics.Vec3{X: length, Y: width, Z: height},
		Mass:       s.cfg.ObstacleMass,
		Class:      ClassObstacle,
	}
}

// Obstacles draws the configured number of obstacles, rejecting and redrawing
// any candidate that overlaps an existing body or an earlier obstacle. There
// is no retry cap: a configuration too dense to pack never returns.
func (s *Seeder) Obstacles(existing []Entity) []Entity {
	placed := make([]Entity, 0, s.cfg.Obstacles)
	for len(placed) < s.cfg.Obstacles {
		c := s.candidate()
		if overlapsAny(&c, existing) || overlapsAny(&c, placed) {
			continue
		}
		c.ID = s.obstacleID()
		placed = append(placed, c)
	}
	return placed
}

// InitialEntities builds the starting world: the floor, then any prefab
// entities, then random obstacles placed around them.
func (s *Seeder) InitialEntities(prefabs []Entity) []Entity {
	entities := []Entity{Floor(s.cfg.ArenaWidth)}
	entities = append(entities, prefabs...)
	return append(entities, s.Obstacles(entities)...)
}

func overlapsAny(e *Entity, others []Entity) bool {
	for i := range others {
		if e.Overlaps(&others[i]) {
			return true
		}
	}
	return false
}
