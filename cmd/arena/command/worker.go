package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/pixil98/go-arena/internal/driver"
	"github.com/pixil98/go-arena/internal/game"
	"github.com/pixil98/go-arena/internal/input"
	"github.com/pixil98/go-arena/internal/messaging"
	"github.com/pixil98/go-service"
)

// Builder turns a loaded Config into the app's workers.
type Builder struct {
	// Halt is called once the match is won, to stop the remaining workers.
	Halt   func()
	Level  *slog.LevelVar
	Input  io.Reader
	Output io.Writer
}

func (b *Builder) BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if b.Level != nil {
		b.Level.Set(cfg.logLevel())
	}

	ctx := context.Background()

	// Setup tracing
	provider, err := cfg.Telemetry.buildProvider(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up telemetry: %w", err)
	}

	// Build the arena
	prefabs, err := cfg.World.loadPrefabs()
	if err != nil {
		return nil, err
	}

	seed := cfg.World.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	seeder := game.NewSeeder(cfg.World.seedConfig(), seed)

	world := game.NewWorld(cfg.World.buildPhysics())
	world.Populate(seeder.InitialEntities(prefabs))
	world.ClearTouched()

	slog.InfoContext(ctx, "arena seeded", "seed", seed, "entities", world.Table().Len(), "prefabs", len(prefabs))

	queue := input.NewQueue()
	emitters := messaging.Emitters{messaging.NewLineEmitter(b.Output)}

	workers := service.WorkerList{
		"input":     input.NewReader("stdin", b.Input, queue),
		"telemetry": provider,
	}

	// Optional NATS transport
	if cfg.Nats.Enabled {
		server, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		prefix := cfg.Nats.subjectPrefix()
		emitters = append(emitters, messaging.NewNatsPublisher(server, prefix))
		workers["nats"] = server
		workers["nats-input"] = messaging.NewInputBridge(server, prefix, queue)
		slog.InfoContext(ctx, "nats transport enabled", "prefix", prefix)
	}

	// Setup the arena driver
	halt := b.Halt
	if halt == nil {
		halt = func() {}
	}
	workers["driver"] = driver.NewArenaDriver(world, queue, emitters,
		driver.WithTickLength(cfg.tickInterval()),
		driver.WithTracer(provider.Tracer("arena")),
		driver.WithOnHalt(halt),
	)

	return workers, nil
}
