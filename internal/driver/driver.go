package driver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pixil98/go-arena/internal/combat"
	"github.com/pixil98/go-arena/internal/game"
	"github.com/pixil98/go-arena/internal/input"
	"github.com/pixil98/go-arena/internal/messaging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	DefaultTickLength = 16 * time.Millisecond
)

// ArenaDriver runs the fixed-rate simulation loop. It is the only goroutine
// that reads or writes the world.
type ArenaDriver struct {
	tickLength time.Duration
	clock      Clock
	tracer     trace.Tracer
	onHalt     func()

	world    *game.World
	resolver *combat.Resolver
	queue    *input.Queue
	emitter  messaging.Emitter

	state State
	ticks uint64
}

func NewArenaDriver(w *game.World, q *input.Queue, e messaging.Emitter, opts ...ArenaDriverOpt) *ArenaDriver {
	d := &ArenaDriver{
		tickLength: DefaultTickLength,
		clock:      wallClock{},
		tracer:     noop.NewTracerProvider().Tracer(""),
		onHalt:     func() {},
		world:      w,
		resolver:   combat.NewResolver(w.Table()),
		queue:      q,
		emitter:    e,
		state:      StateIdle,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// State returns the phase the loop is in.
func (d *ArenaDriver) State() State {
	return d.state
}

// Ticks returns the number of completed ticks.
func (d *ArenaDriver) Ticks() uint64 {
	return d.ticks
}

// Start ticks until the match is won or ctx is cancelled. A tick that
// overruns its budget is followed immediately by the next one.
func (d *ArenaDriver) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "match started", "tick_length", d.tickLength, "entities", d.world.Table().Len())

	for {
		if ctx.Err() != nil {
			return nil
		}

		start := d.clock.Now()
		if d.Tick(ctx) {
			d.state = StateHalted
			slog.InfoContext(ctx, "match won", "ticks", d.ticks)
			d.onHalt()
			return nil
		}

		if remaining := d.tickLength - d.clock.Now().Sub(start); remaining > 0 {
			d.state = StateSleeping
			d.clock.Sleep(ctx, remaining)
		}
	}
}

// Tick runs one iteration of the loop and reports whether the match is over.
func (d *ArenaDriver) Tick(ctx context.Context) bool {
	ctx, span := d.tracer.Start(ctx, "arena.tick")
	defer span.End()

	// The first tick reports the whole initial world.
	if d.ticks == 0 {
		d.world.TouchAll()
	}

	d.state = StateApplyingInput
	applied := d.applyInput(ctx)

	d.state = StateStepping
	events := d.world.Step()

	d.state = StateResolving
	hits := d.resolver.Resolve(events)
	d.applyHits(ctx, hits)
	d.world.TouchActive()
	removed := d.world.RemoveStale(d.world.Touched())

	d.state = StateEmitting
	entities := d.world.Snapshot()
	if err := d.emitter.EmitState(ctx, entities); err != nil {
		slog.ErrorContext(ctx, "emitting state", "error", err)
	}

	won := game.IsWon(d.world.Table())
	if won {
		if err := d.emitter.EmitWon(ctx); err != nil {
			slog.ErrorContext(ctx, "emitting win", "error", err)
		}
	}

	d.world.ClearTouched()
	d.ticks++

	span.SetAttributes(
		attribute.Int64("arena.tick", int64(d.ticks)),
		attribute.Int("arena.commands", applied),
		attribute.Int("arena.contacts", len(events)),
		attribute.Int("arena.hits", len(hits)),
		attribute.Int("arena.removed", len(removed)),
		attribute.Int("arena.emitted", len(entities)),
		attribute.Bool("arena.won", won),
	)

	return won
}

func (d *ArenaDriver) applyInput(ctx context.Context) int {
	applied := 0
	for _, cmd := range d.queue.Drain() {
		err := cmd.Apply(d.world)
		if errors.Is(err, game.ErrEntityNotFound) {
			slog.WarnContext(ctx, "command for unknown entity", "action", cmd.Action(), "id", cmd.EntityID())
			continue
		}
		if err != nil {
			slog.WarnContext(ctx, "applying command", "action", cmd.Action(), "id", cmd.EntityID(), "error", err)
			continue
		}
		applied++
	}
	return applied
}

func (d *ArenaDriver) applyHits(ctx context.Context, hits []combat.Hit) {
	for _, h := range hits {
		d.world.TouchEntity(h.PlayerID)
		slog.DebugContext(ctx, "player hit", "player", h.PlayerID, "projectile", h.ProjectileID, "hp", h.After)
		if h.Eliminated() {
			slog.InfoContext(ctx, "player eliminated", "player", h.PlayerID, "projectile", h.ProjectileID)
		}
	}
}
