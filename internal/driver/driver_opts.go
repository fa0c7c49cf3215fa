package driver

import (
	"time"

	"go.opentelemetry.io/otel/trace"
)

type ArenaDriverOpt func(*ArenaDriver)

func WithTickLength(tickLength time.Duration) ArenaDriverOpt {
	return func(d *ArenaDriver) {
		d.tickLength = tickLength
	}
}

// WithClock replaces the wall clock used for pacing.
func WithClock(c Clock) ArenaDriverOpt {
	return func(d *ArenaDriver) {
		d.clock = c
	}
}

func WithTracer(t trace.Tracer) ArenaDriverOpt {
	return func(d *ArenaDriver) {
		d.tracer = t
	}
}

// WithOnHalt registers a function called once the match is won.
func WithOnHalt(fn func()) ArenaDriverOpt {
	return func(d *ArenaDriver) {
		d.onHalt = fn
	}
}
