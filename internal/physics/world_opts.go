package physics

import "time"

type WorldOpt func(*World)

// WithGravity sets the gravity vector applied to dynamic bodies.
func WithGravity(g Vec3) WorldOpt {
	return func(w *World) {
		w.gravity = g
	}
}

// WithTimestep sets the simulated duration of a step.
func WithTimestep(d time.Duration) WorldOpt {
	return func(w *World) {
		if d > 0 {
			w.timestep = d
		}
	}
}
