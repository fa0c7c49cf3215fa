package driver

// State is the phase of the tick loop.
type State int

const (
	StateIdle State = iota
	StateApplyingInput
	StateStepping
	StateResolving
	StateEmitting
	StateSleeping
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateApplyingInput:
		return "applying_input"
	case StateStepping:
		return "stepping"
	case StateResolving:
		return "resolving"
	case StateEmitting:
		return "emitting"
	case StateSleeping:
		return "sleeping"
	case StateHalted:
		return "halted"
	default:
		return "unknown"
	}
}
