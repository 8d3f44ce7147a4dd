package ecs

// RunState is the frame driver's state. Running is initial, Halted is
// terminal: nothing transitions out of it.
type RunState uint8

const (
	Running RunState = iota
	Halted
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}
