package loop

// State is a node of the conversation state machine.
type State int

const (
	AwaitingModel State = iota
	Interpreting
	Dispatching
	RecoveringContext
	AwaitingUser
	Done
	Fatal
)

func (s State) String() string {
	switch s {
	case AwaitingModel:
		return "awaiting_model"
	case Interpreting:
		return "interpreting"
	case Dispatching:
		return "dispatching"
	case RecoveringContext:
		return "recovering_context"
	case AwaitingUser:
		return "awaiting_user"
	case Done:
		return "done"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Terminal reports whether the machine stops in s.
func (s State) Terminal() bool {
	return s == Done || s == Fatal
}
