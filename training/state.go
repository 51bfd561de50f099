package training

// State is the trainer lifecycle: Uninitialized -> Ready -> Training -> Done.
type State int

const (
	Uninitialized State = iota
	Ready
	Training
	Done
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "UNINITIALIZED"
	case Ready:
		return "READY"
	case Training:
		return "TRAINING"
	case Done:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}
