package component

// MovementMode selects how the player responds to input in the current level.
type MovementMode int

const (
	// MovePhysics pins x and leaves y to gravity and jumps.
	MovePhysics MovementMode = iota
	// MoveFree is four-directional movement clamped to the viewport.
	MoveFree
	// MoveLocked ignores input entirely.
	MoveLocked
)

func (m MovementMode) String() string {
	switch m {
	case MovePhysics:
		return "physics"
	case MoveFree:
		return "free"
	case MoveLocked:
		return "locked"
	default:
		return "unknown"
	}
}

type Player struct {
	Mode      MovementMode
	MoveSpeed float64
	JumpSpeed float64
	Hidden    bool
}

var PlayerComponent = NewComponent[Player]()
