package component

// Input is the held state of every key this game reads, polled once per
// tick. Forward scrolling is Right.
type Input struct {
	Left     bool
	Right    bool
	Up       bool
	Down     bool
	Action   bool
	Modifier bool
}

// Axis returns the four-directional movement vector in screen space.
func (in Input) Axis() (dx, dy float64) {
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	return dx, dy
}

var InputComponent = NewComponent[Input]()
