package component

// LevelBounds stores the viewport size the current level is clamped to.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
