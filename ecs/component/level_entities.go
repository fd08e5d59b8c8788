package component

// LevelOwned ties an entity to the level that built it; leaving that level
// destroys it.
type LevelOwned struct {
	Level int
}

var LevelOwnedComponent = NewComponent[LevelOwned]()

// Obstacle is a scrolling lethal obstacle.
type Obstacle struct {
	Type string
}

var ObstacleComponent = NewComponent[Obstacle]()

// Guard chases the player along x in the city level.
type Guard struct {
	ChaseSpeed float64
}

var GuardComponent = NewComponent[Guard]()

// Train crosses the rail level left to right and wraps to StartX.
type Train struct {
	Speed  float64
	StartX float64
}

var TrainComponent = NewComponent[Train]()

// Marker is an intersection point on the rail level.
type Marker struct {
	Safe bool
}

var MarkerComponent = NewComponent[Marker]()

// Bush is a concealment zone. Decorative bushes never conceal.
type Bush struct {
	Decorative bool
}

var BushComponent = NewComponent[Bush]()

// PatrolLight is the stealth level's traffic light.
type PatrolLight struct {
	Safe bool
}

var PatrolLightComponent = NewComponent[PatrolLight]()

// Background is the scrolling backdrop art.
type Background struct {
	Name   string
	Offset float64
}

var BackgroundComponent = NewComponent[Background]()
