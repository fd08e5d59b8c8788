package component

// ObstacleSpawn is one obstacle to place when a level is built.
type ObstacleSpawn struct {
	Type string
	X    float64
}

// LevelChangeRequest describes the level a fade transition swaps in once the
// screen is fully covered.
type LevelChangeRequest struct {
	From       int
	Target     int
	Background string
	Prefill    []ObstacleSpawn
}

var LevelChangeRequestComponent = NewComponent[LevelChangeRequest]()
