package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// PatrolTag marks the stationary level-4 patrol.
type PatrolTag struct{}

var PatrolTagComponent = NewComponent[PatrolTag]()

// Banner is the level-5 ending text.
type Banner struct {
	Text string
}

var BannerComponent = NewComponent[Banner]()
