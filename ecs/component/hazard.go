package component

// Hazard marks an entity as lethal on overlap with the player.
// Bounds are expressed in pixels relative to Transform (top-left origin).
type Hazard struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	// UnlessHidden suppresses the hazard while the player is concealed.
	UnlessHidden bool
}

var HazardComponent = NewComponent[Hazard]()
