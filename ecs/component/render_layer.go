package component

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

const (
	LayerBackground = 0
	LayerProps      = 50
	LayerObstacles  = 90
	LayerActors     = 100
	LayerBanner     = 200
)

var RenderLayerComponent = NewComponent[RenderLayer]()
