package entity

import (
	"image/color"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/prefabs"
)

// NewObstacleAt places an obstacle of typ with its left edge at x, resting on
// floorY. The hazard box comes from the geometry table row.
func NewObstacleAt(w *ecs.World, typ string, row prefabs.ObstacleTypeSpec, x, floorY float64, level int) (ecs.Entity, error) {
	_, dh := row.DisplaySize()
	offX, offY, bw, bh := row.Box()
	return build(w, "obstacle "+typ,
		with(component.ObstacleComponent.Kind(), &component.Obstacle{Type: typ}),
		with(component.TransformComponent.Kind(), &component.Transform{X: x, Y: floorY - dh, ScaleX: row.VisualScale, ScaleY: row.VisualScale}),
		with(component.SpriteComponent.Kind(), &component.Sprite{
			Name:   typ,
			Width:  row.Width,
			Height: row.Height,
			Color:  row.Color.Or(color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}),
			Alpha:  1,
		}),
		with(component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerObstacles}),
		with(component.HazardComponent.Kind(), &component.Hazard{Width: bw, Height: bh, OffsetX: offX, OffsetY: offY}),
		owned(level),
	)
}
