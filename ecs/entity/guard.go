package entity

import (
	"image/color"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/prefabs"
)

// NewGuardAt creates the pursuing guard standing on floorY.
func NewGuardAt(w *ecs.World, spec prefabs.GuardSpec, floorY float64, level int) (ecs.Entity, error) {
	r := prefabs.RectSpec{X: spec.StartX, Y: floorY - spec.Height, Width: spec.Width, Height: spec.Height}
	parts := rectParts(r, "guard", spec.Color.Or(color.RGBA{R: 0x3b, G: 0x5b, B: 0xdb, A: 0xff}), component.LayerActors)
	parts = append(parts,
		with(component.GuardComponent.Kind(), &component.Guard{ChaseSpeed: spec.ChaseSpeed}),
		with(component.HazardComponent.Kind(), &component.Hazard{Width: spec.Width, Height: spec.Height}),
		owned(level),
	)
	return build(w, "guard", parts...)
}
