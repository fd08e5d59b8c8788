package entity

import (
	"image/color"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/prefabs"
)

var (
	trainColor        = color.RGBA{R: 0x9d, G: 0x02, B: 0x08, A: 0xff}
	markerUnsafeColor = color.RGBA{R: 0xd0, G: 0x00, B: 0x00, A: 0xff}
	markerSafeColor   = color.RGBA{R: 0x38, G: 0xb0, B: 0x00, A: 0xff}
)

// NewTrain creates the level-3 train at its start x. It is only a hazard
// when lethal is set.
func NewTrain(w *ecs.World, spec prefabs.RailSpec, lethal bool, level int) (ecs.Entity, error) {
	r := prefabs.RectSpec{X: spec.TrainStartX, Y: spec.TrainY, Width: spec.TrainWidth, Height: spec.TrainHeight}
	parts := rectParts(r, "train", trainColor, component.LayerObstacles)
	parts = append(parts,
		with(component.TrainComponent.Kind(), &component.Train{Speed: spec.TrainSpeed, StartX: spec.TrainStartX}),
		owned(level),
	)
	if lethal {
		parts = append(parts, with(component.HazardComponent.Kind(), &component.Hazard{Width: spec.TrainWidth, Height: spec.TrainHeight}))
	}
	return build(w, "train", parts...)
}

// NewMarker creates an unsafe intersection marker filling grid cell.
func NewMarker(w *ecs.World, cell prefabs.CellSpec, size float64, level int) (ecs.Entity, error) {
	r := prefabs.RectSpec{X: float64(cell.Col) * size, Y: float64(cell.Row) * size, Width: size, Height: size}
	parts := rectParts(r, "marker", markerUnsafeColor, component.LayerProps)
	parts = append(parts,
		with(component.MarkerComponent.Kind(), &component.Marker{}),
		owned(level),
	)
	return build(w, "marker", parts...)
}

// SetMarkerSafe flips a marker and its color.
func SetMarkerSafe(w *ecs.World, e ecs.Entity, safe bool) {
	m, ok := ecs.Get(w, e, component.MarkerComponent.Kind())
	if !ok {
		return
	}
	m.Safe = safe
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		s.Color = markerUnsafeColor
		if safe {
			s.Color = markerSafeColor
		}
	}
}
