package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/prefabs"
)

var (
	bushColor       = color.RGBA{R: 0x2d, G: 0x6a, B: 0x4f, A: 0xff}
	patrolColor     = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	lightSafeColor  = color.RGBA{R: 0x38, G: 0xb0, B: 0x00, A: 0xff}
	lightAlertColor = color.RGBA{R: 0xd0, G: 0x00, B: 0x00, A: 0xff}
)

// NewBush creates a bush. Decorative bushes are drawn but never conceal.
func NewBush(w *ecs.World, r prefabs.RectSpec, decorative bool, level int) (ecs.Entity, error) {
	parts := rectParts(r, "bush", bushColor, component.LayerProps)
	parts = append(parts,
		with(component.BushComponent.Kind(), &component.Bush{Decorative: decorative}),
		owned(level),
	)
	return build(w, "bush", parts...)
}

// NewPatrol creates the stationary patrol. It is harmless until ArmPatrol.
func NewPatrol(w *ecs.World, r prefabs.RectSpec, level int) (ecs.Entity, error) {
	parts := rectParts(r, "patrol", patrolColor, component.LayerActors)
	parts = append(parts,
		with(component.PatrolTagComponent.Kind(), &component.PatrolTag{}),
		owned(level),
	)
	return build(w, "patrol", parts...)
}

// ArmPatrol makes the patrol lethal to a player who is not hidden.
func ArmPatrol(w *ecs.World, e ecs.Entity) error {
	_, _, width, height, ok := Bounds(w, e)
	if !ok {
		return fmt.Errorf("patrol: %w", component.ErrEntityNotAlive)
	}
	if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{Width: width, Height: height, UnlessHidden: true}); err != nil {
		return fmt.Errorf("patrol: add hazard: %w", err)
	}
	return nil
}

// NewPatrolLight creates the traffic light, starting safe.
func NewPatrolLight(w *ecs.World, r prefabs.RectSpec, level int) (ecs.Entity, error) {
	parts := rectParts(r, "light", lightSafeColor, component.LayerProps)
	parts = append(parts,
		with(component.PatrolLightComponent.Kind(), &component.PatrolLight{Safe: true}),
		owned(level),
	)
	return build(w, "light", parts...)
}

// SetLightSafe flips the light and its color.
func SetLightSafe(w *ecs.World, e ecs.Entity, safe bool) {
	l, ok := ecs.Get(w, e, component.PatrolLightComponent.Kind())
	if !ok {
		return
	}
	l.Safe = safe
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		s.Color = lightAlertColor
		if safe {
			s.Color = lightSafeColor
		}
	}
}
