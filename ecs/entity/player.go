package entity

import (
	"image/color"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/prefabs"
)

var defaultPlayerColor = color.RGBA{R: 0xf2, G: 0xd1, B: 0x6b, A: 0xff}

// NewPlayerAt creates the player with its top-left corner at (x, y). Physics
// mode adds a Chipmunk body pinned to x; the physics system creates the
// body on its next update.
func NewPlayerAt(w *ecs.World, spec prefabs.PlayerSpec, x, y float64, mode component.MovementMode, tint *prefabs.YAMLColor) (ecs.Entity, error) {
	parts := []part{
		with(component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		with(component.PlayerComponent.Kind(), &component.Player{
			Mode:      mode,
			MoveSpeed: spec.MoveSpeed,
			JumpSpeed: spec.JumpSpeed,
		}),
		with(component.InputComponent.Kind(), &component.Input{}),
		with(component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}),
		with(component.SpriteComponent.Kind(), &component.Sprite{
			Name:   "player",
			Width:  spec.Width,
			Height: spec.Height,
			Color:  tint.Or(defaultPlayerColor),
			Alpha:  1,
		}),
		with(component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerActors}),
	}
	if mode == component.MovePhysics {
		parts = append(parts, with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:      spec.Width,
			Height:     spec.Height,
			Mass:       1,
			Friction:   0,
			Elasticity: spec.Elasticity,
			PinX:       x + spec.Width/2,
		}))
	}
	return build(w, "player", parts...)
}
