package entity

import (
	"image/color"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
)

// NewBackground creates the session backdrop. It is not level-owned; level
// changes recolor it in place.
func NewBackground(w *ecs.World, name string, c color.RGBA, width, height float64) (ecs.Entity, error) {
	return build(w, "background",
		with(component.BackgroundComponent.Kind(), &component.Background{Name: name}),
		with(component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}),
		with(component.SpriteComponent.Kind(), &component.Sprite{Name: "background", Width: width, Height: height, Color: c, Alpha: 1}),
		with(component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerBackground}),
		with(component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: width, Height: height}),
	)
}

// NewBanner creates the centered ending text.
func NewBanner(w *ecs.World, text string, x, y float64, level int) (ecs.Entity, error) {
	return build(w, "banner",
		with(component.BannerComponent.Kind(), &component.Banner{Text: text}),
		with(component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}),
		with(component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerBanner}),
		owned(level),
	)
}

// NewTransition creates the fade runtime entity for req.
func NewTransition(w *ecs.World, req component.LevelChangeRequest, frames int) (ecs.Entity, error) {
	if frames < 1 {
		frames = 1
	}
	return build(w, "transition",
		with(component.TransitionRuntimeComponent.Kind(), &component.TransitionRuntime{
			Phase:  component.TransitionFadeOut,
			Timer:  frames,
			Frames: frames,
			Req:    req,
		}),
		with(component.LevelChangeRequestComponent.Kind(), &req),
	)
}

// DestroyLevel destroys every entity owned by level and returns the count.
func DestroyLevel(w *ecs.World, level int) int {
	n := 0
	ecs.ForEach(w, component.LevelOwnedComponent.Kind(), func(e ecs.Entity, lo *component.LevelOwned) {
		if lo.Level == level && ecs.DestroyEntity(w, e) {
			n++
		}
	})
	return n
}
