package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/runner/common"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
)

// HazardSystem detects player overlap with lethal entities and pushes a
// hazard collision event for each one.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem { return &HazardSystem{} }

func (h *HazardSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	playerBox, ok := PlayerBounds(w, player)
	if !ok {
		return
	}
	hidden := false
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		hidden = p.Hidden
	}

	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hz *component.Hazard, t *component.Transform) {
		if hz.UnlessHidden && hidden {
			return
		}
		if !playerBox.Intersects(HazardBounds(t, hz)) {
			return
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventTypeCollision,
			Data: ecs.CollisionEvent{Entity: player, Other: e, Kind: ecs.CollisionEventHitHazard},
		})
	})
}

// HazardBounds returns the hazard box in screen space.
func HazardBounds(t *component.Transform, hz *component.Hazard) common.Rect {
	return common.Rect{X: t.X + hz.OffsetX, Y: t.Y + hz.OffsetY, Width: hz.Width, Height: hz.Height}
}

// PlayerBounds prefers the physics box and falls back to the sprite.
func PlayerBounds(w *ecs.World, player ecs.Entity) (common.Rect, bool) {
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return common.Rect{}, false
	}
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && body.Width > 0 && body.Height > 0 {
		return common.Rect{X: t.X, Y: t.Y, Width: body.Width, Height: body.Height}, true
	}
	s, ok := ecs.Get(w, player, component.SpriteComponent.Kind())
	if !ok || s.Width <= 0 || s.Height <= 0 {
		return common.Rect{}, false
	}
	return common.Rect{X: t.X, Y: t.Y, Width: s.Width, Height: s.Height}, true
}

// HitHazard drains the world events and reports whether any was a hazard hit.
func HitHazard(w *ecs.World) (ecs.CollisionEvent, bool) {
	var hit ecs.CollisionEvent
	found := false
	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventTypeCollision {
			continue
		}
		ce, ok := evt.Data.(ecs.CollisionEvent)
		if ok && ce.Kind == ecs.CollisionEventHitHazard && !found {
			hit, found = ce, true
		}
	}
	return hit, found
}

// DrawHazardBoxes outlines every hazard box.
func DrawHazardBoxes(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hz *component.Hazard, t *component.Transform) {
		r := HazardBounds(t, hz)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1.0, color.RGBA{R: 255, G: 0, B: 0, A: 200}, false)
	})
}
