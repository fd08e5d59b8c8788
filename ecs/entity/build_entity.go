package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/prefabs"
)

// part attaches one component to a freshly created entity.
type part func(w *ecs.World, e ecs.Entity) error

func with[T any](kind component.ComponentKind[T], value *T) part {
	return func(w *ecs.World, e ecs.Entity) error {
		if err := ecs.Add(w, e, kind, value); err != nil {
			return fmt.Errorf("add %T: %w", value, err)
		}
		return nil
	}
}

// owned ties the entity to level; level 0 means the entity outlives levels.
func owned(level int) part {
	return func(w *ecs.World, e ecs.Entity) error {
		if level <= 0 {
			return nil
		}
		return ecs.Add(w, e, component.LevelOwnedComponent.Kind(), &component.LevelOwned{Level: level})
	}
}

// build creates an entity from parts. A failing part destroys the partial
// entity so callers never see half-built ones.
func build(w *ecs.World, name string, parts ...part) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("%s: nil world", name)
	}
	e := ecs.CreateEntity(w)
	for _, p := range parts {
		if err := p(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("%s: %w", name, err)
		}
	}
	return e, nil
}

func rectParts(r prefabs.RectSpec, name string, c color.RGBA, layer int) []part {
	return []part{
		with(component.TransformComponent.Kind(), &component.Transform{X: r.X, Y: r.Y, ScaleX: 1, ScaleY: 1}),
		with(component.SpriteComponent.Kind(), &component.Sprite{Name: name, Width: r.Width, Height: r.Height, Color: c, Alpha: 1}),
		with(component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}),
	}
}

// Bounds returns the top-left box covered by e's sprite.
func Bounds(w *ecs.World, e ecs.Entity) (x, y, width, height float64, ok bool) {
	t, okT := ecs.Get(w, e, component.TransformComponent.Kind())
	s, okS := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !okT || !okS {
		return 0, 0, 0, 0, false
	}
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return t.X, t.Y, s.Width * sx, s.Height * sy, true
}
