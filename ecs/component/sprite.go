package component

import "image/color"

// Sprite is drawn as a filled rectangle of Width*ScaleX by Height*ScaleY.
type Sprite struct {
	Name   string
	Width  float64
	Height float64
	Color  color.RGBA
	// Alpha multiplies Color.A; 1 is fully opaque.
	Alpha float64
	// Tint overrides Color when set (game over marks the player red).
	Tint *color.RGBA
}

var SpriteComponent = NewComponent[Sprite]()
