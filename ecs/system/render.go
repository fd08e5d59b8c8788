package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const (
	bannerScale  = 4
	stripeGap    = 160
	stripeWidth  = 24
	stripeShadeA = 40
)

type RenderSystem struct {
	face  ebtext.Face
	Debug bool
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{face: ebtext.NewGoXFace(basicfont.Face7x13), Debug: debug}
}

// DrawOrder returns drawable entities sorted by layer, then by entity id.
func DrawOrder(w *ecs.World) []ecs.Entity {
	var entities []ecs.Entity
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.RenderLayerComponent.Kind(), func(e ecs.Entity, _ *component.Transform, _ *component.RenderLayer) {
		entities = append(entities, e)
	})
	sort.SliceStable(entities, func(i, j int) bool {
		li, _ := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind())
		lj, _ := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind())
		if li.Index != lj.Index {
			return li.Index < lj.Index
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	for _, e := range DrawOrder(w) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			r.drawSprite(screen, t, s)
			if bg, ok := ecs.Get(w, e, component.BackgroundComponent.Kind()); ok {
				drawStripes(screen, t, s, bg.Offset)
			}
		}
		if b, ok := ecs.Get(w, e, component.BannerComponent.Kind()); ok {
			r.drawBanner(screen, t, b.Text)
		}
	}

	if r.Debug {
		DrawHazardBoxes(w, screen)
	}

	if alpha := CoverAlpha(w); alpha > 0 {
		bounds := screen.Bounds()
		cover := color.RGBA{A: uint8(alpha * 255)}
		vector.DrawFilledRect(screen, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()), cover, false)
	}
}

func (r *RenderSystem) drawSprite(screen *ebiten.Image, t *component.Transform, s *component.Sprite) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	c := s.Color
	if s.Tint != nil {
		c = *s.Tint
	}
	vector.DrawFilledRect(screen, float32(t.X), float32(t.Y), float32(s.Width*sx), float32(s.Height*sy), fade(c, s.Alpha), false)
}

// drawStripes shades vertical bands that slide left as the backdrop scrolls.
func drawStripes(screen *ebiten.Image, t *component.Transform, s *component.Sprite, offset float64) {
	shift := StripeShift(offset)
	shade := color.RGBA{A: stripeShadeA}
	for x := t.X - shift; x < t.X+s.Width; x += stripeGap {
		vector.DrawFilledRect(screen, float32(x), float32(t.Y), stripeWidth, float32(s.Height), shade, false)
	}
}

// StripeShift wraps a scroll offset into [0, stripeGap).
func StripeShift(offset float64) float64 {
	shift := math.Mod(offset, stripeGap)
	if shift < 0 {
		shift += stripeGap
	}
	return shift
}

func (r *RenderSystem) drawBanner(screen *ebiten.Image, t *component.Transform, text string) {
	w, h := ebtext.Measure(text, r.face, 0)
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(bannerScale, bannerScale)
	op.GeoM.Translate(t.X, t.Y)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, text, r.face, op)
}

// fade premultiplies c by alpha in [0, 1].
func fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
