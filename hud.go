package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const hudScale = 2

// HUD draws the score readout and the stealth countdown.
type HUD struct {
	face      ebtext.Face
	score     int
	countdown int
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Reset() {
	h.score = 0
	h.countdown = 0
}

func (h *HUD) SetScore(score int) { h.score = score }

func (h *HUD) SetCountdown(seconds int) { h.countdown = seconds }

func (h *HUD) ScoreText() string {
	return fmt.Sprintf("Score: %d", h.score)
}

// CountdownText is empty once the countdown is over.
func (h *HUD) CountdownText() string {
	if h.countdown <= 0 {
		return ""
	}
	return fmt.Sprintf("Patrol in %d", h.countdown)
}

func (h *HUD) Draw(screen *ebiten.Image, width float64) {
	h.drawText(screen, h.ScoreText(), 16, 12)
	if s := h.CountdownText(); s != "" {
		w, _ := ebtext.Measure(s, h.face, 0)
		h.drawText(screen, s, width/2-w*hudScale/2, 12)
	}
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, s, h.face, op)
}
