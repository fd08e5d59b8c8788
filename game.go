package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/runner/ecs/system"
	"github.com/milk9111/runner/prefabs"
	"github.com/milk9111/runner/session"
)

type GameOptions struct {
	Tuning     *prefabs.TuningSpec
	Obstacles  *prefabs.ObstaclesSpec
	Rules      prefabs.Ruleset
	StartLevel session.LevelID
	Seed       int64
	Width      float64
	Height     float64
	Debug      bool
}

// Game adapts a session to ebiten and implements session.Display.
type Game struct {
	opts     GameOptions
	session  *session.Session
	render   *system.RenderSystem
	hud      *HUD
	alerts   *AlertUI
	watcher  *prefabs.Watcher
	restarts int
}

func NewGame(opts GameOptions) (*Game, error) {
	g := &Game{
		opts:   opts,
		render: system.NewRenderSystem(opts.Debug),
		hud:    NewHUD(),
	}
	g.alerts = NewAlertUI(opts.Width, opts.Height)
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart throws the current session away and starts a fresh one.
func (g *Game) restart() error {
	seed := g.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.hud.Reset()
	s, err := session.New(session.Config{
		Tuning:     g.opts.Tuning,
		Obstacles:  g.opts.Obstacles,
		Rules:      g.opts.Rules,
		Display:    g,
		Width:      g.opts.Width,
		Height:     g.opts.Height,
		Seed:       seed,
		StartLevel: g.opts.StartLevel,
	})
	if err != nil {
		return err
	}
	if g.session != nil {
		g.restarts++
		log.Printf("game: restart %d, session %s replaces %s", g.restarts, s.ID, g.session.ID)
	}
	g.session = s
	return nil
}

func (g *Game) SetScore(score int) { g.hud.SetScore(score) }

func (g *Game) SetCountdown(seconds int) { g.hud.SetCountdown(seconds) }

func (g *Game) Alert(msg string) { g.alerts.Show(msg) }

func (g *Game) Update() error {
	g.applyReloads()

	// Alerts block the game like a modal dialog.
	if g.alerts.Open() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.alerts.Dismiss()
		}
		g.alerts.Update()
		return nil
	}

	if g.session.GameOver || g.session.RestartRequested() {
		return g.restart()
	}

	g.session.Tick(system.PollInput())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.session.World(), screen)
	g.hud.Draw(screen, g.opts.Width)

	if g.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  level: %v  rules: %s  timers: %d", ebiten.ActualFPS(), g.session.Level, g.session.Rules().Name, g.session.Timers().Len()), 10, 30)
	}

	if g.alerts.Open() {
		g.alerts.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.opts.Width, g.opts.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// applyReloads picks up prefab edits reported by the watcher. New tuning and
// scripts apply to the running session; obstacle tables and rules apply from
// the next restart.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case r, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(r)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("game: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(r prefabs.Reload) {
	var err error
	switch r.Kind {
	case prefabs.ReloadTuning:
		var t *prefabs.TuningSpec
		if t, err = prefabs.LoadTuning(); err == nil {
			if err = g.session.SetTuning(t); err == nil {
				g.opts.Tuning = t
			}
		}
	case prefabs.ReloadObstacles:
		var o *prefabs.ObstaclesSpec
		if o, err = prefabs.LoadObstacles(); err == nil {
			g.opts.Obstacles = o
		}
	case prefabs.ReloadRules:
		var rs prefabs.Ruleset
		if rs, err = prefabs.LoadRuleset(g.opts.Rules.Name); err == nil {
			g.opts.Rules = rs
		}
	case prefabs.ReloadScript:
		var p session.Pursuer
		if p, err = session.LoadPursuer(g.opts.Tuning); err == nil {
			g.session.SetPursuer(p)
		}
	}
	if err != nil {
		log.Printf("game: reload %s %s: %v", r.Kind, r.Name, err)
		return
	}
	log.Printf("game: reloaded %s", r.Name)
}
