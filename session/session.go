// Package session runs one play-through: the level state machine, the
// obstacle stream, level transitions and the per-level minigames.
package session

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"github.com/milk9111/runner/common"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/ecs/system"
	"github.com/milk9111/runner/prefabs"
	"github.com/milk9111/runner/timer"
)

var (
	ErrUnknownObstacleType = errors.New("session: unknown obstacle type")
	ErrNoObstacleStream    = errors.New("session: level has no obstacle stream")
	ErrTransitionInFlight  = errors.New("session: transition already in flight")
	ErrLevelRegression     = errors.New("session: level change does not advance")
	ErrSessionOver         = errors.New("session: session is over")
)

// Display receives everything the player is told outside the world.
type Display interface {
	SetScore(score int)
	// SetCountdown shows the stealth grace countdown; 0 hides it.
	SetCountdown(seconds int)
	Alert(msg string)
}

type nopDisplay struct{}

func (nopDisplay) SetScore(int)     {}
func (nopDisplay) SetCountdown(int) {}
func (nopDisplay) Alert(string)     {}

// Config is everything needed to start a session.
type Config struct {
	Tuning    *prefabs.TuningSpec
	Obstacles *prefabs.ObstaclesSpec
	Rules     prefabs.Ruleset
	Display   Display
	// Pursuer overrides the guard chase; nil selects one from Tuning.
	Pursuer Pursuer

	Width  float64
	Height float64
	Seed   int64
	// StartLevel builds a level directly without playing the earlier ones.
	StartLevel LevelID
}

// Session is the whole mutable state of one play-through. It is only
// mutated from Tick and the timer callbacks Tick runs.
type Session struct {
	ID           uuid.UUID
	Level        LevelID
	Score        int
	GameOver     bool
	PlayerHidden bool

	tuning    *prefabs.TuningSpec
	obstacles *prefabs.ObstaclesSpec
	rules     prefabs.Ruleset
	display   Display
	pursuer   Pursuer
	rng       *rand.Rand

	width, height float64

	world    *ecs.World
	timers   *timer.Registry
	handlers map[LevelID]levelHandler

	input   *system.InputSystem
	physics *system.PhysicsSystem
	hazards *system.HazardSystem

	// simulate steps physics, then hazard checks.
	simulate *ecs.Scheduler
	fade     *system.TransitionSystem

	player     ecs.Entity
	background ecs.Entity
	guard      ecs.Entity
	train      ecs.Entity
	light      ecs.Entity
	patrol     ecs.Entity
	markers    []ecs.Entity
	stream     *ObstacleStream
	countdown  int
	restart    bool

	// lightCleared is set when the patrol light has just turned safe.
	lightCleared bool
}

// New builds a session standing at the start of cfg.StartLevel (level 1 by
// default).
func New(cfg Config) (*Session, error) {
	if cfg.Tuning == nil {
		t, err := prefabs.LoadTuning()
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		cfg.Tuning = t
	} else if err := cfg.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if cfg.Obstacles == nil {
		o, err := prefabs.LoadObstacles()
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		cfg.Obstacles = o
	}
	if cfg.Rules.Name == "" {
		rs, err := prefabs.LoadRuleset("")
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		cfg.Rules = rs
	}
	if cfg.Display == nil {
		cfg.Display = nopDisplay{}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = common.BaseWidth, common.BaseHeight
	}
	if cfg.StartLevel == 0 {
		cfg.StartLevel = LevelJungle
	}
	if !cfg.StartLevel.Valid() {
		return nil, fmt.Errorf("session: start level %d out of range", cfg.StartLevel)
	}
	if cfg.Pursuer == nil {
		p, err := LoadPursuer(cfg.Tuning)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		cfg.Pursuer = p
	}

	s := &Session{
		ID:        uuid.New(),
		tuning:    cfg.Tuning,
		obstacles: cfg.Obstacles,
		rules:     cfg.Rules,
		display:   cfg.Display,
		pursuer:   cfg.Pursuer,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		width:     cfg.Width,
		height:    cfg.Height,
		world:     ecs.NewWorld(),
		timers:    timer.NewRegistry(),
		input:     system.NewInputSystem(),
		physics:   system.NewPhysicsSystem(cfg.Tuning.World.Gravity),
		hazards:   system.NewHazardSystem(),
	}
	s.simulate = ecs.NewScheduler(s.physics, s.hazards)
	s.fade = system.NewTransitionSystem(s.swapLevel)
	s.handlers = s.levelHandlers()

	level := cfg.StartLevel
	bg, err := entity.NewBackground(s.world, s.handlers[level].background, s.tuning.BackgroundColor(s.handlers[level].background), s.width, s.height)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.background = bg

	if err := s.spawnPlayer(component.MovePhysics, s.width/4-s.tuning.Player.Width/2, s.height-100-s.tuning.Player.Height/2); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s.Level = level
	if err := s.enterLevel(level, s.prefillFor(level)); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.display.SetScore(s.Score)
	log.Printf("session %s: started in level %d (%s rules)", s.ID, s.Level, s.rules.Name)
	return s, nil
}

func (s *Session) World() *ecs.World { return s.world }

func (s *Session) Timers() *timer.Registry { return s.timers }

func (s *Session) Player() ecs.Entity { return s.player }

func (s *Session) Rules() prefabs.Ruleset { return s.rules }

// Transitioning reports whether a fade is in flight.
func (s *Session) Transitioning() bool {
	return system.TransitionActive(s.world)
}

// RestartRequested reports whether the ending timer expired and the caller
// should start a fresh session.
func (s *Session) RestartRequested() bool {
	return s != nil && s.restart
}

// SetTuning swaps in reloaded tuning. Entities already built keep their
// sizes and a live obstacle stream keeps its spacing; speeds, timers and
// streams created from now on use the new values.
func (s *Session) SetTuning(t *prefabs.TuningSpec) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.tuning = t
	log.Printf("session %s: tuning reloaded", s.ID)
	return nil
}

func (s *Session) SetPursuer(p Pursuer) {
	if p != nil {
		s.pursuer = p
	}
}

func (s *Session) addScore(n int) {
	if n <= 0 {
		return
	}
	s.Score += n
	s.display.SetScore(s.Score)
}

func (s *Session) spawnPlayer(mode component.MovementMode, x, y float64) error {
	if s.player.Valid() {
		ecs.DestroyEntity(s.world, s.player)
	}
	tint := s.tuning.Player.Color
	if mode != component.MovePhysics && s.tuning.Player.AltColor != nil {
		tint = s.tuning.Player.AltColor
	}
	p, err := entity.NewPlayerAt(s.world, s.tuning.Player, x, y, mode, tint)
	if err != nil {
		return err
	}
	s.player = p
	return nil
}

func (s *Session) playerInput() component.Input {
	if in, ok := ecs.Get(s.world, s.player, component.InputComponent.Kind()); ok {
		return *in
	}
	return component.Input{}
}

func (s *Session) playerBounds() (common.Rect, bool) {
	return system.PlayerBounds(s.world, s.player)
}

// movePlayerTo places the player's top-left corner at (x, y).
func (s *Session) movePlayerTo(x, y float64) {
	if t, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
	}
}

// moveFree applies four-directional input clamped to the viewport.
func (s *Session) moveFree(in component.Input) {
	p, okP := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	t, okT := ecs.Get(s.world, s.player, component.TransformComponent.Kind())
	r, okR := s.playerBounds()
	if !okP || !okT || !okR || p.Mode != component.MoveFree {
		return
	}
	dx, dy := in.Axis()
	t.X = common.Clamp(t.X+dx*p.MoveSpeed, 0, s.width-r.Width)
	t.Y = common.Clamp(t.Y+dy*p.MoveSpeed, 0, s.height-r.Height)
}

func entityRect(w *ecs.World, e ecs.Entity) (common.Rect, bool) {
	x, y, width, height, ok := entity.Bounds(w, e)
	return common.Rect{X: x, Y: y, Width: width, Height: height}, ok
}

// endGame is the single lethal path: freeze, mark the player and report.
func (s *Session) endGame(reason string) {
	if s.GameOver {
		return
	}
	s.GameOver = true
	s.PlayerHidden = false
	s.timers.CancelOwner(timer.Owner(s.Level))
	s.physics.SetPaused(true)
	if sp, ok := ecs.Get(s.world, s.player, component.SpriteComponent.Kind()); ok {
		red := color.RGBA{R: 0xff, A: 0xff}
		sp.Tint = &red
		sp.Alpha = 1
	}
	log.Printf("session %s: game over in level %d (%s), score %d", s.ID, s.Level, reason, s.Score)
	s.display.Alert(fmt.Sprintf("Game over! Final score: %d", s.Score))
}
