package session

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/prefabs"
)

// Pursuer computes the guard's next x for one tick.
type Pursuer interface {
	Next(guardX, playerX float64, forward bool) (float64, error)
}

// LinearPursuer closes in at ChaseSpeed, less ScrollSpeed while the player
// runs forward.
type LinearPursuer struct {
	ChaseSpeed  float64
	ScrollSpeed float64
}

func (p LinearPursuer) Next(guardX, playerX float64, forward bool) (float64, error) {
	step := p.ChaseSpeed
	if forward {
		step -= p.ScrollSpeed
	}
	return guardX + step, nil
}

// ScriptPursuer runs a tengo script that reads guard_x, player_x,
// chase_speed, scroll_speed and forward and sets next_x.
type ScriptPursuer struct {
	name        string
	compiled    *tengo.Compiled
	chaseSpeed  float64
	scrollSpeed float64
}

func NewScriptPursuer(name string, src []byte, chaseSpeed, scrollSpeed float64) (*ScriptPursuer, error) {
	script := tengo.NewScript(src)
	_ = script.Add("guard_x", 0.0)
	_ = script.Add("player_x", 0.0)
	_ = script.Add("chase_speed", chaseSpeed)
	_ = script.Add("scroll_speed", scrollSpeed)
	_ = script.Add("forward", false)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("guard script %s: %w", name, err)
	}
	return &ScriptPursuer{name: name, compiled: compiled, chaseSpeed: chaseSpeed, scrollSpeed: scrollSpeed}, nil
}

func (p *ScriptPursuer) Next(guardX, playerX float64, forward bool) (float64, error) {
	vars := []struct {
		name  string
		value any
	}{
		{"guard_x", guardX},
		{"player_x", playerX},
		{"chase_speed", p.chaseSpeed},
		{"scroll_speed", p.scrollSpeed},
		{"forward", forward},
	}
	for _, v := range vars {
		if err := p.compiled.Set(v.name, v.value); err != nil {
			return guardX, fmt.Errorf("guard script %s: set %s: %w", p.name, v.name, err)
		}
	}
	if err := p.compiled.Run(); err != nil {
		return guardX, fmt.Errorf("guard script %s: %w", p.name, err)
	}
	if !p.compiled.IsDefined("next_x") {
		return guardX, fmt.Errorf("guard script %s: next_x not set", p.name)
	}
	return p.compiled.Get("next_x").Float(), nil
}

// LoadPursuer picks the scripted pursuer when the tuning names a script.
func LoadPursuer(t *prefabs.TuningSpec) (Pursuer, error) {
	linear := LinearPursuer{ChaseSpeed: t.Guard.ChaseSpeed, ScrollSpeed: t.World.ScrollSpeed}
	name := strings.TrimSpace(t.Guard.Script)
	if name == "" {
		return linear, nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("load guard script %s: %w", name, err)
	}
	return NewScriptPursuer(name, src, t.Guard.ChaseSpeed, t.World.ScrollSpeed)
}

// enterCity spawns the guard off-screen and reopens the stream.
func (s *Session) enterCity(prefill []component.ObstacleSpawn) error {
	g, err := entity.NewGuardAt(s.world, s.tuning.Guard, s.height, int(LevelCity))
	if err != nil {
		return err
	}
	s.guard = g
	return s.openStream(LevelCity, prefill)
}

func (s *Session) tickCity(in component.Input) {
	s.tickRunner(in)
	s.chase(in.Right)
}

func (s *Session) chase(forward bool) {
	t, ok := ecs.Get(s.world, s.guard, component.TransformComponent.Kind())
	if !ok {
		return
	}
	playerX := 0.0
	if r, ok := s.playerBounds(); ok {
		playerX = r.X
	}
	next, err := s.pursuer.Next(t.X, playerX, forward)
	if err != nil {
		log.Printf("session %s: %v; linear chase this tick", s.ID, err)
		linear := LinearPursuer{ChaseSpeed: s.tuning.Guard.ChaseSpeed, ScrollSpeed: s.tuning.World.ScrollSpeed}
		next, _ = linear.Next(t.X, playerX, forward)
	}
	t.X = next
}

// GuardX returns the guard's x and whether a guard exists.
func (s *Session) GuardX() (float64, bool) {
	t, ok := ecs.Get(s.world, s.guard, component.TransformComponent.Kind())
	if !ok {
		return 0, false
	}
	return t.X, true
}
