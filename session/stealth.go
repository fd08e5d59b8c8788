package session

import (
	"log"

	"github.com/milk9111/runner/common"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/timer"
)

const hiddenAlpha = 0.5

// enterStealth builds the bushes, the patrol and its light, and starts the
// grace countdown. The light only starts cycling once the countdown ends.
func (s *Session) enterStealth(_ []component.ObstacleSpawn) error {
	st := s.tuning.Stealth
	if err := s.ensureFreePlayer(st.StartX, st.StartY); err != nil {
		return err
	}

	for _, r := range st.Bushes {
		if _, err := entity.NewBush(s.world, r, false, int(LevelStealth)); err != nil {
			return err
		}
	}
	patrol, err := entity.NewPatrol(s.world, st.Patrol, int(LevelStealth))
	if err != nil {
		return err
	}
	s.patrol = patrol
	light, err := entity.NewPatrolLight(s.world, st.Light, int(LevelStealth))
	if err != nil {
		return err
	}
	s.light = light

	owner := timer.Owner(LevelStealth)
	s.countdown = st.GraceSeconds
	s.display.SetCountdown(s.countdown)
	if s.countdown <= 0 {
		return s.startLightCycle()
	}
	var grace timer.ID
	grace = s.timers.Every(owner, common.TPS, func() {
		s.countdown--
		s.display.SetCountdown(s.countdown)
		if s.countdown <= 0 {
			s.timers.Cancel(grace)
			if err := s.startLightCycle(); err != nil {
				log.Printf("session %s: %v", s.ID, err)
			}
		}
	})
	return nil
}

// startLightCycle ends the grace period: the patrol turns lethal and the
// light starts alternating.
func (s *Session) startLightCycle() error {
	if err := entity.ArmPatrol(s.world, s.patrol); err != nil {
		return err
	}
	s.timers.Every(timer.Owner(LevelStealth), common.Frames(s.tuning.Stealth.LightPeriod), s.toggleLight)
	return nil
}

// toggleLight flips the light. A flip back to safe is scored by tickStealth
// once this tick's concealment is known.
func (s *Session) toggleLight() {
	safe := !s.LightSafe()
	entity.SetLightSafe(s.world, s.light, safe)
	s.lightCleared = safe
}

// LightSafe reports the patrol light state; no light counts as safe.
func (s *Session) LightSafe() bool {
	l, ok := ecs.Get(s.world, s.light, component.PatrolLightComponent.Kind())
	return !ok || l.Safe
}

// Countdown returns the remaining grace seconds.
func (s *Session) Countdown() int {
	return s.countdown
}

func (s *Session) tickStealth(in component.Input) {
	s.moveFree(in)
	s.updateHidden(in)
	if s.lightCleared {
		s.lightCleared = false
		if s.PlayerHidden {
			s.addScore(s.tuning.Score.ConcealedFlip)
		}
	}
	if !s.LightSafe() && !s.PlayerHidden {
		s.endGame("caught in the light")
	}
}

// updateHidden recomputes concealment from scratch: inside a bush with the
// conceal key held.
func (s *Session) updateHidden(in component.Input) {
	hidden := false
	if in.Modifier {
		if pr, ok := s.playerBounds(); ok {
			ecs.ForEach(s.world, component.BushComponent.Kind(), func(e ecs.Entity, b *component.Bush) {
				if b.Decorative || hidden {
					return
				}
				if r, ok := entityRect(s.world, e); ok && pr.Intersects(r) {
					hidden = true
				}
			})
		}
	}
	s.PlayerHidden = hidden
	if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok {
		p.Hidden = hidden
	}
	if sp, ok := ecs.Get(s.world, s.player, component.SpriteComponent.Kind()); ok {
		sp.Alpha = 1
		if hidden {
			sp.Alpha = hiddenAlpha
		}
	}
}

// ensureFreePlayer moves a free-moving player to (x, y), swapping in a new
// one when the current player is driven by physics.
func (s *Session) ensureFreePlayer(x, y float64) error {
	if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok && p.Mode == component.MoveFree {
		s.movePlayerTo(x, y)
		return nil
	}
	return s.spawnPlayer(component.MoveFree, x, y)
}

func (s *Session) setMode(mode component.MovementMode) {
	if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok {
		p.Mode = mode
	}
}
