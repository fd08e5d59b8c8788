package session

import (
	"fmt"
	"log"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/ecs/system"
	"github.com/milk9111/runner/timer"
)

// ChangeLevel starts the fade into next. The leaving level's timers are
// cancelled immediately; the entity swap happens once the screen is covered.
func (s *Session) ChangeLevel(next LevelID, background string, prefilled []component.ObstacleSpawn) error {
	if s.GameOver {
		return ErrSessionOver
	}
	if system.TransitionActive(s.world) {
		return fmt.Errorf("change to level %d: %w", next, ErrTransitionInFlight)
	}
	if next <= s.Level || !next.Valid() {
		return fmt.Errorf("change from level %d to %d: %w", s.Level, next, ErrLevelRegression)
	}

	cancelled := s.timers.CancelOwner(timer.Owner(s.Level))

	req := component.LevelChangeRequest{
		From:       int(s.Level),
		Target:     int(next),
		Background: background,
		Prefill:    prefilled,
	}
	if _, err := entity.NewTransition(s.world, req, s.tuning.Transition.FadeFrames); err != nil {
		return fmt.Errorf("change to level %d: %w", next, err)
	}
	log.Printf("session %s: level %d -> %d (cancelled %d timers)", s.ID, s.Level, next, cancelled)
	return nil
}

// swapLevel runs under the full cover: tear down the old level and build
// the new one.
func (s *Session) swapLevel(req component.LevelChangeRequest) {
	from, next := LevelID(req.From), LevelID(req.Target)

	s.setBackground(req.Background)
	if s.stream != nil {
		s.stream.Clear()
		s.stream = nil
	}
	entity.DestroyLevel(s.world, req.From)
	s.guard, s.train, s.light, s.patrol = 0, 0, 0, 0
	s.lightCleared = false
	s.markers = nil
	s.PlayerHidden = false
	s.countdown = 0
	s.display.SetCountdown(0)
	// A timer scheduled while fading out must not survive into the new level.
	s.timers.CancelOwner(timer.Owner(from))

	s.Level = next
	if err := s.enterLevel(next, req.Prefill); err != nil {
		log.Printf("session %s: %v", s.ID, err)
		s.endGame("level build failed")
		return
	}
	s.display.Alert(fmt.Sprintf("Level %d: %s", next, s.handlers[next].title))
}

func (s *Session) setBackground(name string) {
	bg, ok := ecs.Get(s.world, s.background, component.BackgroundComponent.Kind())
	if !ok {
		return
	}
	bg.Name = name
	bg.Offset = 0
	if sp, ok := ecs.Get(s.world, s.background, component.SpriteComponent.Kind()); ok {
		sp.Color = s.tuning.BackgroundColor(name)
	}
}

// Background returns the name of the current backdrop.
func (s *Session) Background() string {
	if bg, ok := ecs.Get(s.world, s.background, component.BackgroundComponent.Kind()); ok {
		return bg.Name
	}
	return ""
}

// scrollBackground moves the backdrop with forward input.
func (s *Session) scrollBackground() {
	if bg, ok := ecs.Get(s.world, s.background, component.BackgroundComponent.Kind()); ok {
		bg.Offset += s.tuning.World.BackgroundSpeed
	}
}
