package session

import (
	"log"

	"github.com/milk9111/runner/common"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/timer"
)

// enterWin locks the player, shows the ending and schedules the restart.
func (s *Session) enterWin(_ []component.ObstacleSpawn) error {
	win := s.tuning.Win
	s.setMode(component.MoveLocked)
	ecs.Remove(s.world, s.player, component.PhysicsBodyComponent.Kind())
	s.PlayerHidden = false
	if sp, ok := ecs.Get(s.world, s.player, component.SpriteComponent.Kind()); ok {
		sp.Alpha = 1
	}

	for _, r := range win.Bushes {
		if _, err := entity.NewBush(s.world, r, true, int(LevelWin)); err != nil {
			return err
		}
	}
	if _, err := entity.NewBanner(s.world, win.Banner, s.width/2, s.height/2, int(LevelWin)); err != nil {
		return err
	}

	s.timers.After(timer.Owner(LevelWin), common.Frames(win.RestartDelay), func() {
		log.Printf("session %s: ending finished with score %d, restarting", s.ID, s.Score)
		s.restart = true
	})
	return nil
}
