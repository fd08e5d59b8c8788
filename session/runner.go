package session

import (
	"log"

	"github.com/milk9111/runner/ecs/component"
)

// enterJungle opens the stream with the prefilled obstacles.
func (s *Session) enterJungle(prefill []component.ObstacleSpawn) error {
	return s.openStream(LevelJungle, prefill)
}

func (s *Session) tickJungle(in component.Input) {
	s.tickRunner(in)
}

func (s *Session) openStream(level LevelID, prefill []component.ObstacleSpawn) error {
	stream, err := newObstacleStream(s, level)
	if err != nil {
		return err
	}
	s.stream = stream
	for _, spawn := range prefill {
		if _, err := stream.Spawn(spawn.Type, spawn.X); err != nil {
			return err
		}
	}
	return nil
}

// tickRunner is the side-scrolling step shared by the first two levels:
// forward input scrolls the world, the action key jumps.
func (s *Session) tickRunner(in component.Input) {
	if in.Right {
		s.scrollBackground()
		if err := s.AdvanceObstacles(s.tuning.World.ScrollSpeed); err != nil {
			log.Printf("session %s: %v", s.ID, err)
		}
	}
	if in.Action || in.Up {
		s.physics.Jump(s.world, s.player)
	}
}
