package session

import (
	"log"

	"github.com/milk9111/runner/common"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/timer"
)

// enterRail swaps in the free-moving player at the lane start, then builds
// the train, the markers and their blink timer.
func (s *Session) enterRail(_ []component.ObstacleSpawn) error {
	rail := s.tuning.Rail
	if err := s.spawnPlayer(component.MoveFree, rail.LaneStartX, rail.LaneStartY); err != nil {
		return err
	}

	train, err := entity.NewTrain(s.world, rail, s.rules.TrainLethal, int(LevelRailCrossing))
	if err != nil {
		return err
	}
	s.train = train

	for _, cell := range rail.Markers {
		m, err := entity.NewMarker(s.world, cell, rail.CellSize, int(LevelRailCrossing))
		if err != nil {
			return err
		}
		s.markers = append(s.markers, m)
	}

	owner := timer.Owner(LevelRailCrossing)
	safeFrames := common.Frames(rail.SafeWindow)
	s.timers.Every(owner, common.Frames(rail.BlinkPeriod), func() {
		s.setMarkersSafe(true)
		s.timers.After(owner, safeFrames, func() { s.setMarkersSafe(false) })
	})
	return nil
}

func (s *Session) setMarkersSafe(safe bool) {
	for _, m := range s.markers {
		entity.SetMarkerSafe(s.world, m, safe)
	}
}

func (s *Session) tickRail(in component.Input) {
	s.moveFree(in)
	s.moveTrain()

	if !in.Action {
		return
	}
	m, ok := s.overlappedMarker()
	if !ok {
		return
	}
	if m.Safe {
		if err := s.ChangeLevel(LevelStealth, s.handlers[LevelStealth].background, nil); err != nil {
			log.Printf("session %s: %v", s.ID, err)
		}
		return
	}
	s.movePlayerTo(s.tuning.Rail.LaneStartX, s.tuning.Rail.LaneStartY)
}

// moveTrain advances the train and wraps it back once it leaves the right
// edge.
func (s *Session) moveTrain() {
	t, okT := ecs.Get(s.world, s.train, component.TransformComponent.Kind())
	tr, okTr := ecs.Get(s.world, s.train, component.TrainComponent.Kind())
	if !okT || !okTr {
		return
	}
	t.X += tr.Speed
	if t.X > s.width {
		t.X = tr.StartX
	}
}

func (s *Session) overlappedMarker() (*component.Marker, bool) {
	pr, ok := s.playerBounds()
	if !ok {
		return nil, false
	}
	for _, e := range s.markers {
		r, ok := entityRect(s.world, e)
		if !ok || !pr.Intersects(r) {
			continue
		}
		if m, ok := ecs.Get(s.world, e, component.MarkerComponent.Kind()); ok {
			return m, true
		}
	}
	return nil, false
}

// Markers returns the intersection markers of the rail level.
func (s *Session) Markers() []ecs.Entity {
	return append([]ecs.Entity(nil), s.markers...)
}
