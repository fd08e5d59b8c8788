package session

import (
	"fmt"
	"log"

	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/system"
	"github.com/milk9111/runner/timer"
)

// LevelID names the five levels in play order.
type LevelID int

const (
	LevelJungle LevelID = iota + 1
	LevelCity
	LevelRailCrossing
	LevelStealth
	LevelWin
)

func (l LevelID) Valid() bool {
	return l >= LevelJungle && l <= LevelWin
}

func (l LevelID) String() string {
	switch l {
	case LevelJungle:
		return "jungle"
	case LevelCity:
		return "city"
	case LevelRailCrossing:
		return "rail crossing"
	case LevelStealth:
		return "stealth"
	case LevelWin:
		return "win"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// State is the machine state: a level, or the terminal game over.
type State int

const StateGameOver State = -1

// State reports the current machine state.
func (s *Session) State() State {
	if s.GameOver {
		return StateGameOver
	}
	return State(s.Level)
}

// levelHandler is one row of the level table.
type levelHandler struct {
	title      string
	background string
	enter      func(s *Session, prefill []component.ObstacleSpawn) error
	tick       func(s *Session, in component.Input)
}

func (s *Session) levelHandlers() map[LevelID]levelHandler {
	return map[LevelID]levelHandler{
		LevelJungle:       {title: "Jungle", background: "jungle", enter: (*Session).enterJungle, tick: (*Session).tickJungle},
		LevelCity:         {title: "City", background: "city", enter: (*Session).enterCity, tick: (*Session).tickCity},
		LevelRailCrossing: {title: "Rail crossing", background: "rail", enter: (*Session).enterRail, tick: (*Session).tickRail},
		LevelStealth:      {title: "Stealth", background: "stealth", enter: (*Session).enterStealth, tick: (*Session).tickStealth},
		LevelWin:          {title: "Escape", background: "win", enter: (*Session).enterWin},
	}
}

// scoreGuard is a score-triggered transition, checked in table order.
type scoreGuard struct {
	from, to  LevelID
	threshold func(s *Session) int
}

var scoreGuards = []scoreGuard{
	{from: LevelJungle, to: LevelCity, threshold: func(s *Session) int { return s.rules.JungleToCity }},
	{from: LevelCity, to: LevelRailCrossing, threshold: func(s *Session) int { return s.rules.CityToRail }},
	{from: LevelStealth, to: LevelWin, threshold: func(s *Session) int { return s.rules.StealthToWin }},
}

func (s *Session) nextByScore() (LevelID, bool) {
	for _, g := range scoreGuards {
		if s.Level == g.from && s.Score >= g.threshold(s) {
			return g.to, true
		}
	}
	return 0, false
}

// Tick advances the session one frame with the input held this frame.
func (s *Session) Tick(in component.Input) {
	if s == nil {
		return
	}

	s.timers.Advance()
	if s.GameOver {
		return
	}

	// The fade keeps running into the ending level so it can clear the cover.
	if system.TransitionActive(s.world) {
		s.fade.Update(s.world)
		return
	}
	if s.Level == LevelWin {
		return
	}

	s.input.Set(in)
	s.input.Update(s.world)

	if next, ok := s.nextByScore(); ok {
		if err := s.ChangeLevel(next, s.handlers[next].background, s.prefillFor(next)); err != nil {
			log.Printf("session %s: %v", s.ID, err)
		}
		return
	}

	if h := s.handlers[s.Level]; h.tick != nil {
		h.tick(s, s.playerInput())
	}
	if s.GameOver || system.TransitionActive(s.world) {
		return
	}

	s.simulate.Update(s.world)
	if hit, ok := system.HitHazard(s.world); ok {
		s.endGame(fmt.Sprintf("hit entity %d", hit.Other))
	}
}

// enterLevel builds level's entities. Its timers are owned by the level.
func (s *Session) enterLevel(level LevelID, prefill []component.ObstacleSpawn) error {
	h, ok := s.handlers[level]
	if !ok {
		return fmt.Errorf("enter level %d: no handler", level)
	}
	if n := s.timers.Pending(timer.Owner(level)); n > 0 {
		log.Printf("session %s: level %d already has %d timers", s.ID, level, n)
	}
	if err := h.enter(s, prefill); err != nil {
		return fmt.Errorf("enter level %d: %w", level, err)
	}
	return nil
}
