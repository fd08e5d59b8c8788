package session

import (
	"testing"

	"github.com/milk9111/runner/common"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/prefabs"
)

func componentInput(forward bool) component.Input {
	return component.Input{Right: forward}
}

func TestGuardChasesFasterThanScroll(t *testing.T) {
	cases := []struct {
		name    string
		forward bool
		want    float64
	}{
		{name: "idle", want: -150 + 5.6},
		{name: "running", forward: true, want: -150 + 5.6 - 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestSession(t, LevelCity, nil)
			s.Tick(componentInput(tc.forward))
			x, ok := s.GuardX()
			if !ok {
				t.Fatalf("expected guard")
			}
			if diff := x - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("expected guard x %v, got %v", tc.want, x)
			}
		})
	}
}

func TestGuardContactEndsGame(t *testing.T) {
	s, display := newTestSession(t, LevelCity, nil)
	for i := 0; i < 2000 && !s.GameOver; i++ {
		s.Tick(component.Input{})
	}
	if !s.GameOver {
		t.Fatalf("expected the guard to catch an idle player")
	}
	if len(display.alerts) == 0 {
		t.Fatalf("expected a game-over alert")
	}
}

func TestRailUnsafeMarkerResetsPlayer(t *testing.T) {
	s, _ := newTestSession(t, LevelRailCrossing, nil)
	marker, _ := entityRect(s.World(), s.Markers()[0])
	s.movePlayerTo(marker.X, marker.Y)

	s.Tick(component.Input{Action: true})

	pr, _ := s.playerBounds()
	if pr.X != s.tuning.Rail.LaneStartX || pr.Y != s.tuning.Rail.LaneStartY {
		t.Fatalf("expected reset to lane start, got %v,%v", pr.X, pr.Y)
	}
	if s.Score != 0 || s.Level != LevelRailCrossing || s.GameOver {
		t.Fatalf("expected score and level unchanged, got score=%d level=%v over=%v", s.Score, s.Level, s.GameOver)
	}
}

func TestRailSafeMarkerAdvancesToStealth(t *testing.T) {
	s, _ := newTestSession(t, LevelRailCrossing, nil)
	s.setMarkersSafe(true)
	marker, _ := entityRect(s.World(), s.Markers()[1])
	s.movePlayerTo(marker.X, marker.Y)

	s.Tick(component.Input{Action: true})
	if !s.Transitioning() {
		t.Fatalf("expected transition to stealth")
	}
	finishTransition(t, s)
	if s.Level != LevelStealth || s.Background() != "stealth" {
		t.Fatalf("expected stealth, got %v/%s", s.Level, s.Background())
	}
}

func TestRailMarkersBlink(t *testing.T) {
	s, _ := newTestSession(t, LevelRailCrossing, nil)
	period := common.Frames(s.tuning.Rail.BlinkPeriod)
	window := common.Frames(s.tuning.Rail.SafeWindow)

	safe := func() bool {
		m, _ := ecs.Get(s.World(), s.Markers()[0], component.MarkerComponent.Kind())
		return m.Safe
	}

	for i := 1; i <= period+window; i++ {
		s.Tick(component.Input{})
		want := i >= period && i < period+window
		if safe() != want {
			t.Fatalf("tick %d: expected safe=%v", i, want)
		}
	}
}

func TestTrainWrapsAndFollowsLethality(t *testing.T) {
	s, _ := newTestSession(t, LevelRailCrossing, nil)
	tr, _ := ecs.Get(s.World(), s.train, component.TransformComponent.Kind())
	tr.X = s.width - 1
	s.Tick(component.Input{})
	if tr.X != s.tuning.Rail.TrainStartX {
		t.Fatalf("expected train wrapped to %v, got %v", s.tuning.Rail.TrainStartX, tr.X)
	}

	for _, name := range []string{"standard", "classic"} {
		rs, err := prefabs.LoadRuleset(name)
		if err != nil {
			t.Fatalf("ruleset: %v", err)
		}
		s, err := New(Config{Tuning: testTuning(t), Rules: rs, Pursuer: LinearPursuer{}, StartLevel: LevelRailCrossing})
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		tr, _ := ecs.Get(s.World(), s.train, component.TransformComponent.Kind())
		pr, _ := s.playerBounds()
		tr.X, tr.Y = pr.X, pr.Y
		s.Tick(component.Input{})
		if s.GameOver != rs.TrainLethal {
			t.Fatalf("%s: expected game over=%v", name, rs.TrainLethal)
		}
	}
}

func TestStealthGraceCountdown(t *testing.T) {
	s, display := newTestSession(t, LevelStealth, nil)
	grace := s.tuning.Stealth.GraceSeconds

	for i := 0; i < grace*common.TPS; i++ {
		s.Tick(component.Input{})
	}
	if s.GameOver {
		t.Fatalf("no lethality during the grace countdown")
	}
	if s.Countdown() != 0 {
		t.Fatalf("expected countdown finished, got %d", s.Countdown())
	}
	want := []int{5, 4, 3, 2, 1, 0}
	if len(display.countdowns) != len(want) {
		t.Fatalf("expected countdowns %v, got %v", want, display.countdowns)
	}
	for i := range want {
		if display.countdowns[i] != want[i] {
			t.Fatalf("expected countdowns %v, got %v", want, display.countdowns)
		}
	}
}

func noGrace(t *prefabs.TuningSpec) { t.Stealth.GraceSeconds = 0 }

func TestStealthExposedWhenLightTurnsUnsafe(t *testing.T) {
	s, display := newTestSession(t, LevelStealth, noGrace)
	period := common.Frames(s.tuning.Stealth.LightPeriod)

	for i := 1; i < period; i++ {
		s.Tick(component.Input{})
		if s.GameOver {
			t.Fatalf("tick %d: game over while the light is safe", i)
		}
	}
	s.Tick(component.Input{})
	if s.LightSafe() {
		t.Fatalf("expected light unsafe on tick %d", period)
	}
	if !s.GameOver {
		t.Fatalf("expected game over on the tick the light turned unsafe")
	}
	if len(display.alerts) != 1 {
		t.Fatalf("expected one alert, got %v", display.alerts)
	}
}

func TestStealthConcealedFlipScores(t *testing.T) {
	s, _ := newTestSession(t, LevelStealth, noGrace)
	bush := s.tuning.Stealth.Bushes[0]
	s.movePlayerTo(bush.X+10, bush.Y+10)
	period := common.Frames(s.tuning.Stealth.LightPeriod)

	hide := component.Input{Modifier: true}
	for i := 0; i < 2*period; i++ {
		s.Tick(hide)
	}
	if s.GameOver {
		t.Fatalf("hidden player must survive the unsafe light")
	}
	if !s.PlayerHidden {
		t.Fatalf("expected player hidden")
	}
	if sp, _ := ecs.Get(s.World(), s.Player(), component.SpriteComponent.Kind()); sp.Alpha != hiddenAlpha {
		t.Fatalf("expected alpha %v, got %v", hiddenAlpha, sp.Alpha)
	}
	if s.Score != s.tuning.Score.ConcealedFlip {
		t.Fatalf("expected one concealed flip bonus, got %d", s.Score)
	}

	s.Tick(component.Input{})
	if s.PlayerHidden {
		t.Fatalf("releasing the conceal key must reveal the player")
	}
}

func TestStealthFlipBonusUsesConcealmentOfThatTick(t *testing.T) {
	s, _ := newTestSession(t, LevelStealth, noGrace)
	bush := s.tuning.Stealth.Bushes[0]
	s.movePlayerTo(bush.X+10, bush.Y+10)
	period := common.Frames(s.tuning.Stealth.LightPeriod)

	hide := component.Input{Modifier: true}
	for i := 0; i < 2*period-1; i++ {
		s.Tick(hide)
	}
	if s.GameOver || s.LightSafe() {
		t.Fatalf("expected a hidden player under the unsafe light")
	}

	// Released on the very tick the light turns safe.
	s.Tick(component.Input{})
	if !s.LightSafe() {
		t.Fatalf("expected the light safe on tick %d", 2*period)
	}
	if s.PlayerHidden {
		t.Fatalf("expected the player revealed")
	}
	if s.Score != 0 {
		t.Fatalf("expected no bonus for a player exposed at the flip, got %d", s.Score)
	}
}

func TestStealthPatrolHarmlessDuringGrace(t *testing.T) {
	s, _ := newTestSession(t, LevelStealth, nil)
	s.movePlayerTo(s.tuning.Stealth.Patrol.X, s.tuning.Stealth.Patrol.Y)
	for i := 0; i < common.TPS; i++ {
		s.Tick(component.Input{})
		if s.GameOver {
			t.Fatalf("tick %d: patrol caught the player with %d grace seconds left", i, s.Countdown())
		}
	}
	if s.Countdown() <= 0 {
		t.Fatalf("expected the grace countdown to still be running")
	}
}

func TestStealthPatrolIsLethalWhenExposed(t *testing.T) {
	s, _ := newTestSession(t, LevelStealth, nil)
	for i := 0; i < s.tuning.Stealth.GraceSeconds*common.TPS; i++ {
		s.Tick(component.Input{})
	}
	if s.GameOver || s.Countdown() != 0 || !s.LightSafe() {
		t.Fatalf("expected grace over with the light safe, game over=%v countdown=%d", s.GameOver, s.Countdown())
	}

	s.movePlayerTo(s.tuning.Stealth.Patrol.X, s.tuning.Stealth.Patrol.Y)
	s.Tick(component.Input{})
	if !s.GameOver {
		t.Fatalf("expected the patrol to catch an exposed player")
	}
}

func TestStealthScoreAdvancesToWinAndRestarts(t *testing.T) {
	s, _ := newTestSession(t, LevelStealth, nil)
	s.Score = s.rules.StealthToWin
	s.Tick(component.Input{})
	finishTransition(t, s)
	if s.Level != LevelWin {
		t.Fatalf("expected win, got %v", s.Level)
	}

	p, _ := ecs.Get(s.World(), s.Player(), component.PlayerComponent.Kind())
	if p.Mode != component.MoveLocked {
		t.Fatalf("expected locked controls, got %v", p.Mode)
	}
	if ecs.Has(s.World(), s.Player(), component.PhysicsBodyComponent.Kind()) {
		t.Fatalf("expected no physics body in the ending")
	}
	if _, ok := ecs.First(s.World(), component.BannerComponent.Kind()); !ok {
		t.Fatalf("expected the win banner")
	}

	before, _ := s.playerBounds()
	for i := 0; i < common.Frames(s.tuning.Win.RestartDelay) && !s.RestartRequested(); i++ {
		s.Tick(component.Input{Right: true, Up: true})
	}
	after, _ := s.playerBounds()
	if before != after {
		t.Fatalf("locked player moved from %v to %v", before, after)
	}
	if !s.RestartRequested() {
		t.Fatalf("expected restart after the ending delay")
	}
}
