package system

import (
	"image/color"
	"testing"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/prefabs"
)

var testPlayer = prefabs.PlayerSpec{Width: 48, Height: 64, JumpSpeed: 400, Elasticity: 0.2, MoveSpeed: 4}

func TestTransitionSystemFadesOutSwapsThenFadesIn(t *testing.T) {
	w := ecs.NewWorld()
	var covered []component.LevelChangeRequest
	ts := NewTransitionSystem(func(req component.LevelChangeRequest) {
		if got := CoverAlpha(w); got != 1 {
			t.Fatalf("expected full cover at swap, got %v", got)
		}
		covered = append(covered, req)
	})

	if _, err := entity.NewTransition(w, component.LevelChangeRequest{From: 1, Target: 2}, 4); err != nil {
		t.Fatalf("new transition: %v", err)
	}

	var alphas []float64
	for i := 0; i < 8; i++ {
		ts.Update(w)
		alphas = append(alphas, CoverAlpha(w))
	}

	if len(covered) != 1 || covered[0].Target != 2 {
		t.Fatalf("expected one swap to level 2, got %+v", covered)
	}
	want := []float64{0.25, 0.5, 0.75, 1, 0.75, 0.5, 0.25, 0}
	for i := range want {
		if alphas[i] != want[i] {
			t.Fatalf("frame %d: expected alpha %v, got %v (all %v)", i, want[i], alphas[i], alphas)
		}
	}
	if TransitionActive(w) {
		t.Fatalf("expected runtime removed after fade-in")
	}
}

func TestHazardSystem(t *testing.T) {
	cases := []struct {
		name         string
		hazardX      float64
		unlessHidden bool
		hidden       bool
		wantHit      bool
	}{
		{name: "overlap", hazardX: 110, wantHit: true},
		{name: "apart", hazardX: 400},
		{name: "touching edges do not overlap", hazardX: 148},
		{name: "hidden player ignores patrol", hazardX: 110, unlessHidden: true, hidden: true},
		{name: "exposed player hits patrol", hazardX: 110, unlessHidden: true, wantHit: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player, err := entity.NewPlayerAt(w, testPlayer, 100, 100, component.MoveFree, nil)
			if err != nil {
				t.Fatalf("player: %v", err)
			}
			p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
			p.Hidden = tc.hidden

			hz := ecs.CreateEntity(w)
			_ = ecs.Add(w, hz, component.TransformComponent.Kind(), &component.Transform{X: tc.hazardX, Y: 100})
			_ = ecs.Add(w, hz, component.HazardComponent.Kind(), &component.Hazard{Width: 20, Height: 20, UnlessHidden: tc.unlessHidden})

			NewHazardSystem().Update(w)
			ev, hit := HitHazard(w)
			if hit != tc.wantHit {
				t.Fatalf("expected hit=%v, got %v", tc.wantHit, hit)
			}
			if hit && (ev.Entity != player || ev.Other != hz) {
				t.Fatalf("unexpected event %+v", ev)
			}
			if w.Events().Len() != 0 {
				t.Fatalf("expected events drained")
			}
		})
	}
}

func TestInputSystemStampsInput(t *testing.T) {
	w := ecs.NewWorld()
	player, err := entity.NewPlayerAt(w, testPlayer, 0, 0, component.MoveFree, nil)
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	is := NewInputSystem()
	is.Set(component.Input{Right: true, Modifier: true})
	is.Update(w)

	in, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !in.Right || !in.Modifier || in.Left {
		t.Fatalf("unexpected input %+v", in)
	}
}

func newPhysicsWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	if _, err := entity.NewBackground(w, "jungle", color.RGBA{}, 1280, 720); err != nil {
		t.Fatalf("background: %v", err)
	}
	player, err := entity.NewPlayerAt(w, testPlayer, 320-24, 500, component.MovePhysics, nil)
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	return w, player
}

func TestPhysicsSystemLandsPinnedPlayerAndJumps(t *testing.T) {
	w, player := newPhysicsWorld(t)
	ps := NewPhysicsSystem(500)

	if ps.Jump(w, player) {
		t.Fatalf("jump must fail before the body exists")
	}

	landed := false
	for i := 0; i < 600 && !landed; i++ {
		ps.Update(w)
		body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
		landed = body.Grounded
	}
	if !landed {
		t.Fatalf("expected player to land on the floor")
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.X != 320-24 {
		t.Fatalf("expected x pinned at %v, got %v", 320-24, tr.X)
	}
	if tr.Y+testPlayer.Height < 700 {
		t.Fatalf("expected player near the floor, got y=%v", tr.Y)
	}

	if !ps.Jump(w, player) {
		t.Fatalf("expected grounded jump to succeed")
	}
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if vy := body.Body.Velocity().Y; vy != -testPlayer.JumpSpeed {
		t.Fatalf("expected jump velocity %v, got %v", -testPlayer.JumpSpeed, vy)
	}
	if ps.Jump(w, player) {
		t.Fatalf("expected no double jump")
	}
}

func TestPhysicsSystemPauseFreezesBody(t *testing.T) {
	w, player := newPhysicsWorld(t)
	ps := NewPhysicsSystem(500)
	ps.Update(w)

	before, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	y := before.Y
	ps.SetPaused(true)
	for i := 0; i < 30; i++ {
		ps.Update(w)
	}
	after, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if after.Y != y {
		t.Fatalf("expected frozen y %v, got %v", y, after.Y)
	}
}

func TestPhysicsSystemDropsRemovedBodies(t *testing.T) {
	w, player := newPhysicsWorld(t)
	ps := NewPhysicsSystem(500)
	ps.Update(w)
	if len(ps.entities) != 1 {
		t.Fatalf("expected one body, got %d", len(ps.entities))
	}

	ecs.Remove(w, player, component.PhysicsBodyComponent.Kind())
	ps.Update(w)
	if len(ps.entities) != 0 {
		t.Fatalf("expected body removed, got %d", len(ps.entities))
	}
}

func TestDrawOrderSortsByLayer(t *testing.T) {
	w := ecs.NewWorld()
	top := ecs.CreateEntity(w)
	_ = ecs.Add(w, top, component.TransformComponent.Kind(), &component.Transform{})
	_ = ecs.Add(w, top, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerBanner})
	bottom := ecs.CreateEntity(w)
	_ = ecs.Add(w, bottom, component.TransformComponent.Kind(), &component.Transform{})
	_ = ecs.Add(w, bottom, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerBackground})

	order := DrawOrder(w)
	if len(order) != 2 || order[0] != bottom || order[1] != top {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestStripeShiftWraps(t *testing.T) {
	cases := []struct {
		offset float64
		want   float64
	}{
		{0, 0},
		{40, 40},
		{stripeGap, 0},
		{stripeGap + 10, 10},
	}
	for _, tc := range cases {
		if got := StripeShift(tc.offset); got != tc.want {
			t.Fatalf("StripeShift(%v) = %v, want %v", tc.offset, got, tc.want)
		}
	}
}
