package prefabs

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadTuningEmbedded(t *testing.T) {
	prev := Dir
	Dir = t.TempDir()
	t.Cleanup(func() { Dir = prev })
	spec, err := LoadTuning()
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if spec.Guard.ChaseSpeed <= spec.World.ScrollSpeed {
		t.Fatalf("guard must outrun scrolling: %v <= %v", spec.Guard.ChaseSpeed, spec.World.ScrollSpeed)
	}
	if spec.World.ObstacleDistance != 600 {
		t.Fatalf("unexpected obstacle distance %v", spec.World.ObstacleDistance)
	}
	if got := spec.BackgroundColor("jungle"); got.A != 0xff || got.G == 0 {
		t.Fatalf("unexpected jungle color %+v", got)
	}
}

func TestValidateRejects(t *testing.T) {
	base := func() TuningSpec {
		spec, err := LoadTuning()
		if err != nil {
			t.Fatalf("LoadTuning: %v", err)
		}
		return *spec
	}
	cases := []struct {
		name   string
		mutate func(*TuningSpec)
	}{
		{"slow_guard", func(s *TuningSpec) { s.Guard.ChaseSpeed = s.World.ScrollSpeed }},
		{"safe_window_too_long", func(s *TuningSpec) { s.Rail.SafeWindow = s.Rail.BlinkPeriod }},
		{"no_markers", func(s *TuningSpec) { s.Rail.Markers = nil }},
		{"zero_fade", func(s *TuningSpec) { s.Transition.FadeFrames = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := base()
			c.mutate(&spec)
			if err := spec.Validate(); !errors.Is(err, ErrInvalidTuning) {
				t.Fatalf("expected ErrInvalidTuning, got %v", err)
			}
		})
	}
}

func TestObstacleTable(t *testing.T) {
	spec, err := LoadObstacles()
	if err != nil {
		t.Fatalf("LoadObstacles: %v", err)
	}
	rock, err := spec.Lookup("rock")
	if err != nil {
		t.Fatalf("Lookup(rock): %v", err)
	}
	offX, offY, w, h := rock.Box()
	dw, dh := rock.DisplaySize()
	if w != dw*0.5 || h != dh*0.5 || offX != dw*0.25 || offY != dh*0.25 {
		t.Fatalf("rock box = (%v,%v,%v,%v) for display %vx%v", offX, offY, w, h, dw, dh)
	}
	if len(spec.Levels[1]) != 3 || len(spec.Levels[2]) != 2 {
		t.Fatalf("unexpected level sets %v", spec.Levels)
	}
	for _, typ := range spec.Levels[2] {
		for _, l1 := range spec.Levels[1] {
			if typ == l1 {
				t.Fatalf("level 2 set must differ from level 1, shared %q", typ)
			}
		}
	}
	if _, err := spec.Lookup("dragon"); !errors.Is(err, ErrUnknownObstacle) {
		t.Fatalf("expected ErrUnknownObstacle, got %v", err)
	}
}

func TestLoadRuleset(t *testing.T) {
	cases := []struct {
		name       string
		want       string
		jungle     int
		city       int
		trainDeath bool
	}{
		{"", "standard", 70, 100, false},
		{"classic", "classic", 30, 100, true},
		{"extended", "extended", 70, 140, true},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			rs, err := LoadRuleset(c.name)
			if err != nil {
				t.Fatalf("LoadRuleset(%q): %v", c.name, err)
			}
			if rs.Name != c.want || rs.JungleToCity != c.jungle || rs.CityToRail != c.city || rs.TrainLethal != c.trainDeath {
				t.Fatalf("unexpected ruleset %+v", rs)
			}
			if rs.StealthToWin != 200 {
				t.Fatalf("unexpected win threshold %d", rs.StealthToWin)
			}
		})
	}
	if _, err := LoadRuleset("nope"); !errors.Is(err, ErrUnknownRuleset) {
		t.Fatalf("expected ErrUnknownRuleset, got %v", err)
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
		a       uint8
	}{
		{`"#ff0000"`, false, 0xff},
		{`"00ff0080"`, false, 0x80},
		{`"#fff"`, true, 0},
	}
	for _, c := range cases {
		var col YAMLColor
		err := yaml.Unmarshal([]byte(c.in), &col)
		if (err != nil) != c.wantErr {
			t.Fatalf("%s: err=%v wantErr=%v", c.in, err, c.wantErr)
		}
		if err == nil && col.A != c.a {
			t.Fatalf("%s: alpha %x, want %x", c.in, col.A, c.a)
		}
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"guard.tengo", "scripts/guard.tengo", "prefabs/scripts/guard.tengo"} {
		data, err := LoadScript(name)
		if err != nil || len(data) == 0 {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
}
