package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prefab file names under Dir.
const (
	TuningFile    = "tuning.yaml"
	ObstaclesFile = "obstacles.yaml"
	RulesFile     = "rules.yaml"
)

var (
	ErrInvalidTuning   = errors.New("prefabs: invalid tuning")
	ErrUnknownRuleset  = errors.New("prefabs: unknown ruleset")
	ErrUnknownObstacle = errors.New("prefabs: unknown obstacle type")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// TuningSpec holds every gameplay constant of the five levels.
type TuningSpec struct {
	World       WorldSpec             `yaml:"world"`
	Score       ScoreSpec             `yaml:"score"`
	Player      PlayerSpec            `yaml:"player"`
	Guard       GuardSpec             `yaml:"guard"`
	Rail        RailSpec              `yaml:"rail"`
	Stealth     StealthSpec           `yaml:"stealth"`
	Win         WinSpec               `yaml:"win"`
	Transition  TransitionSpec        `yaml:"transition"`
	Backgrounds map[string]*YAMLColor `yaml:"backgrounds"`
}

type WorldSpec struct {
	// Gravity is in px/s², speeds below are px per tick.
	Gravity          float64 `yaml:"gravity"`
	ScrollSpeed      float64 `yaml:"scroll_speed"`
	BackgroundSpeed  float64 `yaml:"background_speed"`
	ObstacleDistance float64 `yaml:"obstacle_distance"`
}

type ScoreSpec struct {
	ObstacleClear int `yaml:"obstacle_clear"`
	ConcealedFlip int `yaml:"concealed_flip"`
}

type PlayerSpec struct {
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	JumpSpeed  float64    `yaml:"jump_speed"`
	Elasticity float64    `yaml:"elasticity"`
	MoveSpeed  float64    `yaml:"move_speed"`
	Color      *YAMLColor `yaml:"color"`
	AltColor   *YAMLColor `yaml:"alt_color"`
}

type GuardSpec struct {
	StartX     float64    `yaml:"start_x"`
	ChaseSpeed float64    `yaml:"chase_speed"`
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Script     string     `yaml:"script"`
	Color      *YAMLColor `yaml:"color"`
}

type CellSpec struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

type RailSpec struct {
	TrainSpeed  float64    `yaml:"train_speed"`
	TrainStartX float64    `yaml:"train_start_x"`
	TrainY      float64    `yaml:"train_y"`
	TrainWidth  float64    `yaml:"train_width"`
	TrainHeight float64    `yaml:"train_height"`
	CellSize    float64    `yaml:"cell_size"`
	Markers     []CellSpec `yaml:"markers"`
	BlinkPeriod float64    `yaml:"blink_period"`
	SafeWindow  float64    `yaml:"safe_window"`
	LaneStartX  float64    `yaml:"lane_start_x"`
	LaneStartY  float64    `yaml:"lane_start_y"`
}

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type StealthSpec struct {
	StartX       float64    `yaml:"start_x"`
	StartY       float64    `yaml:"start_y"`
	GraceSeconds int        `yaml:"grace_seconds"`
	LightPeriod  float64    `yaml:"light_period"`
	Light        RectSpec   `yaml:"light"`
	Patrol       RectSpec   `yaml:"patrol"`
	Bushes       []RectSpec `yaml:"bushes"`
}

type WinSpec struct {
	RestartDelay float64    `yaml:"restart_delay"`
	Banner       string     `yaml:"banner"`
	Bushes       []RectSpec `yaml:"bushes"`
}

type TransitionSpec struct {
	FadeFrames int `yaml:"fade_frames"`
}

// Validate rejects tunings that break gameplay invariants.
func (t *TuningSpec) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil", ErrInvalidTuning)
	}
	switch {
	case t.World.ScrollSpeed <= 0:
		return fmt.Errorf("%w: world.scroll_speed must be positive", ErrInvalidTuning)
	case t.World.ObstacleDistance <= 0:
		return fmt.Errorf("%w: world.obstacle_distance must be positive", ErrInvalidTuning)
	case t.Guard.ChaseSpeed <= t.World.ScrollSpeed:
		return fmt.Errorf("%w: guard.chase_speed %.2f must exceed world.scroll_speed %.2f", ErrInvalidTuning, t.Guard.ChaseSpeed, t.World.ScrollSpeed)
	case t.Rail.SafeWindow <= 0 || t.Rail.SafeWindow >= t.Rail.BlinkPeriod:
		return fmt.Errorf("%w: rail.safe_window must be inside rail.blink_period", ErrInvalidTuning)
	case t.Rail.CellSize <= 0 || len(t.Rail.Markers) == 0:
		return fmt.Errorf("%w: rail needs a cell size and markers", ErrInvalidTuning)
	case t.Stealth.LightPeriod <= 0:
		return fmt.Errorf("%w: stealth.light_period must be positive", ErrInvalidTuning)
	case t.Transition.FadeFrames <= 0:
		return fmt.Errorf("%w: transition.fade_frames must be positive", ErrInvalidTuning)
	}
	return nil
}

// BackgroundColor returns the configured backdrop color for name.
func (t *TuningSpec) BackgroundColor(name string) color.RGBA {
	if t != nil {
		if c, ok := t.Backgrounds[name]; ok && c != nil {
			return c.RGBA
		}
	}
	return color.RGBA{A: 0xff}
}

func LoadTuning() (*TuningSpec, error) {
	spec, err := LoadSpec[TuningSpec](TuningFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: tuning.yaml: %w", err)
	}
	return &spec, nil
}

// ObstacleTypeSpec is one row of the obstacle geometry table. Width/Height
// are the unscaled art size; the collision box is a fraction of the scaled
// size, inset by BoxOffset on each side.
type ObstacleTypeSpec struct {
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	VisualScale float64    `yaml:"visual_scale"`
	BoxScale    float64    `yaml:"box_scale"`
	BoxOffset   float64    `yaml:"box_offset"`
	Color       *YAMLColor `yaml:"color"`
}

// DisplaySize is the on-screen size of the obstacle.
func (o ObstacleTypeSpec) DisplaySize() (w, h float64) {
	return o.Width * o.VisualScale, o.Height * o.VisualScale
}

// Box returns the collision box relative to the obstacle's top-left corner.
func (o ObstacleTypeSpec) Box() (offX, offY, w, h float64) {
	dw, dh := o.DisplaySize()
	return dw * o.BoxOffset, dh * o.BoxOffset, dw * o.BoxScale, dh * o.BoxScale
}

type ObstaclesSpec struct {
	Types  map[string]ObstacleTypeSpec `yaml:"types"`
	Levels map[int][]string            `yaml:"levels"`
}

// Lookup returns the geometry row for typ.
func (o *ObstaclesSpec) Lookup(typ string) (ObstacleTypeSpec, error) {
	if o != nil {
		if spec, ok := o.Types[typ]; ok {
			return spec, nil
		}
	}
	return ObstacleTypeSpec{}, fmt.Errorf("%w: %q", ErrUnknownObstacle, typ)
}

func LoadObstacles() (*ObstaclesSpec, error) {
	spec, err := LoadSpec[ObstaclesSpec](ObstaclesFile)
	if err != nil {
		return nil, err
	}
	for level, types := range spec.Levels {
		for _, typ := range types {
			if _, err := spec.Lookup(typ); err != nil {
				return nil, fmt.Errorf("prefabs: obstacles.yaml level %d: %w", level, err)
			}
		}
	}
	return &spec, nil
}

// Ruleset is one revision's progression thresholds and lethality rules.
type Ruleset struct {
	Name         string `yaml:"-"`
	JungleToCity int    `yaml:"jungle_to_city"`
	CityToRail   int    `yaml:"city_to_rail"`
	StealthToWin int    `yaml:"stealth_to_win"`
	TrainLethal  bool   `yaml:"train_lethal"`
}

type RulesSpec struct {
	Default  string             `yaml:"default"`
	Rulesets map[string]Ruleset `yaml:"rulesets"`
}

// LoadRuleset returns the named ruleset, or the file's default when name is
// empty.
func LoadRuleset(name string) (Ruleset, error) {
	spec, err := LoadSpec[RulesSpec](RulesFile)
	if err != nil {
		return Ruleset{}, err
	}
	if name == "" {
		name = spec.Default
	}
	rs, ok := spec.Rulesets[name]
	if !ok {
		return Ruleset{}, fmt.Errorf("%w: %q", ErrUnknownRuleset, name)
	}
	rs.Name = name
	return rs, nil
}

type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.RGBA = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when c is nil.
func (c *YAMLColor) Or(fallback color.RGBA) color.RGBA {
	if c == nil {
		return fallback
	}
	return c.RGBA
}
