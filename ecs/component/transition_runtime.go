package component

// TransitionPhase is the step of an in-progress level transition.
type TransitionPhase int

const (
	TransitionNone TransitionPhase = iota
	TransitionFadeOut
	TransitionFadeIn
)

// TransitionRuntime holds transient state for an in-progress level
// transition. Alpha is the opacity of the full-screen cover.
type TransitionRuntime struct {
	Phase  TransitionPhase
	Alpha  float64
	Timer  int
	Frames int
	Req    LevelChangeRequest
	// Swapped is set once the level behind the cover has been rebuilt.
	Swapped bool
}

var TransitionRuntimeComponent = NewComponent[TransitionRuntime]()
