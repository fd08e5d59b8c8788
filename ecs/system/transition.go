package system

import (
	"github.com/milk9111/runner/common"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
)

// TransitionSystem advances the fade runtime one frame per update. Once the
// cover is fully opaque it calls OnCovered with the pending request, then
// fades back in and destroys the runtime.
type TransitionSystem struct {
	OnCovered func(req component.LevelChangeRequest)
}

func NewTransitionSystem(onCovered func(req component.LevelChangeRequest)) *TransitionSystem {
	return &TransitionSystem{OnCovered: onCovered}
}

// TransitionActive reports whether a fade is in flight.
func TransitionActive(w *ecs.World) bool {
	_, ok := ecs.First(w, component.TransitionRuntimeComponent.Kind())
	return ok
}

// CoverAlpha returns the current opacity of the fade cover.
func CoverAlpha(w *ecs.World) float64 {
	rtEnt, ok := ecs.First(w, component.TransitionRuntimeComponent.Kind())
	if !ok {
		return 0
	}
	rt, _ := ecs.Get(w, rtEnt, component.TransitionRuntimeComponent.Kind())
	return rt.Alpha
}

func (ts *TransitionSystem) Update(w *ecs.World) {
	if ts == nil || w == nil {
		return
	}
	rtEnt, ok := ecs.First(w, component.TransitionRuntimeComponent.Kind())
	if !ok {
		return
	}
	rt, _ := ecs.Get(w, rtEnt, component.TransitionRuntimeComponent.Kind())
	if rt.Frames < 1 {
		rt.Frames = 1
	}
	if rt.Timer > 0 {
		rt.Timer--
	}

	switch rt.Phase {
	case component.TransitionFadeOut:
		rt.Alpha = common.Lerp(1, 0, float64(rt.Timer)/float64(rt.Frames))
		if rt.Timer <= 0 {
			rt.Alpha = 1
			if !rt.Swapped {
				rt.Swapped = true
				if ts.OnCovered != nil {
					ts.OnCovered(rt.Req)
				}
			}
			rt.Phase = component.TransitionFadeIn
			rt.Timer = rt.Frames
		}
	case component.TransitionFadeIn:
		rt.Alpha = common.Lerp(0, 1, float64(rt.Timer)/float64(rt.Frames))
		if rt.Timer <= 0 {
			ecs.DestroyEntity(w, rtEnt)
		}
	default:
		ecs.DestroyEntity(w, rtEnt)
	}
}
