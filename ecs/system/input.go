package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
)

// PollInput reads the keyboard and the first gamepad. Arrows or WASD move,
// Space is the action key and Shift conceals.
func PollInput() component.Input {
	const stickDeadzone = 0.2

	in := component.Input{
		Left:     ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:    ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:       ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:     ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Action:   ebiten.IsKeyPressed(ebiten.KeySpace),
		Modifier: ebiten.IsKeyPressed(ebiten.KeyShift),
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(x) > stickDeadzone {
			in.Left = in.Left || x < 0
			in.Right = in.Right || x > 0
		}
		if math.Abs(y) > stickDeadzone {
			in.Up = in.Up || y < 0
			in.Down = in.Down || y > 0
		}
		in.Action = in.Action || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Modifier = in.Modifier || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
	}
	return in
}

// InputSystem stamps the tick's input onto every Input component.
type InputSystem struct {
	current component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Set stores the input applied on the next Update.
func (i *InputSystem) Set(in component.Input) {
	if i != nil {
		i.current = in
	}
}

func (i *InputSystem) Current() component.Input {
	if i == nil {
		return component.Input{}
	}
	return i.current
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = i.current
	})
}
