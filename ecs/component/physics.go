package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Width/Height describe the box in pixels; the body position is its center.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	// Grounded is refreshed by the physics system after every step.
	Grounded bool
	// PinX keeps the body at a fixed horizontal screen position when > 0.
	PinX float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
