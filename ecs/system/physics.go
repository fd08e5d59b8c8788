package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/runner/common"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
)

// PhysicsSystem owns the Chipmunk space. Bodies are created lazily for
// entities carrying PhysicsBody and removed once the entity or its component
// goes away.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	paused        bool
	dt            float64

	entities     map[ecs.Entity]*bodyInfo
	groundShapes map[*cp.Shape]ecs.Entity
	grounded     map[ecs.Entity]bool
	bounds       ecs.Entity
	boundShapes  []*cp.Shape
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
}

// NewPhysicsSystem creates a space with gravity in px/s², stepped once per
// tick.
func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:        space,
		dt:           1.0 / common.TPS,
		entities:     make(map[ecs.Entity]*bodyInfo),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		grounded:     make(map[ecs.Entity]bool),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetPaused freezes every body in place.
func (ps *PhysicsSystem) SetPaused(paused bool) {
	if ps != nil {
		ps.paused = paused
	}
}

func (ps *PhysicsSystem) Paused() bool {
	return ps != nil && ps.paused
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	if ps.paused {
		return
	}

	for e := range ps.grounded {
		ps.grounded[e] = false
	}
	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
}

// Jump gives e an upward velocity of its JumpSpeed when it stands on
// something. It reports whether the jump happened.
func (ps *PhysicsSystem) Jump(w *ecs.World, e ecs.Entity) bool {
	if ps == nil || ps.paused {
		return false
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil || !body.Grounded {
		return false
	}
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return false
	}
	v := body.Body.Velocity()
	body.Body.SetVelocity(v.X, -player.JumpSpeed)
	body.Grounded = false
	return true
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		e, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			e, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}
		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// Blocked below: the contact normal points down the screen.
		if n.Y > 0.5 {
			sys.grounded[e] = true
		}
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		info := ps.createBodyInfo(e, t, body)
		ps.entities[e] = info
		body.Body = info.body
		body.Shape = info.shapes[0]
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, t *component.Transform, bc *component.PhysicsBody) *bodyInfo {
	width, height := bc.Width, bc.Height
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}
	mass := bc.Mass
	if mass <= 0 {
		mass = 1
	}

	// Infinite moment keeps the box upright.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: t.X + width/2, Y: t.Y + height/2})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bc.Friction)
	shape.SetElasticity(bc.Elasticity)
	shape.SetCollisionType(collisionTypePlayer)

	ground := cp.NewBox2(body, cp.BB{L: -width * 0.45, B: height / 2, R: width * 0.45, T: height/2 + 2}, 0)
	ground.SetSensor(true)
	ground.SetCollisionType(collisionTypePlayerGround)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	ps.space.AddShape(ground)
	ps.groundShapes[ground] = e
	ps.grounded[e] = false

	return &bodyInfo{body: body, shapes: []*cp.Shape{shape, ground}}
}

// syncWorldBounds walls in the viewport described by LevelBounds.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok || boundsEntity == ps.bounds {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	for _, shape := range ps.boundShapes {
		ps.space.RemoveShape(shape)
	}
	ps.boundShapes = ps.boundShapes[:0]

	worldW, worldH := bounds.Width, bounds.Height
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0.8)
		shape.SetElasticity(1)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		ps.boundShapes = append(ps.boundShapes, shape)
	}
	ps.bounds = boundsEntity
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bc *component.PhysicsBody, t *component.Transform) {
		if bc.Body == nil {
			return
		}
		pos := bc.Body.Position()
		if bc.PinX > 0 && pos.X != bc.PinX {
			pos.X = bc.PinX
			bc.Body.SetPosition(pos)
			bc.Body.SetVelocity(0, bc.Body.Velocity().Y)
		}
		t.X = pos.X - bc.Width/2
		t.Y = pos.Y - bc.Height/2
		bc.Grounded = ps.grounded[e]
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.groundShapes, shape)
		}
		ps.space.RemoveBody(info.body)
		delete(ps.entities, e)
		delete(ps.grounded, e)
	}
}
