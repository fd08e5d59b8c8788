package session

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/prefabs"
)

// ObstacleStream is the queue of scrolling obstacles of a side-scrolling
// level. Entries are kept in ascending x, obstacle distance apart.
type ObstacleStream struct {
	world    *ecs.World
	spec     *prefabs.ObstaclesSpec
	rng      *rand.Rand
	level    LevelID
	types    []string
	width    float64
	floorY   float64
	distance float64
	queue    []ecs.Entity
}

func newObstacleStream(s *Session, level LevelID) (*ObstacleStream, error) {
	types := s.obstacles.Levels[int(level)]
	if len(types) == 0 {
		return nil, fmt.Errorf("level %d: %w", level, ErrNoObstacleStream)
	}
	return &ObstacleStream{
		world:    s.world,
		spec:     s.obstacles,
		rng:      s.rng,
		level:    level,
		types:    types,
		width:    s.width,
		floorY:   s.height,
		distance: s.tuning.World.ObstacleDistance,
	}, nil
}

// Spawn appends an obstacle of typ with its left edge at x.
func (o *ObstacleStream) Spawn(typ string, x float64) (ecs.Entity, error) {
	row, err := o.spec.Lookup(typ)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnknownObstacleType, err)
	}
	e, err := entity.NewObstacleAt(o.world, typ, row, x, o.floorY, int(o.level))
	if err != nil {
		return 0, err
	}
	o.queue = append(o.queue, e)
	return e, nil
}

// Advance shifts every obstacle left by dx, then recycles each head whose
// right edge has passed x=0. It returns how many were recycled.
func (o *ObstacleStream) Advance(dx float64) (int, error) {
	for _, e := range o.queue {
		if t, ok := ecs.Get(o.world, e, component.TransformComponent.Kind()); ok {
			t.X -= dx
		}
	}

	recycled := 0
	for len(o.queue) > 0 {
		x, _, width, _, ok := entity.Bounds(o.world, o.queue[0])
		if ok && x+width >= 0 {
			break
		}
		ecs.DestroyEntity(o.world, o.queue[0])
		o.queue = o.queue[1:]
		recycled++

		next := o.width + o.distance
		if n := len(o.queue); n > 0 {
			lastX, _, _, _, _ := entity.Bounds(o.world, o.queue[n-1])
			next = lastX + o.distance
		}
		if _, err := o.Spawn(o.types[o.rng.Intn(len(o.types))], next); err != nil {
			return recycled, err
		}
	}
	return recycled, nil
}

// Positions returns the left edge of every queued obstacle in queue order.
func (o *ObstacleStream) Positions() []float64 {
	out := make([]float64, 0, len(o.queue))
	for _, e := range o.queue {
		x, _, _, _, _ := entity.Bounds(o.world, e)
		out = append(out, x)
	}
	return out
}

func (o *ObstacleStream) Entities() []ecs.Entity {
	return append([]ecs.Entity(nil), o.queue...)
}

func (o *ObstacleStream) Len() int {
	return len(o.queue)
}

// Clear destroys every queued obstacle.
func (o *ObstacleStream) Clear() {
	for _, e := range o.queue {
		ecs.DestroyEntity(o.world, e)
	}
	o.queue = nil
}

// SpawnObstacle adds an obstacle to the current level's stream.
func (s *Session) SpawnObstacle(typ string, x float64) (ecs.Entity, error) {
	if s.stream == nil {
		return 0, fmt.Errorf("level %d: %w", s.Level, ErrNoObstacleStream)
	}
	return s.stream.Spawn(typ, x)
}

// AdvanceObstacles scrolls the stream by dx and scores every recycled
// obstacle.
func (s *Session) AdvanceObstacles(dx float64) error {
	if s.stream == nil || (s.Level != LevelJungle && s.Level != LevelCity) {
		return fmt.Errorf("level %d: %w", s.Level, ErrNoObstacleStream)
	}
	n, err := s.stream.Advance(dx)
	s.addScore(n * s.tuning.Score.ObstacleClear)
	return err
}

// Obstacles returns the current stream, nil outside side-scrolling levels.
func (s *Session) Obstacles() *ObstacleStream {
	return s.stream
}

// prefillFor lays out the opening obstacles of a side-scrolling level by
// cycling through its type set.
func (s *Session) prefillFor(level LevelID) []component.ObstacleSpawn {
	types := s.obstacles.Levels[int(level)]
	if len(types) == 0 {
		return nil
	}
	n := len(types)
	if n < 3 {
		n = 3
	}
	out := make([]component.ObstacleSpawn, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, component.ObstacleSpawn{
			Type: types[i%len(types)],
			X:    s.width/2 + float64(i)*s.tuning.World.ObstacleDistance,
		})
	}
	return out
}
