package dodge

import (
	"github.com/vovakirdan/dodgeball/internal/core"
)

// Obstacle tuning. Fixed by design; only the arena is configurable.
const (
	PoolCapacity = 30 // Obstacle count of the highest level

	MinObstacleRadius = 20
	MaxObstacleRadius = 40
	MinObstacleSpeed  = 5 // Units per frame
	MaxObstacleSpeed  = 10

	SpawnInset = 2 * MaxObstacleRadius // Right margin of the spawn range: the largest diameter
	SpawnDrop  = 40 // Spawn height below the top border
)

// Obstacle is a falling circle.
type Obstacle struct {
	Pos    core.Vec2
	Radius float64
	Speed  float64
}

// HitEvents summarises one obstacle pass.
type HitEvents struct {
	Hits    int   // Obstacles that overlapped the ball
	Escapes int   // Obstacles recycled after leaving the bottom edge
	Flash   bool  // A hit happened and the flash cue should start
	Slots   []int // Pool slots that hit the ball, in pass order
}

// Spawn places o at a fresh random position with a fresh radius and speed.
func Spawn(o *Obstacle, arena Arena, rnd RandomSource) {
	minX := int(arena.SideBorder)
	maxX := int(arena.Width - arena.SideBorder - SpawnInset)
	o.Pos.X = float64(rnd.IntRange(minX, maxX))
	o.Pos.Y = arena.TopBorder + SpawnDrop
	o.Radius = float64(rnd.IntRange(MinObstacleRadius, MaxObstacleRadius))
	o.Speed = float64(rnd.IntRange(MinObstacleSpeed, MaxObstacleSpeed))
}

// Pool is a fixed-capacity set of obstacles. Only a prefix of slots,
// chosen by the current level, takes part in a frame.
type Pool struct {
	slots [PoolCapacity]Obstacle
	arena Arena
	rnd   RandomSource
}

// NewPool creates a pool with every slot spawned.
func NewPool(arena Arena, rnd RandomSource) *Pool {
	p := &Pool{arena: arena, rnd: rnd}
	p.RespawnAll()
	return p
}

// RespawnAll respawns every slot, active or not.
func (p *Pool) RespawnAll() {
	for i := range p.slots {
		Spawn(&p.slots[i], p.arena, p.rnd)
	}
}

// Active returns the first n obstacles. The slice aliases the pool.
func (p *Pool) Active(n int) []Obstacle {
	return p.slots[:core.Clamp(n, 0, PoolCapacity)]
}

// Slot returns a pointer to slot i for inspection or test setup.
func (p *Pool) Slot(i int) *Obstacle {
	return &p.slots[i]
}

// AdvanceAndRecycle moves the first active obstacles down and resolves
// escapes and hits against the ball.
//
// Per obstacle the order is: move, recycle if it has left the bottom,
// then collision-test whatever now occupies the slot. An obstacle that
// escaped this frame has already been respawned at the top when it is
// tested. The pass stops as soon as budget hits have been counted.
func (p *Pool) AdvanceAndRecycle(active int, ballPos core.Vec2, ballRadius float64, budget int) HitEvents {
	var ev HitEvents
	for i := range p.Active(active) {
		if ev.Hits >= budget {
			break
		}
		o := &p.slots[i]

		o.Pos.Y += o.Speed
		if o.Pos.Y-o.Radius > p.arena.Height {
			Spawn(o, p.arena, p.rnd)
			ev.Escapes++
		}

		if core.Overlaps(ballPos, ballRadius, o.Pos, o.Radius) {
			Spawn(o, p.arena, p.rnd)
			ev.Hits++
			ev.Flash = true
			ev.Slots = append(ev.Slots, i)
		}
	}
	return ev
}
