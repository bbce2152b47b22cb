package dodge

import (
	"hash/fnv"
	"math"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Frame      uint64
	Phase      Phase
	Score      int
	HighScore  int
	Hits       int
	Level      int
	FlashTimer int
	BallX      float64
	BallY      float64
	Obstacles  []Obstacle // Active slots only
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	active := g.pool.Active(g.run.level().Active)
	obstacles := make([]Obstacle, len(active))
	copy(obstacles, active)

	return Snapshot{
		Frame:      g.run.frame,
		Phase:      g.run.phase,
		Score:      g.run.score,
		HighScore:  g.run.highscore,
		Hits:       g.run.hitCount,
		Level:      g.run.lastLevel,
		FlashTimer: g.run.flashTimer,
		BallX:      g.run.ballPos.X,
		BallY:      g.run.ballPos.Y,
		Obstacles:  obstacles,
	}
}

// Hash returns an FNV-1a digest of the snapshot.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	putF := func(f float64) { put(math.Float64bits(f)) }

	put(s.Frame)
	put(uint64(s.Phase))
	put(uint64(s.Score))
	put(uint64(s.HighScore))
	put(uint64(s.Hits))
	put(uint64(s.Level))
	put(uint64(s.FlashTimer))
	putF(s.BallX)
	putF(s.BallY)
	for _, o := range s.Obstacles {
		putF(o.Pos.X)
		putF(o.Pos.Y)
		putF(o.Radius)
		putF(o.Speed)
	}
	return h.Sum64()
}
