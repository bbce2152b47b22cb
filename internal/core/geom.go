// Package core holds the types shared by the game logic and the platform:
// arena geometry, the cell screen buffer, input frames and frame results.
// It imports nothing outside the standard library.
package core

import "cmp"

// Vec2 is a position in arena units.
type Vec2 struct {
	X, Y float64
}

// DistanceSquared returns the squared Euclidean distance between a and b.
func DistanceSquared(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// Overlaps reports whether two circles intersect. Touching counts.
func Overlaps(centerA Vec2, radiusA float64, centerB Vec2, radiusB float64) bool {
	sum := radiusA + radiusB
	return DistanceSquared(centerA, centerB) <= sum*sum
}

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts val to [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return min(max(val, lo), hi)
}
