// Package core provides fundamental types and utilities for the arcade engine.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// FieldSize is the width and height of the normalized playfield.
// All positions live in [0, FieldSize] on both axes.
const FieldSize = 100.0

// Vec is a 2D vector in game-space units.
type Vec struct {
	X, Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the vector magnitude.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Box is an axis-aligned bounding box described by its center and size.
type Box struct {
	Center Vec
	W, H   float64
}

// NewBox creates a box centered at (cx, cy).
func NewBox(cx, cy, w, h float64) Box {
	return Box{Center: Vec{X: cx, Y: cy}, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.Center.X - b.W/2 }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.Center.X + b.W/2 }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Center.Y - b.H/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Center.Y + b.H/2 }

// Intersects returns true if this box overlaps with another.
// Touching edges do not count as overlap.
func (b Box) Intersects(o Box) bool {
	if b.Left() >= o.Right() || o.Left() >= b.Right() {
		return false
	}
	if b.Top() >= o.Bottom() || o.Top() >= b.Bottom() {
		return false
	}
	return true
}

// Overlap returns the penetration depth on each axis.
// Both values are positive only when the boxes intersect.
func (b Box) Overlap(o Box) (dx, dy float64) {
	dx = math.Min(b.Right(), o.Right()) - math.Max(b.Left(), o.Left())
	dy = math.Min(b.Bottom(), o.Bottom()) - math.Max(b.Top(), o.Top())
	return dx, dy
}

// Contains returns true if the point p is inside this box.
func (b Box) Contains(p Vec) bool {
	return p.X >= b.Left() && p.X < b.Right() && p.Y >= b.Top() && p.Y < b.Bottom()
}

// CirclesOverlap reports whether two circles intersect.
func CirclesOverlap(a Vec, ra float64, b Vec, rb float64) bool {
	return a.Sub(b).Len() < ra+rb
}

// CircleBoxOverlap reports whether a circle intersects a box.
func CircleBoxOverlap(c Vec, r float64, b Box) bool {
	nx := ClampF(c.X, b.Left(), b.Right())
	ny := ClampF(c.Y, b.Top(), b.Bottom())
	return c.Sub(Vec{X: nx, Y: ny}).Len() < r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
