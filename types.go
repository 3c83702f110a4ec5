package ck

// Vec2 represents a 2D vector in pixels.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Position is a point in window pixels with the origin at the bottom-left.
type Position = Vec2

// Size is a width and height in whole pixels.
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned box with a bottom-left origin.
type Rect struct {
	X, Y float32
	W, H float32
}

// RectOf returns the box covered by pos and size.
func RectOf(pos Position, size Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: float32(size.Width), H: float32(size.Height)}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// RGB is a colour with float components in [0, 1].
type RGB [3]float32

// RGBA is a colour with float components in [0, 1].
type RGBA [4]float32

var (
	White = RGB{1, 1, 1}
	Black = RGB{0, 0, 0}
)
