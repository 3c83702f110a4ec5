package ck

import "math"

// capSegments is the number of triangles in each round end-cap.
const capSegments = 16

// Line is one pending freehand stroke on a canvas, in canvas pixels.
type Line struct {
	Start, End Position
	Thickness  float32
	Color      RGB
	Erase      bool // clear destination pixels instead of blending
}

// LineQueue is the FIFO of strokes waiting to be rasterized into a canvas.
// Lines are drained exactly once and not retained.
type LineQueue struct {
	lines []Line
	head  int
}

// Enqueue appends l. Zero-length strokes are dropped and reported as false.
func (q *LineQueue) Enqueue(l Line) bool {
	if l.Start == l.End {
		return false
	}
	q.lines = append(q.lines, l)
	return true
}

// Len returns the number of pending strokes.
func (q *LineQueue) Len() int {
	return len(q.lines) - q.head
}

// Drain calls fn for every pending stroke in order and empties the queue.
// It returns the number of strokes drained.
func (q *LineQueue) Drain(fn func(Line)) int {
	n := 0
	for q.head < len(q.lines) {
		l := q.lines[q.head]
		q.head++
		fn(l)
		n++
	}
	q.lines = q.lines[:0]
	q.head = 0
	return n
}

// StrokeVertices triangulates l: a body quad as two triangles (omitted for a
// zero-length line) followed by a triangle fan cap at each end.
func StrokeVertices(l Line) []Vec2 {
	verts := make([]Vec2, 0, 6+2*capSegments*3)

	dx := float64(l.Start.X - l.End.X)
	dy := float64(l.Start.Y - l.End.Y)
	length := math.Hypot(dx, dy)
	half := float64(l.Thickness) * 0.5

	if length > 0 {
		// Normal perpendicular to the stroke, half a thickness long.
		nx := float32(-dy / length * half)
		ny := float32(dx / length * half)
		n := Vec2{X: nx, Y: ny}

		verts = append(verts,
			l.Start.Add(n), l.Start.Sub(n), l.End.Add(n),
			l.Start.Sub(n), l.End.Sub(n), l.End.Add(n),
		)
	}

	for _, c := range [2]Position{l.Start, l.End} {
		for i := 0; i < capSegments; i++ {
			a1 := float64(i) / capSegments * 2 * math.Pi
			a2 := float64(i+1) / capSegments * 2 * math.Pi
			s1, c1 := math.Sincos(a1)
			s2, c2 := math.Sincos(a2)
			verts = append(verts,
				c,
				Vec2{X: c.X + float32(c1*half), Y: c.Y + float32(s1*half)},
				Vec2{X: c.X + float32(c2*half), Y: c.Y + float32(s2*half)},
			)
		}
	}
	return verts
}
