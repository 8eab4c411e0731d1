package shape

import (
	"fmt"
	"math"
)

// A Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X int
	Y int
}

// orthogonal and diagonal unit steps. The orthogonal order is the one the
// catalog grows shapes in.
var (
	orthogonal = [4]Point{{1, 0}, {0, 1}, {0, -1}, {-1, 0}}
	diagonal   = [4]Point{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
)

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Less is the total order used everywhere points are sorted: by X, then Y.
func (p Point) Less(o Point) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

// Compare returns -1, 0 or 1 following Less.
func (p Point) Compare(o Point) int {
	switch {
	case p.Less(o):
		return -1
	case o.Less(p):
		return 1
	}
	return 0
}

func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func (p Point) Euclidean(o Point) float64 {
	return math.Hypot(float64(p.X-o.X), float64(p.Y-o.Y))
}

// Neighbors returns the four edge-adjacent points.
func (p Point) Neighbors() [4]Point {
	var n [4]Point
	for i, d := range orthogonal {
		n[i] = p.Add(d)
	}
	return n
}

// Diagonals returns the four corner-adjacent points.
func (p Point) Diagonals() [4]Point {
	var n [4]Point
	for i, d := range diagonal {
		n[i] = p.Add(d)
	}
	return n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
