// Package shape contains the fixed polyominoes ("pieces") that players place,
// and the catalog of every such shape of up to MaxSize cells.
package shape

import (
	"slices"
	"strings"
)

// MaxSize is the largest number of cells a piece can have.
const MaxSize = 4

// Key is an exact, comparable encoding of a normalized shape. Two shapes are
// equal iff their keys are equal.
type Key struct {
	n   int8
	pts [MaxSize]Point
}

// A Shape is a normalized, ordered set of cells: the smallest X and the
// smallest Y are both 0, there are no duplicates, and the cells are sorted
// by Point.Less. A Shape is never modified after construction.
type Shape struct {
	points []Point
	key    Key
}

// FromPoints normalizes pts into a Shape. It panics if pts is empty or
// holds more than MaxSize distinct cells.
func FromPoints(pts ...Point) *Shape {
	if len(pts) == 0 {
		panic("shape: no points")
	}
	minX, minY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
	}
	origin := Point{minX, minY}
	norm := make([]Point, 0, len(pts))
	for _, p := range pts {
		norm = append(norm, p.Sub(origin))
	}
	slices.SortFunc(norm, Point.Compare)
	norm = slices.Compact(norm)
	if len(norm) > MaxSize {
		panic("shape: too many cells")
	}
	s := &Shape{points: norm}
	s.key.n = int8(len(norm))
	copy(s.key.pts[:], norm)
	return s
}

// Points returns a copy of the shape's cells in order.
func (s *Shape) Points() []Point {
	return slices.Clone(s.points)
}

// At returns the i-th cell.
func (s *Shape) At(i int) Point {
	return s.points[i]
}

func (s *Shape) Size() int {
	return len(s.points)
}

func (s *Shape) Key() Key {
	return s.key
}

func (s *Shape) Equals(o *Shape) bool {
	return s.key == o.key
}

func (s *Shape) Width() int {
	w := 0
	for _, p := range s.points {
		w = max(w, p.X+1)
	}
	return w
}

func (s *Shape) Height() int {
	h := 0
	for _, p := range s.points {
		h = max(h, p.Y+1)
	}
	return h
}

// Translate returns the shape's cells shifted by offset, in shape order.
func (s *Shape) Translate(offset Point) []Point {
	out := make([]Point, len(s.points))
	for i, p := range s.points {
		out[i] = p.Add(offset)
	}
	return out
}

// children returns every shape obtained by adding one edge-adjacent cell.
// Candidates that land on an existing cell normalize back to s and are
// skipped.
func (s *Shape) children() []*Shape {
	if len(s.points) >= MaxSize {
		return nil
	}
	var out []*Shape
	for _, p := range s.points {
		for _, n := range p.Neighbors() {
			c := FromPoints(append(s.Points(), n)...)
			if c.Equals(s) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

func (s *Shape) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range s.points {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// Diagram draws the shape with '#' for filled cells, one row per line.
func (s *Shape) Diagram() string {
	var sb strings.Builder
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if slices.Contains(s.points, Point{x, y}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
