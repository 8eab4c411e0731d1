// Package move describes a single placement: a catalog shape, the offset it
// is translated by, and who places it.
package move

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/blockade/shape"
)

// Move is a candidate or played placement. Equity is filled in by a scorer.
type Move struct {
	player int
	offset shape.Point
	shape  *shape.Shape
	equity float64
}

// NewPlacement creates a move for player.
func NewPlacement(player int, offset shape.Point, s *shape.Shape) *Move {
	return &Move{player: player, offset: offset, shape: s}
}

func (m *Move) String() string {
	return fmt.Sprintf("<%p player: %d offset: %v shape: %v equity: %.3f>",
		m, m.player, m.offset, m.shape, m.equity)
}

// ShortDescription is a compact human-readable form, e.g. "3@(4,5) [(0,0) (1,0) (1,1)]".
func (m *Move) ShortDescription() string {
	return fmt.Sprintf("%d@%v %v", m.shape.Size(), m.offset, m.shape)
}

func (m *Move) Player() int {
	return m.player
}

func (m *Move) Offset() shape.Point {
	return m.offset
}

func (m *Move) Shape() *shape.Shape {
	return m.shape
}

func (m *Move) Size() int {
	return m.shape.Size()
}

// Points returns the board cells covered, in shape order.
func (m *Move) Points() []shape.Point {
	return m.shape.Translate(m.offset)
}

func (m *Move) Equity() float64 {
	return m.equity
}

func (m *Move) SetEquity(e float64) {
	m.equity = e
}

// Equals compares player, shape and final position; equity is ignored.
func (m *Move) Equals(o *Move) bool {
	return m.player == o.player && m.offset == o.offset && m.shape.Equals(o.shape)
}

// WireString is the line-protocol form: the piece size followed by the
// 1-indexed x y of every cell.
func (m *Move) WireString() string {
	return PointsToWire(m.Points())
}

// PointsToWire formats cells the way WireString does. An empty list is "0".
func PointsToWire(pts []shape.Point) string {
	fields := make([]string, 0, 1+2*len(pts))
	fields = append(fields, strconv.Itoa(len(pts)))
	for _, p := range pts {
		fields = append(fields, strconv.Itoa(p.X+1), strconv.Itoa(p.Y+1))
	}
	return strings.Join(fields, " ")
}
