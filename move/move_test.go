package move

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/blockade/shape"
)

var ell = shape.FromPoints(shape.Point{X: 0, Y: 0}, shape.Point{X: 0, Y: 1}, shape.Point{X: 1, Y: 1})

func TestPoints(t *testing.T) {
	is := is.New(t)
	m := NewPlacement(2, shape.Point{X: 3, Y: 20}, ell)
	is.Equal(m.Points(), []shape.Point{{X: 3, Y: 20}, {X: 3, Y: 21}, {X: 4, Y: 21}})
	is.Equal(m.Size(), 3)
	is.Equal(m.Player(), 2)
}

func TestWireString(t *testing.T) {
	is := is.New(t)
	m := NewPlacement(0, shape.Point{X: 0, Y: 0}, ell)
	is.Equal(m.WireString(), "3 1 1 1 2 2 2")
	is.Equal(PointsToWire(nil), "0")
}

func TestEquals(t *testing.T) {
	is := is.New(t)
	m1 := NewPlacement(1, shape.Point{X: 5, Y: 5}, ell)
	m2 := NewPlacement(1, shape.Point{X: 5, Y: 5},
		shape.FromPoints(shape.Point{X: 9, Y: 9}, shape.Point{X: 9, Y: 10}, shape.Point{X: 10, Y: 10}))
	m2.SetEquity(3)
	is.True(m1.Equals(m2))
	m3 := NewPlacement(2, shape.Point{X: 5, Y: 5}, ell)
	is.True(!m1.Equals(m3))
}

func TestShortDescription(t *testing.T) {
	is := is.New(t)
	m := NewPlacement(0, shape.Point{X: 4, Y: 5}, ell)
	is.Equal(m.ShortDescription(), "3@(4,5) [(0,0) (0,1) (1,1)]")
}
