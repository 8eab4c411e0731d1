package movegen

import (
	"github.com/domino14/blockade/move"
	"github.com/domino14/blockade/shape"
)

// PlayRecorderFunc receives every legal placement found by GenAll.
type PlayRecorderFunc func(gen *PlacementGenerator, offset shape.Point, s *shape.Shape)

func NullPlayRecorder(gen *PlacementGenerator, offset shape.Point, s *shape.Shape) {}

// AllPlaysRecorder keeps every placement, unscored.
func AllPlaysRecorder(gen *PlacementGenerator, offset shape.Point, s *shape.Shape) {
	gen.plays = append(gen.plays, move.NewPlacement(gen.curPlayer, offset, s))
}

// TopPlayOnlyRecorder scores each placement as it is found and keeps only
// the first one with the highest equity. The generator must have a scorer.
func TopPlayOnlyRecorder(gen *PlacementGenerator, offset shape.Point, s *shape.Shape) {
	m := move.NewPlacement(gen.curPlayer, offset, s)
	eq := gen.scorer.Score(m, gen.board)
	m.SetEquity(eq)
	if len(gen.plays) == 0 {
		gen.plays = append(gen.plays, m)
		gen.bestEquity = eq
		return
	}
	if eq > gen.bestEquity {
		gen.plays[0] = m
		gen.bestEquity = eq
	}
}
