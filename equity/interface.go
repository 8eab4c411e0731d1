// Package equity rates candidate placements. The game picks the placement
// with the highest equity; a scorer is the whole of a player's strategy.
package equity

import (
	"github.com/samber/lo"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/move"
)

// Scorer rates a single candidate placement. The board is the state before
// the placement and must not be modified.
type Scorer interface {
	Score(m *move.Move, b *board.GameBoard) float64
	Name() string
}

// AssignEquity scores every play.
func AssignEquity(plays []*move.Move, b *board.GameBoard, s Scorer) {
	for _, m := range plays {
		m.SetEquity(s.Score(m, b))
	}
}

// Best scores every play and returns the first one with the highest equity,
// or nil if there are no plays.
func Best(plays []*move.Move, b *board.GameBoard, s Scorer) *move.Move {
	if len(plays) == 0 {
		return nil
	}
	AssignEquity(plays, b, s)
	// MaxBy only replaces its pick on a strictly greater value, so ties go
	// to the earliest play.
	return lo.MaxBy(plays, func(a, cur *move.Move) bool {
		return a.Equity() > cur.Equity()
	})
}
