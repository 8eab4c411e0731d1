// Package movegen finds every legal placement for a player. Candidate
// anchors come from the player's Frontier; every catalog shape is tried at
// every anchor with every one of its cells on the anchor.
package movegen

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/equity"
	"github.com/domino14/blockade/move"
	"github.com/domino14/blockade/shape"
)

// MoveGenerator is the interface the game and shell use.
type MoveGenerator interface {
	GenAll(b *board.GameBoard, f *Frontier)
	Plays() []*move.Move
	SetPlayRecorder(pr PlayRecorderFunc)
}

// PlacementGenerator enumerates placements from a shared, read-only catalog.
// It holds per-call scratch state, so one generator must not be used from
// two goroutines at once.
type PlacementGenerator struct {
	catalog *shape.Catalog

	curPlayer   int
	board       *board.GameBoard
	plays       []*move.Move
	numPossible int

	playRecorder PlayRecorderFunc
	scorer       equity.Scorer
	bestEquity   float64
}

func NewPlacementGenerator(catalog *shape.Catalog) *PlacementGenerator {
	return &PlacementGenerator{
		catalog:      catalog,
		playRecorder: AllPlaysRecorder,
	}
}

func (gen *PlacementGenerator) SetPlayRecorder(pr PlayRecorderFunc) {
	gen.playRecorder = pr
}

// SetScorer sets the scorer used by TopPlayOnlyRecorder.
func (gen *PlacementGenerator) SetScorer(s equity.Scorer) {
	gen.scorer = s
}

// GenAll generates every legal placement for the frontier's player against
// the current state of b. Plays come out anchor first, then catalog order,
// then shape-cell order. The same final placement may be produced more
// than once, through different anchors or different cells.
func (gen *PlacementGenerator) GenAll(b *board.GameBoard, f *Frontier) {
	gen.plays = []*move.Move{}
	gen.numPossible = 0
	gen.curPlayer = f.Player()
	gen.board = b

	anchors := f.Candidates(b)
	for _, anchor := range anchors {
		for _, s := range gen.catalog.Shapes() {
			for i := 0; i < s.Size(); i++ {
				offset := anchor.Sub(s.At(i))
				if fits(b, offset, s) {
					gen.numPossible++
					gen.playRecorder(gen, offset, s)
				}
			}
		}
	}
	log.Debug().Int("player", gen.curPlayer).Int("anchors", len(anchors)).
		Int("legal", gen.numPossible).Msg("gen-all")
}

// fits checks bounds and the occupied-or-adjacent rule for every translated
// cell. Cells of the same shape are not checked against each other.
func fits(b *board.GameBoard, offset shape.Point, s *shape.Shape) bool {
	for i := 0; i < s.Size(); i++ {
		p := s.At(i).Add(offset)
		if !board.InBounds(p) || b.IsOccupiedOrAdjacent(p) {
			return false
		}
	}
	return true
}

// Plays returns what the recorder kept from the last GenAll.
func (gen *PlacementGenerator) Plays() []*move.Move {
	return gen.plays
}

// NumPossible is the number of legal placements seen by the last GenAll,
// whatever the recorder kept.
func (gen *PlacementGenerator) NumPossible() int {
	return gen.numPossible
}

// IsLegal reports whether placing s at offset would be legal for the
// current board, independently of any frontier.
func IsLegal(b *board.GameBoard, offset shape.Point, s *shape.Shape) bool {
	return fits(b, offset, s)
}
