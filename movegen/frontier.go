package movegen

import (
	"github.com/samber/lo"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/shape"
)

// A Frontier tracks the cells where one player's next piece may start:
// every cell diagonal to one of the player's own cells that is not itself
// occupied and not edge-adjacent to anything occupied. It is maintained
// incrementally so each turn only looks at the tracked cells, never the
// whole board.
//
// Only the owner prunes its frontier, after its own move. Cells that another
// player has since blocked may linger until then; move generation rejects
// them anyway.
type Frontier struct {
	player     int
	candidates []shape.Point
	tracked    map[shape.Point]struct{}
}

func NewFrontier(player int) *Frontier {
	return &Frontier{
		player:  player,
		tracked: make(map[shape.Point]struct{}),
	}
}

func (f *Frontier) Player() int {
	return f.player
}

// Candidates returns the anchor cells for the next move. Until the player
// has placed a piece this is just its starting corner. The returned slice
// must not be modified.
func (f *Frontier) Candidates(b *board.GameBoard) []shape.Point {
	if b.PieceCount(f.player) == 0 {
		return []shape.Point{board.Corner(f.player)}
	}
	return f.candidates
}

// Len is the number of tracked cells.
func (f *Frontier) Len() int {
	return len(f.candidates)
}

// Update adds the diagonals of the newly placed cells and then drops every
// tracked cell that is now blocked. b must already include the placement.
func (f *Frontier) Update(b *board.GameBoard, placed []shape.Point) {
	for _, p := range placed {
		for _, d := range p.Diagonals() {
			if _, ok := f.tracked[d]; ok {
				continue
			}
			f.tracked[d] = struct{}{}
			f.candidates = append(f.candidates, d)
		}
	}
	f.Prune(b)
}

// Prune drops tracked cells that are off the board or occupied-or-adjacent
// on b.
func (f *Frontier) Prune(b *board.GameBoard) {
	f.candidates = lo.Filter(f.candidates, func(p shape.Point, _ int) bool {
		if board.InBounds(p) && !b.IsOccupiedOrAdjacent(p) {
			return true
		}
		delete(f.tracked, p)
		return false
	})
}
