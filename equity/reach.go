package equity

import (
	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/move"
	"github.com/domino14/blockade/shape"
)

// elongated are the long and stair-step shapes the reach scorer plays:
// straight threes and fours both ways, and the four S/Z tetrominoes.
var elongated = [][]shape.Point{
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
	{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}},
	{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 2}},
}

// ReachScorer pushes a player away from where it started. Each player's
// first placed cell becomes its anchor, fixed from then on. Elongated
// shapes score 1 plus the farthest Euclidean distance from the anchor to
// any of their cells; every other shape scores 0. Before a player has an
// anchor, elongated shapes score 1.
type ReachScorer struct {
	catalog   *shape.Catalog
	elongated map[int]bool
	anchors   [board.NumPlayers]*shape.Point
}

func NewReachScorer(catalog *shape.Catalog) *ReachScorer {
	r := &ReachScorer{catalog: catalog, elongated: make(map[int]bool)}
	for _, pts := range elongated {
		s, ok := catalog.Lookup(pts...)
		if !ok {
			panic("reach scorer: shape missing from catalog")
		}
		idx, _ := catalog.Index(s)
		r.elongated[idx] = true
	}
	return r
}

// Anchor returns the player's recorded anchor, if any.
func (r *ReachScorer) Anchor(player int) (shape.Point, bool) {
	if r.anchors[player] == nil {
		return shape.Point{}, false
	}
	return *r.anchors[player], true
}

// IsElongated reports whether s is one of the shapes this scorer plays.
func (r *ReachScorer) IsElongated(s *shape.Shape) bool {
	idx, ok := r.catalog.Index(s)
	return ok && r.elongated[idx]
}

func (r *ReachScorer) Score(m *move.Move, b *board.GameBoard) float64 {
	player := m.Player()
	if r.anchors[player] == nil {
		if played := b.PlayedPoints(player); len(played) > 0 {
			first := played[0]
			r.anchors[player] = &first
		}
	}
	if !r.IsElongated(m.Shape()) {
		return 0
	}
	if r.anchors[player] == nil {
		return 1
	}
	anchor := *r.anchors[player]
	farthest := 0.0
	for _, p := range m.Points() {
		farthest = max(farthest, anchor.Euclidean(p))
	}
	return 1 + farthest
}

func (r *ReachScorer) Name() string {
	return ReachScorerName
}
