package equity

import (
	"lukechampine.com/frand"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/move"
)

// RandomScorer gives every candidate an independent uniform value in [0,1).
type RandomScorer struct {
	rng *frand.RNG
}

func NewRandomScorer(rng *frand.RNG) *RandomScorer {
	return &RandomScorer{rng: rng}
}

func (r *RandomScorer) Score(m *move.Move, b *board.GameBoard) float64 {
	return r.rng.Float64()
}

func (r *RandomScorer) Name() string {
	return RandomScorerName
}

// SmallestFirstScorer prefers small pieces. Within a size the choice is
// random.
type SmallestFirstScorer struct {
	rng *frand.RNG
}

func NewSmallestFirstScorer(rng *frand.RNG) *SmallestFirstScorer {
	return &SmallestFirstScorer{rng: rng}
}

func (s *SmallestFirstScorer) Score(m *move.Move, b *board.GameBoard) float64 {
	return float64(4-m.Size()) + s.rng.Float64()
}

func (s *SmallestFirstScorer) Name() string {
	return SmallestFirstScorerName
}
