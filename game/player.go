package game

import (
	"fmt"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/equity"
	"github.com/domino14/blockade/movegen"
)

type PlayerStatus int

const (
	StatusHasLegalMove PlayerStatus = iota
	// StatusExhausted means the player's last turn found no placement.
	StatusExhausted
	// StatusRetired means the player is never searched again.
	StatusRetired
)

func (s PlayerStatus) String() string {
	switch s {
	case StatusExhausted:
		return "exhausted"
	case StatusRetired:
		return "retired"
	}
	return "active"
}

type playerState struct {
	idx      int
	scorer   equity.Scorer
	frontier *movegen.Frontier
	status   PlayerStatus
	turns    int
	passes   int
}

func newPlayerState(idx int, scorer equity.Scorer) *playerState {
	return &playerState{
		idx:      idx,
		scorer:   scorer,
		frontier: movegen.NewFrontier(idx),
	}
}

func (p *playerState) scorerName() string {
	if p.scorer == nil {
		return "external"
	}
	return p.scorer.Name()
}

func (p *playerState) stateString(b *board.GameBoard, myturn bool) string {
	onturn := ""
	if myturn {
		onturn = "-> "
	}
	return fmt.Sprintf("%3v%c %-10v pieces: %3d cells: %3d %v",
		onturn, board.PlayerGlyph(p.idx), p.scorerName(),
		b.PieceCount(p.idx), len(b.PlayedPoints(p.idx)), p.status)
}
