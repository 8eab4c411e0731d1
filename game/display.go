package game

import (
	"fmt"
	"strings"
)

// ToDisplayText draws the board with a status line per player under it.
func (g *Game) ToDisplayText(color bool) string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText(color))
	for i, ps := range g.players {
		sb.WriteString(ps.stateString(g.board, g.playing == StatePlaying && g.board.Turn() == i))
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "round %d, %v\n", g.Round(), g.playing)
	return sb.String()
}
