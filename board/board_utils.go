package board

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/domino14/blockade/shape"
)

var playerColors = [NumPlayers]string{
	"\033[94m", // blue
	"\033[92m", // green
	"\033[93m", // yellow
	"\033[91m", // red
}

const colorReset = "\033[0m"

// PlayerGlyph is the character used for a player's cells in uncolored
// output.
func PlayerGlyph(player int) byte {
	return byte('A' + player)
}

// ToDisplayText draws the board inside a frame. With color on, every
// occupied cell is a '#' in its owner's color; otherwise it is the owner's
// glyph.
func (g *GameBoard) ToDisplayText(color bool) string {
	var sb strings.Builder
	border := "   +" + strings.Repeat("-", Dim) + "+\n"
	sb.WriteString(border)
	for y := 0; y < Dim; y++ {
		fmt.Fprintf(&sb, "%2d |", y+1)
		for x := 0; x < Dim; x++ {
			owner := g.Owner(shape.Point{X: x, Y: y})
			switch {
			case owner < 0:
				sb.WriteByte(' ')
			case color:
				sb.WriteString(playerColors[owner])
				sb.WriteByte('#')
				sb.WriteString(colorReset)
			default:
				sb.WriteByte(PlayerGlyph(owner))
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

// Fingerprint hashes the occupancy grid and the turn. Two boards with the
// same owners on the same cells and the same player on turn have the same
// fingerprint.
func (g *GameBoard) Fingerprint() uint64 {
	buf := make([]byte, 0, len(g.cells)+8)
	buf = append(buf, g.cells[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(g.turn))
	return xxhash.Sum64(buf)
}
