// Package board holds the absolute state of a game in progress: which cells
// are occupied and by whom, what each player has placed, and whose turn it
// is.
package board

import (
	"fmt"
	"slices"

	"github.com/domino14/blockade/shape"
)

const (
	// Dim is the width and height of the board.
	Dim = 25
	// NumPlayers is the fixed number of seats.
	NumPlayers = 4
)

const empty = 0

// corners are the fixed starting cells, indexed by player.
var corners = [NumPlayers]shape.Point{
	{X: 0, Y: 0},
	{X: Dim - 1, Y: 0},
	{X: 0, Y: Dim - 1},
	{X: Dim - 1, Y: Dim - 1},
}

// Corner returns the cell a player's first piece must cover.
func Corner(player int) shape.Point {
	return corners[player]
}

// A GameBoard is the occupancy grid plus per-player bookkeeping. Cells hold
// 0 when empty and player+1 when occupied.
type GameBoard struct {
	cells [Dim * Dim]uint8

	playedPoints [NumPlayers][]shape.Point
	pieceCount   [NumPlayers]int
	cellsPlaced  int
	turn         int
}

// NewBoard creates an empty board with player 0 on turn.
func NewBoard() *GameBoard {
	b := &GameBoard{}
	for i := range b.playedPoints {
		b.playedPoints[i] = []shape.Point{}
	}
	return b
}

// InBounds returns true if p lies on the board.
func InBounds(p shape.Point) bool {
	return p.X >= 0 && p.X < Dim && p.Y >= 0 && p.Y < Dim
}

func sqIdx(p shape.Point) int {
	return p.Y*Dim + p.X
}

// IsOccupied returns true if any player has a cell at p. Points off the
// board are never occupied.
func (g *GameBoard) IsOccupied(p shape.Point) bool {
	return InBounds(p) && g.cells[sqIdx(p)] != empty
}

// IsOccupiedOrAdjacent returns true if p or any edge neighbor of p is
// occupied. Diagonal contact does not count.
func (g *GameBoard) IsOccupiedOrAdjacent(p shape.Point) bool {
	if g.IsOccupied(p) {
		return true
	}
	for _, n := range p.Neighbors() {
		if g.IsOccupied(n) {
			return true
		}
	}
	return false
}

// Owner returns the player occupying p, or -1.
func (g *GameBoard) Owner(p shape.Point) int {
	if !InBounds(p) {
		return -1
	}
	return int(g.cells[sqIdx(p)]) - 1
}

// Apply places s translated by offset for the player on turn, then passes
// the turn. The placement must already be known to be legal. Cells off the
// board or already occupied mean the caller is broken, so Apply panics
// rather than corrupt the board.
func (g *GameBoard) Apply(offset shape.Point, s *shape.Shape) {
	g.place(g.turn, s.Translate(offset))
}

// ApplyPoints places an arbitrary set of cells for player, who must be on
// turn. It is meant for moves that arrive from outside the engine.
func (g *GameBoard) ApplyPoints(player int, pts []shape.Point) {
	if player != g.turn {
		panic(fmt.Sprintf("board: player %d placed out of turn (turn %d)", player, g.turn))
	}
	g.place(player, pts)
}

func (g *GameBoard) place(player int, pts []shape.Point) {
	for i, p := range pts {
		if !InBounds(p) {
			panic(fmt.Sprintf("board: placement %v out of bounds", p))
		}
		if g.cells[sqIdx(p)] != empty {
			panic(fmt.Sprintf("board: placement %v overlaps player %d", p, g.Owner(p)))
		}
		if slices.Contains(pts[:i], p) {
			panic(fmt.Sprintf("board: placement lists %v twice", p))
		}
	}
	for _, p := range pts {
		g.cells[sqIdx(p)] = uint8(player + 1)
	}
	g.playedPoints[player] = append(g.playedPoints[player], pts...)
	g.pieceCount[player]++
	g.cellsPlaced += len(pts)
	g.AdvanceTurn()
}

// CanPlace reports whether pts could physically go on the board: every cell
// in bounds, empty and listed once. It does not check adjacency.
func (g *GameBoard) CanPlace(pts []shape.Point) error {
	for i, p := range pts {
		if !InBounds(p) {
			return fmt.Errorf("cell %v is off the board", p)
		}
		if g.IsOccupied(p) {
			return fmt.Errorf("cell %v is already occupied", p)
		}
		if slices.Contains(pts[:i], p) {
			return fmt.Errorf("cell %v is listed twice", p)
		}
	}
	return nil
}

// AdvanceTurn passes the turn without placing anything.
func (g *GameBoard) AdvanceTurn() {
	g.turn = (g.turn + 1) % NumPlayers
}

func (g *GameBoard) Turn() int {
	return g.turn
}

// PlayedPoints returns the cells a player has placed, in placement order.
// The slice must not be modified.
func (g *GameBoard) PlayedPoints(player int) []shape.Point {
	return g.playedPoints[player]
}

func (g *GameBoard) PieceCount(player int) int {
	return g.pieceCount[player]
}

// CellsPlaced is the total number of occupied cells.
func (g *GameBoard) CellsPlaced() int {
	return g.cellsPlaced
}
