// Package game drives a four-player game: it asks each player's scorer to
// pick among the legal placements, applies the pick, keeps every player's
// frontier current, and decides when the game is over.
package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/equity"
	"github.com/domino14/blockade/move"
	"github.com/domino14/blockade/movegen"
	"github.com/domino14/blockade/shape"
)

var (
	ErrGameFinished = errors.New("game is over")
	ErrNotOnTurn    = errors.New("player is not on turn")
	ErrIllegalMove  = errors.New("illegal placement")
)

type PlayState int

const (
	StatePlaying PlayState = iota
	StateFinished
)

func (s PlayState) String() string {
	if s == StatePlaying {
		return "playing"
	}
	return "finished"
}

// ExhaustionPolicy decides what happens to a player who had no legal
// placement on its last turn.
type ExhaustionPolicy int

const (
	// RetryExhausted searches every player again on each of its turns.
	RetryExhausted ExhaustionPolicy = iota
	// RetireExhausted never searches an exhausted player again; its later
	// turns pass immediately.
	RetireExhausted
)

func (p ExhaustionPolicy) String() string {
	if p == RetireExhausted {
		return "retire"
	}
	return "retry"
}

func ParseExhaustionPolicy(s string) (ExhaustionPolicy, error) {
	switch s {
	case "retry", "":
		return RetryExhausted, nil
	case "retire":
		return RetireExhausted, nil
	}
	return RetryExhausted, fmt.Errorf("unknown exhaustion policy %q", s)
}

// Options are the per-game knobs.
type Options struct {
	Policy ExhaustionPolicy
	// MaxRounds ends the game after this many full rounds; 0 means no
	// limit.
	MaxRounds int
}

// Game is the controller for a single game. It owns the board; nothing
// else should mutate it.
type Game struct {
	uid     string
	catalog *shape.Catalog
	board   *board.GameBoard
	players [board.NumPlayers]*playerState

	// topGen keeps only the best placement; listGen keeps all of them.
	topGen  *movegen.PlacementGenerator
	listGen *movegen.PlacementGenerator

	playing           PlayState
	opts              Options
	turnnum           int
	consecutivePasses int
	history           *History
}

// NewGame creates a game on an empty board, player 0 on turn.
func NewGame(catalog *shape.Catalog, scorers [board.NumPlayers]equity.Scorer, opts Options) *Game {
	g := &Game{
		uid:     uuid.NewString(),
		catalog: catalog,
		board:   board.NewBoard(),
		topGen:  movegen.NewPlacementGenerator(catalog),
		listGen: movegen.NewPlacementGenerator(catalog),
		opts:    opts,
	}
	g.topGen.SetPlayRecorder(movegen.TopPlayOnlyRecorder)
	names := make([]string, board.NumPlayers)
	for i := range g.players {
		g.players[i] = newPlayerState(i, scorers[i])
		names[i] = g.players[i].scorerName()
	}
	g.history = newHistory(g.uid, names, opts)
	log.Debug().Str("uid", g.uid).Strs("scorers", names).
		Str("policy", opts.Policy.String()).Msg("new-game")
	return g
}

// GenerateMoves returns every legal placement for the player on turn,
// rated by that player's scorer, best first. Equal ratings keep generation
// order.
func (g *Game) GenerateMoves() []*move.Move {
	ps := g.players[g.board.Turn()]
	g.listGen.GenAll(g.board, ps.frontier)
	plays := g.listGen.Plays()
	if ps.scorer != nil {
		equity.AssignEquity(plays, g.board, ps.scorer)
	}
	sort.SliceStable(plays, func(i, j int) bool {
		return plays[i].Equity() > plays[j].Equity()
	})
	return plays
}

// BestMove returns the placement the player on turn's scorer likes best,
// or nil if the player has no legal placement.
func (g *Game) BestMove() *move.Move {
	ps := g.players[g.board.Turn()]
	if ps.scorer == nil {
		panic(fmt.Sprintf("game: player %d has no scorer", ps.idx))
	}
	g.topGen.SetScorer(ps.scorer)
	g.topGen.GenAll(g.board, ps.frontier)
	plays := g.topGen.Plays()
	if len(plays) == 0 {
		return nil
	}
	return plays[0]
}

// PlayTurn plays one turn for the player on turn. It returns the placement
// made, or nil if the player had none and passed.
func (g *Game) PlayTurn() (*move.Move, error) {
	if g.playing != StatePlaying {
		return nil, ErrGameFinished
	}
	ps := g.players[g.board.Turn()]
	if ps.status == StatusRetired {
		g.pass(ps)
		return nil, nil
	}
	m := g.BestMove()
	if m == nil {
		log.Debug().Int("player", ps.idx).Int("turn", g.turnnum).Msg("no-legal-move")
		g.pass(ps)
		return nil, nil
	}
	g.place(ps, m.Points(), m.Equity(), func() { g.board.Apply(m.Offset(), m.Shape()) })
	return m, nil
}

// PlayToEnd plays turns until the game is over.
func (g *Game) PlayToEnd() error {
	for g.playing == StatePlaying {
		if _, err := g.PlayTurn(); err != nil {
			return err
		}
	}
	return nil
}

// PlayMove applies a placement chosen outside the game, such as one picked
// from GenerateMoves. It is checked for legality first.
func (g *Game) PlayMove(m *move.Move) error {
	if g.playing != StatePlaying {
		return ErrGameFinished
	}
	if m.Player() != g.board.Turn() {
		return fmt.Errorf("%w: %d (on turn: %d)", ErrNotOnTurn, m.Player(), g.board.Turn())
	}
	if !movegen.IsLegal(g.board, m.Offset(), m.Shape()) {
		return fmt.Errorf("%w: %v", ErrIllegalMove, m.ShortDescription())
	}
	g.place(g.players[m.Player()], m.Points(), m.Equity(), func() { g.board.Apply(m.Offset(), m.Shape()) })
	return nil
}

// IngestPoints applies cells an outside source says player placed. The
// source is trusted: only bounds and overlap are checked, not the
// adjacency rule.
func (g *Game) IngestPoints(player int, pts []shape.Point) error {
	if g.playing != StatePlaying {
		return ErrGameFinished
	}
	if player != g.board.Turn() {
		return fmt.Errorf("%w: %d (on turn: %d)", ErrNotOnTurn, player, g.board.Turn())
	}
	if len(pts) == 0 {
		return g.Pass(player)
	}
	if err := g.board.CanPlace(pts); err != nil {
		return err
	}
	g.place(g.players[player], pts, 0, func() { g.board.ApplyPoints(player, pts) })
	return nil
}

// Pass ends player's turn without a placement.
func (g *Game) Pass(player int) error {
	if g.playing != StatePlaying {
		return ErrGameFinished
	}
	if player != g.board.Turn() {
		return fmt.Errorf("%w: %d (on turn: %d)", ErrNotOnTurn, player, g.board.Turn())
	}
	g.pass(g.players[player])
	return nil
}

func (g *Game) place(ps *playerState, pts []shape.Point, eq float64, apply func()) {
	apply()
	ps.frontier.Update(g.board, pts)
	ps.status = StatusHasLegalMove
	ps.turns++
	g.consecutivePasses = 0
	g.history.addPlacement(g.turnnum, ps.idx, pts, eq)
	g.endTurn()
}

func (g *Game) pass(ps *playerState) {
	if ps.status != StatusRetired {
		ps.status = StatusExhausted
		if g.opts.Policy == RetireExhausted {
			ps.status = StatusRetired
		}
	}
	ps.passes++
	g.consecutivePasses++
	g.board.AdvanceTurn()
	g.history.addPass(g.turnnum, ps.idx)
	g.endTurn()
}

func (g *Game) endTurn() {
	g.turnnum++
	// Four passes in a row means every player was stuck for a full round.
	if g.consecutivePasses >= board.NumPlayers {
		g.finish("all-players-exhausted")
		return
	}
	if g.opts.MaxRounds > 0 && g.turnnum >= g.opts.MaxRounds*board.NumPlayers {
		g.finish("max-rounds")
	}
}

func (g *Game) finish(reason string) {
	g.playing = StateFinished
	g.history.Finished = true
	log.Debug().Str("uid", g.uid).Str("reason", reason).Int("turns", g.turnnum).
		Int("cells", g.board.CellsPlaced()).Msg("game-over")
}

func (g *Game) Board() *board.GameBoard {
	return g.board
}

func (g *Game) Catalog() *shape.Catalog {
	return g.catalog
}

func (g *Game) Uid() string {
	return g.uid
}

func (g *Game) Playing() PlayState {
	return g.playing
}

// Turn is the number of turns taken so far, passes included.
func (g *Game) Turn() int {
	return g.turnnum
}

// Round is the number of complete rounds so far.
func (g *Game) Round() int {
	return g.turnnum / board.NumPlayers
}

func (g *Game) PlayerOnTurn() int {
	return g.board.Turn()
}

func (g *Game) Status(player int) PlayerStatus {
	return g.players[player].status
}

func (g *Game) Frontier(player int) *movegen.Frontier {
	return g.players[player].frontier
}

func (g *Game) ScorerFor(player int) equity.Scorer {
	return g.players[player].scorer
}

func (g *Game) PieceCount(player int) int {
	return g.board.PieceCount(player)
}

func (g *Game) CellCount(player int) int {
	return len(g.board.PlayedPoints(player))
}

func (g *Game) PassesFor(player int) int {
	return g.players[player].passes
}

func (g *Game) Options() Options {
	return g.opts
}
