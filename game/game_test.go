package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/equity"
	"github.com/domino14/blockade/move"
	"github.com/domino14/blockade/shape"
)

var catalog = shape.Default()

func seededScorers(t *testing.T, name string, b byte) [board.NumPlayers]equity.Scorer {
	seed := make([]byte, equity.SeedSize)
	seed[5] = b
	var scorers [board.NumPlayers]equity.Scorer
	for i := range scorers {
		s, err := equity.NewScorer(name, catalog, equity.SubSeed(seed, i))
		if err != nil {
			t.Fatal(err)
		}
		scorers[i] = s
	}
	return scorers
}

func TestSmallestFirstGameTerminates(t *testing.T) {
	is := is.New(t)
	g := NewGame(catalog, seededScorers(t, "smallest", 1), Options{})
	for g.Playing() == StatePlaying {
		_, err := g.PlayTurn()
		is.NoErr(err)
		if g.Turn() > 100000 {
			t.Fatal("game does not end")
		}
	}

	total := 0
	for p := 0; p < board.NumPlayers; p++ {
		is.True(g.PieceCount(p) >= 0)
		total += g.CellCount(p)
	}
	is.Equal(total, g.Board().CellsPlaced())

	histCells := 0
	for _, ht := range g.History().Turns {
		histCells += len(ht.Cells)
	}
	is.Equal(histCells, total)

	// The game ends on a full round of passes.
	turns := g.History().Turns
	is.True(len(turns) >= board.NumPlayers)
	for _, ht := range turns[len(turns)-board.NumPlayers:] {
		is.True(ht.Pass)
	}
	for p := 0; p < board.NumPlayers; p++ {
		is.Equal(g.Status(p), StatusExhausted)
	}

	_, err := g.PlayTurn()
	is.True(errors.Is(err, ErrGameFinished))
}

func TestSeededGamesRepeat(t *testing.T) {
	is := is.New(t)
	g1 := NewGame(catalog, seededScorers(t, "random", 4), Options{})
	g2 := NewGame(catalog, seededScorers(t, "random", 4), Options{})
	is.NoErr(g1.PlayToEnd())
	is.NoErr(g2.PlayToEnd())
	is.Equal(g1.Board().Fingerprint(), g2.Board().Fingerprint())
	is.Equal(g1.Turn(), g2.Turn())
	is.True(g1.Uid() != g2.Uid())
}

func TestRetirePolicy(t *testing.T) {
	is := is.New(t)
	g := NewGame(catalog, seededScorers(t, "random", 2), Options{Policy: RetireExhausted})
	is.NoErr(g.PlayToEnd())
	is.Equal(g.Playing(), StateFinished)

	passed := map[int]bool{}
	for _, ht := range g.History().Turns {
		if ht.Pass {
			passed[ht.Player] = true
			continue
		}
		is.True(!passed[ht.Player]) // a retired player never places again
	}
	for p := 0; p < board.NumPlayers; p++ {
		is.Equal(g.Status(p), StatusRetired)
	}
}

func TestMaxRounds(t *testing.T) {
	is := is.New(t)
	g := NewGame(catalog, seededScorers(t, "smallest", 3), Options{MaxRounds: 3})
	is.NoErr(g.PlayToEnd())
	is.Equal(g.Round(), 3)
	is.Equal(g.Turn(), 12)
	is.Equal(len(g.History().Turns), 12)
}

func TestPlayMoveChecks(t *testing.T) {
	is := is.New(t)
	g := NewGame(catalog, seededScorers(t, "smallest", 5), Options{})
	single, _ := catalog.Lookup(shape.Point{X: 0, Y: 0})

	err := g.PlayMove(move.NewPlacement(1, shape.Point{X: 24, Y: 0}, single))
	is.True(errors.Is(err, ErrNotOnTurn))

	is.NoErr(g.PlayMove(move.NewPlacement(0, shape.Point{X: 0, Y: 0}, single)))
	is.Equal(g.PlayerOnTurn(), 1)
	is.Equal(g.Frontier(0).Candidates(g.Board()), []shape.Point{{X: 1, Y: 1}})

	// Edge contact with player 0's cell.
	is.NoErr(g.Pass(1))
	is.NoErr(g.Pass(2))
	is.NoErr(g.Pass(3))
	err = g.PlayMove(move.NewPlacement(0, shape.Point{X: 1, Y: 0}, single))
	is.True(errors.Is(err, ErrIllegalMove))
}

func TestIngestPoints(t *testing.T) {
	is := is.New(t)
	var scorers [board.NumPlayers]equity.Scorer
	scorers[2] = seededScorers(t, "smallest", 6)[2]
	g := NewGame(catalog, scorers, Options{})

	is.NoErr(g.IngestPoints(0, []shape.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}))
	is.NoErr(g.IngestPoints(1, nil)) // a pass
	is.Equal(g.PassesFor(1), 1)
	is.Equal(g.Status(1), StatusExhausted)

	m, err := g.PlayTurn()
	is.NoErr(err)
	is.True(m != nil)
	is.Equal(m.Player(), 2)
	is.True(strings.Contains(m.WireString(), "1 25")) // covers the corner (0,24)

	err = g.IngestPoints(3, []shape.Point{{X: 1, Y: 0}})
	is.True(err != nil) // overlaps
	err = g.IngestPoints(0, []shape.Point{{X: 5, Y: 5}})
	is.True(errors.Is(err, ErrNotOnTurn))

	// a cell listed twice is rejected before anything changes
	err = g.IngestPoints(3, []shape.Point{{X: 24, Y: 24}, {X: 24, Y: 24}})
	is.True(err != nil)
	is.Equal(g.PieceCount(3), 0)
	is.Equal(g.PlayerOnTurn(), 3)
	is.Equal(g.Board().CellsPlaced(), 3)
}

func TestGenerateMovesSorted(t *testing.T) {
	is := is.New(t)
	g := NewGame(catalog, seededScorers(t, "smallest", 7), Options{})
	plays := g.GenerateMoves()
	is.True(len(plays) > 0)
	for i := 1; i < len(plays); i++ {
		is.True(plays[i-1].Equity() >= plays[i].Equity())
	}
	is.Equal(plays[0].Size(), 1)
	is.NoErr(g.PlayMove(plays[0]))
	is.Equal(g.PieceCount(0), 1)
}

func TestHistoryReplay(t *testing.T) {
	is := is.New(t)
	g := NewGame(catalog, seededScorers(t, "reach", 8), Options{Policy: RetireExhausted})
	is.NoErr(g.PlayToEnd())

	data, err := g.MarshalHistory()
	is.NoErr(err)
	is.True(strings.Contains(string(data), "policy: retire"))

	h, err := UnmarshalHistory(data)
	is.NoErr(err)
	is.Equal(h.Uid, g.Uid())
	is.Equal(len(h.Turns), len(g.History().Turns))

	replayed, err := Replay(h, catalog, seededScorers(t, "reach", 8))
	is.NoErr(err)
	is.Equal(replayed.Board().Fingerprint(), g.Board().Fingerprint())
	is.Equal(replayed.Playing(), StateFinished)
	for p := 0; p < board.NumPlayers; p++ {
		is.Equal(replayed.PieceCount(p), g.PieceCount(p))
	}
}

func TestParseExhaustionPolicy(t *testing.T) {
	is := is.New(t)
	p, err := ParseExhaustionPolicy("retire")
	is.NoErr(err)
	is.Equal(p, RetireExhausted)
	p, err = ParseExhaustionPolicy("retry")
	is.NoErr(err)
	is.Equal(p, RetryExhausted)
	_, err = ParseExhaustionPolicy("sometimes")
	is.True(err != nil)
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	g := NewGame(catalog, seededScorers(t, "smallest", 9), Options{})
	g.PlayTurn()
	txt := g.ToDisplayText(false)
	is.True(strings.Contains(txt, "-> B smallest"))
	is.True(strings.Contains(txt, "round 0, playing"))
}

func BenchmarkPlayToEnd(b *testing.B) {
	for i := 0; i < b.N; i++ {
		var scorers [board.NumPlayers]equity.Scorer
		for j := range scorers {
			scorers[j] = equity.NewSmallestFirstScorer(equity.NewRNG(nil))
		}
		if err := NewGame(catalog, scorers, Options{}).PlayToEnd(); err != nil {
			b.Fatal(err)
		}
	}
}
