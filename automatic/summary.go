package automatic

import (
	"fmt"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/blockade/board"
)

const scorerSep = "|"

func joinScorers(s [board.NumPlayers]string) string {
	return strings.Join(s[:], scorerSep)
}

func splitScorers(s string) [board.NumPlayers]string {
	var out [board.NumPlayers]string
	copy(out[:], strings.Split(s, scorerSep))
	return out
}

// PlayerSummary holds piece-count statistics for one seat.
type PlayerSummary struct {
	Scorer     string
	MeanPieces float64
	StdPieces  float64
	MeanCells  float64
}

type Summary struct {
	Games      int
	MeanRounds float64
	Players    [board.NumPlayers]PlayerSummary
	totals     []float64
}

// Summarize computes per-seat statistics over a set of results.
func Summarize(results []*Result) *Summary {
	s := &Summary{Games: len(results)}
	if len(results) == 0 {
		return s
	}
	rounds := make([]float64, len(results))
	s.totals = make([]float64, len(results))
	var pieces, cells [board.NumPlayers][]float64
	for i, r := range results {
		rounds[i] = float64(r.Rounds)
		s.totals[i] = float64(r.TotalPieces())
		for p := 0; p < board.NumPlayers; p++ {
			pieces[p] = append(pieces[p], float64(r.Pieces[p]))
			cells[p] = append(cells[p], float64(r.Cells[p]))
		}
	}
	s.MeanRounds = stat.Mean(rounds, nil)
	for p := 0; p < board.NumPlayers; p++ {
		s.Players[p] = PlayerSummary{
			Scorer:     results[0].Scorers[p],
			MeanPieces: stat.Mean(pieces[p], nil),
			MeanCells:  stat.Mean(cells[p], nil),
		}
		if len(results) > 1 {
			s.Players[p].StdPieces = stat.StdDev(pieces[p], nil)
		}
	}
	return s
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	if s.Games == 0 {
		return sb.String()
	}
	fmt.Fprintf(&sb, "Mean rounds: %.2f\n", s.MeanRounds)
	fmt.Fprintf(&sb, "%-8s%-20s%12s%12s%12s\n", "Player", "Scorer", "Pieces", "Stdev", "Cells")
	for p, ps := range s.Players {
		fmt.Fprintf(&sb, "%-8c%-20s%12.2f%12.2f%12.2f\n",
			board.PlayerGlyph(p), ps.Scorer, ps.MeanPieces, ps.StdPieces, ps.MeanCells)
	}
	if s.Games > 1 {
		sb.WriteString("Total pieces placed per game:\n")
		h := histogram.Hist(10, s.totals)
		if err := histogram.Fprint(&sb, h, histogram.Linear(40)); err != nil {
			fmt.Fprintf(&sb, "(histogram: %v)\n", err)
		}
	}
	return sb.String()
}
