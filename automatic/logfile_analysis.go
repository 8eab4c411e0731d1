package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/domino14/blockade/board"
)

// AnalyzeLogFile reads a per-turn CSV log written by StartCompVCompGames
// and reports placements, passes and mean piece size per seat.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return analyzeLog(file)
}

func analyzeLog(in io.Reader) (string, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = 8

	// playerID,gameID,turn,play,size,equity,pieces,cells
	var sizes [board.NumPlayers][]float64
	var passes [board.NumPlayers]int
	games := map[string]struct{}{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "playerID" {
			continue
		}
		player, err := strconv.Atoi(record[0])
		if err != nil {
			return "", err
		}
		if player < 0 || player >= board.NumPlayers {
			return "", fmt.Errorf("bad player id %d", player)
		}
		size, err := strconv.Atoi(record[4])
		if err != nil {
			return "", err
		}
		games[record[1]] = struct{}{}
		if size == 0 {
			passes[player]++
			continue
		}
		sizes[player] = append(sizes[player], float64(size))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", len(games))
	fmt.Fprintf(&sb, "%-8s%12s%12s%12s\n", "Player", "Placements", "Passes", "Mean size")
	for p := 0; p < board.NumPlayers; p++ {
		mean := 0.0
		if len(sizes[p]) > 0 {
			mean = stat.Mean(sizes[p], nil)
		}
		fmt.Fprintf(&sb, "%-8c%12d%12d%12.3f\n", board.PlayerGlyph(p), len(sizes[p]), passes[p], mean)
	}
	return sb.String(), nil
}
