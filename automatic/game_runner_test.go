package automatic

import (
	"strings"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/config"
	"github.com/domino14/blockade/game"
)

func randomConfig(seed string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigScorers, []string{"random", "smallest", "reach", "random"})
	cfg.Set(config.ConfigSeed, seed)
	return cfg
}

func TestPlayFullGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string)
	var lines []string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for l := range logchan {
			lines = append(lines, l)
		}
	}()

	runner, err := NewGameRunner(logchan, randomConfig(""))
	is.NoErr(err)
	res, err := runner.PlayFullGame()
	is.NoErr(err)
	close(logchan)
	wg.Wait()

	is.Equal(runner.Game().Playing(), game.StateFinished)
	is.Equal(len(lines), res.Turns)
	is.True(res.TotalPieces() >= board.NumPlayers)
	is.Equal(res.Seed, "")
	for p := 0; p < board.NumPlayers; p++ {
		is.Equal(res.Pieces[p], runner.Game().PieceCount(p))
	}
	is.Equal(res.Scorers, [board.NumPlayers]string{"random", "smallest", "reach", "random"})
	// the first turn is player A's corner placement
	is.True(strings.HasPrefix(lines[0], "0,"+res.GameID+",0,"))
}

func TestSeededGamesRepeat(t *testing.T) {
	is := is.New(t)
	seed := SeedString(GenerateSeeds(1)[0])

	play := func() *Result {
		runner, err := NewGameRunner(nil, randomConfig(seed))
		is.NoErr(err)
		res, err := runner.PlayFullGame()
		is.NoErr(err)
		return res
	}
	a, b := play(), play()
	is.Equal(a.Fingerprint, b.Fingerprint)
	is.Equal(a.Pieces, b.Pieces)
	is.Equal(a.Turns, b.Turns)
	is.Equal(a.Seed, seed)
	is.True(a.GameID != b.GameID)
}

func TestGameChanGetsFinalBoard(t *testing.T) {
	is := is.New(t)
	gamechan := make(chan string, 1)
	res, err := PlayOneGame(randomConfig(""), gamechan)
	is.NoErr(err)
	final := <-gamechan
	is.True(strings.Contains(final, "round"))
	is.True(res.Rounds > 0)
}

func TestInitRejectsBadInput(t *testing.T) {
	is := is.New(t)
	runner, err := NewGameRunner(nil, config.DefaultConfig())
	is.NoErr(err)
	is.True(runner.Init([]string{"random"}, nil) != nil)
	is.True(runner.Init([]string{"random", "random", "random", "nope"}, nil) != nil)
	is.True(runner.Init([]string{"random", "random", "random", "random"}, []byte{1, 2, 3}) != nil)
}

func TestNewGameRunnerBadSeed(t *testing.T) {
	is := is.New(t)
	_, err := NewGameRunner(nil, randomConfig("not a seed"))
	is.True(err != nil)
}
