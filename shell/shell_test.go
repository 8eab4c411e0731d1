package shell

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/blockade/automatic"
	"github.com/domino14/blockade/config"
	"github.com/domino14/blockade/game"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"export /path/to/game.yaml",
			&shellcmd{"export", []string{"/path/to/game.yaml"}, map[string]string{}},
			nil},
		{"new random smallest reach random -seed abc",
			&shellcmd{"new",
				[]string{"random", "smallest", "reach", "random"},
				map[string]string{"seed": "abc"}},
			nil,
		},
		{`load "my games/one.yaml"`,
			&shellcmd{"load", []string{"my games/one.yaml"}, map[string]string{}},
			nil},
		{"gen -3", &shellcmd{"gen", []string{"-3"}, map[string]string{}}, nil},
		{"new random random random random -seed",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestShell() *ShellController {
	return newController(config.DefaultConfig(), os.Stdout)
}

func TestCommandsNeedGame(t *testing.T) {
	sc := newTestShell()
	for _, line := range []string{"gen", "play 1", "turn", "autoplay", "show", "gid", "export x.yaml"} {
		_, err := sc.Execute(line)
		assert.ErrorIs(t, err, errNoGame, line)
	}
	_, err := sc.Execute("frobnicate")
	assert.Error(t, err)
	_, err = sc.Execute("exit")
	assert.ErrorIs(t, err, errExit)
}

func TestGenAndPlay(t *testing.T) {
	is := is.New(t)
	sc := newTestShell()
	seed := automatic.SeedString(automatic.GenerateSeeds(1)[0])

	resp, err := sc.Execute("new smallest random reach random -seed " + seed)
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "round 0"))

	resp, err = sc.Execute("gen 5")
	is.NoErr(err)
	lines := strings.Split(resp.message, "\n")
	// count line, table header, five rows
	is.Equal(len(lines), 7)
	is.True(strings.HasPrefix(lines[0], "21 moves for A"))
	// smallest-first puts the single cell on top
	is.True(strings.Contains(lines[2], "1@(0,0)"))

	_, err = sc.Execute("play 0")
	is.True(err != nil)
	_, err = sc.Execute("play 1")
	is.NoErr(err)
	is.Equal(sc.game.PieceCount(0), 1)
	is.Equal(sc.game.CellCount(0), 1)

	// the listing is consumed by play
	_, err = sc.Execute("play 1")
	is.True(err != nil)

	resp, err = sc.Execute("turn")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "B played"))

	resp, err = sc.Execute("autoplay")
	is.NoErr(err)
	is.Equal(sc.game.Playing(), game.StateFinished)
	is.True(strings.Contains(resp.message, "finished"))

	_, err = sc.Execute("gen")
	is.Equal(err, game.ErrGameFinished)
}

func TestExportLoad(t *testing.T) {
	is := is.New(t)
	sc := newTestShell()
	path := filepath.Join(t.TempDir(), "game.yaml")

	_, err := sc.Execute("new random random smallest reach")
	is.NoErr(err)
	for i := 0; i < 12; i++ {
		_, err = sc.Execute("turn")
		is.NoErr(err)
	}
	_, err = sc.Execute("export " + path)
	is.NoErr(err)
	orig := sc.game

	other := newTestShell()
	_, err = other.Execute("load " + path)
	is.NoErr(err)
	is.Equal(other.game.Board().Fingerprint(), orig.Board().Fingerprint())
	is.Equal(other.game.Turn(), 12)
	is.Equal(other.scorerNames, [4]string{"random", "random", "smallest", "reach"})

	// the loaded game plays on
	_, err = other.Execute("turn")
	is.NoErr(err)
	is.Equal(other.game.Turn(), 13)
}

func TestSeed(t *testing.T) {
	is := is.New(t)
	sc := newTestShell()
	resp, err := sc.Execute("seed")
	is.NoErr(err)
	is.Equal(resp.message, "no seed set")

	resp, err = sc.Execute("seed random")
	is.NoErr(err)
	seed := resp.message

	resp, err = sc.Execute("seed")
	is.NoErr(err)
	is.Equal(resp.message, seed)

	_, err = sc.Execute("seed tooshort")
	is.True(err != nil)

	// same seed, same game
	play := func() uint64 {
		_, err := sc.Execute("new random random random random")
		is.NoErr(err)
		_, err = sc.Execute("autoplay")
		is.NoErr(err)
		return sc.game.Board().Fingerprint()
	}
	is.Equal(play(), play())
}

func TestScript(t *testing.T) {
	is := is.New(t)
	sc := newTestShell()
	path := filepath.Join(t.TempDir(), "s.lua")
	src := `
blockade_new("smallest smallest smallest smallest")
for i = 1, 8 do
  blockade_turn()
end
out = blockade_gen("3")
`
	is.NoErr(os.WriteFile(path, []byte(src), 0o644))
	resp, err := sc.Execute("script " + path)
	is.NoErr(err)
	is.Equal(resp.message, "ran "+path)
	is.Equal(sc.game.Turn(), 8)
	is.True(len(sc.curPlays) > 0)

	_, err = sc.Execute("script " + filepath.Join(t.TempDir(), "missing.lua"))
	is.True(err != nil)
}

func TestBatchTools(t *testing.T) {
	is := is.New(t)
	sc := newTestShell()
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seeds.txt")
	logPath := filepath.Join(dir, "turns.csv")
	dbPath := filepath.Join(dir, "results.db")

	resp, err := sc.Execute("seeds 3 " + seedPath)
	is.NoErr(err)
	is.Equal(resp.message, "wrote 3 seeds to "+seedPath)
	seeds, err := automatic.LoadSeeds(seedPath)
	is.NoErr(err)
	is.Equal(len(seeds), 3)
	_, err = sc.Execute("seeds 0 " + seedPath)
	is.True(err != nil)

	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigResultsDB, dbPath)
	results, err := automatic.StartCompVCompGames(context.Background(), cfg, 3, 2, seeds, logPath)
	is.NoErr(err)
	is.Equal(len(results), 3)

	resp, err = sc.Execute("analyze " + logPath)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Games played: 3"))

	resp, err = sc.Execute("results " + dbPath)
	is.NoErr(err)
	is.Equal(resp.message, "3 games stored")

	resp, err = sc.Execute("results " + dbPath + " " + results[1].GameID)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "game "+results[1].GameID))
	is.True(strings.Contains(resp.message, automatic.SeedString(seeds[1])))

	_, err = sc.Execute("results " + dbPath + " no-such-game")
	is.True(err != nil)
	_, err = sc.Execute("analyze " + filepath.Join(dir, "missing.csv"))
	is.True(err != nil)
}

func TestHelp(t *testing.T) {
	sc := newTestShell()
	resp, err := sc.Execute("help")
	assert.NoError(t, err)
	assert.Contains(t, resp.message, "autoplay")
	resp, err = sc.Execute("help gen")
	assert.NoError(t, err)
	assert.Contains(t, resp.message, "gen [n]")
	resp, err = sc.Execute("help nothing")
	assert.NoError(t, err)
	assert.Equal(t, "There is no help text for the topic nothing", resp.message)
}

func TestCompleter(t *testing.T) {
	c := NewShellCompleter(newTestShell())

	matches, n := c.Do([]rune("au"), 2)
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]rune{[]rune("toplay")}, matches)

	line := []rune("new ra")
	matches, n = c.Do(line, len(line))
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]rune{[]rune("ndom")}, matches)

	line = []rune("new -")
	matches, _ = c.Do(line, len(line))
	assert.Equal(t, [][]rune{[]rune("seed")}, matches)

	line = []rune("show ")
	matches, _ = c.Do(line, len(line))
	assert.Empty(t, matches)
}
