package shell

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/blockade/automatic"
	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/config"
	"github.com/domino14/blockade/equity"
	"github.com/domino14/blockade/game"
	"github.com/domino14/blockade/move"
)

func (sc *ShellController) color() bool {
	return sc.l != nil && sc.config.GetBool(config.ConfigColor)
}

func (sc *ShellController) display() string {
	return sc.game.ToDisplayText(sc.color())
}

func (sc *ShellController) scorers(names [board.NumPlayers]string) ([board.NumPlayers]equity.Scorer, error) {
	var scorers [board.NumPlayers]equity.Scorer
	for i, name := range names {
		s, err := equity.NewScorer(name, sc.catalog, equity.SubSeed(sc.seed, i))
		if err != nil {
			return scorers, fmt.Errorf("player %d: %w", i, err)
		}
		scorers[i] = s
	}
	return scorers, nil
}

func (sc *ShellController) options() (game.Options, error) {
	policy, err := game.ParseExhaustionPolicy(sc.config.GetString(config.ConfigExhaustionPolicy))
	if err != nil {
		return game.Options{}, err
	}
	return game.Options{Policy: policy, MaxRounds: sc.config.GetInt(config.ConfigMaxRounds)}, nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	names := sc.scorerNames
	if len(cmd.args) > 0 {
		if len(cmd.args) != board.NumPlayers {
			return nil, fmt.Errorf("need %d scorer names, got %d", board.NumPlayers, len(cmd.args))
		}
		copy(names[:], cmd.args)
	}
	if s, ok := cmd.options["seed"]; ok {
		seed, err := automatic.ParseSeed(s)
		if err != nil {
			return nil, err
		}
		sc.seed = seed
	}
	scorers, err := sc.scorers(names)
	if err != nil {
		return nil, err
	}
	opts, err := sc.options()
	if err != nil {
		return nil, err
	}
	sc.scorerNames = names
	sc.game = game.NewGame(sc.catalog, scorers, opts)
	sc.curPlays = nil
	return msg(sc.display()), nil
}

func (sc *ShellController) setSeed(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		if sc.seed == nil {
			return msg("no seed set"), nil
		}
		return msg(automatic.SeedString(sc.seed)), nil
	}
	if cmd.args[0] == "random" {
		sc.seed = automatic.GenerateSeeds(1)[0]
		return msg(automatic.SeedString(sc.seed)), nil
	}
	seed, err := automatic.ParseSeed(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.seed = seed
	return msg("seed set; it applies to the next `new`"), nil
}

func (sc *ShellController) gid(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.Uid()), nil
}

func moveTableHeader() string {
	return fmt.Sprintf("%3s  %-40s %10s", "#", "Move", "Equity")
}

func MoveTableRow(idx int, m *move.Move) string {
	return fmt.Sprintf("%3d: %-40s %10.3f", idx+1, m.ShortDescription(), m.Equity())
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	numPlays := defaultGenPlays
	if len(cmd.args) > 0 {
		var err error
		if numPlays, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	if sc.game.Playing() != game.StatePlaying {
		return nil, game.ErrGameFinished
	}
	sc.curPlays = sc.game.GenerateMoves()
	if len(sc.curPlays) == 0 {
		return msg("no legal moves"), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d moves for %c\n", len(sc.curPlays), board.PlayerGlyph(sc.game.PlayerOnTurn()))
	sb.WriteString(moveTableHeader())
	for i, m := range sc.curPlays {
		if i >= numPlays {
			break
		}
		sb.WriteByte('\n')
		sb.WriteString(MoveTableRow(i, m))
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <n>, where n is a row from `gen`")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(sc.curPlays) {
		return nil, fmt.Errorf("no generated move %d; run `gen` first", n)
	}
	if err := sc.game.PlayMove(sc.curPlays[n-1]); err != nil {
		return nil, err
	}
	sc.curPlays = nil
	return msg(sc.display()), nil
}

func (sc *ShellController) turn(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	player := sc.game.PlayerOnTurn()
	m, err := sc.game.PlayTurn()
	if err != nil {
		return nil, err
	}
	sc.curPlays = nil
	played := "passed"
	if m != nil {
		played = "played " + m.ShortDescription()
	}
	return msg(fmt.Sprintf("%c %s\n%s", board.PlayerGlyph(player), played, sc.display())), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	err := sc.game.PlayToEnd()
	sc.curPlays = nil
	if err != nil {
		return nil, err
	}
	return msg(sc.display()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.display()), nil
}

func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: export <file>")
	}
	data, err := sc.game.MarshalHistory()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(cmd.args[0], data, 0o644); err != nil {
		return nil, err
	}
	return msg("exported to " + cmd.args[0]), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file>")
	}
	data, err := os.ReadFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	h, err := game.UnmarshalHistory(data)
	if err != nil {
		return nil, err
	}
	// Recorded scorers that cannot be rebuilt fall back to the configured ones.
	names := sc.scorerNames
	for i, n := range h.Scorers {
		if i >= board.NumPlayers {
			break
		}
		if lo.Contains(equity.ScorerNames, n) || strings.HasPrefix(n, equity.ScriptScorerPrefix) {
			names[i] = n
		}
	}
	scorers, err := sc.scorers(names)
	if err != nil {
		return nil, err
	}
	g, err := game.Replay(h, sc.catalog, scorers)
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.scorerNames = names
	sc.curPlays = nil
	return msg(sc.display()), nil
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: analyze <logfile>")
	}
	stats, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(stats, "\n")), nil
}

func (sc *ShellController) seeds(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: seeds <n> <file>")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, errors.New("need at least one seed")
	}
	if err := automatic.SaveSeeds(automatic.GenerateSeeds(n), cmd.args[1]); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("wrote %d seeds to %s", n, cmd.args[1])), nil
}

func (sc *ShellController) results(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 1 || len(cmd.args) > 2 {
		return nil, errors.New("usage: results <db> [gameID]")
	}
	store, err := automatic.OpenResultStore(cmd.args[0])
	if err != nil {
		return nil, err
	}
	defer store.Close()
	ctx := context.Background()
	if len(cmd.args) == 1 {
		n, err := store.Count(ctx)
		if err != nil {
			return nil, err
		}
		return msg(fmt.Sprintf("%d games stored", n)), nil
	}
	r, err := store.Load(ctx, cmd.args[1])
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no game %s in %s", cmd.args[1], cmd.args[0])
	}
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "game %s, %d rounds, %d turns, seed %q", r.GameID, r.Rounds, r.Turns, r.Seed)
	for p := 0; p < board.NumPlayers; p++ {
		fmt.Fprintf(&sb, "\n%c %-12s pieces: %3d cells: %3d",
			board.PlayerGlyph(p), r.Scorers[p], r.Pieces[p], r.Cells[p])
	}
	return msg(sb.String()), nil
}
