// Package automatic plays computer-vs-computer games with no human or
// protocol input: single games for the local run mode and large parallel
// batches for comparing scorers.
package automatic

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/config"
	"github.com/domino14/blockade/equity"
	"github.com/domino14/blockade/game"
	"github.com/domino14/blockade/move"
	"github.com/domino14/blockade/shape"
)

// TurnLogHeader is the first line of a per-turn CSV log.
const TurnLogHeader = "playerID,gameID,turn,play,size,equity,pieces,cells\n"

// Result summarizes one finished game.
type Result struct {
	GameID      string
	Seed        string
	Scorers     [board.NumPlayers]string
	Rounds      int
	Turns       int
	Pieces      [board.NumPlayers]int
	Cells       [board.NumPlayers]int
	Fingerprint uint64
}

// TotalPieces is the number of pieces placed by everyone.
func (r *Result) TotalPieces() int {
	t := 0
	for _, p := range r.Pieces {
		t += p
	}
	return t
}

// GameRunner is the master struct for automatic games. A runner plays one
// game at a time and is not safe for concurrent use.
type GameRunner struct {
	game    *game.Game
	catalog *shape.Catalog
	config  *config.Config

	scorerNames [board.NumPlayers]string
	seed        []byte
	opts        game.Options

	logchan  chan string
	gamechan chan string
}

// NewGameRunner creates a runner using the scorers, seed, exhaustion
// policy and round limit from cfg. logchan, if not nil, receives one CSV
// line per turn.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	policy, err := game.ParseExhaustionPolicy(cfg.GetString(config.ConfigExhaustionPolicy))
	if err != nil {
		return nil, err
	}
	r := &GameRunner{
		catalog: shape.Default(),
		config:  cfg,
		logchan: logchan,
		opts: game.Options{
			Policy:    policy,
			MaxRounds: cfg.GetInt(config.ConfigMaxRounds),
		},
	}
	var seed []byte
	if s := cfg.GetString(config.ConfigSeed); s != "" {
		if seed, err = ParseSeed(s); err != nil {
			return nil, err
		}
	}
	if err := r.Init(cfg.GetStringSlice(config.ConfigScorers), seed); err != nil {
		return nil, err
	}
	return r, nil
}

// SetGameChan sets a channel that receives the final board of every game.
func (r *GameRunner) SetGameChan(c chan string) {
	r.gamechan = c
}

// Init sets up a fresh game. Each player's scorer gets its own stream
// derived from seed; a nil seed means nondeterministic play.
func (r *GameRunner) Init(scorerNames []string, seed []byte) error {
	if len(scorerNames) != board.NumPlayers {
		return fmt.Errorf("need %d scorers, got %d", board.NumPlayers, len(scorerNames))
	}
	if seed != nil && len(seed) != equity.SeedSize {
		return fmt.Errorf("seed must be %d bytes, got %d", equity.SeedSize, len(seed))
	}
	var scorers [board.NumPlayers]equity.Scorer
	for i, name := range scorerNames {
		s, err := equity.NewScorer(name, r.catalog, equity.SubSeed(seed, i))
		if err != nil {
			return fmt.Errorf("player %d: %w", i, err)
		}
		scorers[i] = s
		r.scorerNames[i] = name
	}
	r.seed = seed
	r.game = game.NewGame(r.catalog, scorers, r.opts)
	return nil
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayBestTurn plays one turn for whoever is on turn.
func (r *GameRunner) PlayBestTurn() (*move.Move, error) {
	player := r.game.PlayerOnTurn()
	turn := r.game.Turn()
	m, err := r.game.PlayTurn()
	if err != nil {
		return nil, err
	}
	if r.logchan != nil {
		play, size, eq := "(pass)", 0, 0.0
		if m != nil {
			play, size, eq = strings.ReplaceAll(m.ShortDescription(), ",", ";"), m.Size(), m.Equity()
		}
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%.3f,%v,%v\n",
			player,
			r.game.Uid(),
			turn,
			play,
			size,
			eq,
			r.game.PieceCount(player),
			r.game.CellCount(player))
	}
	return m, nil
}

// PlayFullGame plays the current game to the end and summarizes it.
func (r *GameRunner) PlayFullGame() (*Result, error) {
	for r.game.Playing() == game.StatePlaying {
		if _, err := r.PlayBestTurn(); err != nil {
			return nil, err
		}
	}
	if r.gamechan != nil {
		r.gamechan <- r.game.ToDisplayText(false)
	}
	res := r.result()
	log.Debug().Str("gameID", res.GameID).Int("rounds", res.Rounds).
		Ints("pieces", res.Pieces[:]).Msg("game-finished")
	return res, nil
}

func (r *GameRunner) result() *Result {
	res := &Result{
		GameID:      r.game.Uid(),
		Scorers:     r.scorerNames,
		Rounds:      r.game.Round(),
		Turns:       r.game.Turn(),
		Fingerprint: r.game.Board().Fingerprint(),
	}
	if r.seed != nil {
		res.Seed = base64.RawURLEncoding.EncodeToString(r.seed)
	}
	for p := 0; p < board.NumPlayers; p++ {
		res.Pieces[p] = r.game.PieceCount(p)
		res.Cells[p] = r.game.CellCount(p)
	}
	return res
}
