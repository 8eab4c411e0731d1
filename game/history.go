package game

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/equity"
	"github.com/domino14/blockade/shape"
)

// Cell is a board cell in a saved game.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// HistoryTurn is one turn of a saved game: a placement or a pass.
type HistoryTurn struct {
	Turn   int     `yaml:"turn"`
	Player int     `yaml:"player"`
	Pass   bool    `yaml:"pass,omitempty"`
	Cells  []Cell  `yaml:"cells,omitempty,flow"`
	Equity float64 `yaml:"equity,omitempty"`
}

// History is a complete record of a game, enough to replay it.
type History struct {
	Uid       string        `yaml:"uid"`
	Scorers   []string      `yaml:"scorers"`
	Policy    string        `yaml:"policy"`
	MaxRounds int           `yaml:"max_rounds,omitempty"`
	Finished  bool          `yaml:"finished"`
	Turns     []HistoryTurn `yaml:"turns"`
}

func newHistory(uid string, scorers []string, opts Options) *History {
	return &History{
		Uid:       uid,
		Scorers:   scorers,
		Policy:    opts.Policy.String(),
		MaxRounds: opts.MaxRounds,
		Turns:     []HistoryTurn{},
	}
}

func (h *History) addPlacement(turn, player int, pts []shape.Point, eq float64) {
	cells := make([]Cell, len(pts))
	for i, p := range pts {
		cells[i] = Cell{p.X, p.Y}
	}
	h.Turns = append(h.Turns, HistoryTurn{Turn: turn, Player: player, Cells: cells, Equity: eq})
}

func (h *History) addPass(turn, player int) {
	h.Turns = append(h.Turns, HistoryTurn{Turn: turn, Player: player, Pass: true})
}

func (g *Game) History() *History {
	return g.history
}

// MarshalHistory serializes the game's history to YAML.
func (g *Game) MarshalHistory() ([]byte, error) {
	return yaml.Marshal(g.history)
}

// UnmarshalHistory parses a YAML game record.
func UnmarshalHistory(data []byte) (*History, error) {
	h := &History{}
	if err := yaml.Unmarshal(data, h); err != nil {
		return nil, fmt.Errorf("parsing game history: %w", err)
	}
	return h, nil
}

// Replay builds a game by applying every recorded turn. Scorers are
// attached for whoever continues the game; they do not influence the
// replayed turns.
func Replay(h *History, catalog *shape.Catalog, scorers [board.NumPlayers]equity.Scorer) (*Game, error) {
	policy, err := ParseExhaustionPolicy(h.Policy)
	if err != nil {
		return nil, err
	}
	g := NewGame(catalog, scorers, Options{Policy: policy, MaxRounds: h.MaxRounds})
	for _, t := range h.Turns {
		if t.Pass {
			err = g.Pass(t.Player)
		} else {
			pts := make([]shape.Point, len(t.Cells))
			for i, c := range t.Cells {
				pts[i] = shape.Point{X: c.X, Y: c.Y}
			}
			err = g.IngestPoints(t.Player, pts)
		}
		if err != nil {
			return nil, fmt.Errorf("replaying turn %d: %w", t.Turn, err)
		}
	}
	return g, nil
}
