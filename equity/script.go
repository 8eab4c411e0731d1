package equity

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/move"
)

const scoreFuncName = "score"

// ScriptScorer delegates to a Lua function named score. It is called with
// one table argument:
//
//	{player=0, size=3, x=4, y=5, cells={{x=4,y=5}, ...}, pieces=2}
//
// where x and y are the offset and pieces is how many pieces the player has
// already placed. It must return a number. A script error rates the
// candidate as low as possible.
//
// A Lua state is not safe for concurrent use; give each game its own
// ScriptScorer.
type ScriptScorer struct {
	L    *lua.LState
	path string
}

// NewScriptScorer loads a script from a file.
func NewScriptScorer(path string) (*ScriptScorer, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading scorer script %s: %w", path, err)
	}
	return newScriptScorer(L, path)
}

// NewScriptScorerFromString loads a script from source text.
func NewScriptScorerFromString(src string) (*ScriptScorer, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading scorer script: %w", err)
	}
	return newScriptScorer(L, "<string>")
}

func newScriptScorer(L *lua.LState, path string) (*ScriptScorer, error) {
	if _, ok := L.GetGlobal(scoreFuncName).(*lua.LFunction); !ok {
		L.Close()
		return nil, fmt.Errorf("scorer script %s does not define %s()", path, scoreFuncName)
	}
	return &ScriptScorer{L: L, path: path}, nil
}

func (s *ScriptScorer) moveTable(m *move.Move, b *board.GameBoard) *lua.LTable {
	t := s.L.NewTable()
	t.RawSetString("player", lua.LNumber(m.Player()))
	t.RawSetString("size", lua.LNumber(m.Size()))
	t.RawSetString("x", lua.LNumber(m.Offset().X))
	t.RawSetString("y", lua.LNumber(m.Offset().Y))
	t.RawSetString("pieces", lua.LNumber(b.PieceCount(m.Player())))
	cells := s.L.NewTable()
	for i, p := range m.Points() {
		c := s.L.NewTable()
		c.RawSetString("x", lua.LNumber(p.X))
		c.RawSetString("y", lua.LNumber(p.Y))
		cells.RawSetInt(i+1, c)
	}
	t.RawSetString("cells", cells)
	return t
}

func (s *ScriptScorer) Score(m *move.Move, b *board.GameBoard) float64 {
	err := s.L.CallByParam(lua.P{
		Fn:      s.L.GetGlobal(scoreFuncName),
		NRet:    1,
		Protect: true,
	}, s.moveTable(m, b))
	if err != nil {
		log.Err(err).Str("script", s.path).Msg("scorer-script-error")
		return -math.MaxFloat64
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		log.Error().Str("script", s.path).Str("type", ret.Type().String()).
			Msg("scorer-script-returned-non-number")
		return -math.MaxFloat64
	}
	return float64(n)
}

func (s *ScriptScorer) Name() string {
	return ScriptScorerPrefix + s.path
}

// Close releases the Lua state.
func (s *ScriptScorer) Close() {
	s.L.Close()
}
