package equity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/blockade/shape"
)

const (
	RandomScorerName        = "random"
	SmallestFirstScorerName = "smallest"
	ReachScorerName         = "reach"
	// ScriptScorerPrefix is followed by the path to a Lua file.
	ScriptScorerPrefix = "script:"
)

var ErrUnknownScorer = errors.New("unknown scorer")

// ScorerNames lists the built-in scorers, for help text and completion.
var ScorerNames = []string{RandomScorerName, SmallestFirstScorerName, ReachScorerName}

// NewScorer builds a scorer by name. seed may be nil for an entropy-seeded
// scorer; otherwise it must be SeedSize bytes.
func NewScorer(name string, catalog *shape.Catalog, seed []byte) (Scorer, error) {
	switch {
	case name == RandomScorerName:
		return NewRandomScorer(NewRNG(seed)), nil
	case name == SmallestFirstScorerName:
		return NewSmallestFirstScorer(NewRNG(seed)), nil
	case name == ReachScorerName:
		return NewReachScorer(catalog), nil
	case strings.HasPrefix(name, ScriptScorerPrefix):
		return NewScriptScorer(strings.TrimPrefix(name, ScriptScorerPrefix))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScorer, name)
}
