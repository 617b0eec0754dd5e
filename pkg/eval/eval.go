package eval

import (
	"github.com/hexwar/balancer/pkg/game"
	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// Evaluator is a static position scorer built from a ruleset's two
// (possibly distinct, since templates may differ per side) template-aware
// value tables (§4.4).
type Evaluator struct {
	values       [2]ValueTable
	centerWeight [2]float64
}

// NewEvaluator builds the evaluator for a ruleset, deriving each side's value
// table from that side's own template.
func NewEvaluator(rs ruleset.RuleSet) *Evaluator {
	return &Evaluator{
		values:       [2]ValueTable{BuildValueTable(rs.White.Template), BuildValueTable(rs.Black.Template)},
		centerWeight: [2]float64{1, 1},
	}
}

// Evaluate scores state from white's perspective: positive favors white.
func (e *Evaluator) Evaluate(s *game.State) Score {
	var material Score
	for _, inst := range s.Board {
		v := e.values[inst.Owner][inst.Kind]
		material += Unit(inst.Owner) * v
	}

	whiteCount := len(s.Board.PiecesOf(0))
	blackCount := len(s.Board.PiecesOf(1))
	whiteCenter := e.centerWeight[0] * float64(whiteCount) * float64(hexboard.Radius-hexboard.DistanceToCenter(s.KingPos[0]))
	blackCenter := e.centerWeight[1] * float64(blackCount) * float64(hexboard.Radius-hexboard.DistanceToCenter(s.KingPos[1]))

	return material + Score(whiteCenter-blackCenter)
}

// ForPlayer returns state's evaluation from player's perspective, the
// convention the negamax search in pkg/search requires: positive is always
// good for the player to move.
func (e *Evaluator) ForPlayer(s *game.State, player int) Score {
	if player == 1 {
		return -e.Evaluate(s)
	}
	return e.Evaluate(s)
}
