package eval_test

import (
	"testing"

	"github.com/hexwar/balancer/pkg/eval"
	"github.com/hexwar/balancer/pkg/game"
	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/piece"
	"github.com/hexwar/balancer/pkg/ruleset"
	"github.com/stretchr/testify/assert"
)

func TestKingValueIsSentinel(t *testing.T) {
	t1 := eval.BuildValueTable(ruleset.TemplateE)
	assert.Equal(t, eval.KingValue, t1["K1"])
	assert.Equal(t, eval.KingValue, t1["K5"])
}

func TestTemplateABoostsDirectionalPieces(t *testing.T) {
	e := eval.BuildValueTable(ruleset.TemplateE)
	a := eval.BuildValueTable(ruleset.TemplateA)
	assert.Greater(t, a["A1"], e["A1"], "forward-only pawn should be worth more when rotate-before-move is allowed")
}

func TestTemplateDPenalizesDirectionalPieces(t *testing.T) {
	e := eval.BuildValueTable(ruleset.TemplateE)
	d := eval.BuildValueTable(ruleset.TemplateD)
	assert.Less(t, d["A1"], e["A1"], "forward-only pawn should be worth less when locked into move-then-rotate-different-piece")
}

func TestOmnidirectionalPieceUnaffectedByTemplate(t *testing.T) {
	a := eval.BuildValueTable(ruleset.TemplateA)
	d := eval.BuildValueTable(ruleset.TemplateD)
	e := eval.BuildValueTable(ruleset.TemplateE)
	assert.Equal(t, e["A2"], a["A2"]) // Guard: all-directions
	assert.Equal(t, e["A2"], d["A2"])
}

func TestReachableCellCountOrdersByRange(t *testing.T) {
	tbl := eval.BuildValueTable(ruleset.TemplateE)
	assert.Less(t, tbl["A1"], tbl["B1"], "Strider (range 2) should outvalue Pawn (range 1) on the same forward-only set")
	assert.Less(t, tbl["B1"], tbl["C1"], "Lancer (range 3) should outvalue Strider (range 2)")
}

func minimalRuleSet() ruleset.RuleSet {
	return ruleset.RuleSet{
		White: ruleset.Side{
			King:      "K1",
			Pieces:    []string{"A1"},
			Positions: []hexboard.Hex{hexboard.WhiteKingPos, {0, 2}},
			Facings:   []hexboard.Direction{hexboard.North, hexboard.North},
			Template:  ruleset.TemplateE,
		},
		Black: ruleset.Side{
			King:      "K1",
			Pieces:    []string{"A1"},
			Positions: []hexboard.Hex{hexboard.BlackKingPos, {0, -2}},
			Facings:   []hexboard.Direction{hexboard.South, hexboard.South},
			Template:  ruleset.TemplateE,
		},
	}
}

func TestEvaluateSymmetricPositionIsZero(t *testing.T) {
	s, err := game.NewState(minimalRuleSet())
	assert.NoError(t, err)

	e := eval.NewEvaluator(minimalRuleSet())
	assert.Equal(t, eval.Score(0), e.Evaluate(s))
}

func TestEvaluateMaterialAdvantageFavorsWhite(t *testing.T) {
	rs := minimalRuleSet()
	s, err := game.NewState(rs)
	assert.NoError(t, err)

	// Give white an extra piece, symmetric otherwise.
	s.Board[hexboard.Hex{Q: 1, R: 2}] = game.Instance{Kind: piece.Queen.ID, Owner: 0, Facing: hexboard.North}

	e := eval.NewEvaluator(rs)
	assert.Greater(t, e.Evaluate(s), eval.Score(0))
	assert.Equal(t, -e.Evaluate(s), e.ForPlayer(s, 1))
}

func TestJitterDeterministicAndBounded(t *testing.T) {
	a := eval.NewJitter(100, 42)
	b := eval.NewJitter(100, 42)
	for i := 0; i < 10; i++ {
		av, bv := a.Next(), b.Next()
		assert.Equal(t, av, bv)
		assert.GreaterOrEqual(t, int(av), -50)
		assert.LessOrEqual(t, int(av), 50)
	}

	zero := eval.NewJitter(0, 1)
	assert.Equal(t, eval.Score(0), zero.Next())
}
