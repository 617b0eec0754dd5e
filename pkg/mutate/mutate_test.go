package mutate_test

import (
	"math/rand"
	"testing"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/mutate"
	"github.com/hexwar/balancer/pkg/piece"
	"github.com/hexwar/balancer/pkg/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eightPieceSide builds a side at the floor (8 pieces) spanning several
// value tiers, using the real piece zone geometry so tests exercise actual
// placement constraints rather than hand-picked hexes.
func eightPieceSide(owner int, king string, kinds []string) ruleset.Side {
	zone := hexboard.PieceZone(owner)
	if len(kinds) > len(zone) {
		panic("eightPieceSide: zone too small for requested piece count")
	}

	positions := []hexboard.Hex{hexboard.KingPos(owner)}
	facings := []hexboard.Direction{hexboard.DefaultFacing(owner)}
	for i := range kinds {
		positions = append(positions, zone[i])
		facings = append(facings, hexboard.DefaultFacing(owner))
	}
	return ruleset.Side{
		King:      king,
		Pieces:    kinds,
		Positions: positions,
		Facings:   facings,
		Template:  ruleset.TemplateE,
	}
}

func floorRuleSet() ruleset.RuleSet {
	kinds := []string{"A1", "A2", "A3", "B1", "B2", "C1", "D1", "D5"}
	return ruleset.RuleSet{
		White: eightPieceSide(0, "K1", append([]string(nil), kinds...)),
		Black: eightPieceSide(1, "K1", append([]string(nil), kinds...)),
	}
}

func TestTierOfOrdersPiecesByMobility(t *testing.T) {
	assert.Less(t, mutate.TierOf("A1"), mutate.TierOf("D5"), "pawn must rank below queen")
	assert.GreaterOrEqual(t, mutate.TierOf("D5"), mutate.NumTiers-1, "queen should be the top tier")
}

func TestRandomMutateProducesAValidRuleset(t *testing.T) {
	rs := floorRuleSet()
	rnd := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		rs = mutate.RandomMutate(rs, mutate.PinNone, rnd)
		require.NoError(t, rs.Validate(), "every random mutation must leave a valid ruleset")
	}
}

func TestRandomMutateNeverDropsBelowFloor(t *testing.T) {
	rs := floorRuleSet()
	rnd := rand.New(rand.NewSource(2))

	for i := 0; i < 100; i++ {
		rs = mutate.RandomMutate(rs, mutate.PinNone, rnd)
		assert.GreaterOrEqual(t, len(rs.White.Pieces), mutate.MinPiecesPerSide)
		assert.GreaterOrEqual(t, len(rs.Black.Pieces), mutate.MinPiecesPerSide)
	}
}

func TestRandomMutateRespectsWhitePin(t *testing.T) {
	rs := floorRuleSet()
	rnd := rand.New(rand.NewSource(3))
	original := rs.White

	for i := 0; i < 50; i++ {
		rs = mutate.RandomMutate(rs, mutate.PinWhite, rnd)
		assert.Equal(t, original, rs.White, "white must stay byte-identical under PinWhite")
	}
}

func TestSmartMutateBuffsLosingSide(t *testing.T) {
	rs := floorRuleSet()
	rnd := rand.New(rand.NewSource(4))

	// Severe imbalance, white losing badly: expect white's piece count to
	// grow (add-high-tier-piece) or an existing piece to be upgraded.
	before := len(rs.White.Pieces)
	next := mutate.SmartMutate(rs, 0.1, mutate.PinNone, rnd)
	require.NoError(t, next.Validate())

	grew := len(next.White.Pieces) > before
	upgraded := false
	for i := range rs.White.Pieces {
		if i < len(next.White.Pieces) && next.White.Pieces[i] != rs.White.Pieces[i] {
			upgraded = true
		}
	}
	assert.True(t, grew || upgraded || len(next.Black.Pieces) != len(rs.Black.Pieces),
		"a severe imbalance must change the losing or winning side's composition")
}

func TestSmartMutateRespectsBlackPin(t *testing.T) {
	rs := floorRuleSet()
	rnd := rand.New(rand.NewSource(5))
	original := rs.Black

	for i := 0; i < 30; i++ {
		rs = mutate.SmartMutate(rs, 0.9, mutate.PinBlack, rnd)
		assert.Equal(t, original, rs.Black, "black must stay byte-identical under PinBlack")
		require.NoError(t, rs.Validate())
	}
}

func TestCrossoverInheritsWholeSidesCoherently(t *testing.T) {
	a := floorRuleSet()
	b := floorRuleSet()
	b.White.Pieces = []string{"A1", "A1", "A1", "A1", "A1", "A1", "A1", "A1"}

	rnd := rand.New(rand.NewSource(6))
	for i := 0; i < 20; i++ {
		child := mutate.Crossover(a, b, rnd)
		require.NoError(t, child.Validate())
		assert.True(t, sideEquals(child.White, a.White) || sideEquals(child.White, b.White))
		assert.True(t, sideEquals(child.Black, a.Black) || sideEquals(child.Black, b.Black))
	}
}

func sideEquals(x, y ruleset.Side) bool {
	if x.King != y.King || len(x.Pieces) != len(y.Pieces) {
		return false
	}
	for i := range x.Pieces {
		if x.Pieces[i] != y.Pieces[i] {
			return false
		}
	}
	return true
}

func TestEnforceSwapRedundancyRemovesOneOfThePair(t *testing.T) {
	rs := floorRuleSet()
	rs.White.Pieces = []string{"A1", "A2", "A3", "B1", "B2", "C1", piece.Warper.ID, piece.Shifter.ID}

	rnd := rand.New(rand.NewSource(7))
	// PinBlack makes white the only mutable side; RandomMutate always
	// re-applies enforceSwapRedundancy to the touched side afterward, so
	// this is guaranteed to strip one of the paired special pieces.
	next := mutate.RandomMutate(rs, mutate.PinBlack, rnd)
	hasWarper, hasShifter := false, false
	for _, id := range next.White.Pieces {
		if id == piece.Warper.ID {
			hasWarper = true
		}
		if id == piece.Shifter.ID {
			hasShifter = true
		}
	}
	assert.False(t, hasWarper && hasShifter, "a side must never keep both swap-move and swap-rotate pieces")
}
