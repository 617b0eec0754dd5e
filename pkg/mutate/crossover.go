package mutate

import (
	"math/rand"

	"github.com/hexwar/balancer/pkg/ruleset"
)

// Crossover exchanges whole sides between two parents (§4.9): the child's
// white side is taken wholesale from either parent (pieces, king, template,
// positions and facings together), and independently for the black side.
// Whole-side inheritance preserves within-side position coherence, since
// positions are not meaningful across different armies.
func Crossover(a, b ruleset.RuleSet, rnd *rand.Rand) ruleset.RuleSet {
	aClone, bClone := a.Clone(), b.Clone()

	child := ruleset.RuleSet{}
	if rnd.Intn(2) == 0 {
		child.White = aClone.White
	} else {
		child.White = bClone.White
	}
	if rnd.Intn(2) == 0 {
		child.Black = aClone.Black
	} else {
		child.Black = bClone.Black
	}
	return child
}
