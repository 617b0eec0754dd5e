package mutate

import (
	"math/rand"

	"github.com/hexwar/balancer/pkg/piece"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// enforceSwapRedundancy applies the post-hoc constraint (§4.9): a side
// holding both the swap-move (Warper) and swap-rotate (Shifter) special
// pieces has every copy of one of them removed, the kind chosen at random,
// since pairing them is considered redundant/dominating.
func enforceSwapRedundancy(s ruleset.Side, rnd *rand.Rand) ruleset.Side {
	warperIdx, shifterIdx := -1, -1
	for i, id := range s.Pieces {
		switch id {
		case piece.Warper.ID:
			warperIdx = i
		case piece.Shifter.ID:
			shifterIdx = i
		}
	}
	if warperIdx < 0 || shifterIdx < 0 {
		return s
	}

	drop := piece.Warper.ID
	if rnd.Intn(2) == 0 {
		drop = piece.Shifter.ID
	}
	for i := len(s.Pieces) - 1; i >= 0; i-- {
		if s.Pieces[i] == drop {
			s = removePieceAt(s, i)
		}
	}
	return s
}
