package mutate

import (
	"math/rand"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/piece"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// operator is one random-mutation menu entry: it returns the mutated side
// and ok=false if it refuses to act in the side's current state (§4.9).
type operator func(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool)

type menuEntry struct {
	name   string
	weight int
	apply  operator
}

// randomMenu is the weighted operator menu (§4.9). add-copy-of-existing and
// swap-for-existing-kind carry a themed-army bias, weight 2.
var randomMenu = []menuEntry{
	{"add-random-piece", 1, addRandomPiece},
	{"add-copy-of-existing-piece", 2, addCopyOfExistingPiece},
	{"remove-piece", 1, removePiece},
	{"swap-piece-for-random", 1, swapPieceForRandom},
	{"swap-piece-for-existing-kind", 2, swapPieceForExistingKind},
	{"change-king", 1, changeKing},
	{"shuffle-positions-within-side", 1, shufflePositionsWithinSide},
	{"swap-two-piece-positions", 1, swapTwoPiecePositions},
	{"rotate-a-piece", 1, rotateAPiece},
}

func pickWeightedIndex(rnd *rand.Rand) int {
	total := 0
	for _, e := range randomMenu {
		total += e.weight
	}
	r := rnd.Intn(total)
	for i, e := range randomMenu {
		if r < e.weight {
			return i
		}
		r -= e.weight
	}
	return len(randomMenu) - 1
}

// RandomMutate returns a clone of rs with one randomly chosen menu operator
// applied to one mutable side (honoring pin). If the drawn operator refuses
// (e.g. a full piece zone or a floor-bound side), the remaining menu
// entries are tried in order until one succeeds — rotate-a-piece never
// refuses given at least one piece, which the population floor guarantees,
// so this always terminates.
func RandomMutate(rs ruleset.RuleSet, pin Pin, rnd *rand.Rand) ruleset.RuleSet {
	out := rs.Clone()
	owner := pickMutableSide(pin, rnd)
	side := sideRef(&out, owner)

	start := pickWeightedIndex(rnd)
	for i := 0; i < len(randomMenu); i++ {
		idx := (start + i) % len(randomMenu)
		if next, ok := randomMenu[idx].apply(*side, owner, rnd); ok {
			*side = next
			break
		}
	}

	*side = enforceSwapRedundancy(*side, rnd)
	return out
}

func addRandomPiece(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	free := freeZoneHexes(owner, s)
	if len(free) == 0 {
		return s, false
	}
	kind := randomRegularKind(rnd)
	pos := free[rnd.Intn(len(free))]
	return appendPiece(s, kind, pos, hexboard.DefaultFacing(owner)), true
}

func addCopyOfExistingPiece(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	if len(s.Pieces) == 0 {
		return s, false
	}
	free := freeZoneHexes(owner, s)
	if len(free) == 0 {
		return s, false
	}
	kind := s.Pieces[rnd.Intn(len(s.Pieces))]
	pos := free[rnd.Intn(len(free))]
	return appendPiece(s, kind, pos, hexboard.DefaultFacing(owner)), true
}

func removePiece(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	if len(s.Pieces) <= MinPiecesPerSide {
		return s, false
	}
	return removePieceAt(s, rnd.Intn(len(s.Pieces))), true
}

func swapPieceForRandom(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	if len(s.Pieces) == 0 {
		return s, false
	}
	s.Pieces = append([]string(nil), s.Pieces...)
	s.Pieces[rnd.Intn(len(s.Pieces))] = randomRegularKind(rnd)
	return s, true
}

func swapPieceForExistingKind(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	distinct := distinctKinds(s)
	if len(distinct) < 2 {
		return s, false
	}
	idx := rnd.Intn(len(s.Pieces))
	current := s.Pieces[idx]

	var choices []string
	for _, k := range distinct {
		if k != current {
			choices = append(choices, k)
		}
	}
	s.Pieces = append([]string(nil), s.Pieces...)
	s.Pieces[idx] = choices[rnd.Intn(len(choices))]
	return s, true
}

func changeKing(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	var choices []string
	for _, id := range piece.KingIDs {
		if id != s.King {
			choices = append(choices, id)
		}
	}
	if len(choices) == 0 {
		return s, false
	}
	s.King = choices[rnd.Intn(len(choices))]
	return s, true
}

func shufflePositionsWithinSide(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	if len(s.Pieces) < 2 {
		return s, false
	}
	s.Positions = append([]hexboard.Hex(nil), s.Positions...)
	tail := s.Positions[1:]
	rnd.Shuffle(len(tail), func(i, j int) { tail[i], tail[j] = tail[j], tail[i] })
	return s, true
}

func swapTwoPiecePositions(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	if len(s.Pieces) < 2 {
		return s, false
	}
	i := 1 + rnd.Intn(len(s.Pieces))
	j := 1 + rnd.Intn(len(s.Pieces))
	for j == i {
		j = 1 + rnd.Intn(len(s.Pieces))
	}
	s.Positions = append([]hexboard.Hex(nil), s.Positions...)
	s.Positions[i], s.Positions[j] = s.Positions[j], s.Positions[i]
	return s, true
}

func rotateAPiece(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	if len(s.Pieces) == 0 {
		return s, false
	}
	s.Facings = append([]hexboard.Direction(nil), s.Facings...)
	idx := 1 + rnd.Intn(len(s.Pieces))
	s.Facings[idx] = hexboard.Direction(rnd.Intn(hexboard.NumDirections))
	return s, true
}
