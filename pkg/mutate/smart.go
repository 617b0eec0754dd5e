package mutate

import (
	"math"
	"math/rand"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// intensity is one of the four win-rate-imbalance bands (§4.9).
type intensity int

const (
	intensitySmall intensity = iota
	intensityMild
	intensityModerate
	intensitySevere
)

func intensityBand(absDiff float64) intensity {
	switch {
	case absDiff < 0.05:
		return intensitySmall
	case absDiff < 0.15:
		return intensityMild
	case absDiff < 0.25:
		return intensityModerate
	default:
		return intensitySevere
	}
}

// SmartMutate mutates rs in proportion to the white-win-rate imbalance
// |whiteWinRate - 0.5| (§4.9). Under a fixed-side pin the signal is
// interpreted from the non-pinned side's own perspective: that side is
// buffed when it is losing (whiteWinRate on the pin's off side < 0.5) and
// nerfed when it is winning.
func SmartMutate(rs ruleset.RuleSet, whiteWinRate float64, pin Pin, rnd *rand.Rand) ruleset.RuleSet {
	out := rs.Clone()
	in := intensityBand(math.Abs(whiteWinRate - 0.5))
	owner, buff := targetSide(whiteWinRate, pin, rnd)

	side := sideRef(&out, owner)
	*side = applySmartOp(*side, owner, in, buff, rnd)
	*side = enforceSwapRedundancy(*side, rnd)
	return out
}

// targetSide picks which side a smart mutation touches and whether the
// move is a buff (helping a losing side) or a nerf (weakening a winning
// one), honoring the fixed-side pin (§4.8).
func targetSide(whiteWinRate float64, pin Pin, rnd *rand.Rand) (owner int, buff bool) {
	switch pin {
	case PinWhite:
		return 1, whiteWinRate > 0.5
	case PinBlack:
		return 0, whiteWinRate < 0.5
	default:
		losing, winning := 1, 0
		if whiteWinRate < 0.5 {
			losing, winning = 0, 1
		}
		if rnd.Float64() < 0.5 {
			return losing, true
		}
		return winning, false
	}
}

func applySmartOp(s ruleset.Side, owner int, in intensity, buff bool, rnd *rand.Rand) ruleset.Side {
	switch in {
	case intensitySmall:
		switch rnd.Intn(3) {
		case 0:
			if next, ok := swapWithinSameTier(s, rnd); ok {
				return next
			}
		case 1:
			if next, ok := swapTwoPiecePositions(s, owner, rnd); ok {
				return next
			}
		default:
			if next, ok := addLowTierPiece(s, owner, rnd); ok {
				return next
			}
		}
		return s

	case intensityMild:
		if buff {
			if next, ok := addLowTierPiece(s, owner, rnd); ok {
				return next
			}
		} else if next, ok := removeLowTierPiece(s, rnd); ok {
			return next
		}
		return s

	case intensityModerate:
		tiers := 1 + rnd.Intn(2)
		if buff {
			if next, ok := upgradeLowestTierPiece(s, tiers, rnd); ok {
				return next
			}
		} else if next, ok := downgradeHighestTierPiece(s, tiers, rnd); ok {
			return next
		}
		return s

	default: // severe
		if buff {
			if next, ok := addHighTierPiece(s, owner, rnd); ok {
				return next
			}
			if next, ok := upgradeLowestTierPiece(s, 2, rnd); ok {
				return next // "upgrade existing if no room"
			}
		} else if next, ok := removeHighTierPiece(s, rnd); ok {
			return next
		}
		return s
	}
}

// lowTierCeiling/highTierFloor bound the "low-tier" and "high-tier" bands
// the mild/severe mutation ops draw from.
const (
	lowTierCeiling = 1
	highTierFloor  = NumTiers - 2
)

func swapWithinSameTier(s ruleset.Side, rnd *rand.Rand) (ruleset.Side, bool) {
	if len(s.Pieces) == 0 {
		return s, false
	}
	idx := rnd.Intn(len(s.Pieces))
	current := s.Pieces[idx]

	var choices []string
	for _, id := range idsAtTier(tierOf[current]) {
		if id != current {
			choices = append(choices, id)
		}
	}
	if len(choices) == 0 {
		return s, false
	}
	s.Pieces = append([]string(nil), s.Pieces...)
	s.Pieces[idx] = choices[rnd.Intn(len(choices))]
	return s, true
}

func addLowTierPiece(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	free := freeZoneHexes(owner, s)
	if len(free) == 0 {
		return s, false
	}
	candidates := idsAtOrBelowTier(lowTierCeiling)
	kind := candidates[rnd.Intn(len(candidates))]
	pos := free[rnd.Intn(len(free))]
	return appendPiece(s, kind, pos, hexboard.DefaultFacing(owner)), true
}

func removeLowTierPiece(s ruleset.Side, rnd *rand.Rand) (ruleset.Side, bool) {
	if len(s.Pieces) <= MinPiecesPerSide {
		return s, false
	}
	var candidates []int
	for i, id := range s.Pieces {
		if tierOf[id] <= lowTierCeiling {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return s, false
	}
	return removePieceAt(s, candidates[rnd.Intn(len(candidates))]), true
}

func addHighTierPiece(s ruleset.Side, owner int, rnd *rand.Rand) (ruleset.Side, bool) {
	free := freeZoneHexes(owner, s)
	if len(free) == 0 {
		return s, false
	}
	candidates := idsAtOrAboveTier(highTierFloor)
	kind := candidates[rnd.Intn(len(candidates))]
	pos := free[rnd.Intn(len(free))]
	return appendPiece(s, kind, pos, hexboard.DefaultFacing(owner)), true
}

func removeHighTierPiece(s ruleset.Side, rnd *rand.Rand) (ruleset.Side, bool) {
	if len(s.Pieces) <= MinPiecesPerSide {
		return s, false
	}
	var candidates []int
	for i, id := range s.Pieces {
		if tierOf[id] >= highTierFloor {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		idx := highestTierIndex(s)
		if idx < 0 {
			return s, false
		}
		candidates = []int{idx}
	}
	return removePieceAt(s, candidates[rnd.Intn(len(candidates))]), true
}

func upgradeLowestTierPiece(s ruleset.Side, tiersUp int, rnd *rand.Rand) (ruleset.Side, bool) {
	idx := lowestTierIndex(s)
	if idx < 0 {
		return s, false
	}
	target := clampTier(tierOf[s.Pieces[idx]] + tiersUp)
	candidates := pickTierOrNearestAbove(target)
	if len(candidates) == 0 {
		return s, false
	}
	s.Pieces = append([]string(nil), s.Pieces...)
	s.Pieces[idx] = candidates[rnd.Intn(len(candidates))]
	return s, true
}

func downgradeHighestTierPiece(s ruleset.Side, tiersDown int, rnd *rand.Rand) (ruleset.Side, bool) {
	idx := highestTierIndex(s)
	if idx < 0 {
		return s, false
	}
	target := clampTier(tierOf[s.Pieces[idx]] - tiersDown)
	candidates := pickTierOrNearestBelow(target)
	if len(candidates) == 0 {
		return s, false
	}
	s.Pieces = append([]string(nil), s.Pieces...)
	s.Pieces[idx] = candidates[rnd.Intn(len(candidates))]
	return s, true
}

func pickTierOrNearestAbove(target int) []string {
	for t := target; t < NumTiers; t++ {
		if c := idsAtTier(t); len(c) > 0 {
			return c
		}
	}
	return nil
}

func pickTierOrNearestBelow(target int) []string {
	for t := target; t >= 0; t-- {
		if c := idsAtTier(t); len(c) > 0 {
			return c
		}
	}
	return nil
}
