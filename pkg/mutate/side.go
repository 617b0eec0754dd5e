package mutate

import (
	"math/rand"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/piece"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// MinPiecesPerSide is the floor below which "remove" operators refuse
// (§4.9).
const MinPiecesPerSide = 8

// Pin selects the fixed-side evolution mode (§4.8): which color, if any,
// is held constant across every mutation and crossover.
type Pin int

const (
	// PinNone mutates either side freely.
	PinNone Pin = iota
	// PinWhite holds white fixed; only black is ever mutated
	// ("mutate_black_only").
	PinWhite
	// PinBlack holds black fixed; only white is ever mutated
	// ("mutate_white_only").
	PinBlack
)

// mutableOwner reports whether owner's side may be mutated under pin.
func mutableOwner(pin Pin, owner int) bool {
	switch pin {
	case PinWhite:
		return owner == 1
	case PinBlack:
		return owner == 0
	default:
		return true
	}
}

// pickMutableSide chooses which side RandomMutate touches this call,
// honoring the fixed-side pin.
func pickMutableSide(pin Pin, rnd *rand.Rand) int {
	switch pin {
	case PinWhite:
		return 1
	case PinBlack:
		return 0
	default:
		return rnd.Intn(2)
	}
}

func sideRef(rs *ruleset.RuleSet, owner int) *ruleset.Side {
	if owner == 0 {
		return &rs.White
	}
	return &rs.Black
}

// appendPiece returns s with a new piece appended (Pieces/Positions/Facings
// kept parallel, king slot at index 0 untouched).
func appendPiece(s ruleset.Side, kind string, pos hexboard.Hex, facing hexboard.Direction) ruleset.Side {
	s.Pieces = append(append([]string(nil), s.Pieces...), kind)
	s.Positions = append(append([]hexboard.Hex(nil), s.Positions...), pos)
	s.Facings = append(append([]hexboard.Direction(nil), s.Facings...), facing)
	return s
}

// removePieceAt returns s with the piece at Pieces[idx] removed. idx must
// be a valid index into s.Pieces (the king, at Positions/Facings[0], is
// never addressed by this index space).
func removePieceAt(s ruleset.Side, idx int) ruleset.Side {
	s.Pieces = append(append([]string(nil), s.Pieces[:idx]...), s.Pieces[idx+1:]...)
	pi := idx + 1
	s.Positions = append(append([]hexboard.Hex(nil), s.Positions[:pi]...), s.Positions[pi+1:]...)
	s.Facings = append(append([]hexboard.Direction(nil), s.Facings[:pi]...), s.Facings[pi+1:]...)
	return s
}

// freeZoneHexes returns s's owner's legal placement hexes not already
// occupied by one of s's own pieces.
func freeZoneHexes(owner int, s ruleset.Side) []hexboard.Hex {
	occupied := make(map[hexboard.Hex]bool, len(s.Positions))
	for _, p := range s.Positions {
		occupied[p] = true
	}

	var out []hexboard.Hex
	for _, h := range hexboard.PieceZone(owner) {
		if !occupied[h] {
			out = append(out, h)
		}
	}
	return out
}

// distinctKinds returns the set of kinds present in s.Pieces, each once.
func distinctKinds(s ruleset.Side) []string {
	seen := map[string]bool{}
	var out []string
	for _, k := range s.Pieces {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func randomRegularKind(rnd *rand.Rand) string {
	return piece.RegularIDs[rnd.Intn(len(piece.RegularIDs))]
}
