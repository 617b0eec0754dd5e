// Package piece holds the immutable HEXWAR piece catalog: 25 non-king kinds
// across 6 families plus 5 king kinds, their movement modes, direction sets
// and special abilities. All data is compile-time constant; nothing here is
// mutated at runtime.
package piece

import "github.com/hexwar/balancer/pkg/hexboard"

// MoveMode is a piece kind's movement family.
type MoveMode int

const (
	// Step moves 1..Range hexes in a straight line, stopping at the board
	// edge or the first occupant.
	Step MoveMode = iota
	// Slide moves an unbounded distance in a straight line, stopping at the
	// first occupant.
	Slide
	// Jump lands on any on-board hex at exactly Range distance, within the
	// piece's allowed arc, ignoring intermediate occupancy.
	Jump
	// None means the piece has no standard destinations (pure special-ability
	// piece).
	None
)

func (m MoveMode) String() string {
	switch m {
	case Step:
		return "STEP"
	case Slide:
		return "SLIDE"
	case Jump:
		return "JUMP"
	default:
		return "NONE"
	}
}

// Special is an optional ability tag.
type Special int

const (
	NoSpecial Special = iota
	// SwapMove lets the piece, in lieu of a normal move, swap positions with
	// any other friendly piece.
	SwapMove
	// SwapRotate lets the piece, in lieu of a normal rotate, swap positions
	// with any other friendly piece.
	SwapRotate
	// Rebirth lets the owner, during any move action, place a captured
	// instance of this kind from their graveyard onto an empty hex adjacent
	// to their king.
	Rebirth
	// Phased removes the piece from the capture graph entirely: it neither
	// captures nor is captured, though it still occupies its hex and blocks
	// movement through it.
	Phased
)

func (s Special) String() string {
	switch s {
	case SwapMove:
		return "SWAP_MOVE"
	case SwapRotate:
		return "SWAP_ROTATE"
	case Rebirth:
		return "REBIRTH"
	case Phased:
		return "PHASED"
	default:
		return ""
	}
}

// Infinite is the sentinel range for Slide pieces.
const Infinite = 999

// Kind is the immutable capability record for a piece type.
type Kind struct {
	ID         string
	Name       string
	Move       MoveMode
	Range      int // natural range, or Infinite for Slide
	Directions []hexboard.Direction
	Special    Special
	IsKing     bool
}

// Direction convenience sets, named the way the reference rules describe
// forward arcs and full rings.
var (
	AllDirs = []hexboard.Direction{
		hexboard.Forward, hexboard.ForwardRight, hexboard.BackRight,
		hexboard.Backward, hexboard.BackLeft, hexboard.ForwardLeft,
	}
	ForwardArc  = []hexboard.Direction{hexboard.Forward, hexboard.ForwardLeft, hexboard.ForwardRight}
	DiagonalDirs = []hexboard.Direction{hexboard.ForwardLeft, hexboard.ForwardRight, hexboard.BackLeft, hexboard.BackRight}
	ForwardBack = []hexboard.Direction{hexboard.Forward, hexboard.Backward}
	ForwardOnly = []hexboard.Direction{hexboard.Forward}
)

// HasDirection reports whether k's allowed relative-direction set contains d.
func (k Kind) HasDirection(d hexboard.Direction) bool {
	for _, a := range k.Directions {
		if a == d {
			return true
		}
	}
	return false
}

// IsOmnidirectional reports whether k's move set is already all six relative
// directions, in which case rotation cannot change its reachable set.
func (k Kind) IsOmnidirectional() bool {
	return len(k.Directions) == NumDirections
}

const NumDirections = 6
