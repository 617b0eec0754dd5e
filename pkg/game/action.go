package game

import "github.com/hexwar/balancer/pkg/hexboard"

// ActionType names the kind of action a player takes. All six share a single
// struct below rather than a Go type switch on separate structs, mirroring
// the wire MoveRecord shape (§6) that records play.
type ActionType int

const (
	ActionTypeMove ActionType = iota
	ActionTypeRotate
	ActionTypeSwap
	ActionTypeRebirth
	ActionTypePass
	ActionTypeSurrender
)

func (t ActionType) String() string {
	switch t {
	case ActionTypeMove:
		return "move"
	case ActionTypeRotate:
		return "rotate"
	case ActionTypeSwap:
		return "swap"
	case ActionTypeRebirth:
		return "rebirth"
	case ActionTypePass:
		return "pass"
	case ActionTypeSurrender:
		return "surrender"
	default:
		return "?"
	}
}

// Action is a single legal action: a move, a rotate, a special-ability swap,
// a rebirth placement, or one of the two always-available actions (pass,
// surrender).
//
// Field use varies by Type:
//   - Move: From/To are the source/destination hex, facing unchanged.
//   - Rotate: From is the piece's hex, Facing is its new facing.
//   - Swap (SwapMove/SwapRotate): From/To are the two exchanging pieces' hexes.
//   - Rebirth: To is the destination hex, Facing the placed facing, Kind the
//     revived kind id. From is unused: the piece does not yet occupy a hex.
//   - Pass/Surrender: no fields used.
type Action struct {
	Type   ActionType
	From   hexboard.Hex
	To     hexboard.Hex
	Facing hexboard.Direction
	Kind   string
}
