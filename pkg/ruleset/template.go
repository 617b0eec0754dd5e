package ruleset

// TemplateID names one of the six turn templates (§3). Only TemplateE is
// permitted in the production configuration; the rest are retained for
// completeness since multi-action templates explode search cost.
type TemplateID int

const (
	TemplateA TemplateID = iota // rotate, then move (same piece)
	TemplateB                   // move, rotate, rotate
	TemplateC                   // move, move, rotate
	TemplateD                   // move, then rotate (different piece)
	TemplateE                   // move-or-rotate (single action; production default)
	TemplateF                   // move, then rotate (same piece)
)

func (t TemplateID) String() string {
	switch t {
	case TemplateA:
		return "A"
	case TemplateB:
		return "B"
	case TemplateC:
		return "C"
	case TemplateD:
		return "D"
	case TemplateE:
		return "E"
	case TemplateF:
		return "F"
	default:
		return "?"
	}
}

func (t TemplateID) IsValid() bool {
	return t >= TemplateA && t <= TemplateF
}

// ActionKind is the kind of action a template step requires.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionRotate
	ActionMoveOrRotate
)

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionRotate:
		return "rotate"
	default:
		return "move-or-rotate"
	}
}

// PieceConstraint restricts which piece may perform a template step relative
// to the last-acted piece this turn.
type PieceConstraint int

const (
	AnyPiece PieceConstraint = iota
	SamePieceAsLast
	DifferentFromLast
)

// Step is one (action-kind, constraint) pair in a template.
type Step struct {
	Action     ActionKind
	Constraint PieceConstraint
}

// Templates maps each TemplateID to its ordered step list.
var Templates = map[TemplateID][]Step{
	TemplateA: {
		{ActionRotate, AnyPiece},
		{ActionMove, SamePieceAsLast},
	},
	TemplateB: {
		{ActionMove, AnyPiece},
		{ActionRotate, SamePieceAsLast},
		{ActionRotate, SamePieceAsLast},
	},
	TemplateC: {
		{ActionMove, AnyPiece},
		{ActionMove, SamePieceAsLast},
		{ActionRotate, SamePieceAsLast},
	},
	TemplateD: {
		{ActionMove, AnyPiece},
		{ActionRotate, DifferentFromLast},
	},
	TemplateE: {
		{ActionMoveOrRotate, AnyPiece},
	},
	TemplateF: {
		{ActionMove, AnyPiece},
		{ActionRotate, SamePieceAsLast},
	},
}
