package game

import (
	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/piece"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// MaxRounds is the round limit (§4.3): a game that reaches this many
// completed rounds without a king capture is resolved by proximity-to-center
// tiebreaker rather than played out indefinitely.
const MaxRounds = 50

// State is a complete, self-contained game position: the board, both
// graveyards, whose turn it is and how far into their turn template they
// are, and the outcome once the game has ended.
//
// State is immutable from the caller's perspective: Apply returns a new
// State rather than mutating the receiver, so search trees and parallel
// tournament games never alias board state across branches.
type State struct {
	Board         Board
	Graveyard     [2]Graveyard
	Templates     [2]ruleset.TemplateID
	CurrentPlayer int
	TurnNumber    int
	RoundNumber   int
	ActionIndex   int
	LastActedHex  *hexboard.Hex
	KingPos       [2]hexboard.Hex
	Winner        *int
}

// NewState builds the initial position from a validated ruleset.
func NewState(rs ruleset.RuleSet) (*State, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}

	board := Board{}
	placeSide(board, rs.White, 0)
	placeSide(board, rs.Black, 1)

	return &State{
		Board:         board,
		Graveyard:     [2]Graveyard{{}, {}},
		Templates:     [2]ruleset.TemplateID{rs.White.Template, rs.Black.Template},
		CurrentPlayer: 0,
		TurnNumber:    0,
		RoundNumber:   1,
		ActionIndex:   0,
		KingPos:       [2]hexboard.Hex{rs.White.Positions[0], rs.Black.Positions[0]},
	}, nil
}

func placeSide(board Board, s ruleset.Side, owner int) {
	for i, kind := range s.AllKinds() {
		board[s.Positions[i]] = Instance{Kind: kind, Owner: owner, Facing: s.Facings[i]}
	}
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	out := &State{
		Board:         s.Board.Clone(),
		Graveyard:     [2]Graveyard{s.Graveyard[0].Clone(), s.Graveyard[1].Clone()},
		Templates:     s.Templates,
		CurrentPlayer: s.CurrentPlayer,
		TurnNumber:    s.TurnNumber,
		RoundNumber:   s.RoundNumber,
		ActionIndex:   s.ActionIndex,
		KingPos:       s.KingPos,
	}
	if s.LastActedHex != nil {
		h := *s.LastActedHex
		out.LastActedHex = &h
	}
	if s.Winner != nil {
		w := *s.Winner
		out.Winner = &w
	}
	return out
}

// IsTerminal reports whether the game has ended.
func (s *State) IsTerminal() bool {
	return s.Winner != nil
}

// Apply returns the state resulting from taking action a as the current
// player. The receiver is left unmodified.
func (s *State) Apply(a Action) *State {
	next := s.Clone()
	owner := next.CurrentPlayer

	switch a.Type {
	case ActionTypePass:
		next.LastActedHex = nil

	case ActionTypeSurrender:
		winner := 1 - owner
		next.Winner = &winner
		return next

	case ActionTypeMove:
		mover := next.Board[a.From]
		if victim, captured := next.Board[a.To]; captured {
			next.Graveyard[victim.Owner][victim.Kind]++
			if piece.IsKing(victim.Kind) {
				winner := owner
				next.Winner = &winner
			}
		}
		delete(next.Board, a.From)
		next.Board[a.To] = mover
		if piece.IsKing(mover.Kind) {
			next.KingPos[owner] = a.To
		}
		next.LastActedHex = &a.To

	case ActionTypeRotate:
		inst := next.Board[a.From]
		inst.Facing = a.Facing
		next.Board[a.From] = inst
		next.LastActedHex = &a.From

	case ActionTypeSwap:
		p1, p2 := next.Board[a.From], next.Board[a.To]
		next.Board[a.From], next.Board[a.To] = p2, p1
		if piece.IsKing(p1.Kind) {
			next.KingPos[owner] = a.To
		}
		if piece.IsKing(p2.Kind) {
			next.KingPos[owner] = a.From
		}
		next.LastActedHex = &a.To

	case ActionTypeRebirth:
		next.Graveyard[owner][a.Kind]--
		next.Board[a.To] = Instance{Kind: a.Kind, Owner: owner, Facing: a.Facing}
		next.LastActedHex = &a.To
	}

	if next.Winner == nil {
		next.advanceTurn()
	}
	return next
}

// advanceTurn moves the action index forward, rolling over into the next
// player's turn (and the next round, once white is back to act) once the
// current player's template is exhausted.
func (s *State) advanceTurn() {
	s.ActionIndex++
	steps := ruleset.Templates[s.Templates[s.CurrentPlayer]]
	if s.ActionIndex < len(steps) {
		return
	}

	s.ActionIndex = 0
	s.LastActedHex = nil
	s.CurrentPlayer = 1 - s.CurrentPlayer
	s.TurnNumber++
	if s.CurrentPlayer == 0 {
		s.RoundNumber++
	}

	if s.RoundNumber > MaxRounds {
		s.resolveRoundLimit()
	}
}

// resolveRoundLimit applies the proximity tiebreaker (§4.3): the king closer
// to the board center wins; ties go to whoever has more surviving pieces;
// a complete tie favors white.
func (s *State) resolveRoundLimit() {
	wd := hexboard.DistanceToCenter(s.KingPos[0])
	bd := hexboard.DistanceToCenter(s.KingPos[1])

	var winner int
	switch {
	case wd < bd:
		winner = 0
	case bd < wd:
		winner = 1
	default:
		wc, bc := len(s.Board.PiecesOf(0)), len(s.Board.PiecesOf(1))
		switch {
		case wc > bc:
			winner = 0
		case bc > wc:
			winner = 1
		default:
			winner = 0
		}
	}
	s.Winner = &winner
}
