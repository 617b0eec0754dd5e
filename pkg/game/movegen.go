package game

import (
	"sort"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/piece"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// GenerateLegalActions returns every legal action available to the current
// player at their current point within their turn template, plus the two
// always-available actions (pass, surrender). The result is empty once the
// game has ended.
//
// Order is deterministic (by action type, then source hex, destination hex,
// facing and kind; see actionLess) so
// that callers needing a stable base ordering — the search package reorders
// from here for move-budget truncation — don't depend on Go's randomized map
// iteration.
func GenerateLegalActions(s *State) []Action {
	if s.IsTerminal() {
		return nil
	}

	steps := ruleset.Templates[s.Templates[s.CurrentPlayer]]
	step := steps[s.ActionIndex]

	var actions []Action
	for _, h := range s.candidateHexes(step.Constraint) {
		inst := s.Board[h]
		kind := piece.Get(inst.Kind)

		if step.Action == ruleset.ActionMove || step.Action == ruleset.ActionMoveOrRotate {
			actions = append(actions, s.moveActions(h, inst, kind)...)
		}
		if step.Action == ruleset.ActionRotate || step.Action == ruleset.ActionMoveOrRotate {
			actions = append(actions, s.rotateActions(h, inst, kind)...)
		}
	}

	if step.Action == ruleset.ActionMove || step.Action == ruleset.ActionMoveOrRotate {
		actions = append(actions, s.rebirthActions(s.CurrentPlayer)...)
	}

	actions = append(actions, Action{Type: ActionTypePass})
	actions = append(actions, Action{Type: ActionTypeSurrender})

	sort.Slice(actions, func(i, j int) bool { return actionLess(actions[i], actions[j]) })
	return actions
}

// candidateHexes returns the current player's piece hexes eligible to act
// given the template step's constraint relative to the last-acted piece.
func (s *State) candidateHexes(c ruleset.PieceConstraint) []hexboard.Hex {
	all := s.Board.PiecesOf(s.CurrentPlayer)
	sort.Slice(all, func(i, j int) bool { return hexLess(all[i], all[j]) })

	if c == ruleset.AnyPiece || s.LastActedHex == nil {
		return all
	}

	var out []hexboard.Hex
	for _, h := range all {
		same := h == *s.LastActedHex
		if c == ruleset.SamePieceAsLast && same {
			out = append(out, h)
		}
		if c == ruleset.DifferentFromLast && !same {
			out = append(out, h)
		}
	}
	return out
}

func (s *State) moveActions(h hexboard.Hex, inst Instance, kind piece.Kind) []Action {
	var out []Action
	for _, dest := range s.reachableDestinations(h, inst, kind) {
		out = append(out, Action{Type: ActionTypeMove, From: h, To: dest})
	}
	if kind.Special == piece.SwapMove {
		out = append(out, s.swapActions(h)...)
	}
	return out
}

func (s *State) rotateActions(h hexboard.Hex, inst Instance, kind piece.Kind) []Action {
	var out []Action
	if !kind.IsOmnidirectional() {
		for d := hexboard.Direction(0); d < hexboard.NumDirections; d++ {
			// The current facing is included: it is a legal no-op rotate (§4.3).
			out = append(out, Action{Type: ActionTypeRotate, From: h, Facing: d})
		}
	}
	if kind.Special == piece.SwapRotate {
		out = append(out, s.swapActions(h)...)
	}
	return out
}

// swapActions enumerates the SwapMove/SwapRotate destinations for the piece
// at h: every other friendly piece's hex.
func (s *State) swapActions(h hexboard.Hex) []Action {
	owner := s.Board[h].Owner
	own := s.Board.PiecesOf(owner)
	sort.Slice(own, func(i, j int) bool { return hexLess(own[i], own[j]) })

	var out []Action
	for _, other := range own {
		if other == h {
			continue
		}
		out = append(out, Action{Type: ActionTypeSwap, From: h, To: other})
	}
	return out
}

// rebirthActions enumerates placements for every rebirth-capable kind that
// currently has at least one instance in owner's graveyard. Rebirth is a
// whole-turn alternative to moving a surviving piece, not a capability that
// requires a living instance of the kind to still be on the board — a fully
// captured family can only return to play this way.
func (s *State) rebirthActions(owner int) []Action {
	king := s.KingPos[owner]
	empties := emptyNeighbors(s.Board, king)

	var out []Action
	for _, id := range piece.SpecialIDs {
		if piece.GetSpecial(id) != piece.Rebirth {
			continue
		}
		if !s.Graveyard[owner].Has(id) {
			continue
		}
		for _, dest := range empties {
			out = append(out, Action{Type: ActionTypeRebirth, To: dest, Facing: facingToward(dest, king), Kind: id})
		}
	}
	return out
}

// reachableDestinations computes the destination hexes for a piece's normal
// (non-special) movement, honoring capture and the phased-piece exclusion
// from the capture graph (§4.3, §8): a phased piece neither captures nor is
// captured, and occupied cells of either color always stop further travel.
func (s *State) reachableDestinations(h hexboard.Hex, inst Instance, kind piece.Kind) []hexboard.Hex {
	switch kind.Move {
	case piece.Step:
		return s.walk(h, inst, kind, kind.Range)
	case piece.Slide:
		return s.walk(h, inst, kind, hexboard.Radius*2)
	case piece.Jump:
		return s.jump(h, inst, kind)
	default:
		return nil
	}
}

func (s *State) walk(h hexboard.Hex, inst Instance, kind piece.Kind, maxSteps int) []hexboard.Hex {
	var out []hexboard.Hex
	moverPhased := kind.Special == piece.Phased

	for _, rel := range kind.Directions {
		dir := hexboard.Resolve(inst.Facing, rel)
		cur := h
		for step := 0; step < maxSteps; step++ {
			cur = hexboard.Neighbor(cur, dir)
			if !cur.IsValid() {
				break
			}
			occ, present := s.Board[cur]
			if !present {
				out = append(out, cur)
				continue
			}
			if occ.Owner == inst.Owner {
				break
			}
			occupantPhased := piece.Get(occ.Kind).Special == piece.Phased
			if !moverPhased && !occupantPhased {
				out = append(out, cur)
			}
			break
		}
	}
	return out
}

func (s *State) jump(h hexboard.Hex, inst Instance, kind piece.Kind) []hexboard.Hex {
	var out []hexboard.Hex
	moverPhased := kind.Special == piece.Phased
	forwardArc := len(kind.Directions) == 3 // {Forward, ForwardLeft, ForwardRight}

	for _, target := range hexboard.Ring(h, kind.Range) {
		if !target.IsValid() {
			continue
		}

		dq, dr := target.Q-h.Q, target.R-h.R
		if forwardArc {
			if !hexboard.ForwardArcWithin75(inst.Facing, dq, dr) {
				continue
			}
		} else {
			sector := hexboard.Sector(dq, dr)
			rel := hexboard.Direction((int(sector) - int(inst.Facing) + hexboard.NumDirections) % hexboard.NumDirections)
			if !kind.HasDirection(rel) {
				continue
			}
		}

		occ, present := s.Board[target]
		if !present {
			out = append(out, target)
			continue
		}
		if occ.Owner == inst.Owner {
			continue
		}
		occupantPhased := piece.Get(occ.Kind).Special == piece.Phased
		if !moverPhased && !occupantPhased {
			out = append(out, target)
		}
	}
	return out
}

func emptyNeighbors(b Board, h hexboard.Hex) []hexboard.Hex {
	var out []hexboard.Hex
	for _, n := range hexboard.ValidNeighbors(h) {
		if _, occupied := b[n]; !occupied {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return hexLess(out[i], out[j]) })
	return out
}

func facingToward(from, to hexboard.Hex) hexboard.Direction {
	for d := hexboard.Direction(0); d < hexboard.NumDirections; d++ {
		if hexboard.Neighbor(from, d) == to {
			return d
		}
	}
	panic("game: facingToward called on non-adjacent hexes")
}

func hexLess(a, b hexboard.Hex) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

func actionLess(a, b Action) bool {
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if a.From != b.From {
		return hexLess(a.From, b.From)
	}
	if a.To != b.To {
		return hexLess(a.To, b.To)
	}
	if a.Facing != b.Facing {
		return a.Facing < b.Facing
	}
	return a.Kind < b.Kind
}
