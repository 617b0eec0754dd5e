// Package record implements the game record wire shape (§6) and the
// per-game play loop that produces one (§4.6, §5): construct the initial
// state from a ruleset, let both sides search and apply actions until the
// game ends or the safety cap is hit, and capture every action taken along
// the way so the game can be replayed and verified later (§8).
package record

import (
	"context"
	"fmt"

	"github.com/hexwar/balancer/pkg/eval"
	"github.com/hexwar/balancer/pkg/game"
	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/ruleset"
	"github.com/hexwar/balancer/pkg/search"
	"github.com/seekerror/logw"
)

// Version is the game record format version (§6).
const Version = "1.0"

// SafetyCap is the hard action-count ceiling per game (§5): a game is forced
// to a conclusion here regardless of round number, guarding against a
// pathological ruleset that never reaches the round-50 resolution.
const SafetyCap = 500

// EndReason names why a recorded game ended.
type EndReason string

const (
	EndKingCapture EndReason = "king_capture"
	EndRoundLimit  EndReason = "round_limit"
	EndSurrender   EndReason = "surrender"
	EndSafetyCap   EndReason = "safety_cap"
)

// MoveRecord is one entry of a GameRecord's move list (§6). Field presence
// varies by ActionType: see Action's own field-use comment in pkg/game.
type MoveRecord struct {
	ActionType  string         `json:"action_type"`
	FromPos     *[2]int        `json:"from_pos,omitempty"`
	ToPos       *[2]int        `json:"to_pos,omitempty"`
	NewFacing   *int           `json:"new_facing,omitempty"`
	SpecialData map[string]any `json:"special_data,omitempty"`
}

// GameRecord is a complete, replayable record of one played game (§6).
type GameRecord struct {
	Version      string          `json:"version"`
	RuleSet      ruleset.RuleSet `json:"ruleset"`
	WhiteAIDepth int             `json:"white_ai_depth"`
	BlackAIDepth int             `json:"black_ai_depth"`
	Seed         int64           `json:"seed"`
	Moves        []MoveRecord    `json:"moves"`
	Winner       *int            `json:"winner"`
	FinalRound   int             `json:"final_round"`
	EndReason    EndReason       `json:"end_reason"`
}

func toMoveRecord(a game.Action) MoveRecord {
	mr := MoveRecord{ActionType: a.Type.String()}
	switch a.Type {
	case game.ActionTypeMove:
		mr.FromPos = hexPtr(a.From)
		mr.ToPos = hexPtr(a.To)
	case game.ActionTypeRotate:
		mr.FromPos = hexPtr(a.From)
		mr.NewFacing = intPtr(int(a.Facing))
	case game.ActionTypeSwap:
		mr.FromPos = hexPtr(a.From)
		mr.ToPos = hexPtr(a.To)
	case game.ActionTypeRebirth:
		mr.ToPos = hexPtr(a.To)
		mr.NewFacing = intPtr(int(a.Facing))
		mr.SpecialData = map[string]any{"kind": a.Kind}
	}
	return mr
}

func fromMoveRecord(mr MoveRecord) (game.Action, error) {
	var a game.Action
	switch mr.ActionType {
	case "move":
		a.Type = game.ActionTypeMove
	case "rotate":
		a.Type = game.ActionTypeRotate
	case "swap":
		a.Type = game.ActionTypeSwap
	case "rebirth":
		a.Type = game.ActionTypeRebirth
	case "pass":
		return game.Action{Type: game.ActionTypePass}, nil
	case "surrender":
		return game.Action{Type: game.ActionTypeSurrender}, nil
	default:
		return game.Action{}, fmt.Errorf("unusable game record: unknown action type %q", mr.ActionType)
	}

	if mr.FromPos != nil {
		a.From = hexboard.Hex{Q: mr.FromPos[0], R: mr.FromPos[1]}
	}
	if mr.ToPos != nil {
		a.To = hexboard.Hex{Q: mr.ToPos[0], R: mr.ToPos[1]}
	}
	if mr.NewFacing != nil {
		a.Facing = hexboard.Direction(*mr.NewFacing)
	}
	if mr.SpecialData != nil {
		if kind, ok := mr.SpecialData["kind"].(string); ok {
			a.Kind = kind
		}
	}
	return a, nil
}

func hexPtr(h hexboard.Hex) *[2]int { return &[2]int{h.Q, h.R} }
func intPtr(v int) *int             { return &v }

// Play drives one complete game between two AI depths sharing a ruleset and
// a move budget, producing a full GameRecord (§4.6's per-game loop).
func Play(ctx context.Context, rs ruleset.RuleSet, whiteDepth, blackDepth, moveBudget int, seed int64) (*GameRecord, error) {
	s, err := game.NewState(rs)
	if err != nil {
		return nil, fmt.Errorf("unusable ruleset: %w", err)
	}

	ev := eval.NewEvaluator(rs)
	gr := &GameRecord{
		Version:      Version,
		RuleSet:      rs,
		WhiteAIDepth: whiteDepth,
		BlackAIDepth: blackDepth,
		Seed:         seed,
	}

	var last game.Action
	actions := 0
	for !s.IsTerminal() && actions < SafetyCap {
		depth := whiteDepth
		if s.CurrentPlayer == 1 {
			depth = blackDepth
		}

		last = search.Search(s, search.Config{
			Depth:      depth,
			Evaluator:  ev,
			MoveBudget: moveBudget,
			Seed:       seed + int64(actions),
		})
		gr.Moves = append(gr.Moves, toMoveRecord(last))
		s = s.Apply(last)
		actions++
	}

	gr.FinalRound = s.RoundNumber
	gr.Winner = s.Winner
	gr.EndReason = endReason(s, last)

	logw.Infof(ctx, "played game: %v actions, winner=%v, rounds=%v, reason=%v", actions, gr.Winner, gr.FinalRound, gr.EndReason)
	return gr, nil
}

func endReason(s *game.State, last game.Action) EndReason {
	switch {
	case s.Winner == nil:
		return EndSafetyCap
	case last.Type == game.ActionTypeSurrender:
		return EndSurrender
	case s.RoundNumber > game.MaxRounds:
		return EndRoundLimit
	default:
		return EndKingCapture
	}
}

// ReplayAndVerify replays a GameRecord's move list against its own initial
// ruleset and reports whether the resulting (winner, final_round,
// end_reason) matches what was recorded (§8 "game record replay").
func ReplayAndVerify(gr GameRecord) (bool, error) {
	s, err := game.NewState(gr.RuleSet)
	if err != nil {
		return false, fmt.Errorf("unusable ruleset: %w", err)
	}

	var last game.Action
	for i, mr := range gr.Moves {
		a, err := fromMoveRecord(mr)
		if err != nil {
			return false, fmt.Errorf("move %d: %w", i, err)
		}
		s = s.Apply(a)
		last = a
	}

	if !winnersEqual(s.Winner, gr.Winner) {
		return false, nil
	}
	if s.RoundNumber != gr.FinalRound {
		return false, nil
	}
	if endReason(s, last) != gr.EndReason {
		return false, nil
	}
	return true, nil
}

func winnersEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
