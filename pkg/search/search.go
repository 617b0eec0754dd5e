// Package search implements the depth-limited, move-budget-truncated
// negamax search (C5) that both the AI opponents inside a tournament game
// and (indirectly, via the tournament) the evolutionary loop depend on.
package search

import (
	"github.com/hexwar/balancer/pkg/eval"
	"github.com/hexwar/balancer/pkg/game"
	"github.com/hexwar/balancer/pkg/hexboard"
)

// DefaultMoveBudget is the production default for Config.MoveBudget (§4.5).
const DefaultMoveBudget = 15

// DefaultJitterLimit is the production default for Config.JitterLimit.
const DefaultJitterLimit = 3

// Config parameterizes one search call. It is side-effect free: the same
// Config and state always produce the same action.
type Config struct {
	Depth       int
	Evaluator   *eval.Evaluator
	MoveBudget  int   // <= 0 is treated as 1 (§8 "a move-budget of 1 forces exactly one legal action per node")
	Seed        int64 // root tie-breaking jitter seed
	JitterLimit int   // <= 0 uses DefaultJitterLimit
}

// Search returns the best legal action for state's current player at the
// configured depth, or Pass if no legal action is available — which can
// only happen when the game has already ended.
func Search(s *game.State, cfg Config) game.Action {
	budget := cfg.MoveBudget
	if budget <= 0 {
		budget = 1
	}
	jitterLimit := cfg.JitterLimit
	if jitterLimit <= 0 {
		jitterLimit = DefaultJitterLimit
	}

	actions := orderedActions(s, budget)
	if len(actions) == 0 {
		return game.Action{Type: game.ActionTypePass}
	}

	mover := s.CurrentPlayer
	jitter := eval.NewJitter(jitterLimit, cfg.Seed)

	var best game.Action
	bestScore := eval.NegInf
	for _, a := range actions {
		child := s.Apply(a)
		val := rootChildScore(s, child, mover, cfg, budget) + jitter.Next()
		if val > bestScore {
			bestScore = val
			best = a
		}
	}
	return best
}

// rootChildScore scores a root child from the mover's own perspective: no
// negation if the same player is still mid-turn (a multi-action template),
// otherwise the opponent is now to move and the recursive score is negated.
func rootChildScore(parent, child *game.State, mover int, cfg Config, budget int) eval.Score {
	if !child.IsTerminal() && child.CurrentPlayer == mover {
		return negamax(child, cfg.Depth-1, mover, 1, cfg.Evaluator, budget)
	}
	return -negamax(child, cfg.Depth-1, otherPlayer(mover), 1, cfg.Evaluator, budget)
}

// orderedActions truncates the generator's output to at most budget
// candidates among captures, then king-relevant moves, then the rest — a
// soundness-sacrificing but deterministic pruning (§4.5). Pass and surrender
// are always retained regardless of the budget: they are the generator's
// two always-available actions and the search's fallback when nothing else
// is legal.
func orderedActions(s *game.State, budget int) []game.Action {
	all := game.GenerateLegalActions(s)
	if len(all) == 0 {
		return nil
	}

	var captures, kingRelevant, rest, trailing []game.Action
	for _, a := range all {
		switch {
		case a.Type == game.ActionTypePass || a.Type == game.ActionTypeSurrender:
			trailing = append(trailing, a)
		case isCapture(s, a):
			captures = append(captures, a)
		case isKingRelevant(s, a):
			kingRelevant = append(kingRelevant, a)
		default:
			rest = append(rest, a)
		}
	}

	ordered := append(append(captures, kingRelevant...), rest...)
	if len(ordered) > budget {
		ordered = ordered[:budget]
	}
	return append(ordered, trailing...)
}

func isCapture(s *game.State, a game.Action) bool {
	if a.Type != game.ActionTypeMove {
		return false
	}
	occ, ok := s.Board[a.To]
	return ok && occ.Owner != s.CurrentPlayer
}

func isKingRelevant(s *game.State, a game.Action) bool {
	var dest hexboard.Hex
	switch a.Type {
	case game.ActionTypeMove, game.ActionTypeSwap, game.ActionTypeRebirth:
		dest = a.To
	default:
		return false
	}
	opponent := otherPlayer(s.CurrentPlayer)
	return hexboard.Distance(dest, s.KingPos[opponent]) <= 1
}

func otherPlayer(p int) int {
	return 1 - p
}
