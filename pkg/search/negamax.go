package search

import (
	"github.com/hexwar/balancer/pkg/eval"
	"github.com/hexwar/balancer/pkg/game"
)

// negamax returns state's score from perspective's viewpoint (positive is
// good for perspective), searching depthRemaining further actions. ply is
// the actual number of actions taken since the root, used for the
// mate-distance bonus on terminal states. Every action, whether or not it
// ends the mover's turn, consumes one unit of depthRemaining and one ply.
func negamax(s *game.State, depthRemaining, perspective, ply int, ev *eval.Evaluator, budget int) eval.Score {
	if s.IsTerminal() {
		return terminalScore(*s.Winner, perspective, ply)
	}
	if depthRemaining <= 0 {
		return ev.ForPlayer(s, perspective)
	}

	actions := orderedActions(s, budget)
	if len(actions) == 0 {
		return ev.ForPlayer(s, perspective)
	}

	mover := s.CurrentPlayer
	best := eval.NegInf
	for _, a := range actions {
		child := s.Apply(a)
		var val eval.Score
		if !child.IsTerminal() && child.CurrentPlayer == mover {
			val = negamax(child, depthRemaining-1, perspective, ply+1, ev, budget)
		} else {
			val = -negamax(child, depthRemaining-1, otherPlayer(perspective), ply+1, ev, budget)
		}
		best = eval.Max(best, val)
	}
	return best
}

// terminalScore returns a signed win/loss sentinel with a depth bonus: a win
// reached in fewer plies scores higher than one reached in more, and a loss
// suffered in more plies (delayed) scores less negative than one suffered
// quickly (§4.5).
func terminalScore(winner, perspective, ply int) eval.Score {
	magnitude := eval.Crop(eval.MaxScore - eval.Score(ply))
	if winner == perspective {
		return magnitude
	}
	return -magnitude
}
