package game_test

import (
	"testing"

	"github.com/hexwar/balancer/pkg/game"
	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalRuleSet() ruleset.RuleSet {
	return ruleset.RuleSet{
		White: ruleset.Side{
			King:      "K1",
			Pieces:    []string{"D5", "A1"},
			Positions: []hexboard.Hex{hexboard.WhiteKingPos, {0, 2}, {0, 3}},
			Facings:   []hexboard.Direction{hexboard.North, hexboard.North, hexboard.North},
			Template:  ruleset.TemplateE,
		},
		Black: ruleset.Side{
			King:      "K1",
			Pieces:    []string{"D5", "A1"},
			Positions: []hexboard.Hex{hexboard.BlackKingPos, {0, -2}, {0, -3}},
			Facings:   []hexboard.Direction{hexboard.South, hexboard.South, hexboard.South},
			Template:  ruleset.TemplateE,
		},
	}
}

func findAction(actions []game.Action, pred func(game.Action) bool) (game.Action, bool) {
	for _, a := range actions {
		if pred(a) {
			return a, true
		}
	}
	return game.Action{}, false
}

func countActions(actions []game.Action, pred func(game.Action) bool) int {
	n := 0
	for _, a := range actions {
		if pred(a) {
			n++
		}
	}
	return n
}

func TestNewStateFromRuleset(t *testing.T) {
	s, err := game.NewState(minimalRuleSet())
	require.NoError(t, err)
	assert.Len(t, s.Board, 6)
	assert.Equal(t, hexboard.WhiteKingPos, s.KingPos[0])
	assert.Equal(t, hexboard.BlackKingPos, s.KingPos[1])
	assert.Equal(t, 1, s.RoundNumber)
	assert.Equal(t, 0, s.CurrentPlayer)
	assert.False(t, s.IsTerminal())
}

func TestNewStateRejectsInvalidRuleset(t *testing.T) {
	rs := minimalRuleSet()
	rs.White.Positions[1] = rs.White.Positions[0]
	_, err := game.NewState(rs)
	assert.Error(t, err)
}

// TestQueenSlideCapturesAndStops exercises the empty-center capture
// scenario: a sliding queen passes through an empty cell, captures the
// first enemy it meets, and cannot reach beyond it.
func TestQueenSlideCapturesAndStops(t *testing.T) {
	s := &game.State{
		Board: game.Board{
			hexboard.Hex{Q: 0, R: -2}: {Kind: "D5", Owner: 0, Facing: hexboard.South},
			hexboard.Hex{Q: 0, R: 0}:  {Kind: "A1", Owner: 1, Facing: hexboard.South},
			hexboard.WhiteKingPos:     {Kind: "K1", Owner: 0, Facing: hexboard.North},
			hexboard.BlackKingPos:     {Kind: "K1", Owner: 1, Facing: hexboard.South},
		},
		Graveyard:   [2]game.Graveyard{{}, {}},
		Templates:   [2]ruleset.TemplateID{ruleset.TemplateE, ruleset.TemplateE},
		RoundNumber: 1,
		KingPos:     [2]hexboard.Hex{hexboard.WhiteKingPos, hexboard.BlackKingPos},
	}

	actions := game.GenerateLegalActions(s)
	queen := hexboard.Hex{Q: 0, R: -2}

	_, throughEmpty := findAction(actions, func(a game.Action) bool {
		return a.Type == game.ActionTypeMove && a.From == queen && a.To == (hexboard.Hex{Q: 0, R: -1})
	})
	assert.True(t, throughEmpty, "queen should be able to slide through the empty cell in front of it")

	_, capture := findAction(actions, func(a game.Action) bool {
		return a.Type == game.ActionTypeMove && a.From == queen && a.To == (hexboard.Hex{Q: 0, R: 0})
	})
	assert.True(t, capture, "queen should be able to capture the piece blocking its slide")

	_, beyond := findAction(actions, func(a game.Action) bool {
		return a.Type == game.ActionTypeMove && a.From == queen && a.To == (hexboard.Hex{Q: 0, R: 1})
	})
	assert.False(t, beyond, "queen should not be able to slide past a captured piece")
}

// TestPhasedPieceBlocksButCannotBeCaptured exercises the phased standoff
// scenario: a phased piece still occupies its hex and blocks travel through
// it, but the mover can neither capture it nor move onto it.
func TestPhasedPieceBlocksButCannotBeCaptured(t *testing.T) {
	s := &game.State{
		Board: game.Board{
			hexboard.Hex{Q: 0, R: 0}: {Kind: "G1", Owner: 0, Facing: hexboard.North},
			hexboard.Hex{Q: 0, R: 2}: {Kind: "D5", Owner: 1, Facing: hexboard.North},
			hexboard.WhiteKingPos:    {Kind: "K1", Owner: 0, Facing: hexboard.North},
			hexboard.BlackKingPos:    {Kind: "K1", Owner: 1, Facing: hexboard.South},
		},
		Graveyard:     [2]game.Graveyard{{}, {}},
		Templates:     [2]ruleset.TemplateID{ruleset.TemplateE, ruleset.TemplateE},
		CurrentPlayer: 1,
		RoundNumber:   1,
		KingPos:       [2]hexboard.Hex{hexboard.WhiteKingPos, hexboard.BlackKingPos},
	}

	actions := game.GenerateLegalActions(s)
	slider := hexboard.Hex{Q: 0, R: 2}

	_, intoEmpty := findAction(actions, func(a game.Action) bool {
		return a.Type == game.ActionTypeMove && a.From == slider && a.To == (hexboard.Hex{Q: 0, R: 1})
	})
	assert.True(t, intoEmpty)

	_, ontoPhased := findAction(actions, func(a game.Action) bool {
		return a.Type == game.ActionTypeMove && a.From == slider && a.To == (hexboard.Hex{Q: 0, R: 0})
	})
	assert.False(t, ontoPhased, "a phased piece cannot be captured")

	_, beyondPhased := findAction(actions, func(a game.Action) bool {
		return a.Type == game.ActionTypeMove && a.From == slider && a.To == (hexboard.Hex{Q: 0, R: -1})
	})
	assert.False(t, beyondPhased, "a phased piece still blocks travel through its hex")
}

func TestRebirthPlacementFromGraveyard(t *testing.T) {
	king := hexboard.WhiteKingPos
	s := &game.State{
		Board: game.Board{
			king:                  {Kind: "K1", Owner: 0, Facing: hexboard.North},
			hexboard.BlackKingPos: {Kind: "K1", Owner: 1, Facing: hexboard.South},
		},
		Graveyard:   [2]game.Graveyard{{"P1": 1}, {}},
		Templates:   [2]ruleset.TemplateID{ruleset.TemplateE, ruleset.TemplateE},
		RoundNumber: 1,
		KingPos:     [2]hexboard.Hex{king, hexboard.BlackKingPos},
	}

	actions := game.GenerateLegalActions(s)
	rebirth, ok := findAction(actions, func(a game.Action) bool {
		return a.Type == game.ActionTypeRebirth && a.Kind == "P1"
	})
	require.True(t, ok, "a rebirth action should be offered while the graveyard holds a Phoenix")
	assert.Equal(t, 1, hexboard.Distance(king, rebirth.To))

	next := s.Apply(rebirth)
	assert.Equal(t, 0, next.Graveyard[0]["P1"])
	placed, ok := next.Board[rebirth.To]
	require.True(t, ok)
	assert.Equal(t, "P1", placed.Kind)
	assert.Equal(t, rebirth.Facing, placed.Facing)
}

func TestCapturingKingEndsGame(t *testing.T) {
	s := &game.State{
		Board: game.Board{
			hexboard.Hex{Q: 1, R: -4}: {Kind: "A1", Owner: 0, Facing: hexboard.North},
			hexboard.BlackKingPos:     {Kind: "K1", Owner: 1, Facing: hexboard.South},
			hexboard.WhiteKingPos:     {Kind: "K1", Owner: 0, Facing: hexboard.North},
		},
		Graveyard:   [2]game.Graveyard{{}, {}},
		Templates:   [2]ruleset.TemplateID{ruleset.TemplateE, ruleset.TemplateE},
		RoundNumber: 1,
		KingPos:     [2]hexboard.Hex{hexboard.WhiteKingPos, hexboard.BlackKingPos},
	}

	next := s.Apply(game.Action{Type: game.ActionTypeMove, From: hexboard.Hex{Q: 1, R: -4}, To: hexboard.BlackKingPos})
	require.NotNil(t, next.Winner)
	assert.Equal(t, 0, *next.Winner)
	assert.True(t, next.IsTerminal())
}

func TestSwapMoveExchangesPositions(t *testing.T) {
	warper := hexboard.Hex{Q: 0, R: 2}
	friend := hexboard.Hex{Q: 0, R: 3}
	s := &game.State{
		Board: game.Board{
			warper:                 {Kind: "W1", Owner: 0, Facing: hexboard.North},
			friend:                 {Kind: "A1", Owner: 0, Facing: hexboard.North},
			hexboard.WhiteKingPos:  {Kind: "K1", Owner: 0, Facing: hexboard.North},
			hexboard.BlackKingPos:  {Kind: "K1", Owner: 1, Facing: hexboard.South},
		},
		Graveyard:   [2]game.Graveyard{{}, {}},
		Templates:   [2]ruleset.TemplateID{ruleset.TemplateE, ruleset.TemplateE},
		RoundNumber: 1,
		KingPos:     [2]hexboard.Hex{hexboard.WhiteKingPos, hexboard.BlackKingPos},
	}

	actions := game.GenerateLegalActions(s)
	swap, ok := findAction(actions, func(a game.Action) bool {
		return a.Type == game.ActionTypeSwap && a.From == warper && a.To == friend
	})
	require.True(t, ok)

	next := s.Apply(swap)
	assert.Equal(t, "A1", next.Board[warper].Kind)
	assert.Equal(t, "W1", next.Board[friend].Kind)
}

func TestOmnidirectionalPieceHasNoPlainRotate(t *testing.T) {
	h := hexboard.Hex{Q: 0, R: 2}
	s := &game.State{
		Board: game.Board{
			h:                     {Kind: "A2", Owner: 0, Facing: hexboard.North}, // Guard, all-dirs
			hexboard.WhiteKingPos: {Kind: "K1", Owner: 0, Facing: hexboard.North},
			hexboard.BlackKingPos: {Kind: "K1", Owner: 1, Facing: hexboard.South},
		},
		Graveyard:   [2]game.Graveyard{{}, {}},
		Templates:   [2]ruleset.TemplateID{ruleset.TemplateE, ruleset.TemplateE},
		RoundNumber: 1,
		KingPos:     [2]hexboard.Hex{hexboard.WhiteKingPos, hexboard.BlackKingPos},
	}

	actions := game.GenerateLegalActions(s)
	assert.Equal(t, 0, countActions(actions, func(a game.Action) bool {
		return a.Type == game.ActionTypeRotate && a.From == h
	}))
}

func TestPassAndSurrenderAlwaysOffered(t *testing.T) {
	s, err := game.NewState(minimalRuleSet())
	require.NoError(t, err)

	actions := game.GenerateLegalActions(s)
	assert.Equal(t, 1, countActions(actions, func(a game.Action) bool { return a.Type == game.ActionTypePass }))
	assert.Equal(t, 1, countActions(actions, func(a game.Action) bool { return a.Type == game.ActionTypeSurrender }))
}

// TestRoundLimitProximityWin exercises the round-50 proximity tiebreaker:
// once round 50 completes without a king capture, the king closer to the
// board center wins outright.
func TestRoundLimitProximityWin(t *testing.T) {
	whiteKing := hexboard.Hex{Q: 0, R: 1}
	blackKing := hexboard.Hex{Q: 0, R: -3}
	s := &game.State{
		Board: game.Board{
			whiteKing: {Kind: "K1", Owner: 0, Facing: hexboard.North},
			blackKing: {Kind: "K1", Owner: 1, Facing: hexboard.South},
		},
		Graveyard:     [2]game.Graveyard{{}, {}},
		Templates:     [2]ruleset.TemplateID{ruleset.TemplateE, ruleset.TemplateE},
		CurrentPlayer: 1,
		RoundNumber:   50,
		KingPos:       [2]hexboard.Hex{whiteKing, blackKing},
	}

	next := s.Apply(game.Action{Type: game.ActionTypePass})
	require.NotNil(t, next.Winner)
	assert.Equal(t, 0, *next.Winner)
	assert.Equal(t, 51, next.RoundNumber)
}
