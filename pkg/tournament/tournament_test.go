package tournament_test

import (
	"context"
	"testing"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/ruleset"
	"github.com/hexwar/balancer/pkg/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(i int) *int { return &i }

func TestBuildScheduleCoversTiers(t *testing.T) {
	schedule := tournament.BuildSchedule(4)
	require.Len(t, schedule, 4)

	assert.Equal(t, tournament.KindFairness, schedule[0].Kind)
	assert.Equal(t, 2, schedule[0].DeepDepth)
	assert.Equal(t, 2, schedule[0].ShallowDepth)

	assert.Equal(t, tournament.KindFairness, schedule[1].Kind)
	assert.Equal(t, 4, schedule[1].DeepDepth)
	assert.Equal(t, tournament.DefaultTargetTierGames, schedule[1].Games, "target tier gets extra games")

	assert.Equal(t, tournament.KindSkill, schedule[2].Kind)
	assert.Equal(t, 4, schedule[2].DeepDepth)
	assert.Equal(t, 3, schedule[2].ShallowDepth)

	assert.Equal(t, tournament.KindSkill, schedule[3].Kind)
	assert.Equal(t, 4, schedule[3].DeepDepth)
	assert.Equal(t, 2, schedule[3].ShallowDepth)
	assert.Greater(t, schedule[3].Weight, schedule[2].Weight, "a 2-ply gap must be weighted higher than a 1-ply gap")
}

func TestAggregateColorFairnessPerfectlyBalanced(t *testing.T) {
	matchups := []tournament.MatchupResult{
		{
			Matchup: tournament.Matchup{Kind: tournament.KindFairness, Weight: 1},
			Games: []tournament.GameResult{
				{Winner: ptr(0), Rounds: 20},
				{Winner: ptr(1), Rounds: 20},
				{Winner: ptr(0), Rounds: 20},
				{Winner: ptr(1), Rounds: 20},
			},
		},
	}
	m := tournament.Aggregate(matchups)
	assert.Equal(t, 1.0, m.ColorFairness)
	assert.Equal(t, 1.0, m.GameRichness)
	assert.Equal(t, 1.0, m.Decisiveness)
}

func TestAggregateSkillGradientFavorsDeeperSide(t *testing.T) {
	matchups := []tournament.MatchupResult{
		{
			Matchup: tournament.Matchup{Kind: tournament.KindSkill, Weight: 1},
			Games: []tournament.GameResult{
				{DeeperIsWhite: true, Winner: ptr(0), Rounds: 20},
				{DeeperIsWhite: false, Winner: ptr(1), Rounds: 20},
				{DeeperIsWhite: true, Winner: ptr(0), Rounds: 20},
				{DeeperIsWhite: false, Winner: ptr(1), Rounds: 20},
			},
		},
	}
	m := tournament.Aggregate(matchups)
	assert.Equal(t, 1.0, m.SkillGradient)
}

func TestGameRichnessRampsOutsideWindow(t *testing.T) {
	inWindow := tournament.Aggregate([]tournament.MatchupResult{
		{Matchup: tournament.Matchup{Kind: tournament.KindFairness, Weight: 1}, Games: []tournament.GameResult{{Winner: ptr(0), Rounds: 25}}},
	})
	assert.Equal(t, 1.0, inWindow.GameRichness)

	tooShort := tournament.Aggregate([]tournament.MatchupResult{
		{Matchup: tournament.Matchup{Kind: tournament.KindFairness, Weight: 1}, Games: []tournament.GameResult{{Winner: ptr(0), Rounds: 5}}},
	})
	assert.Equal(t, 0.0, tooShort.GameRichness)

	tooLong := tournament.Aggregate([]tournament.MatchupResult{
		{Matchup: tournament.Matchup{Kind: tournament.KindFairness, Weight: 1}, Games: []tournament.GameResult{{Winner: ptr(0), Rounds: 60}}},
	})
	assert.Equal(t, 0.0, tooLong.GameRichness)
}

func TestFitnessAppliesGrossColorImbalancePenalty(t *testing.T) {
	matchups := []tournament.MatchupResult{
		{
			Matchup: tournament.Matchup{Kind: tournament.KindFairness, Weight: 1},
			Games: []tournament.GameResult{
				{Winner: ptr(0), Rounds: 20}, {Winner: ptr(0), Rounds: 20},
				{Winner: ptr(0), Rounds: 20}, {Winner: ptr(0), Rounds: 20},
			},
		},
		{
			Matchup: tournament.Matchup{Kind: tournament.KindSkill, Weight: 1},
			Games: []tournament.GameResult{
				{DeeperIsWhite: true, Winner: ptr(0), Rounds: 20},
				{DeeperIsWhite: true, Winner: ptr(0), Rounds: 20},
			},
		},
	}
	m := tournament.Aggregate(matchups)
	withPenalty := tournament.Fitness(m, matchups)

	clean := []tournament.MatchupResult{
		{
			Matchup: tournament.Matchup{Kind: tournament.KindFairness, Weight: 1},
			Games: []tournament.GameResult{
				{Winner: ptr(0), Rounds: 20}, {Winner: ptr(1), Rounds: 20},
				{Winner: ptr(0), Rounds: 20}, {Winner: ptr(1), Rounds: 20},
			},
		},
		matchups[1],
	}
	cleanM := tournament.Aggregate(clean)
	withoutPenalty := tournament.Fitness(cleanM, clean)

	assert.Less(t, withPenalty, withoutPenalty)
}

func TestFitnessAppliesLowSkillGradientPenalty(t *testing.T) {
	matchups := []tournament.MatchupResult{
		{
			Matchup: tournament.Matchup{Kind: tournament.KindSkill, Weight: 1},
			Games: []tournament.GameResult{
				{DeeperIsWhite: true, Winner: ptr(1), Rounds: 20},
				{DeeperIsWhite: true, Winner: ptr(1), Rounds: 20},
			},
		},
	}
	m := tournament.Aggregate(matchups)
	require.Less(t, m.SkillGradient, 0.80)

	fitness := tournament.Fitness(m, matchups)
	assert.Less(t, fitness, 0.40*1.0+0.35*0+0.15*0+0.10*1.0)
}

func TestMatchupStatsComputedProperties(t *testing.T) {
	mr := tournament.MatchupResult{
		Matchup: tournament.Matchup{Kind: tournament.KindSkill, DeepDepth: 4, ShallowDepth: 2},
		Games: []tournament.GameResult{
			{DeeperIsWhite: true, Winner: ptr(0), Rounds: 20},  // deeper wins, white wins
			{DeeperIsWhite: false, Winner: ptr(1), Rounds: 30}, // deeper wins, black wins
			{DeeperIsWhite: true, Winner: ptr(1), Rounds: 10},  // upset, black wins
			{DeeperIsWhite: false, Winner: nil, Rounds: 40},    // draw
		},
	}

	assert.Equal(t, 25.0, mr.AvgRounds(), "mean of 20,30,10,40")
	assert.Equal(t, 0.5, mr.DeeperWinRate(), "2 of 4 games won by the deeper side")
	assert.Equal(t, 1.0/3.0, mr.WhiteWinRate(), "1 white win of 3 decisive games")
	assert.Equal(t, 0.25, mr.UpsetRate(), "1 of 4 games won by the shallower side")
}

func TestMatchupStatsWhiteWinRateDefaultsToHalfOnAllDraws(t *testing.T) {
	mr := tournament.MatchupResult{
		Games: []tournament.GameResult{
			{Winner: nil, Rounds: 20},
			{Winner: nil, Rounds: 22},
		},
	}
	assert.Equal(t, 0.5, mr.WhiteWinRate())
	assert.Equal(t, 0.0, mr.UpsetRate())
	assert.Equal(t, 0.0, mr.DeeperWinRate())
}

func minimalRuleSet() ruleset.RuleSet {
	return ruleset.RuleSet{
		White: ruleset.Side{
			King:      "K1",
			Pieces:    []string{"D5"},
			Positions: []hexboard.Hex{hexboard.WhiteKingPos, {0, 2}},
			Facings:   []hexboard.Direction{hexboard.North, hexboard.North},
			Template:  ruleset.TemplateE,
		},
		Black: ruleset.Side{
			King:      "K1",
			Pieces:    []string{"D5"},
			Positions: []hexboard.Hex{hexboard.BlackKingPos, {0, -2}},
			Facings:   []hexboard.Direction{hexboard.South, hexboard.South},
			Template:  ruleset.TemplateE,
		},
	}
}

// TestRunProducesABoundedFitness exercises the "deeper-beats-shallower
// sanity" shape (§8) end to end on a small ruleset: Run must complete
// without error and every metric must land inside the fitness composite's
// natural [0, 1] range.
func TestRunProducesABoundedFitness(t *testing.T) {
	rs := minimalRuleSet()
	result, err := tournament.Run(context.Background(), rs, 4, 1, 6)
	require.NoError(t, err)
	require.NotEmpty(t, result.Matchups)

	assert.GreaterOrEqual(t, result.Fitness, 0.0)
	assert.LessOrEqual(t, result.Fitness, 1.0)
	assert.GreaterOrEqual(t, result.Metrics.SkillGradient, 0.0)
	assert.LessOrEqual(t, result.Metrics.SkillGradient, 1.0)
}

// TestDeeperSearchBeatsShallowerSearch exercises §8 scenario 5's shape end
// to end: a symmetric ruleset played across the schedule's skill-tier
// matchups (deeper vs shallower, alternating which color is deeper) must
// show the deeper side winning its decisive games more often than not. The
// spec's own 0.7 threshold calibrates the production default armies and
// game count; this asserts the weaker, fixture-safe direction (> 0.5)
// rather than pin the exact production bound to a minimal 2-piece army.
func TestDeeperSearchBeatsShallowerSearch(t *testing.T) {
	rs := minimalRuleSet()
	result, err := tournament.Run(context.Background(), rs, 4, 9, 6)
	require.NoError(t, err)

	var skill []tournament.GameResult
	for _, m := range result.Matchups {
		if m.Matchup.Kind == tournament.KindSkill {
			skill = append(skill, m.Games...)
		}
	}
	require.NotEmpty(t, skill)

	combined := tournament.MatchupResult{Games: skill}
	assert.Greater(t, combined.DeeperWinRate(), 0.5)
}
