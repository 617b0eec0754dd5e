package tournament

import (
	"context"
	"fmt"

	"github.com/hexwar/balancer/pkg/record"
	"github.com/hexwar/balancer/pkg/ruleset"
	"github.com/seekerror/logw"
	"golang.org/x/sync/errgroup"
)

// DefaultMoveBudget is the per-game search truncation Run passes to
// pkg/search when the caller configures none (moveBudget <= 0); it has the
// same value as search.DefaultMoveBudget (§4.5).
const DefaultMoveBudget = 15

// GameResult is one played game's outcome, reduced to what the aggregation
// in metrics.go needs: which color was deeper, who won, and how long the
// game ran.
type GameResult struct {
	DeeperIsWhite bool
	Winner        *int // nil only if the safety cap was hit with no resolution
	Rounds        int
}

// MatchupResult is every game played for one scheduled Matchup.
type MatchupResult struct {
	Matchup Matchup
	Games   []GameResult
}

// Result is a complete tournament: every matchup's games, aggregated, plus
// the non-linear fitness composite (§4.6).
type Result struct {
	Matchups []MatchupResult
	Metrics  Metrics
	Fitness  float64
}

// Run plays the full schedule for rs at base depth d, using seed to derive
// one independent seed per game (§5: "the driver draws a fresh seed for
// each tournament and a per-game derivation inside a tournament advances
// deterministically"). Matchups run concurrently, one goroutine each; the
// games of one matchup run sequentially (see runMatchup), and each game
// itself is single-threaded and deterministic.
func Run(ctx context.Context, rs ruleset.RuleSet, baseDepth int, seed int64, moveBudget int) (Result, error) {
	schedule := BuildSchedule(baseDepth)
	if moveBudget <= 0 {
		moveBudget = DefaultMoveBudget
	}

	matchups := make([]MatchupResult, len(schedule))
	g, gctx := errgroup.WithContext(ctx)

	gameSeed := seed
	for i, m := range schedule {
		i, m := i, m
		base := gameSeed
		gameSeed += int64(m.Games)

		g.Go(func() error {
			games, err := runMatchup(gctx, rs, m, base, moveBudget)
			if err != nil {
				return fmt.Errorf("matchup %d (depth %d vs %d): %w", i, m.DeepDepth, m.ShallowDepth, err)
			}
			matchups[i] = MatchupResult{Matchup: m, Games: games}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logw.Errorf(ctx, "tournament run aborted: %v", err)
		return Result{}, err
	}

	metrics := Aggregate(matchups)
	fitness := Fitness(metrics, matchups)
	logw.Infof(ctx, "tournament for %v: fitness=%.3f skill_gradient=%.3f color_fairness=%.3f",
		rs.Signature(), fitness, metrics.SkillGradient, metrics.ColorFairness)

	return Result{Matchups: matchups, Metrics: metrics, Fitness: fitness}, nil
}

// runMatchup plays one matchup's games sequentially (the games themselves
// are cheap relative to matchup dispatch overhead; Run already parallelizes
// across matchups).
func runMatchup(ctx context.Context, rs ruleset.RuleSet, m Matchup, seedBase int64, moveBudget int) ([]GameResult, error) {
	results := make([]GameResult, 0, m.Games)
	for i := 0; i < m.Games; i++ {
		seed := seedBase + int64(i)
		deeperIsWhite := seed%2 == 0

		whiteDepth, blackDepth := m.ShallowDepth, m.DeepDepth
		if deeperIsWhite {
			whiteDepth, blackDepth = m.DeepDepth, m.ShallowDepth
		}

		gr, err := record.Play(ctx, rs, whiteDepth, blackDepth, moveBudget, seed)
		if err != nil {
			return nil, err
		}
		results = append(results, GameResult{
			DeeperIsWhite: deeperIsWhite,
			Winner:        gr.Winner,
			Rounds:        gr.FinalRound,
		})
	}
	return results, nil
}
