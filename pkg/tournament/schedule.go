// Package tournament implements the fitness probe for a single ruleset
// (C6): a matchup schedule across depth tiers, a parallel per-matchup game
// loop built on pkg/record's play-and-record driver, and the aggregation
// and fitness composite that the evolutionary loop (pkg/evolve) and fitness
// tracker (pkg/fitness) consume.
package tournament

// MatchupKind distinguishes the two probes a matchup can serve.
type MatchupKind int

const (
	// KindFairness is an equal-depth matchup (t vs t), probing color
	// fairness: neither color should have an inherent advantage.
	KindFairness MatchupKind = iota
	// KindSkill is an asymmetric matchup (deeper vs shallower), probing the
	// skill gradient: deeper search should reliably win.
	KindSkill
)

// Matchup is one scheduled pairing within a tournament: a depth for each
// side of the "deeper" vs "shallower" framing (DeepDepth == ShallowDepth
// for a fairness matchup), a game count, and an aggregation weight.
type Matchup struct {
	Kind         MatchupKind
	DeepDepth    int
	ShallowDepth int
	Games        int
	Weight       float64
}

// DepthGap is DeepDepth - ShallowDepth (0 for a fairness matchup).
func (m Matchup) DepthGap() int {
	return m.DeepDepth - m.ShallowDepth
}

// DefaultGamesPerMatchup and DefaultTargetTierGames are the per-matchup
// game counts (§4.6 specifies "extra games" for the target-depth tier but
// leaves the exact multiplier to the implementer).
const (
	DefaultGamesPerMatchup  = 10
	DefaultTargetTierGames  = 20
	TargetTierWeightBonus   = 1.5
)

// BuildSchedule generates the matchup schedule for base depth d, covering
// depth tiers {2, 4, ..., d} (§4.6). d must be even and >= 2.
func BuildSchedule(baseDepth int) []Matchup {
	var tiers []int
	for t := 2; t <= baseDepth; t += 2 {
		tiers = append(tiers, t)
	}

	var schedule []Matchup
	for _, t := range tiers {
		games := DefaultGamesPerMatchup
		weight := 1.0
		if t == baseDepth {
			games = DefaultTargetTierGames
			weight = TargetTierWeightBonus
		}
		schedule = append(schedule, Matchup{
			Kind:         KindFairness,
			DeepDepth:    t,
			ShallowDepth: t,
			Games:        games,
			Weight:       weight,
		})

		if t >= 3 {
			schedule = append(schedule, Matchup{
				Kind:         KindSkill,
				DeepDepth:    t,
				ShallowDepth: t - 1,
				Games:        DefaultGamesPerMatchup,
				Weight:       skillWeight(1),
			})
		}
		if t >= 4 {
			schedule = append(schedule, Matchup{
				Kind:         KindSkill,
				DeepDepth:    t,
				ShallowDepth: t - 2,
				Games:        DefaultGamesPerMatchup,
				Weight:       skillWeight(2),
			})
		}
	}
	return schedule
}

// skillWeight implements "weight 1 + 0.5 * (depth gap - 1)" (§4.6).
func skillWeight(depthGap int) float64 {
	return 1 + 0.5*float64(depthGap-1)
}
