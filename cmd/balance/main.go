// balance runs the HEXWAR evolutionary army balancer end to end: a fixed
// population of rulesets, refined generation over generation by
// self-play tournaments, converges on a named, fitness-proven champion.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/hexwar/balancer/pkg/evolve"
	"github.com/hexwar/balancer/pkg/mutate"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// version identifies this balancer binary, mirroring herohde/morlock's
// engine.version.
var version = build.NewVersion(0, 1, 0)

var (
	population  = flag.Int("population", evolve.DefaultPopulationSize, "Population size")
	elites      = flag.Int("elites", evolve.DefaultEliteCount, "Elite count carried over each generation")
	generations = flag.Int("generations", 10, "Number of generations to run")
	depth       = flag.Int("depth", 4, "Base search depth for tournament evaluation")
	moveBudget  = flag.Int("move-budget", 0, "Per-node move-budget truncation (0 = tournament default)")
	minEvals    = flag.Int("min-evals", 0, "Evaluations required before a signature is considered proven (0 = default)")
	seed        = flag.Int64("seed", 1, "Root seed for the evolutionary run")
	pinSide     = flag.String("pin", "", "Fix one color's army across the run: \"white\" or \"black\" (default: neither)")
	seedName    = flag.String("seed-army", "", "If pinning a side, the named preset to copy it from (default: chess-like)")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	logw.Infof(ctx, "balance %v starting: population=%v generations=%v depth=%v", version, *population, *generations, *depth)

	cfg := evolve.Config{
		PopulationSize: *population,
		EliteCount:     *elites,
		Generations:    *generations,
		BaseDepth:      *depth,
		MinEvals:       *minEvals,
	}
	if *moveBudget > 0 {
		cfg.MoveBudget = lang.Some(*moveBudget)
	}

	if *pinSide != "" {
		name := *seedName
		if name == "" {
			name = "chess-like"
		}
		rs, ok := evolve.DefaultSeeds.Get(name)
		if !ok {
			logw.Exitf(ctx, "unknown seed army %q", name)
		}

		switch *pinSide {
		case "white":
			cfg.Pin = mutate.PinWhite
			cfg.PinnedSide = lang.Some(rs.White)
		case "black":
			cfg.Pin = mutate.PinBlack
			cfg.PinnedSide = lang.Some(rs.Black)
		default:
			logw.Exitf(ctx, "unknown -pin value %q: want \"white\" or \"black\"", *pinSide)
		}
	}

	driver := evolve.NewDriver(cfg, *seed)
	champ, err := driver.Run(ctx)
	if err != nil {
		logw.Exitf(ctx, "evolution failed: %v", err)
	}

	logw.Infof(ctx, "champion %q: signature=%v generation=%v n_evals=%v ucb=%.3f mean_fitness=%.3f",
		champ.Name, champ.Signature, champ.GenerationReached, champ.NEvals, champ.UCBScore, champ.MeanFitness)

	out, err := json.MarshalIndent(champ.RuleSet, "", "  ")
	if err != nil {
		logw.Exitf(ctx, "marshaling champion ruleset: %v", err)
	}
	fmt.Println(string(out))
}
