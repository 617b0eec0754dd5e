package evolve

import (
	"math/rand"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/mutate"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// seedPopulation builds the generation-0 population: one individual per
// named seed (up to size; an empty library yields an empty population),
// then heavily-mutated variants of a
// random seed filling any remaining slots so the population starts from
// human-coherent armies rather than pure chaos (§C.1).
//
// A from-scratch random-genome generator has no grounding in any example
// or in hexwar/seeds.py, which only ever starts evolution from named
// presets; building "variety" by repeatedly mutating a random preset
// reuses the already-built, already-tested mutation operators instead of
// inventing a second, parallel randomization path.
func seedPopulation(size int, cfg Config, rnd *rand.Rand) []ruleset.RuleSet {
	names := cfg.Seeds.Names()
	pop := make([]ruleset.RuleSet, 0, size)

	for _, name := range names {
		if len(pop) >= size {
			break
		}
		rs, _ := cfg.Seeds.Get(name)
		pop = append(pop, applyPin(rs, cfg))
	}
	for len(pop) < size && len(names) > 0 {
		base := names[rnd.Intn(len(names))]
		rs, ok := cfg.Seeds.Get(base)
		if !ok {
			break
		}
		rs = applyPin(rs, cfg)
		variations := 3 + rnd.Intn(4)
		for i := 0; i < variations; i++ {
			rs = mutate.RandomMutate(rs, cfg.Pin, rnd)
		}
		pop = append(pop, applyPin(rs, cfg))
	}
	return pop
}

// applyPin overwrites the pinned color's side with the caller's fixed
// army, so every individual the loop ever produces carries it verbatim
// (§4.8's fixed-side mode).
func applyPin(rs ruleset.RuleSet, cfg Config) ruleset.RuleSet {
	pinned, ok := cfg.PinnedSide.V()
	if !ok {
		return rs
	}
	switch cfg.Pin {
	case mutate.PinWhite:
		rs.White = cloneSide(pinned)
	case mutate.PinBlack:
		rs.Black = cloneSide(pinned)
	}
	return rs
}

func cloneSide(s ruleset.Side) ruleset.Side {
	return ruleset.Side{
		King:      s.King,
		Pieces:    append([]string(nil), s.Pieces...),
		Positions: append([]hexboard.Hex(nil), s.Positions...),
		Facings:   append([]hexboard.Direction(nil), s.Facings...),
		Template:  s.Template,
	}
}
