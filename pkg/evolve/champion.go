package evolve

import (
	"github.com/hexwar/balancer/pkg/fitness"
	"github.com/hexwar/balancer/pkg/namegen"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// Champion is emitted the first time a signature crosses the confidence
// threshold (§4.8): its deterministic name, the fitness tracker's snapshot
// at the moment of crossing, and the generation that produced it.
type Champion struct {
	Name              string
	Signature         string
	GenerationReached int
	NEvals            int
	UCBScore          float64
	MeanFitness       float64
	MinFitness        float64
	MaxFitness        float64
	RuleSet           ruleset.RuleSet
}

func newChampion(c fitness.Candidate, generation int) Champion {
	return Champion{
		Name:              namegen.Name(c.Signature),
		Signature:         c.Signature,
		GenerationReached: generation,
		NEvals:            c.NEvals,
		UCBScore:          c.UCB,
		MeanFitness:       c.MeanFitness,
		MinFitness:        c.MinFitness,
		MaxFitness:        c.MaxFitness,
		RuleSet:           c.RuleSet,
	}
}
