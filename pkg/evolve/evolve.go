// Package evolve implements the evolutionary loop (C8): a fixed-size
// population of rulesets refined generation over generation by tournament
// evaluation (pkg/tournament), a conservative-UCB fitness tracker
// (pkg/fitness), and the mutation/crossover operators of pkg/mutate,
// emitting a named champion (pkg/namegen) once a configuration's fitness
// is proven to the confidence threshold.
package evolve

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/hexwar/balancer/pkg/fitness"
	"github.com/hexwar/balancer/pkg/mutate"
	"github.com/hexwar/balancer/pkg/ruleset"
	"github.com/hexwar/balancer/pkg/tournament"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"golang.org/x/sync/errgroup"
)

// ErrHalted is returned by Run when the driver is halted mid-run via Halt,
// mirroring search.ErrHalted.
var ErrHalted = errors.New("evolve: run halted")

// DefaultPopulationSize, DefaultEliteCount and DefaultCloneSlots are the
// §4.8 production defaults. The clone-slot count per elite is unspecified
// by §4.8 beyond "C clone slots"; fixed here at 2.
const (
	DefaultPopulationSize = 8
	DefaultEliteCount     = 3
	DefaultCloneSlots     = 2
)

// maxMutateAttempts bounds the retries spent searching for a novel
// signature before a reproduction step gives up and lets the fallback
// fill take over (§4.8 step 7).
const maxMutateAttempts = 20

// Config configures one evolutionary run.
type Config struct {
	PopulationSize int
	EliteCount     int
	CloneSlots     int
	Generations    int
	BaseDepth      int
	// MoveBudget is unset by default, in which case tournament.Run applies
	// its own production default — distinct from "explicitly configured to
	// the production default value".
	MoveBudget lang.Optional[int]
	TrackerC   float64
	MinEvals   int
	Seeds      SeedLibrary

	// Pin and PinnedSide implement the fixed-side mode (§4.8): when Pin is
	// not PinNone, PinnedSide must hold the fixed color's army, copied
	// into every individual the loop ever produces.
	Pin        mutate.Pin
	PinnedSide lang.Optional[ruleset.Side]
}

// moveBudget resolves the configured move budget, or 0 (tournament.Run's
// own "fall back to the production default" sentinel) if unset.
func (cfg Config) moveBudget() int {
	v, _ := cfg.MoveBudget.V()
	return v
}

func (cfg Config) withDefaults() Config {
	if cfg.PopulationSize <= 0 {
		cfg.PopulationSize = DefaultPopulationSize
	}
	if cfg.EliteCount <= 0 {
		cfg.EliteCount = DefaultEliteCount
	}
	if cfg.CloneSlots <= 0 {
		cfg.CloneSlots = DefaultCloneSlots
	}
	if cfg.Generations <= 0 {
		cfg.Generations = 1
	}
	if cfg.BaseDepth <= 0 {
		cfg.BaseDepth = 4
	}
	if cfg.Seeds == nil {
		cfg.Seeds = DefaultSeeds
	}
	return cfg
}

// MinEvalsOrDefault exposes the effective min-evals threshold, for callers
// sizing their own verification or reproduction budgets.
func (cfg Config) MinEvalsOrDefault() int {
	if cfg.MinEvals <= 0 {
		return fitness.DefaultMinEvals
	}
	return cfg.MinEvals
}

// scored is one ruleset's standing within a generation: its latest
// tournament result and the tracker's conservative-UCB score for it.
type scored struct {
	RuleSet ruleset.RuleSet
	Result  tournament.Result
	UCB     float64
}

// evalTask is one queued tournament evaluation.
type evalTask struct {
	RuleSet ruleset.RuleSet
	Seed    int64
}

// Driver owns the fitness tracker and PRNG stream for one evolutionary
// run; it is not safe for concurrent use by multiple callers (§5: the
// tracker belongs exclusively to the driver). The embedded iox.AsyncCloser
// gives it an external halt lifecycle, mirroring searchctl.handle.
type Driver struct {
	iox.AsyncCloser

	cfg       Config
	tracker   *fitness.Tracker
	rnd       *rand.Rand
	nextSeed  int64
	results   map[string]tournament.Result
	champions []Champion
	champSeen map[string]bool
}

// NewDriver builds a driver seeded deterministically from seed.
func NewDriver(cfg Config, seed int64) *Driver {
	cfg = cfg.withDefaults()
	return &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		cfg:         cfg,
		tracker:     fitness.NewTracker(cfg.TrackerC, cfg.MinEvals),
		rnd:         rand.New(rand.NewSource(seed)),
		nextSeed:    seed,
		results:     map[string]tournament.Result{},
		champSeen:   map[string]bool{},
	}
}

// Halt stops the run at the next generation or verification-round
// boundary. Idempotent; safe to call from another goroutine while Run is
// in flight.
func (d *Driver) Halt() {
	d.Close()
}

// Champions returns every champion emitted so far, in emission order.
func (d *Driver) Champions() []Champion {
	return append([]Champion(nil), d.champions...)
}

// drawSeed hands out the next per-tournament seed from the driver's
// partitioned stream (§5: "the driver draws a fresh seed for each
// tournament").
func (d *Driver) drawSeed() int64 {
	s := d.nextSeed
	d.nextSeed++
	return s
}

// Run drives cfg.Generations generations of evaluation and selection, then
// the final verification phase, returning the reported winner. It checks
// for cooperative cancellation (ctx done or Halt called) at each generation
// boundary.
func (d *Driver) Run(ctx context.Context) (Champion, error) {
	wctx, cancel := contextx.WithQuitCancel(ctx, d.Closed())
	defer cancel()

	pop := seedPopulation(d.cfg.PopulationSize, d.cfg, d.rnd)

	for gen := 1; gen <= d.cfg.Generations; gen++ {
		if contextx.IsCancelled(wctx) {
			logw.Infof(ctx, "evolve: run halted before generation %d", gen)
			return Champion{}, ErrHalted
		}
		pool, err := d.evaluateGeneration(wctx, gen, pop)
		if err != nil {
			return Champion{}, err
		}
		pop = d.nextGeneration(pool)
	}

	if contextx.IsCancelled(wctx) {
		return Champion{}, ErrHalted
	}
	return d.verify(wctx)
}

// evaluateGeneration evaluates pop (reusing cached tournament results for
// proven signatures), tops the queue up with exploratory mutants of the
// current elites so the worker pool stays busy, dispatches every queued
// tournament concurrently, and returns the scored selection pool (§4.8
// steps 1-3).
func (d *Driver) evaluateGeneration(ctx context.Context, gen int, pop []ruleset.RuleSet) ([]scored, error) {
	var queue []evalTask
	queued := map[string]bool{}
	for _, rs := range pop {
		sig := rs.Signature()
		if queued[sig] {
			continue
		}
		if _, cached := d.results[sig]; cached && d.tracker.HasEnoughEvals(rs) {
			continue
		}
		queued[sig] = true
		queue = append(queue, evalTask{RuleSet: rs, Seed: d.drawSeed()})
	}

	for len(queue) < d.cfg.PopulationSize {
		source, ok := d.pickExploratorySource(pop)
		if !ok {
			break
		}
		mutant := applyPin(mutate.RandomMutate(source, d.cfg.Pin, d.rnd), d.cfg)
		sig := mutant.Signature()
		if queued[sig] {
			continue
		}
		queued[sig] = true
		queue = append(queue, evalTask{RuleSet: mutant, Seed: d.drawSeed()})
	}

	resultsBySig, err := d.runTasks(ctx, gen, queue)
	if err != nil {
		return nil, err
	}

	pool := make([]scored, 0, len(pop)+len(queue))
	added := map[string]bool{}
	addScored := func(rs ruleset.RuleSet) {
		sig := rs.Signature()
		if added[sig] {
			return
		}
		res, ok := resultsBySig[sig]
		if !ok {
			res, ok = d.results[sig]
		}
		if !ok {
			return
		}
		added[sig] = true
		pool = append(pool, scored{RuleSet: rs, Result: res, UCB: d.tracker.UCB(rs, res.Fitness)})
	}

	for _, rs := range pop {
		addScored(rs)
	}
	for _, t := range queue {
		addScored(t.RuleSet)
	}

	return pool, nil
}

// runTasks dispatches queue to a worker pool (the outer, per-ruleset
// concurrency tier, §5), recording every successful result into the
// tracker and emitting a champion the first time a signature crosses the
// confidence threshold.
func (d *Driver) runTasks(ctx context.Context, gen int, queue []evalTask) (map[string]tournament.Result, error) {
	type outcome struct {
		sig string
		res tournament.Result
	}
	out := make(chan outcome, len(queue))

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range queue {
		t := t
		g.Go(func() error {
			if contextx.IsCancelled(gctx) {
				return nil
			}
			res, err := tournament.Run(gctx, t.RuleSet, d.cfg.BaseDepth, t.Seed, d.cfg.moveBudget())
			if err != nil {
				logw.Errorf(gctx, "generation %d: tournament for %v failed: %v", gen, t.RuleSet.Signature(), err)
				return nil
			}
			out <- outcome{sig: t.RuleSet.Signature(), res: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generation %d evaluation: %w", gen, err)
	}
	close(out)

	bySig := make(map[string]tournament.Result, len(queue))
	for o := range out {
		bySig[o.sig] = o.res
	}

	for _, t := range queue {
		res, ok := bySig[t.RuleSet.Signature()]
		if !ok {
			continue
		}
		sig := t.RuleSet.Signature()
		d.results[sig] = res
		d.tracker.RecordResult(t.RuleSet, res)
		if !d.champSeen[sig] && d.tracker.HasEnoughEvals(t.RuleSet) {
			if c, ok := d.tracker.Get(sig); ok {
				d.champSeen[sig] = true
				d.champions = append(d.champions, newChampion(c, gen))
			}
		}
	}
	return bySig, nil
}

// pickExploratorySource returns the best-UCB individual in pop whose
// signature is not yet proven, for generating exploratory mutants when the
// queue is shorter than the worker pool (§4.8 step 1).
func (d *Driver) pickExploratorySource(pop []ruleset.RuleSet) (ruleset.RuleSet, bool) {
	best := -1
	bestUCB := 0.0
	for i, rs := range pop {
		if d.tracker.HasEnoughEvals(rs) {
			continue
		}
		current := 0.5
		if res, ok := d.results[rs.Signature()]; ok {
			current = res.Fitness
		}
		ucb := d.tracker.UCB(rs, current)
		if best == -1 || ucb > bestUCB {
			best, bestUCB = i, ucb
		}
	}
	if best == -1 {
		if len(pop) == 0 {
			return ruleset.RuleSet{}, false
		}
		return pop[d.rnd.Intn(len(pop))], true
	}
	return pop[best], true
}

// nextGeneration runs elite selection, adaptive reproduction, crossover
// fill and the fallback fill (§4.8 steps 4-7).
func (d *Driver) nextGeneration(pool []scored) []ruleset.RuleSet {
	elites := eliteSlice(pool, d.cfg.EliteCount)

	next := make([]ruleset.RuleSet, 0, d.cfg.PopulationSize)
	taken := map[string]bool{}
	add := func(rs ruleset.RuleSet) bool {
		if len(next) >= d.cfg.PopulationSize {
			return false
		}
		next = append(next, rs)
		taken[rs.Signature()] = true
		return true
	}

	for _, e := range elites {
		add(e.RuleSet)
		if d.tracker.NEvals(e.RuleSet) < d.cfg.MinEvalsOrDefault() {
			for i := 0; i < d.cfg.CloneSlots && len(next) < d.cfg.PopulationSize; i++ {
				next = append(next, e.RuleSet.Clone())
			}
			continue
		}
		for i := 0; i < d.cfg.CloneSlots; i++ {
			mutant, ok := d.novelMutant(e.RuleSet, taken)
			if !ok || !add(mutant) {
				break
			}
		}
	}

	for len(next) < d.cfg.PopulationSize && len(pool) > 0 {
		p1 := tournamentSelect(pool, d.rnd)
		p2 := tournamentSelect(pool, d.rnd)

		var child ruleset.RuleSet
		ok := false
		for attempt := 0; attempt < maxMutateAttempts; attempt++ {
			candidate := mutate.Crossover(p1.RuleSet, p2.RuleSet, d.rnd)
			candidate = mutate.SmartMutate(candidate, whiteWinRate(p1.Result), d.cfg.Pin, d.rnd)
			candidate = applyPin(candidate, d.cfg)
			if !taken[candidate.Signature()] {
				child, ok = candidate, true
				break
			}
		}
		if !ok {
			break
		}
		add(child)
	}

	for len(next) < d.cfg.PopulationSize && len(elites) > 0 {
		base := elites[d.rnd.Intn(len(elites))].RuleSet
		candidate := mutate.RandomMutate(base, d.cfg.Pin, d.rnd)
		candidate = mutate.RandomMutate(candidate, d.cfg.Pin, d.rnd)
		candidate = applyPin(candidate, d.cfg)
		next = append(next, candidate)
		taken[candidate.Signature()] = true
	}

	return next
}

// novelMutant retries RandomMutate until it produces a signature that is
// neither already proven nor already present in taken (§4.8 step 5).
func (d *Driver) novelMutant(base ruleset.RuleSet, taken map[string]bool) (ruleset.RuleSet, bool) {
	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		candidate := applyPin(mutate.RandomMutate(base, d.cfg.Pin, d.rnd), d.cfg)
		sig := candidate.Signature()
		if taken[sig] || d.tracker.HasEnoughEvals(candidate) {
			continue
		}
		return candidate, true
	}
	return ruleset.RuleSet{}, false
}

// eliteSlice dedupes pool by signature, sorts by UCB descending, and
// returns the top n (§4.8 step 4).
func eliteSlice(pool []scored, n int) []scored {
	bySig := map[string]scored{}
	for _, s := range pool {
		sig := s.RuleSet.Signature()
		if existing, ok := bySig[sig]; !ok || s.UCB > existing.UCB {
			bySig[sig] = s
		}
	}
	out := make([]scored, 0, len(bySig))
	for _, s := range bySig {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UCB != out[j].UCB {
			return out[i].UCB > out[j].UCB
		}
		return out[i].RuleSet.Signature() < out[j].RuleSet.Signature()
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// tournamentSelect picks the higher-UCB of two randomly drawn pool
// entries, a lightweight tournament-selection pass over the scored pool.
func tournamentSelect(pool []scored, rnd *rand.Rand) scored {
	a := pool[rnd.Intn(len(pool))]
	b := pool[rnd.Intn(len(pool))]
	if a.UCB >= b.UCB {
		return a
	}
	return b
}

// whiteWinRate reduces a tournament result to a single white-win-rate
// signal for SmartMutate, pooling decisive games across every matchup.
func whiteWinRate(res tournament.Result) float64 {
	var whiteWins, decisive int
	for _, mr := range res.Matchups {
		s := mr.Stats()
		whiteWins += s.WhiteWins
		decisive += s.WhiteWins + s.BlackWins
	}
	if decisive == 0 {
		return 0.5
	}
	return float64(whiteWins) / float64(decisive)
}

// verify runs the final verification phase (§4.8): if a signature already
// crossed the confidence threshold, report the best-UCB one; otherwise
// keep sampling the most promising known candidates until one does.
func (d *Driver) verify(ctx context.Context) (Champion, error) {
	if c, ok := d.tracker.BestConfident(); ok {
		return d.reportWinner(c), nil
	}

	candidates := d.topUnconfirmed(3)
	maxRounds := d.cfg.MinEvalsOrDefault() + 1
	for round := 0; round < maxRounds && len(candidates) > 0; round++ {
		if contextx.IsCancelled(ctx) {
			return Champion{}, ErrHalted
		}
		progressed := false
		for _, rs := range candidates {
			if contextx.IsCancelled(ctx) {
				return Champion{}, ErrHalted
			}
			if d.tracker.HasEnoughEvals(rs) {
				continue
			}
			res, err := tournament.Run(ctx, rs, d.cfg.BaseDepth, d.drawSeed(), d.cfg.moveBudget())
			if err != nil {
				logw.Errorf(ctx, "verification: tournament for %v failed: %v", rs.Signature(), err)
				continue
			}
			sig := rs.Signature()
			d.results[sig] = res
			d.tracker.RecordResult(rs, res)
			progressed = true
			if d.tracker.HasEnoughEvals(rs) && !d.champSeen[sig] {
				if c, ok := d.tracker.Get(sig); ok {
					d.champSeen[sig] = true
					d.champions = append(d.champions, newChampion(c, d.cfg.Generations))
				}
			}
		}
		if c, ok := d.tracker.BestConfident(); ok {
			return d.reportWinner(c), nil
		}
		if !progressed {
			break
		}
	}

	return Champion{}, fmt.Errorf("evolve: no candidate reached the confidence threshold after verification")
}

func (d *Driver) reportWinner(c fitness.Candidate) Champion {
	for _, champ := range d.champions {
		if champ.Signature == c.Signature {
			return champ
		}
	}
	return newChampion(c, d.cfg.Generations)
}

// topUnconfirmed returns up to n recorded signatures with the highest
// UCB, regardless of confidence, to drive the final verification phase's
// further sampling.
func (d *Driver) topUnconfirmed(n int) []ruleset.RuleSet {
	type entry struct {
		rs  ruleset.RuleSet
		ucb float64
	}
	var entries []entry
	for sig := range d.results {
		c, ok := d.tracker.Get(sig)
		if !ok {
			continue
		}
		entries = append(entries, entry{rs: c.RuleSet, ucb: c.UCB})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ucb > entries[j].ucb })
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]ruleset.RuleSet, len(entries))
	for i, e := range entries {
		out[i] = e.rs
	}
	return out
}
