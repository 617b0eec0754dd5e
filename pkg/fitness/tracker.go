// Package fitness implements the conservative-UCB fitness tracker (C7):
// per-signature fitness history, a penalize-uncertainty score used to rank
// candidates, and a confidence threshold gating which candidates are
// trustworthy enough to report or retire as champions.
//
// A Tracker is owned exclusively by the evolutionary driver (§5): workers
// return tournament results by value and never touch the tracker
// themselves, so no synchronization is needed here.
package fitness

import (
	"math"

	"github.com/hexwar/balancer/pkg/ruleset"
	"github.com/hexwar/balancer/pkg/tournament"
	"github.com/seekerror/stdlib/pkg/lang"
)

// DefaultC is the conservative-UCB uncertainty constant (§4.7): slightly
// larger than one fitness standard deviation in the source system.
const DefaultC = 0.3

// DefaultMinEvals is the confidence threshold: a signature needs at least
// this many recorded samples before it is considered proven (§4.7).
const DefaultMinEvals = 8

// entry is one signature's accumulated history. The ruleset is remembered
// so a winning configuration can be reconstructed even after it has been
// evicted from the live population (§4.7).
type entry struct {
	ruleset ruleset.RuleSet
	samples []float64
	// full holds each sample's tournament breakdown, parallel to samples.
	// §3 describes the breakdown as optional: a sample recorded via Record
	// carries lang.None here, one recorded via RecordResult carries
	// lang.Some(the full tournament.Result).
	full []lang.Optional[tournament.Result]
}

func (e *entry) mean() float64 {
	sum := 0.0
	for _, s := range e.samples {
		sum += s
	}
	return sum / float64(len(e.samples))
}

func (e *entry) min() float64 {
	m := e.samples[0]
	for _, s := range e.samples[1:] {
		if s < m {
			m = s
		}
	}
	return m
}

func (e *entry) max() float64 {
	m := e.samples[0]
	for _, s := range e.samples[1:] {
		if s > m {
			m = s
		}
	}
	return m
}

// Tracker holds the fitness history of every signature sampled so far.
type Tracker struct {
	c        float64
	minEvals int
	entries  map[string]*entry
	// order preserves first-recorded order so iteration over the tracker
	// (e.g. for tie-breaking in BestConfident) is deterministic (§5:
	// "ties within a generation are resolved by iteration order over the
	// scored pool").
	order []string
}

// NewTracker builds a tracker with the given conservative-UCB constant and
// confidence threshold. A value <= 0 for either falls back to its default.
func NewTracker(c float64, minEvals int) *Tracker {
	if c <= 0 {
		c = DefaultC
	}
	if minEvals <= 0 {
		minEvals = DefaultMinEvals
	}
	return &Tracker{c: c, minEvals: minEvals, entries: map[string]*entry{}}
}

// Record appends one fitness sample to rs's signature history with no full
// breakdown retained. Use RecordResult when the caller has the complete
// tournament.Result and wants it kept for later inspection (§3's "optional
// full tournament breakdown").
func (t *Tracker) Record(rs ruleset.RuleSet, fitness float64) {
	t.record(rs, fitness, lang.Optional[tournament.Result]{})
}

// RecordResult appends one tournament's fitness sample to rs's signature
// history, retaining the full result alongside it.
func (t *Tracker) RecordResult(rs ruleset.RuleSet, result tournament.Result) {
	t.record(rs, result.Fitness, lang.Some(result))
}

func (t *Tracker) record(rs ruleset.RuleSet, fitness float64, full lang.Optional[tournament.Result]) {
	sig := rs.Signature()
	e, ok := t.entries[sig]
	if !ok {
		e = &entry{ruleset: rs}
		t.entries[sig] = e
		t.order = append(t.order, sig)
	}
	e.samples = append(e.samples, fitness)
	e.full = append(e.full, full)
}

// FullResults returns every tournament breakdown recorded for signature, in
// recording order. A sample recorded via Record (no breakdown given)
// appears as an unset Optional.
func (t *Tracker) FullResults(signature string) []lang.Optional[tournament.Result] {
	e, ok := t.entries[signature]
	if !ok {
		return nil
	}
	return append([]lang.Optional[tournament.Result](nil), e.full...)
}

// NEvals returns the number of samples recorded for rs's signature.
func (t *Tracker) NEvals(rs ruleset.RuleSet) int {
	e, ok := t.entries[rs.Signature()]
	if !ok {
		return 0
	}
	return len(e.samples)
}

// HasEnoughEvals reports whether rs's signature has reached the confidence
// threshold (§4.7).
func (t *Tracker) HasEnoughEvals(rs ruleset.RuleSet) bool {
	return t.NEvals(rs) >= t.minEvals
}

// UCB returns the conservative-UCB score for rs: mean(history) - c/sqrt(n)
// for a signature with recorded samples, or current - c for an unseen one
// (§4.7's maximum-uncertainty penalty). current is the caller's own fresh
// estimate (e.g. this generation's single sample) to fall back on.
func (t *Tracker) UCB(rs ruleset.RuleSet, current float64) float64 {
	e, ok := t.entries[rs.Signature()]
	if !ok {
		return current - t.c
	}
	n := len(e.samples)
	return e.mean() - t.c/math.Sqrt(float64(n))
}

// Candidate is a snapshot of one signature's tracked history, returned by
// BestConfident.
type Candidate struct {
	Signature   string
	RuleSet     ruleset.RuleSet
	NEvals      int
	UCB         float64
	MeanFitness float64
	MinFitness  float64
	MaxFitness  float64
}

// BestConfident returns the signature with maximum UCB among those that
// have reached the confidence threshold, or ok=false if none have (§4.7).
func (t *Tracker) BestConfident() (Candidate, bool) {
	var best Candidate
	found := false

	for _, sig := range t.order {
		if len(t.entries[sig].samples) < t.minEvals {
			continue
		}
		c := t.candidate(sig)
		if !found || c.UCB > best.UCB {
			found = true
			best = c
		}
	}
	return best, found
}

// Get returns the tracked candidate snapshot for signature, regardless of
// whether it has reached the confidence threshold, or ok=false if it has
// never been recorded.
func (t *Tracker) Get(signature string) (Candidate, bool) {
	if _, ok := t.entries[signature]; !ok {
		return Candidate{}, false
	}
	return t.candidate(signature), true
}

func (t *Tracker) candidate(signature string) Candidate {
	e := t.entries[signature]
	n := len(e.samples)
	return Candidate{
		Signature:   signature,
		RuleSet:     e.ruleset,
		NEvals:      n,
		UCB:         e.mean() - t.c/math.Sqrt(float64(n)),
		MeanFitness: e.mean(),
		MinFitness:  e.min(),
		MaxFitness:  e.max(),
	}
}

// Recover returns the remembered ruleset object for a signature, even if it
// has since been evicted from the live population (§4.7).
func (t *Tracker) Recover(signature string) (ruleset.RuleSet, bool) {
	e, ok := t.entries[signature]
	if !ok {
		return ruleset.RuleSet{}, false
	}
	return e.ruleset, true
}
