// Package mutate implements the ruleset mutation and crossover operators
// (C9): a weighted-menu random mutator, a win-rate-proportional smart
// mutator, whole-side crossover, and the post-hoc swap-move/swap-rotate
// redundancy constraint every mutation path enforces before returning.
package mutate

import (
	"sort"

	"github.com/hexwar/balancer/pkg/eval"
	"github.com/hexwar/balancer/pkg/piece"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// NumTiers is the fixed piece-value ranking width (§4.9): 0 (weakest pawns)
// through 6 (queen-equivalent).
const NumTiers = 7

// tierOf maps every non-king kind ID to its fixed 0-6 value tier. The
// ranking is derived once, at package init, from each kind's production
// (template-E) material value (pkg/eval.BuildValueTable) — the same
// mobility-based value the evaluator itself uses — sorted ascending and
// split into NumTiers contiguous bands.
var tierOf = buildTiers()

func buildTiers() map[string]int {
	values := eval.BuildValueTable(ruleset.TemplateE)

	ids := append([]string(nil), piece.RegularIDs...)
	sort.Slice(ids, func(i, j int) bool {
		if values[ids[i]] != values[ids[j]] {
			return values[ids[i]] < values[ids[j]]
		}
		return ids[i] < ids[j]
	})

	out := make(map[string]int, len(ids))
	for i, id := range ids {
		out[id] = i * NumTiers / len(ids)
	}
	return out
}

// TierOf returns id's fixed value tier (0-6).
func TierOf(id string) int {
	return tierOf[id]
}

func idsAtTier(tier int) []string {
	var out []string
	for _, id := range piece.RegularIDs {
		if tierOf[id] == tier {
			out = append(out, id)
		}
	}
	return out
}

// idsAtOrAboveTier returns every regular kind ID at tier >= min.
func idsAtOrAboveTier(min int) []string {
	var out []string
	for _, id := range piece.RegularIDs {
		if tierOf[id] >= min {
			out = append(out, id)
		}
	}
	return out
}

// idsAtOrBelowTier returns every regular kind ID at tier <= max.
func idsAtOrBelowTier(max int) []string {
	var out []string
	for _, id := range piece.RegularIDs {
		if tierOf[id] <= max {
			out = append(out, id)
		}
	}
	return out
}

// lowestTierIndex returns the index into s.Pieces holding the lowest-tier
// kind, or -1 if the side has no pieces.
func lowestTierIndex(s ruleset.Side) int {
	best := -1
	for i, id := range s.Pieces {
		if best < 0 || tierOf[id] < tierOf[s.Pieces[best]] {
			best = i
		}
	}
	return best
}

// highestTierIndex returns the index into s.Pieces holding the
// highest-tier kind, or -1 if the side has no pieces.
func highestTierIndex(s ruleset.Side) int {
	best := -1
	for i, id := range s.Pieces {
		if best < 0 || tierOf[id] > tierOf[s.Pieces[best]] {
			best = i
		}
	}
	return best
}

func clampTier(t int) int {
	switch {
	case t < 0:
		return 0
	case t >= NumTiers:
		return NumTiers - 1
	default:
		return t
	}
}
