package eval

import (
	"math"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/piece"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// ValueTable maps a kind id to its value for one side under a specific turn
// template.
type ValueTable map[string]Score

// BuildValueTable computes the template-aware value table (§4.9
// "template-aware values"): each kind's value starts from its reachable-cell
// count on an empty board, boosted for a special ability, then scaled by a
// template-direction multiplier that rewards directional pieces under a
// rotate-before-move template and penalizes them under a
// move-before-rotate-different-piece template. Omnidirectional pieces are
// unaffected by the multiplier, since rotation cannot change their reachable
// set either way.
func BuildValueTable(tmpl ruleset.TemplateID) ValueTable {
	t := make(ValueTable, len(piece.Catalog))
	for id, k := range piece.Catalog {
		t[id] = kindValue(k, tmpl)
	}
	return t
}

func kindValue(k piece.Kind, tmpl ruleset.TemplateID) Score {
	if k.IsKing {
		return KingValue
	}

	base := float64(reachableCellCount(k))
	if k.Special != piece.NoSpecial {
		base *= 1.5
	}
	if base < 1 {
		base = 1
	}

	v := base * templateMultiplier(tmpl, k)
	return Score(math.Round(v))
}

// reachableCellCount counts the hexes a kind could reach from the board
// center on an otherwise empty board, facing north — a facing-independent,
// position-independent measure of raw mobility.
func reachableCellCount(k piece.Kind) int {
	origin := hexboard.Hex{Q: 0, R: 0}

	switch k.Move {
	case piece.Step:
		total := 0
		for _, rel := range k.Directions {
			cur := origin
			for step := 0; step < k.Range; step++ {
				cur = hexboard.Neighbor(cur, rel)
				if !cur.IsValid() {
					break
				}
				total++
			}
		}
		return total

	case piece.Slide:
		total := 0
		for _, rel := range k.Directions {
			cur := origin
			for {
				cur = hexboard.Neighbor(cur, rel)
				if !cur.IsValid() {
					break
				}
				total++
			}
		}
		return total

	case piece.Jump:
		total := 0
		forwardArc := len(k.Directions) == 3
		for _, target := range hexboard.Ring(origin, k.Range) {
			if !target.IsValid() {
				continue
			}
			if forwardArc {
				if hexboard.ForwardArcWithin75(hexboard.North, target.Q, target.R) {
					total++
				}
				continue
			}
			if k.HasDirection(hexboard.Sector(target.Q, target.R)) {
				total++
			}
		}
		return total

	default: // piece.None
		return 0
	}
}

// templateMultiplier scales a kind's base value by how much its turn
// template helps or hurts a directional (non-omnidirectional) piece. The
// multiplier widens toward the spec's stated bounds (2.5x boost, 0.6x
// penalty) as the kind's direction set narrows, since a single-direction
// piece benefits most from a free rotate-before-move and suffers most from
// being locked into rotating a different piece next.
func templateMultiplier(tmpl ruleset.TemplateID, k piece.Kind) float64 {
	if k.Move == piece.None || k.IsOmnidirectional() {
		return 1.0
	}

	narrowness := float64(hexboard.NumDirections-len(k.Directions)) / float64(hexboard.NumDirections-1)
	switch tmpl {
	case ruleset.TemplateA:
		return 1.0 + 1.5*narrowness
	case ruleset.TemplateD:
		return 1.0 - 0.4*narrowness
	default:
		return 1.0
	}
}
