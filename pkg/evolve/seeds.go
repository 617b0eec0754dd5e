package evolve

import (
	"fmt"
	"sort"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/ruleset"
)

// SeedLibrary is a small fixed table of precomputed, validated starting
// configurations, keyed by name: structurally the same problem as an
// opening book keyed by position.
type SeedLibrary interface {
	// Get returns the named seed ruleset, or false if name is unknown.
	Get(name string) (ruleset.RuleSet, bool)
	// Names lists every seed name, sorted ascending.
	Names() []string
}

// NoSeeds is an empty seed library. seedPopulation builds both its
// named-seed individuals and its mutated variants from library entries, so
// with NoSeeds generation 0 is empty.
var NoSeeds SeedLibrary = library{}

type library map[string]ruleset.RuleSet

func (l library) Get(name string) (ruleset.RuleSet, bool) {
	rs, ok := l[name]
	if !ok {
		return ruleset.RuleSet{}, false
	}
	return rs.Clone(), true
}

func (l library) Names() []string {
	names := make([]string, 0, len(l))
	for n := range l {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewSeedLibrary validates each candidate ruleset and returns a library
// serving clones of them by name.
func NewSeedLibrary(seeds map[string]ruleset.RuleSet) (SeedLibrary, error) {
	lib := make(library, len(seeds))
	for name, rs := range seeds {
		if err := rs.Validate(); err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", name, err)
		}
		lib[name] = rs.Clone()
	}
	return lib, nil
}

// DefaultSeeds are the human-coherent starting armies used to seed
// generation 0 of the evolutionary population instead of pure-random
// genomes only.
var DefaultSeeds = mustLibrary(map[string]ruleset.RuleSet{
	"chess-like": seedChessLike(),
	"defensive":  seedDefensive(),
	"aggressive": seedAggressive(),
	"special":    seedSpecial(),
})

func mustLibrary(seeds map[string]ruleset.RuleSet) SeedLibrary {
	lib, err := NewSeedLibrary(seeds)
	if err != nil {
		panic(err)
	}
	return lib
}

// frontToBack orders owner's piece zone from the row nearest the board
// center to the row nearest owner's own edge, breaking ties by distance
// from the center file. Listing pieces weakest-first lets layoutArmy place
// cheap pieces in front and valuable ones near the king.
func frontToBack(owner int) []hexboard.Hex {
	zone := append([]hexboard.Hex(nil), hexboard.PieceZone(owner)...)
	sort.Slice(zone, func(i, j int) bool {
		ri, rj := rowDepth(owner, zone[i]), rowDepth(owner, zone[j])
		if ri != rj {
			return ri < rj
		}
		qi, qj := zone[i].Q, zone[j].Q
		if qi < 0 {
			qi = -qi
		}
		if qj < 0 {
			qj = -qj
		}
		return qi < qj
	})
	return zone
}

func rowDepth(owner int, h hexboard.Hex) int {
	if owner == 0 {
		return h.R
	}
	return -h.R
}

// layoutArmy places king first at owner's fixed king hex, then each kind in
// kinds (ordered weakest to strongest) onto successive front-to-back zone
// hexes, all facing owner's default direction.
func layoutArmy(owner int, king string, kinds []string) ruleset.Side {
	zone := frontToBack(owner)
	if len(kinds) > len(zone) {
		panic("evolve: seed army larger than the piece zone")
	}

	facing := hexboard.DefaultFacing(owner)
	positions := make([]hexboard.Hex, 0, len(kinds)+1)
	facings := make([]hexboard.Direction, 0, len(kinds)+1)
	positions = append(positions, hexboard.KingPos(owner))
	facings = append(facings, facing)
	for i := range kinds {
		positions = append(positions, zone[i])
		facings = append(facings, facing)
	}

	return ruleset.Side{
		King:      king,
		Pieces:    append([]string(nil), kinds...),
		Positions: positions,
		Facings:   facings,
		Template:  ruleset.TemplateE,
	}
}

// seedChessLike mirrors hexwar/seeds.py's create_chess_like_seed: a
// chess-shaped symmetric army, four pawns and two knights in front, two
// bishops, two rooks and a queen behind them.
func seedChessLike() ruleset.RuleSet {
	kinds := []string{
		"A1", "A1", "A1", "A1",
		"E1", "E1",
		"D3", "D3",
		"D2", "D2",
		"D5",
	}
	return ruleset.RuleSet{
		White: layoutArmy(0, "K1", kinds),
		Black: layoutArmy(1, "K1", kinds),
	}
}

// seedDefensive mirrors create_defensive_seed: a ranger king behind guards,
// a ghost scout, and ranged lancers/rook for white; a guard king behind
// guards, a frog scout, and dragoons/queen for black.
func seedDefensive() ruleset.RuleSet {
	white := []string{
		"A2", "A2", "A2", "G1",
		"C1", "C1", "B3", "D2", "D4",
	}
	black := []string{
		"A2", "A2", "A2", "E2", "B4",
		"C2", "C2", "D2", "D5",
	}
	return ruleset.RuleSet{
		White: layoutArmy(0, "K3", white),
		Black: layoutArmy(1, "K1", black),
	}
}

// seedAggressive mirrors create_aggressive_seed: scout kings on both sides,
// fast strikers in front, heavy hitters behind.
func seedAggressive() ruleset.RuleSet {
	white := []string{
		"A1", "A1", "A1", "B1", "B1", "F1",
		"C2", "C2", "D4", "D5",
	}
	black := []string{
		"A3", "A3", "A3", "B4", "B4", "E1", "E1",
		"C1", "C1", "D5",
	}
	return ruleset.RuleSet{
		White: layoutArmy(0, "K2", white),
		Black: layoutArmy(1, "K2", black),
	}
}

// seedSpecial mirrors create_special_seed: each side carries a different
// special-ability piece (phoenix/warper for white, shifter for black)
// alongside a guard front line.
func seedSpecial() ruleset.RuleSet {
	white := []string{
		"A2", "A2", "G1", "P1",
		"B3", "W1", "D2", "D5",
	}
	black := []string{
		"A2", "A2", "E2", "W2",
		"B3", "C3", "D2", "D5",
	}
	return ruleset.RuleSet{
		White: layoutArmy(0, "K4", white),
		Black: layoutArmy(1, "K3", black),
	}
}
