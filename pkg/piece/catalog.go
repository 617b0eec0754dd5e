package piece

// Catalog entries, grounded on hexwar/pieces.py's 30-kind layout (25
// non-king across families A-F, W, P, G plus 5 king variants K1-K5) and the
// movement/arc assignments implied by hexwar/ai.py's mobility-derived
// default piece values (see eval.BuildValueTable).
var (
	Pawn    = Kind{ID: "A1", Name: "Pawn", Move: Step, Range: 1, Directions: ForwardOnly}
	Guard   = Kind{ID: "A2", Name: "Guard", Move: Step, Range: 1, Directions: AllDirs}
	Scout   = Kind{ID: "A3", Name: "Scout", Move: Step, Range: 1, Directions: ForwardArc}
	Crab    = Kind{ID: "A4", Name: "Crab", Move: Step, Range: 1, Directions: DiagonalDirs}
	Flanker = Kind{ID: "A5", Name: "Flanker", Move: Step, Range: 1, Directions: ForwardBack}

	Strider = Kind{ID: "B1", Name: "Strider", Move: Step, Range: 2, Directions: ForwardOnly}
	Dancer  = Kind{ID: "B2", Name: "Dancer", Move: Step, Range: 2, Directions: ForwardBack}
	Ranger  = Kind{ID: "B3", Name: "Ranger", Move: Step, Range: 2, Directions: AllDirs}
	Hound   = Kind{ID: "B4", Name: "Hound", Move: Step, Range: 2, Directions: ForwardArc}

	Lancer  = Kind{ID: "C1", Name: "Lancer", Move: Step, Range: 3, Directions: ForwardOnly}
	Dragoon = Kind{ID: "C2", Name: "Dragoon", Move: Step, Range: 3, Directions: ForwardArc}
	Courser = Kind{ID: "C3", Name: "Courser", Move: Step, Range: 3, Directions: AllDirs}

	Pike    = Kind{ID: "D1", Name: "Pike", Move: Slide, Range: Infinite, Directions: ForwardOnly}
	Rook    = Kind{ID: "D2", Name: "Rook", Move: Slide, Range: Infinite, Directions: ForwardBack}
	Bishop  = Kind{ID: "D3", Name: "Bishop", Move: Slide, Range: Infinite, Directions: DiagonalDirs}
	Chariot = Kind{ID: "D4", Name: "Chariot", Move: Slide, Range: Infinite, Directions: ForwardArc}
	Queen   = Kind{ID: "D5", Name: "Queen", Move: Slide, Range: Infinite, Directions: AllDirs}

	Knight = Kind{ID: "E1", Name: "Knight", Move: Jump, Range: 2, Directions: ForwardArc}
	Frog   = Kind{ID: "E2", Name: "Frog", Move: Jump, Range: 2, Directions: AllDirs}

	Locust  = Kind{ID: "F1", Name: "Locust", Move: Jump, Range: 3, Directions: ForwardArc}
	Cricket = Kind{ID: "F2", Name: "Cricket", Move: Jump, Range: 3, Directions: AllDirs}

	Warper  = Kind{ID: "W1", Name: "Warper", Move: None, Range: 0, Special: SwapMove}
	Shifter = Kind{ID: "W2", Name: "Shifter", Move: Step, Range: 1, Directions: AllDirs, Special: SwapRotate}
	Phoenix = Kind{ID: "P1", Name: "Phoenix", Move: Step, Range: 1, Directions: ForwardOnly, Special: Rebirth}
	Ghost   = Kind{ID: "G1", Name: "Ghost", Move: Step, Range: 1, Directions: AllDirs, Special: Phased}

	KingGuard  = Kind{ID: "K1", Name: "King (Guard)", Move: Step, Range: 1, Directions: AllDirs, IsKing: true}
	KingScout  = Kind{ID: "K2", Name: "King (Scout)", Move: Step, Range: 1, Directions: ForwardArc, IsKing: true}
	KingRanger = Kind{ID: "K3", Name: "King (Ranger)", Move: Step, Range: 2, Directions: AllDirs, IsKing: true}
	KingFrog   = Kind{ID: "K4", Name: "King (Frog)", Move: Jump, Range: 2, Directions: AllDirs, IsKing: true}
	KingQueen  = Kind{ID: "K5", Name: "King (Queen)", Move: Slide, Range: Infinite, Directions: AllDirs, IsKing: true}
)

// Catalog is the full 30-kind table keyed by ID.
var Catalog = buildCatalog()

// RegularIDs lists the 25 non-king kind IDs.
var RegularIDs = []string{
	"A1", "A2", "A3", "A4", "A5",
	"B1", "B2", "B3", "B4",
	"C1", "C2", "C3",
	"D1", "D2", "D3", "D4", "D5",
	"E1", "E2",
	"F1", "F2",
	"W1", "W2", "P1", "G1",
}

// KingIDs lists the 5 king kind IDs.
var KingIDs = []string{"K1", "K2", "K3", "K4", "K5"}

// SpecialIDs lists the non-king kinds that carry a special ability.
var SpecialIDs = []string{"W1", "W2", "P1", "G1"}

func buildCatalog() map[string]Kind {
	all := []Kind{
		Pawn, Guard, Scout, Crab, Flanker,
		Strider, Dancer, Ranger, Hound,
		Lancer, Dragoon, Courser,
		Pike, Rook, Bishop, Chariot, Queen,
		Knight, Frog,
		Locust, Cricket,
		Warper, Shifter, Phoenix, Ghost,
		KingGuard, KingScout, KingRanger, KingFrog, KingQueen,
	}

	m := make(map[string]Kind, len(all))
	for _, k := range all {
		m[k.ID] = k
	}
	return m
}

// Get looks up a kind by ID. It panics on an unknown ID: an invalid piece ID
// reaching this layer is an invariant violation (ruleset validation at the
// interface boundary is responsible for rejecting unknown IDs before they
// get here).
func Get(id string) Kind {
	k, ok := Catalog[id]
	if !ok {
		panic("piece: unknown kind id " + id)
	}
	return k
}

// IsKing reports whether id names a king kind.
func IsKing(id string) bool {
	return Get(id).IsKing
}

// HasSpecial reports whether id names a kind with a special ability.
func HasSpecial(id string) bool {
	return Get(id).Special != NoSpecial
}

// GetSpecial returns id's special ability, or NoSpecial.
func GetSpecial(id string) Special {
	return Get(id).Special
}
