package hexboard

import "math"

// AllHexes lists every valid hex on the board, precomputed once. Index order
// is stable (ascending Q, then ascending R); the neighbor cache and the zone
// builders iterate it for a deterministic walk over the board.
var AllHexes = buildAllHexes()

// NumHexes is the number of valid hexes on the board (61 for Radius=4).
var NumHexes = len(AllHexes)

func buildAllHexes() []Hex {
	var hexes []Hex
	for q := -Radius; q <= Radius; q++ {
		for r := -Radius; r <= Radius; r++ {
			h := Hex{q, r}
			if h.IsValid() {
				hexes = append(hexes, h)
			}
		}
	}
	return hexes
}

var neighborCache = buildNeighborCache()

func buildNeighborCache() map[Hex][NumDirections]*Hex {
	cache := make(map[Hex][NumDirections]*Hex, len(AllHexes))
	for _, h := range AllHexes {
		var row [NumDirections]*Hex
		for d := Direction(0); d < NumDirections; d++ {
			n := Neighbor(h, d)
			if n.IsValid() {
				v := n
				row[d] = &v
			}
		}
		cache[h] = row
	}
	return cache
}

// Neighbors returns all six neighbors of h, indexed by direction. An entry
// is nil when that neighbor falls off the board.
func Neighbors(h Hex) [NumDirections]*Hex {
	return neighborCache[h]
}

// ValidNeighbors returns only the on-board neighbors of h.
func ValidNeighbors(h Hex) []Hex {
	row := neighborCache[h]
	var out []Hex
	for _, n := range row {
		if n != nil {
			out = append(out, *n)
		}
	}
	return out
}

// Ring iterates over all hexes at exactly radius steps from center, starting
// at the southwest corner and proceeding clockwise (north first). Off-board hexes
// are omitted by the caller (Ring itself yields axial coordinates that may
// be invalid at the edge of the lattice).
func Ring(center Hex, radius int) []Hex {
	if radius == 0 {
		return []Hex{center}
	}

	cur := center.Add(Hex{Southwest.Vector().Q * radius, Southwest.Vector().R * radius})
	out := make([]Hex, 0, radius*6)
	for dir := Direction(0); dir < NumDirections; dir++ {
		for step := 0; step < radius; step++ {
			out = append(out, cur)
			cur = cur.Add(dir.Vector())
		}
	}
	return out
}

// Sector maps a displacement (dq, dr) to the direction index (0..5) whose
// 60-degree wedge it falls in, using the flat-top pixel projection. It is
// the angular basis jump-movement filtering builds on (see ForwardArcWithin75
// for the wider, intentional forward-arc window).
func Sector(dq, dr int) Direction {
	if dq == 0 && dr == 0 {
		return North
	}

	x := 1.5 * float64(dq)
	y := 0.8660254*float64(dq) + 1.7320508*float64(dr)

	angle := math.Atan2(y, x) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}

	switch {
	case angle < 60:
		return Southeast
	case angle < 120:
		return South
	case angle < 180:
		return Southwest
	case angle < 240:
		return Northwest
	case angle < 300:
		return North
	default:
		return Northeast
	}
}

// angleDegrees returns the flat-top pixel angle of a displacement in
// degrees, normalized to [0, 360).
func angleDegrees(dq, dr int) float64 {
	x := 1.5 * float64(dq)
	y := 0.8660254*float64(dq) + 1.7320508*float64(dr)
	angle := math.Atan2(y, x) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return angle
}

// ForwardArcWithin75 reports whether a displacement from a piece facing
// `facing` lies within +/-75 degrees of dead-ahead. This is the intentional,
// slightly-wider-than-the-three-sector-approximation window used by
// forward-arc jumpers (see piece.Kind.Directions == {Forward, ForwardLeft,
// ForwardRight}); see the "Jump arc width" design note.
func ForwardArcWithin75(facing Direction, dq, dr int) bool {
	forwardAngle := sectorCenterDegrees(facing)
	a := angleDegrees(dq, dr)

	diff := math.Abs(a - forwardAngle)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff <= 75
}

// sectorCenterDegrees returns the pixel angle at the center of a direction's
// 60-degree wedge.
func sectorCenterDegrees(d Direction) float64 {
	switch d.normalize() {
	case Southeast:
		return 30
	case South:
		return 90
	case Southwest:
		return 150
	case Northwest:
		return 210
	case North:
		return 270
	case Northeast:
		return 330
	default:
		return 0
	}
}
