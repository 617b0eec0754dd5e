package hexboard

// WhiteKingPos and BlackKingPos are the fixed king placement hexes for the
// default layout.
var (
	WhiteKingPos = Hex{-2, 4}
	BlackKingPos = Hex{2, -4}
)

// whiteExcludedWings and blackExcludedWings are corner hexes of the front
// three rows excluded from piece placement at game start.
var (
	whiteExcludedWings = map[Hex]bool{
		{-4, 3}: true, {-4, 2}: true, {-3, 2}: true,
		{2, 2}: true, {1, 2}: true, {1, 3}: true,
	}
	blackExcludedWings = map[Hex]bool{
		{4, -3}: true, {4, -2}: true, {3, -2}: true,
		{-2, -2}: true, {-1, -2}: true, {-1, -3}: true,
	}
)

// HomeZone returns the set of hexes within 3 rows of owner's edge.
func HomeZone(owner int) []Hex {
	var out []Hex
	for _, h := range AllHexes {
		if owner == 0 && h.R >= 2 {
			out = append(out, h)
		} else if owner == 1 && h.R <= -2 {
			out = append(out, h)
		}
	}
	return out
}

// KingPos returns the fixed king hex for owner (0=White, 1=Black).
func KingPos(owner int) Hex {
	if owner == 0 {
		return WhiteKingPos
	}
	return BlackKingPos
}

// PieceZone returns the legal placement zone for owner's non-king pieces:
// the home zone minus the excluded wing cells and minus the king hex.
func PieceZone(owner int) []Hex {
	excluded := whiteExcludedWings
	king := WhiteKingPos
	if owner == 1 {
		excluded = blackExcludedWings
		king = BlackKingPos
	}

	var out []Hex
	for _, h := range HomeZone(owner) {
		if excluded[h] || h == king {
			continue
		}
		out = append(out, h)
	}
	return out
}

// InPieceZone reports whether h is a legal piece-placement hex for owner.
func InPieceZone(owner int, h Hex) bool {
	for _, z := range PieceZone(owner) {
		if z == h {
			return true
		}
	}
	return false
}
