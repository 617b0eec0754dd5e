package piece_test

import (
	"testing"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/piece"
	"github.com/stretchr/testify/assert"
)

func TestCatalogShape(t *testing.T) {
	assert.Len(t, piece.Catalog, 30)
	assert.Len(t, piece.RegularIDs, 25)
	assert.Len(t, piece.KingIDs, 5)
	assert.Len(t, piece.SpecialIDs, 4)
}

func TestPawnForwardOnly(t *testing.T) {
	p := piece.Get("A1")
	assert.Equal(t, piece.Step, p.Move)
	assert.Equal(t, 1, p.Range)
	assert.Equal(t, []hexboard.Direction{hexboard.Forward}, p.Directions)
}

func TestGuardAllDirections(t *testing.T) {
	g := piece.Get("A2")
	assert.Equal(t, piece.Step, g.Move)
	assert.Len(t, g.Directions, 6)
	assert.True(t, g.IsOmnidirectional())
}

func TestQueenSlidesAllDirections(t *testing.T) {
	q := piece.Get("D5")
	assert.Equal(t, piece.Slide, q.Move)
	assert.Equal(t, piece.Infinite, q.Range)
	assert.Len(t, q.Directions, 6)
}

func TestKnightJumpsForwardArc(t *testing.T) {
	k := piece.Get("E1")
	assert.Equal(t, piece.Jump, k.Move)
	assert.Equal(t, 2, k.Range)
	assert.Equal(t, []hexboard.Direction{hexboard.Forward, hexboard.ForwardLeft, hexboard.ForwardRight}, k.Directions)
}

func TestWarperSwapMoveNoNormalMovement(t *testing.T) {
	w := piece.Get("W1")
	assert.Equal(t, piece.SwapMove, w.Special)
	assert.Equal(t, piece.None, w.Move)
	assert.Equal(t, 0, w.Range)
}

func TestShifterSwapRotate(t *testing.T) {
	s := piece.Get("W2")
	assert.Equal(t, piece.SwapRotate, s.Special)
	assert.Equal(t, piece.Step, s.Move)
	assert.Equal(t, 1, s.Range)
}

func TestPhoenixRebirth(t *testing.T) {
	assert.Equal(t, piece.Rebirth, piece.Get("P1").Special)
}

func TestGhostPhased(t *testing.T) {
	g := piece.Get("G1")
	assert.Equal(t, piece.Phased, g.Special)
	assert.Equal(t, piece.Step, g.Move)
	assert.Len(t, g.Directions, 6)
}

func TestAllKingsMarked(t *testing.T) {
	for _, id := range piece.KingIDs {
		assert.True(t, piece.IsKing(id), id)
	}
	for _, id := range piece.RegularIDs {
		assert.False(t, piece.IsKing(id), id)
	}
}

func TestKingGuardAndKingFrog(t *testing.T) {
	kg := piece.Get("K1")
	assert.Equal(t, piece.Step, kg.Move)
	assert.Equal(t, 1, kg.Range)
	assert.Len(t, kg.Directions, 6)

	kf := piece.Get("K4")
	assert.Equal(t, piece.Jump, kf.Move)
	assert.Equal(t, 2, kf.Range)
	assert.Len(t, kf.Directions, 6)
}

func TestHasSpecialAndGetSpecial(t *testing.T) {
	assert.True(t, piece.HasSpecial("W1"))
	assert.False(t, piece.HasSpecial("A1"))
	assert.Equal(t, piece.SwapMove, piece.GetSpecial("W1"))
	assert.Equal(t, piece.NoSpecial, piece.GetSpecial("A1"))
}

func TestIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for id := range piece.Catalog {
		assert.False(t, seen[id], "duplicate id %v", id)
		seen[id] = true
	}
}
