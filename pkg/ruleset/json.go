package ruleset

import (
	"encoding/json"
	"fmt"

	"github.com/hexwar/balancer/pkg/hexboard"
	"github.com/hexwar/balancer/pkg/piece"
)

// wireRuleSet is the primary JSON shape (§6): parallel king/pieces/position/
// facing arrays per side, king first in the optional position/facing arrays.
type wireRuleSet struct {
	WhitePieces   []string  `json:"white_pieces"`
	BlackPieces   []string  `json:"black_pieces"`
	WhiteKing     string    `json:"white_king"`
	BlackKing     string    `json:"black_king"`
	WhiteTemplate string    `json:"white_template"`
	BlackTemplate string    `json:"black_template"`
	WhitePositions [][2]int `json:"white_positions,omitempty"`
	BlackPositions [][2]int `json:"black_positions,omitempty"`
	WhiteFacings  []int     `json:"white_facings,omitempty"`
	BlackFacings  []int     `json:"black_facings,omitempty"`
	Name          string    `json:"name,omitempty"`
}

// placedPiece is one entry of the alternative "board set" shape.
type placedPiece struct {
	PieceID string `json:"pieceId"`
	Color   int    `json:"color"`
	Pos     [2]int `json:"pos"`
	Facing  int    `json:"facing"`
}

// wireBoardSet is the alternative shape used by the designer UI's saved
// configurations: a flat list of placed pieces plus an optional per-side
// template map. The loader normalizes this into the same RuleSet as the
// primary shape.
type wireBoardSet struct {
	Pieces    []placedPiece     `json:"pieces"`
	Templates map[string]string `json:"templates,omitempty"`
	Name      string            `json:"name,omitempty"`
}

// templateFromString parses a single-letter template identifier.
func templateFromString(s string) (TemplateID, error) {
	switch s {
	case "A":
		return TemplateA, nil
	case "B":
		return TemplateB, nil
	case "C":
		return TemplateC, nil
	case "D":
		return TemplateD, nil
	case "E", "":
		return TemplateE, nil
	case "F":
		return TemplateF, nil
	default:
		return 0, fmt.Errorf("unusable ruleset: unknown template %q", s)
	}
}

// MarshalJSON emits the primary wire shape (§6).
func (r RuleSet) MarshalJSON() ([]byte, error) {
	w := wireRuleSet{
		WhitePieces:   r.White.Pieces,
		BlackPieces:   r.Black.Pieces,
		WhiteKing:     r.White.King,
		BlackKing:     r.Black.King,
		WhiteTemplate: r.White.Template.String(),
		BlackTemplate: r.Black.Template.String(),
		Name:          r.Name,
	}
	for _, h := range r.White.Positions {
		w.WhitePositions = append(w.WhitePositions, [2]int{h.Q, h.R})
	}
	for _, h := range r.Black.Positions {
		w.BlackPositions = append(w.BlackPositions, [2]int{h.Q, h.R})
	}
	for _, f := range r.White.Facings {
		w.WhiteFacings = append(w.WhiteFacings, int(f))
	}
	for _, f := range r.Black.Facings {
		w.BlackFacings = append(w.BlackFacings, int(f))
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts either wire shape and normalizes to a RuleSet. A
// malformed document is rejected here, at the interface boundary (§7.4),
// with a single "unusable ruleset" error kind.
func (r *RuleSet) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("unusable ruleset: %w", err)
	}

	if _, ok := probe["pieces"]; ok {
		var bs wireBoardSet
		if err := json.Unmarshal(data, &bs); err != nil {
			return fmt.Errorf("unusable ruleset: %w", err)
		}
		return r.fromBoardSet(bs)
	}

	var w wireRuleSet
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("unusable ruleset: %w", err)
	}
	return r.fromWire(w)
}

func (r *RuleSet) fromWire(w wireRuleSet) error {
	whiteTemplate, err := templateFromString(w.WhiteTemplate)
	if err != nil {
		return err
	}
	blackTemplate, err := templateFromString(w.BlackTemplate)
	if err != nil {
		return err
	}

	white, err := buildSide(w.WhiteKing, w.WhitePieces, w.WhitePositions, w.WhiteFacings, 0, whiteTemplate)
	if err != nil {
		return fmt.Errorf("unusable ruleset: white: %w", err)
	}
	black, err := buildSide(w.BlackKing, w.BlackPieces, w.BlackPositions, w.BlackFacings, 1, blackTemplate)
	if err != nil {
		return fmt.Errorf("unusable ruleset: black: %w", err)
	}

	r.White, r.Black, r.Name = white, black, w.Name
	return nil
}

func buildSide(king string, pieces []string, positions [][2]int, facings []int, owner int, tmpl TemplateID) (Side, error) {
	if king == "" {
		return Side{}, fmt.Errorf("missing king")
	}

	n := len(pieces) + 1
	var pos []hexboard.Hex
	if positions == nil {
		pos = defaultPositions(owner, n)
	} else {
		if len(positions) != n {
			return Side{}, fmt.Errorf("expected %d positions, got %d", n, len(positions))
		}
		for _, p := range positions {
			pos = append(pos, hexboard.Hex{Q: p[0], R: p[1]})
		}
	}

	var fac []hexboard.Direction
	if facings == nil {
		for i := 0; i < n; i++ {
			fac = append(fac, hexboard.DefaultFacing(owner))
		}
	} else {
		if len(facings) != n {
			return Side{}, fmt.Errorf("expected %d facings, got %d", n, len(facings))
		}
		for _, f := range facings {
			fac = append(fac, hexboard.Direction(f))
		}
	}

	return Side{
		King:      king,
		Pieces:    append([]string(nil), pieces...),
		Positions: pos,
		Facings:   fac,
		Template:  tmpl,
	}, nil
}

// defaultPositions lays out king-first positions front-to-back within a
// side's piece zone when no explicit positions are given.
func defaultPositions(owner, n int) []hexboard.Hex {
	zone := append([]hexboard.Hex(nil), hexboard.PieceZone(owner)...)
	sortByDistanceThenQ(zone)

	out := make([]hexboard.Hex, 0, n)
	out = append(out, hexboard.KingPos(owner))
	for i := 0; i < n-1 && i < len(zone); i++ {
		out = append(out, zone[i])
	}
	return out
}

func sortByDistanceThenQ(hexes []hexboard.Hex) {
	for i := 1; i < len(hexes); i++ {
		for j := i; j > 0; j-- {
			a, b := hexes[j-1], hexes[j]
			if rankKey(a) > rankKey(b) {
				hexes[j-1], hexes[j] = hexes[j], hexes[j-1]
			} else {
				break
			}
		}
	}
}

func rankKey(h hexboard.Hex) int {
	abs := h.R
	if abs < 0 {
		abs = -abs
	}
	q := h.Q
	if q < 0 {
		q = -q
	}
	return abs*1000 + q
}

func (r *RuleSet) fromBoardSet(bs wireBoardSet) error {
	whiteTemplate, err := templateFromString(bs.Templates["white"])
	if err != nil {
		return err
	}
	blackTemplate, err := templateFromString(bs.Templates["black"])
	if err != nil {
		return err
	}

	var white, black Side
	for _, p := range bs.Pieces {
		h := hexboard.Hex{Q: p.Pos[0], R: p.Pos[1]}
		side := &white
		if p.Color == 1 {
			side = &black
		}
		if piece.IsKing(p.PieceID) {
			side.King = p.PieceID
			side.Positions = prependHex(side.Positions, h)
			side.Facings = prependDir(side.Facings, hexboard.Direction(p.Facing))
		} else {
			side.Pieces = append(side.Pieces, p.PieceID)
			side.Positions = append(side.Positions, h)
			side.Facings = append(side.Facings, hexboard.Direction(p.Facing))
		}
	}
	white.Template = whiteTemplate
	black.Template = blackTemplate

	r.White, r.Black, r.Name = white, black, bs.Name
	return nil
}

func prependHex(s []hexboard.Hex, h hexboard.Hex) []hexboard.Hex {
	return append([]hexboard.Hex{h}, s...)
}

func prependDir(s []hexboard.Direction, d hexboard.Direction) []hexboard.Direction {
	return append([]hexboard.Direction{d}, s...)
}
