package core

import (
	"fmt"
	"strings"
)

// glyphs maps every connection mask to a box-drawing character.
var glyphs = [16]string{
	0:                             "·",
	DirNorth:                      "╵",
	DirEast:                       "╶",
	DirSouth:                      "╷",
	DirWest:                       "╴",
	DirNorth | DirSouth:           "│",
	DirEast | DirWest:             "─",
	DirNorth | DirEast:            "└",
	DirEast | DirSouth:            "┌",
	DirSouth | DirWest:            "┐",
	DirNorth | DirWest:            "┘",
	DirNorth | DirEast | DirSouth: "├",
	DirNorth | DirEast | DirWest:  "┴",
	DirNorth | DirSouth | DirWest: "┤",
	DirEast | DirSouth | DirWest:  "┬",
	DirAll:                        "┼",
}

// Glyph returns the box-drawing character for a connection mask.
func Glyph(mask Direction) string {
	if mask > DirAll {
		return "?"
	}
	return glyphs[mask]
}

var typeAbbrevs = [tileTypeCount]string{
	TileStraight:     "ST",
	TileCorner:       "CR",
	TileTJunction:    "TJ",
	TileFourWay:      "4W",
	TileCrissCross:   "XX",
	TileColorChanger: "CC",
	TileEmpty:        "  ",
}

// TypeAbbrev returns the two-character abbreviation of a tile type.
func TypeAbbrev(t TileType) string {
	if !t.Valid() {
		return "??"
	}
	return typeAbbrevs[t]
}

// ConnectionCode spells a mask as four characters in N, E, S, W order,
// with "·" for a missing connection. "N·SW" connects north, south and west.
func ConnectionCode(mask Direction) string {
	letters := [4]string{"N", "E", "S", "W"}
	var sb strings.Builder
	for i, d := range Cardinals {
		if mask&d != 0 {
			sb.WriteString(letters[i])
		} else {
			sb.WriteString("·")
		}
	}
	return sb.String()
}

// RenderASCII draws the grid as currently rotated, one glyph per cell,
// with S and E marking the endpoints. Used for debugging and tests.
func RenderASCII(level *Level) string {
	var sb strings.Builder
	g := level.Grid

	sb.WriteString(fmt.Sprintf("%dx%d start=%v end=%v path=%d\n",
		g.W, g.H, level.Start, level.End, level.SolvedPathLength))

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			switch c {
			case level.Start:
				sb.WriteString("S")
			case level.End:
				sb.WriteString("E")
			default:
				sb.WriteString(Glyph(g.At(c).Connections()))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
