// Package core provides the level generator and solver for the wiregrid
// tile-rotation puzzle. This package is UI-agnostic and deterministic for a
// given seed.
package core

import (
	"fmt"
	"strings"
)

// Direction is a set of cardinal directions stored as bit flags.
// A single flag names one neighbor; combined flags form a connection mask.
type Direction uint8

const (
	DirNone  Direction = 0
	DirNorth Direction = 1 << 0
	DirEast  Direction = 1 << 1
	DirSouth Direction = 1 << 2
	DirWest  Direction = 1 << 3

	// DirAll is the mask of all four directions.
	DirAll = DirNorth | DirEast | DirSouth | DirWest
)

// Cardinals lists the four single directions in clockwise order starting at North.
var Cardinals = [4]Direction{DirNorth, DirEast, DirSouth, DirWest}

// String returns the string representation of a direction or mask.
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "None"
	case DirNorth:
		return "North"
	case DirEast:
		return "East"
	case DirSouth:
		return "South"
	case DirWest:
		return "West"
	}
	if d&^DirAll != 0 {
		return "Invalid"
	}
	parts := make([]string, 0, 4)
	for _, c := range Cardinals {
		if d&c != 0 {
			parts = append(parts, c.String())
		}
	}
	return strings.Join(parts, "|")
}

// ParseDirection converts a single direction name, as produced by String,
// back into a Direction. "None" yields DirNone.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range [5]Direction{DirNone, DirNorth, DirEast, DirSouth, DirWest} {
		if strings.EqualFold(d.String(), s) {
			return d, true
		}
	}
	return DirNone, false
}

// Has reports whether every flag of other is set in d.
func (d Direction) Has(other Direction) bool {
	return other != DirNone && d&other == other
}

// Count returns the number of set direction flags.
func (d Direction) Count() int {
	n := 0
	for _, c := range Cardinals {
		if d&c != 0 {
			n++
		}
	}
	return n
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// North decreases Y, South increases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirEast:
		return 1, 0
	case DirSouth:
		return 0, 1
	case DirWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction. The second result is false for
// DirNone and for combined masks, which have no opposite.
func (d Direction) Opposite() (Direction, bool) {
	switch d {
	case DirNorth:
		return DirSouth, true
	case DirSouth:
		return DirNorth, true
	case DirEast:
		return DirWest, true
	case DirWest:
		return DirEast, true
	default:
		return DirNone, false
	}
}

// Coord represents a 2D coordinate on the grid.
// X increases to the right, Y increases downward.
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns a new Coord one step in the given direction.
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// DirectionTo returns the single direction leading from c to an adjacent
// coordinate, or DirNone if other is not a grid neighbor.
func (c Coord) DirectionTo(other Coord) Direction {
	switch {
	case other.X == c.X+1 && other.Y == c.Y:
		return DirEast
	case other.X == c.X-1 && other.Y == c.Y:
		return DirWest
	case other.Y == c.Y+1 && other.X == c.X:
		return DirSouth
	case other.Y == c.Y-1 && other.X == c.X:
		return DirNorth
	default:
		return DirNone
	}
}

// PathStep is one cell of a path together with the direction travelled to
// arrive at it. The first step of a path has Dir == DirNone.
type PathStep struct {
	X   int       `yaml:"x"`
	Y   int       `yaml:"y"`
	Dir Direction `yaml:"dir"`
}

// Coord returns the step position.
func (s PathStep) Coord() Coord {
	return Coord{X: s.X, Y: s.Y}
}

// SolutionPath is an ordered simple path of grid-adjacent cells.
type SolutionPath []PathStep

// Coords returns the path positions in order.
func (p SolutionPath) Coords() []Coord {
	coords := make([]Coord, len(p))
	for i, s := range p {
		coords[i] = s.Coord()
	}
	return coords
}
