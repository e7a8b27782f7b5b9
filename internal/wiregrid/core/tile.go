package core

import "fmt"

// TileType identifies an entry of the tile catalog.
type TileType uint8

const (
	TileStraight TileType = iota
	TileCorner
	TileTJunction
	TileFourWay
	TileCrissCross
	TileColorChanger
	TileEmpty

	tileTypeCount
)

var tileTypeNames = [tileTypeCount]string{
	TileStraight:     "straight",
	TileCorner:       "corner",
	TileTJunction:    "t-junction",
	TileFourWay:      "four-way",
	TileCrissCross:   "criss-cross",
	TileColorChanger: "color-changer",
	TileEmpty:        "empty",
}

// String returns the catalog name of the tile type.
func (t TileType) String() string {
	if t >= tileTypeCount {
		return "unknown"
	}
	return tileTypeNames[t]
}

// Valid reports whether t names a catalog entry.
func (t TileType) Valid() bool {
	return t < tileTypeCount
}

// ParseTileType converts a catalog name into a TileType.
func ParseTileType(s string) (TileType, error) {
	for i, name := range tileTypeNames {
		if name == s {
			return TileType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTileType, s)
}

// AllTileTypes returns every catalog entry in declaration order.
func AllTileTypes() []TileType {
	types := make([]TileType, 0, tileTypeCount)
	for t := TileType(0); t < tileTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// SignalColor is the color carried by a signal through a color changer.
type SignalColor string

const (
	SignalRed    SignalColor = "red"
	SignalBlue   SignalColor = "blue"
	SignalGreen  SignalColor = "green"
	SignalYellow SignalColor = "yellow"
	SignalWhite  SignalColor = "white"
)

// ColorChange describes the recoloring performed by a color changer tile.
type ColorChange struct {
	From SignalColor
	To   SignalColor
}

// TileDefinition is the immutable description of a tile type.
type TileDefinition struct {
	Type TileType
	// BaseConnections is the connection mask at rotation 0.
	BaseConnections Direction
	Rotatable       bool
	// ConnectionGroups lists independent connection groups sharing the cell.
	// Only the criss-cross tile has groups.
	ConnectionGroups []Direction
	// ColorChange is only set on the color changer tile.
	ColorChange *ColorChange
}

var tileCatalog = [tileTypeCount]TileDefinition{
	TileStraight: {
		Type:            TileStraight,
		BaseConnections: DirNorth | DirSouth,
		Rotatable:       true,
	},
	TileCorner: {
		Type:            TileCorner,
		BaseConnections: DirNorth | DirEast,
		Rotatable:       true,
	},
	TileTJunction: {
		Type:            TileTJunction,
		BaseConnections: DirNorth | DirEast | DirWest,
		Rotatable:       true,
	},
	TileFourWay: {
		Type:            TileFourWay,
		BaseConnections: DirAll,
	},
	TileCrissCross: {
		Type:             TileCrissCross,
		BaseConnections:  DirAll,
		ConnectionGroups: []Direction{DirNorth | DirSouth, DirEast | DirWest},
	},
	TileColorChanger: {
		Type:            TileColorChanger,
		BaseConnections: DirNorth | DirSouth,
		Rotatable:       true,
		ColorChange:     &ColorChange{From: SignalWhite, To: SignalBlue},
	},
	TileEmpty: {
		Type: TileEmpty,
	},
}

// Definition returns the catalog entry for a tile type.
// It panics on an unknown type, which is a programming error.
func Definition(t TileType) *TileDefinition {
	if !t.Valid() {
		panic(fmt.Sprintf("core: unknown tile type %d", t))
	}
	return &tileCatalog[t]
}

// Rotations lists the legal tile rotations in degrees.
var Rotations = [4]int{0, 90, 180, 270}

// ValidRotation reports whether deg is one of 0, 90, 180 or 270.
func ValidRotation(deg int) bool {
	return deg == 0 || deg == 90 || deg == 180 || deg == 270
}

// RotateConnections rotates a connection mask clockwise by quarterTurns
// quarter turns, moving each flag to the next direction clockwise.
func RotateConnections(mask Direction, quarterTurns int) Direction {
	result := mask & DirAll
	for i := 0; i < quarterTurns; i++ {
		next := DirNone
		if result&DirNorth != 0 {
			next |= DirEast
		}
		if result&DirEast != 0 {
			next |= DirSouth
		}
		if result&DirSouth != 0 {
			next |= DirWest
		}
		if result&DirWest != 0 {
			next |= DirNorth
		}
		result = next
	}
	return result
}

// Tile is a grid cell instance.
type Tile struct {
	Def      *TileDefinition
	Rotation int  // Degrees: 0, 90, 180 or 270
	Fixed    bool // Fixed tiles are never rotated by scrambling or the player
	X, Y     int  // Always equal to the cell position in the grid
}

// Type returns the tile's catalog type.
func (t *Tile) Type() TileType {
	return t.Def.Type
}

// Coord returns the tile's grid position.
func (t *Tile) Coord() Coord {
	return Coord{X: t.X, Y: t.Y}
}

// Connections returns the tile's connection mask at its current rotation.
// Every connectivity check goes through this method.
func (t *Tile) Connections() Direction {
	return RotateConnections(t.Def.BaseConnections, t.Rotation/90)
}

// GroupFor returns the connection group of the tile containing dir.
// Tiles without groups return their whole connection mask.
func (t *Tile) GroupFor(dir Direction) Direction {
	conns := t.Connections()
	for _, g := range t.Def.ConnectionGroups {
		rotated := RotateConnections(g, t.Rotation/90)
		if rotated&dir != 0 {
			return rotated
		}
	}
	return conns
}

// Connected reports whether a signal can travel from tile a to the
// adjacent tile b in direction dir: a must connect toward b and b must
// connect back.
func Connected(a, b *Tile, dir Direction) bool {
	if a.Connections()&dir == 0 {
		return false
	}
	back, ok := dir.Opposite()
	if !ok {
		return false
	}
	return b.Connections()&back != 0
}
