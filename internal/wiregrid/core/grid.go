package core

// Grid is the puzzle board as a rectangular grid of tiles.
// Tiles are stored in row-major order: index = y*W + x.
// Every cell always holds a tile; Empty is a tile type, not an absence.
type Grid struct {
	W     int
	H     int
	Tiles []Tile
}

// NewGrid creates a grid with every cell holding an Empty tile at rotation 0.
func NewGrid(w, h int) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		Tiles: make([]Tile, w*h),
	}
	empty := Definition(TileEmpty)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Tiles[y*w+x] = Tile{Def: empty, X: x, Y: y}
		}
	}
	return g
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the tile at the given coordinate, or nil if out of bounds.
func (g *Grid) At(c Coord) *Tile {
	if !g.InBounds(c) {
		return nil
	}
	return &g.Tiles[g.index(c)]
}

// Place puts a tile of the given type and rotation at c, clearing the
// fixed flag. Out-of-bounds coordinates are ignored.
func (g *Grid) Place(c Coord, t TileType, rotation int) {
	if !g.InBounds(c) {
		return
	}
	g.Tiles[g.index(c)] = Tile{Def: Definition(t), Rotation: rotation, X: c.X, Y: c.Y}
}

// Clone returns a deep copy of the grid. Definitions are shared since the
// catalog is immutable.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.Tiles))
	copy(tiles, g.Tiles)
	return &Grid{W: g.W, H: g.H, Tiles: tiles}
}

// Equal returns true if two grids have the same dimensions and tiles.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i := range g.Tiles {
		a, b := g.Tiles[i], other.Tiles[i]
		if a.Def.Type != b.Def.Type || a.Rotation != b.Rotation || a.Fixed != b.Fixed || a.X != b.X || a.Y != b.Y {
			return false
		}
	}
	return true
}

// Perimeter returns the edge cells in enumeration order: for each column
// the top and bottom cell, then for each row the left and right cell.
// Corner cells appear twice.
func (g *Grid) Perimeter() []Coord {
	coords := make([]Coord, 0, 2*g.W+2*g.H)
	for x := 0; x < g.W; x++ {
		coords = append(coords, C(x, 0), C(x, g.H-1))
	}
	for y := 0; y < g.H; y++ {
		coords = append(coords, C(0, y), C(g.W-1, y))
	}
	return coords
}

// CountByType returns the number of tiles of each type present in the grid.
func (g *Grid) CountByType() map[TileType]int {
	counts := make(map[TileType]int)
	for i := range g.Tiles {
		counts[g.Tiles[i].Def.Type]++
	}
	return counts
}

// TypesPresent returns the distinct tile types in row-major order of first
// appearance.
func (g *Grid) TypesPresent() []TileType {
	var seen [tileTypeCount]bool
	types := make([]TileType, 0, tileTypeCount)
	for i := range g.Tiles {
		t := g.Tiles[i].Def.Type
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return types
}

// FixedCount returns the number of fixed tiles.
func (g *Grid) FixedCount() int {
	n := 0
	for i := range g.Tiles {
		if g.Tiles[i].Fixed {
			n++
		}
	}
	return n
}
