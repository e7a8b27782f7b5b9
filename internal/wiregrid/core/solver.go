package core

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// SolveResult is the outcome of a breadth-first search over a grid.
type SolveResult struct {
	Solved        bool
	Path          SolutionPath // Empty when unsolved
	PathLength    int
	ExploredNodes int // Cells dequeued by the search
	Message       string
}

// solveNode is a search state. In strict criss-cross mode the same cell can
// be entered once per connection group, so the group is part of the key.
type solveNode struct {
	pos   Coord
	group Direction
}

type solveEntry struct {
	solveNode
	via    Direction
	parent int
}

// SolvePuzzle searches the level's grid as currently rotated for a path
// from start to end. The level is not modified.
func SolvePuzzle(level *Level) SolveResult {
	return Solve(level.Grid, level.Start, level.End, level.StrictCrissCross)
}

// Solve runs a breadth-first search from start to end over the grid's
// current rotations. Neighbors are expanded North, East, South, West, so
// the returned path is the shortest one and the result is deterministic.
//
// With strict set, a signal entering a tile with connection groups may
// only leave through the group it entered by.
func Solve(g *Grid, start, end Coord, strict bool) SolveResult {
	if !g.InBounds(start) || !g.InBounds(end) {
		return SolveResult{Message: "Puzzle is not solvable - start or end lies outside the grid"}
	}

	entries := []solveEntry{{solveNode: solveNode{pos: start}, parent: -1}}
	visited := mapset.New[solveNode]()
	visited.Put(entries[0].solveNode)

	explored := 0
	for head := 0; head < len(entries); head++ {
		cur := entries[head]
		explored++

		if cur.pos == end {
			path := tracePath(entries, head)
			return SolveResult{
				Solved:        true,
				Path:          path,
				PathLength:    len(path),
				ExploredNodes: explored,
				Message:       fmt.Sprintf("Puzzle solved! Path length: %d", len(path)),
			}
		}

		tile := g.At(cur.pos)
		exits := tile.Connections()
		if strict && cur.group != DirNone {
			exits &= cur.group
		}

		for _, d := range Cardinals {
			if exits&d == 0 {
				continue
			}
			n := cur.pos.Step(d)
			next := g.At(n)
			if next == nil || !Connected(tile, next, d) {
				continue
			}

			node := solveNode{pos: n}
			if strict && len(next.Def.ConnectionGroups) > 0 {
				back, _ := d.Opposite()
				node.group = next.GroupFor(back)
			}
			if visited.Has(node) {
				continue
			}
			visited.Put(node)
			entries = append(entries, solveEntry{solveNode: node, via: d, parent: head})
		}
	}

	return SolveResult{
		ExploredNodes: explored,
		Message:       "Puzzle is not solvable - no path found from start to end",
	}
}

func tracePath(entries []solveEntry, last int) SolutionPath {
	var path SolutionPath
	for i := last; i >= 0; i = entries[i].parent {
		e := entries[i]
		path = append(path, PathStep{X: e.pos.X, Y: e.pos.Y, Dir: e.via})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Reachable returns every cell a signal entering at start can reach over
// the grid's current rotations, in breadth-first order. Start is included
// when it lies inside the grid.
func Reachable(g *Grid, start Coord, strict bool) []Coord {
	if !g.InBounds(start) {
		return nil
	}

	queue := []solveNode{{pos: start}}
	visited := mapset.New[solveNode]()
	visited.Put(queue[0])
	cells := mapset.New[Coord]()
	var order []Coord

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if !cells.Has(cur.pos) {
			cells.Put(cur.pos)
			order = append(order, cur.pos)
		}

		tile := g.At(cur.pos)
		exits := tile.Connections()
		if strict && cur.group != DirNone {
			exits &= cur.group
		}
		for _, d := range Cardinals {
			if exits&d == 0 {
				continue
			}
			next := g.At(cur.pos.Step(d))
			if next == nil || !Connected(tile, next, d) {
				continue
			}
			node := solveNode{pos: next.Coord()}
			if strict && len(next.Def.ConnectionGroups) > 0 {
				back, _ := d.Opposite()
				node.group = next.GroupFor(back)
			}
			if !visited.Has(node) {
				visited.Put(node)
				queue = append(queue, node)
			}
		}
	}
	return order
}
