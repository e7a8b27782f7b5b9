package core

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// pathSearch is the state of one randomized depth-first path search.
// The visited set belongs to the search and is only touched by it.
type pathSearch struct {
	rng      *RNG
	w, h     int
	end      Coord
	minLen   int
	maxLen   int
	budget   int
	expanded int
	overrun  bool
	visited  mapset.Set[Coord]
	path     SolutionPath
}

// generatePath searches for a simple path from start to end whose length
// in cells lies within [minLen, maxLen]. Directions are tried in a fresh
// random order at every cell. Reaching the end too early is a dead end.
func generatePath(rng *RNG, w, h int, start, end Coord, minLen, maxLen, budget int) (SolutionPath, error) {
	if minLen > w*h {
		return nil, attemptError{Step: "path", Reason: fmt.Sprintf("minimum length %d exceeds %d cells", minLen, w*h)}
	}

	s := &pathSearch{
		rng:     rng,
		w:       w,
		h:       h,
		end:     end,
		minLen:  minLen,
		maxLen:  maxLen,
		budget:  budget,
		visited: mapset.New[Coord](),
		path:    SolutionPath{{X: start.X, Y: start.Y, Dir: DirNone}},
	}

	if !s.search(start) {
		if s.overrun {
			return nil, attemptError{Step: "path", Reason: fmt.Sprintf("search budget of %d cells spent", budget)}
		}
		return nil, attemptError{Step: "path", Reason: "no path within length bounds"}
	}

	out := make(SolutionPath, len(s.path))
	copy(out, s.path)
	return out, nil
}

func (s *pathSearch) search(c Coord) bool {
	if c == s.end {
		return len(s.path) >= s.minLen
	}
	if len(s.path) >= s.maxLen {
		return false
	}
	// The end is at least Manhattan distance more cells away.
	if len(s.path)+c.Manhattan(s.end) > s.maxLen {
		return false
	}
	if s.budget > 0 && s.expanded >= s.budget {
		s.overrun = true
		return false
	}
	s.expanded++

	s.visited.Put(c)
	if !s.canFinish(c) {
		s.visited.Remove(c)
		return false
	}

	for _, d := range Shuffle(s.rng, Cardinals[:]) {
		n := c.Step(d)
		if n.X < 0 || n.X >= s.w || n.Y < 0 || n.Y >= s.h {
			continue
		}
		if s.visited.Has(n) {
			continue
		}

		s.path = append(s.path, PathStep{X: n.X, Y: n.Y, Dir: d})
		if s.search(n) {
			return true
		}
		s.path = s.path[:len(s.path)-1]

		if s.overrun {
			break
		}
	}
	s.visited.Remove(c)
	return false
}

// canFinish floods the unvisited cells reachable from c. The search can only
// succeed if the end is among them and they leave room for minLen cells.
// The end is never expanded since a path stops there.
func (s *pathSearch) canFinish(c Coord) bool {
	seen := mapset.New[Coord]()
	seen.Put(c)
	queue := []Coord{c}
	found := false

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range Cardinals {
			n := cur.Step(d)
			if n.X < 0 || n.X >= s.w || n.Y < 0 || n.Y >= s.h {
				continue
			}
			if s.visited.Has(n) || seen.Has(n) {
				continue
			}
			seen.Put(n)
			if n == s.end {
				found = true
				continue
			}
			queue = append(queue, n)
		}
	}

	return found && len(s.path)+seen.Size()-1 >= s.minLen
}
