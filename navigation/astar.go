package navigation

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/sonar-maze/maze"
)

// Terrain is the grid view the pathfinder reads
type Terrain interface {
	InBounds(x, y int) bool
	Walkable(x, y int) bool
}

// 4-connected, clockwise from north
var neighbors = [4]maze.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// --- Min-heap for A* ---

type heapEntry struct {
	cell maze.Point
	f    int // g + h
	h    int // Manhattan to goal, breaks f ties toward the goal
}

func (e heapEntry) less(o heapEntry) bool {
	if e.f != o.f {
		return e.f < o.f
	}
	return e.h < o.h
}

type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	// Sift up
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !(*h)[i].less((*h)[parent]) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].less((*h)[left]) {
			smallest = right
		}
		if !(*h)[smallest].less((*h)[i]) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// FindPath runs A* with unit step cost and a Manhattan heuristic.
// The result runs from the cell after start through goal inclusive.
// Returns nil when either end is blocked or out of bounds, when no route exists, or when start == goal.
func FindPath(t Terrain, start, goal maze.Point) []maze.Point {
	if start == goal {
		return nil
	}
	if !t.InBounds(start.X, start.Y) || !t.InBounds(goal.X, goal.Y) {
		return nil
	}
	if !t.Walkable(start.X, start.Y) || !t.Walkable(goal.X, goal.Y) {
		return nil
	}

	gScore := map[maze.Point]int{start: 0}
	cameFrom := make(map[maze.Point]maze.Point)
	closed := mapset.New[maze.Point]()

	open := make(minHeap, 0, 64)
	h0 := start.Manhattan(goal)
	open.push(heapEntry{cell: start, f: h0, h: h0})

	for len(open) > 0 {
		curr := open.pop().cell
		if closed.Has(curr) {
			continue // Stale entry
		}
		if curr == goal {
			return reconstruct(cameFrom, start, goal)
		}
		closed.Put(curr)

		g := gScore[curr] + 1
		for _, d := range neighbors {
			next := maze.Point{X: curr.X + d.X, Y: curr.Y + d.Y}
			if closed.Has(next) || !t.InBounds(next.X, next.Y) || !t.Walkable(next.X, next.Y) {
				continue
			}
			if old, ok := gScore[next]; ok && g >= old {
				continue
			}
			gScore[next] = g
			cameFrom[next] = curr
			h := next.Manhattan(goal)
			open.push(heapEntry{cell: next, f: g + h, h: h})
		}
	}
	return nil
}

func reconstruct(cameFrom map[maze.Point]maze.Point, start, goal maze.Point) []maze.Point {
	var path []maze.Point
	for curr := goal; curr != start; curr = cameFrom[curr] {
		path = append(path, curr)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
