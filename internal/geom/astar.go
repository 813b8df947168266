package geom

import "container/heap"

// Exit is a reachable neighbour of a cell and the cost of stepping into it.
type Exit struct {
	Idx  int
	Cost float64
}

// BaseMap is what pathfinding needs from a grid.
type BaseMap interface {
	Exits(idx int) []Exit
	Distance(a, b int) float64
}

// NavigationPath is the result of a path search. Steps holds the cell
// indices after the start, up to and including the end. Success=false with
// no steps means no path exists; that is a normal outcome.
type NavigationPath struct {
	Success bool
	Steps   []int
}

// Pathfinder finds a route between two cell indices.
type Pathfinder interface {
	Path(start, end int, m BaseMap) NavigationPath
}

// AStar is a best-first search ordered by cost-so-far plus the map's
// distance heuristic. MaxSteps bounds the number of expanded nodes
// (0 = unbounded).
type AStar struct {
	MaxSteps int
}

func (a AStar) Path(start, end int, m BaseMap) NavigationPath {
	if start == end {
		return NavigationPath{Success: true, Steps: []int{}}
	}

	open := &nodeQueue{}
	heap.Init(open)
	heap.Push(open, &node{idx: start, f: m.Distance(start, end)})

	g := map[int]float64{start: 0}
	parent := map[int]int{}
	closed := map[int]bool{}

	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if closed[cur.idx] {
			continue
		}
		if cur.idx == end {
			return NavigationPath{Success: true, Steps: reconstruct(parent, start, end)}
		}
		closed[cur.idx] = true

		expanded++
		if a.MaxSteps > 0 && expanded > a.MaxSteps {
			break
		}

		for _, ex := range m.Exits(cur.idx) {
			if closed[ex.Idx] {
				continue
			}
			tentative := g[cur.idx] + ex.Cost
			if old, ok := g[ex.Idx]; ok && tentative >= old {
				continue
			}
			g[ex.Idx] = tentative
			parent[ex.Idx] = cur.idx
			heap.Push(open, &node{idx: ex.Idx, f: tentative + m.Distance(ex.Idx, end)})
		}
	}
	return NavigationPath{Success: false, Steps: []int{}}
}

// reconstruct walks parents back from end and drops the start cell.
func reconstruct(parent map[int]int, start, end int) []int {
	var rev []int
	for cur := end; cur != start; cur = parent[cur] {
		rev = append(rev, cur)
	}
	steps := make([]int, len(rev))
	for i, idx := range rev {
		steps[len(rev)-1-i] = idx
	}
	return steps
}

type node struct {
	idx int
	f   float64
}

// nodeQueue orders by f, then by index so ties resolve deterministically.
type nodeQueue []*node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].idx < q[j].idx
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(*node)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}
