package orthoroute

import (
	"container/heap"
	"math"

	"github.com/jonfodi/diode-pcb-sub000/sgeo"
)

// dijkstraState is the modified-Dijkstra search state, augmented with bend
// count and entry direction so the search can minimize (length, bends)
// lexicographically (§4.7: "prefer fewer bends when two routes tie on
// length").
//
// Grounded directly on d2gridrouter/dijkstra.go's DijkstraState and its
// container/heap-based priority queue, adapted to use sgeo.Orientation
// instead of the package-local Orientation type.
type dijkstraState struct {
	node      int
	length    float64
	bends     int
	direction sgeo.Orientation
}

func (a dijkstraState) less(b dijkstraState) bool {
	const eps = 1e-9
	if math.Abs(a.length-b.length) > eps {
		return a.length < b.length
	}
	return a.bends < b.bends
}

type stateKey struct {
	node int
	dir  sgeo.Orientation
}

// shortestPath runs the modified Dijkstra from src to dst and returns the
// sequence of grid node ids on the winning path, including both endpoints.
// Returns (nil, false) if dst is unreachable or maxIterations pops are
// exhausted first — the §4.7/§5 hard iteration cap that guarantees
// termination on a pathological obstacle grid instead of a bounded-but-huge
// search.
func shortestPath(rg *routingGraph, src, dst, maxIterations int) ([]int, bool) {
	if src == dst {
		return []int{src}, true
	}

	best := map[stateKey]dijkstraState{}
	parent := map[stateKey]stateKey{}
	visited := map[stateKey]bool{}

	pq := &dijkstraPQ{}
	heap.Init(pq)
	for _, dir := range []sgeo.Orientation{sgeo.Horizontal, sgeo.Vertical} {
		s := dijkstraState{node: src, direction: dir}
		key := stateKey{src, dir}
		best[key] = s
		heap.Push(pq, s)
	}

	for iterations := 0; pq.Len() > 0; iterations++ {
		if maxIterations > 0 && iterations >= maxIterations {
			return nil, false
		}
		cur := heap.Pop(pq).(dijkstraState)
		curKey := stateKey{cur.node, cur.direction}
		if visited[curKey] {
			continue
		}
		visited[curKey] = true

		if cur.node == dst {
			return reconstructPath(parent, curKey, src), true
		}

		for _, e := range rg.adj[cur.node] {
			bends := cur.bends
			if cur.node != src && e.orientation != cur.direction {
				bends++
			}
			next := dijkstraState{node: e.to, length: cur.length + e.weight, bends: bends, direction: e.orientation}
			nextKey := stateKey{e.to, e.orientation}
			if visited[nextKey] {
				continue
			}
			if existing, ok := best[nextKey]; ok && !next.less(existing) {
				continue
			}
			best[nextKey] = next
			parent[nextKey] = curKey
			heap.Push(pq, next)
		}
	}
	return nil, false
}

func reconstructPath(parent map[stateKey]stateKey, end stateKey, src int) []int {
	var path []int
	cur := end
	for cur.node != src {
		path = append(path, cur.node)
		prev, ok := parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	path = append(path, src)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type dijkstraPQ []dijkstraState

func (pq dijkstraPQ) Len() int            { return len(pq) }
func (pq dijkstraPQ) Less(i, j int) bool  { return pq[i].less(pq[j]) }
func (pq dijkstraPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *dijkstraPQ) Push(x interface{}) { *pq = append(*pq, x.(dijkstraState)) }
func (pq *dijkstraPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
