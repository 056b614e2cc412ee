package schlayout

import "github.com/jonfodi/diode-pcb-sub000/schgraph"

// Cluster is a maximal connected subset of a net's ports under the distance
// threshold proximity graph (§4.4).
type Cluster struct {
	Anchors []schgraph.PortAnchor
}

// ClusterPorts is the Spatial Clusterer (C5, §4.4). Given a net's ports at
// absolute positions, it builds a graph connecting pairs within Euclidean
// distance <= threshold and emits each connected component of size >= 2.
// Singletons are dropped — they carry no edges.
//
// Iteration is over anchors in the order given (the netlist's own port
// order), which is what makes tie-breaking deterministic (§4.4).
func ClusterPorts(anchors []schgraph.PortAnchor, threshold float64) []Cluster {
	n := len(anchors)
	if n == 0 {
		return nil
	}

	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if anchors[i].Pos.Dist(anchors[j].Pos) <= threshold {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}

	visited := make([]bool, n)
	var clusters []Cluster
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		component := bfsComponent(i, adj, visited)
		if len(component) < 2 {
			continue
		}
		c := Cluster{}
		for _, idx := range component {
			c.Anchors = append(c.Anchors, anchors[idx])
		}
		clusters = append(clusters, c)
	}
	return clusters
}

func bfsComponent(start int, adj [][]int, visited []bool) []int {
	queue := []int{start}
	visited[start] = true
	var component []int
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		component = append(component, cur)
		for _, nb := range adj[cur] {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return component
}
