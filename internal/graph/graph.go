// Package graph builds and lays out the organization network implied by
// the deal list: one node per organization, one weighted directed edge per
// (aggregator, receiver) pair.
package graph

import "dealscope/internal/catalog"

// Node is one organization in the deal network. Count is the number of
// deals the organization participates in, in either role, and drives the
// rendered size.
type Node struct {
	Name  string
	Count int
}

// Edge aggregates every deal flowing from one aggregator to one receiver
// into a single weighted edge.
type Edge struct {
	From  int // node index of the aggregator
	To    int // node index of the receiver
	Count int
}

type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Build aggregates deals into the org graph. Node and edge order follow
// first appearance in the input, so layouts are reproducible for a given
// input ordering. Deals whose endpoints cannot be resolved to a node (an
// empty organization name) contribute no edge rather than failing.
func Build(deals []catalog.Deal) Graph {
	var g Graph
	nodeIndex := make(map[string]int)
	edgeIndex := make(map[[2]int]int)

	resolve := func(name string) int {
		if name == "" {
			return -1
		}
		if i, ok := nodeIndex[name]; ok {
			return i
		}
		nodeIndex[name] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{Name: name})
		return len(g.Nodes) - 1
	}

	for _, d := range deals {
		ai := resolve(d.Aggregator)
		ri := resolve(d.Receiver)
		if ai >= 0 {
			g.Nodes[ai].Count++
		}
		if ri >= 0 && ri != ai {
			g.Nodes[ri].Count++
		}
		if ai < 0 || ri < 0 {
			continue
		}
		key := [2]int{ai, ri}
		if ei, ok := edgeIndex[key]; ok {
			g.Edges[ei].Count++
			continue
		}
		edgeIndex[key] = len(g.Edges)
		g.Edges = append(g.Edges, Edge{From: ai, To: ri, Count: 1})
	}
	return g
}

// NodeIndex returns the index of the named node, or -1.
func (g Graph) NodeIndex(name string) int {
	for i, n := range g.Nodes {
		if n.Name == name {
			return i
		}
	}
	return -1
}
