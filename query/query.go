// Package query implements the graph traversal operations: direct callers
// and callees, forward/reverse reachability, and shortest path.
package query

import (
	"sort"

	"github.com/viant/codegraph/graph"
)

func buildAdjacency(edges []graph.Edge, edgeTypes map[graph.EdgeType]bool) map[string][]string {
	adj := map[string][]string{}
	for _, e := range edges {
		if edgeTypes != nil && !edgeTypes[e.Type] {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

func buildReverseAdjacency(edges []graph.Edge, edgeTypes map[graph.EdgeType]bool) map[string][]string {
	rev := map[string][]string{}
	for _, e := range edges {
		if edgeTypes != nil && !edgeTypes[e.Type] {
			continue
		}
		rev[e.Target] = append(rev[e.Target], e.Source)
	}
	return rev
}

// Callers returns every node with a direct "call" edge into targetID, sorted.
func Callers(g *graph.Graph, targetID string) []string {
	seen := map[string]bool{}
	for _, e := range g.Edges() {
		if e.Type == graph.Call && e.Target == targetID {
			seen[e.Source] = true
		}
	}
	return sortedKeys(seen)
}

// Callees returns every node with a direct "call" edge out of sourceID, sorted.
func Callees(g *graph.Graph, sourceID string) []string {
	seen := map[string]bool{}
	for _, e := range g.Edges() {
		if e.Type == graph.Call && e.Source == sourceID {
			seen[e.Target] = true
		}
	}
	return sortedKeys(seen)
}

// Dependencies returns every node reachable from nodeID by following edges
// forward, over every edge type (not just "call"), excluding nodeID itself.
func Dependencies(g *graph.Graph, nodeID string) []string {
	adj := buildAdjacency(g.Edges(), nil)
	return traverse(adj, nodeID)
}

// ReverseDependencies returns every node that can reach nodeID by following
// edges forward (i.e. everything with a path into nodeID), over every edge
// type, excluding nodeID itself.
func ReverseDependencies(g *graph.Graph, nodeID string) []string {
	rev := buildReverseAdjacency(g.Edges(), nil)
	return traverse(rev, nodeID)
}

func traverse(adj map[string][]string, start string) []string {
	visited := map[string]bool{}
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		for _, n := range adj[cur] {
			if !visited[n] {
				stack = append(stack, n)
			}
		}
	}
	delete(visited, start)
	return sortedKeys(visited)
}

// Path returns one shortest path (by edge count) from sourceID to targetID
// via BFS over every edge type, or nil if no path exists.
func Path(g *graph.Graph, sourceID, targetID string) []string {
	adj := buildAdjacency(g.Edges(), nil)

	parents := map[string]*string{sourceID: nil}
	queue := []string{sourceID}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == targetID {
			break
		}
		for _, n := range adj[cur] {
			if _, ok := parents[n]; !ok {
				next := cur
				parents[n] = &next
				queue = append(queue, n)
			}
		}
	}

	if _, ok := parents[targetID]; !ok {
		return nil
	}

	var path []string
	cur := targetID
	for {
		path = append(path, cur)
		parent := parents[cur]
		if parent == nil {
			break
		}
		cur = *parent
	}
	reverse(path)
	return path
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
