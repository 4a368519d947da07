// Package export renders a bounded neighborhood of a graph around a focus
// node as Mermaid or DOT source, for visualization.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/codegraph/graph"
)

// Subgraph is the result of a bounded BFS walk around a focus node.
type Subgraph struct {
	Nodes     []graph.Node
	Edges     []graph.Edge
	Truncated bool
}

// Direction restricts which edges Collect follows from each frontier node.
type Direction string

const (
	// DirOut follows edges in their natural direction only (source -> target),
	// i.e. what the focus node calls/contains.
	DirOut Direction = "out"
	// DirIn follows edges backward only (target -> source), i.e. what calls
	// or contains the focus node.
	DirIn Direction = "in"
	// DirBoth follows edges in both directions. This is the default.
	DirBoth Direction = "both"
)

// Collect walks outward from focusID up to depth hops over every edge type,
// restricted to dir ("out", "in", or "both"; anything else defaults to
// "both"), stopping early and reporting Truncated once maxNodes is reached.
// depth<=0 or maxNodes<=0 fall back to sane defaults.
func Collect(g *graph.Graph, focusID string, depth, maxNodes int, dir Direction) Subgraph {
	if depth <= 0 {
		depth = 2
	}
	if maxNodes <= 0 {
		maxNodes = 50
	}
	if !g.HasNode(focusID) {
		return Subgraph{}
	}

	adjacent := map[string][]string{}
	for _, e := range g.Edges() {
		if dir != DirIn {
			adjacent[e.Source] = append(adjacent[e.Source], e.Target)
		}
		if dir != DirOut {
			adjacent[e.Target] = append(adjacent[e.Target], e.Source)
		}
	}

	visited := map[string]int{focusID: 0}
	order := []string{focusID}
	frontier := []string{focusID}
	truncated := false

	for d := 0; d < depth && len(frontier) > 0; d++ {
		var next []string
		for _, cur := range frontier {
			for _, n := range adjacent[cur] {
				if _, ok := visited[n]; ok {
					continue
				}
				if len(order) >= maxNodes {
					truncated = true
					continue
				}
				visited[n] = d + 1
				order = append(order, n)
				next = append(next, n)
			}
		}
		frontier = next
	}

	nodeSet := map[string]bool{}
	nodes := make([]graph.Node, 0, len(order))
	for _, id := range order {
		if n, ok := g.Node(id); ok {
			nodes = append(nodes, n)
			nodeSet[id] = true
		}
	}

	var edges []graph.Edge
	for _, e := range g.Edges() {
		if nodeSet[e.Source] && nodeSet[e.Target] {
			edges = append(edges, e)
		}
	}

	return Subgraph{Nodes: nodes, Edges: edges, Truncated: truncated}
}

func sanitizeID(id string) string {
	r := strings.NewReplacer(":", "_", ".", "_", "/", "_", "-", "_")
	return r.Replace(id)
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// Mermaid renders a subgraph as a "graph TD" flowchart.
func Mermaid(sg Subgraph) string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, n := range sortedNodes(sg.Nodes) {
		b.WriteString(fmt.Sprintf("  %s[%q]\n", sanitizeID(n.ID), escapeLabel(n.Label())))
	}
	for _, e := range sortedEdges(sg.Edges) {
		arrow := "-->"
		if e.Type == graph.Contains {
			arrow = "-.->"
		}
		b.WriteString(fmt.Sprintf("  %s %s|%s| %s\n", sanitizeID(e.Source), arrow, e.Type, sanitizeID(e.Target)))
	}
	return b.String()
}

// DOT renders a subgraph as a Graphviz "digraph G".
func DOT(sg Subgraph) string {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	for _, n := range sortedNodes(sg.Nodes) {
		b.WriteString(fmt.Sprintf("  %q [label=%q];\n", sanitizeID(n.ID), escapeLabel(n.Label())))
	}
	for _, e := range sortedEdges(sg.Edges) {
		b.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n", sanitizeID(e.Source), sanitizeID(e.Target), e.Type))
	}
	b.WriteString("}\n")
	return b.String()
}

func sortedNodes(nodes []graph.Node) []graph.Node {
	out := append([]graph.Node(nil), nodes...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedEdges(edges []graph.Edge) []graph.Edge {
	out := append([]graph.Edge(nil), edges...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].Type < out[j].Type
	})
	return out
}
