// Package stats computes graph-wide rollups: entrypoints, leaves, the most
// heavily called and most heavily calling nodes, and per-file summaries.
package stats

import (
	"sort"

	"github.com/viant/codegraph/graph"
)

// Overview is the full graph_overview result.
type Overview struct {
	TotalNodes  int
	TotalEdges  int
	Entrypoints []string
	Leaves      []string
	TopHotspots []Count
	TopHubs     []Count
	PerFile     []FileSummary
}

// Count pairs a node id with a degree count, used for both hotspots (by
// in-degree) and hubs (by out-degree).
type Count struct {
	ID     string
	Degree int
}

// FileSummary rolls up node counts by kind for one source file.
type FileSummary struct {
	File      string
	Functions int
	Methods   int
	Classes   int
}

// DefaultTopN matches the reference implementation's default truncation.
const DefaultTopN = 10

// Compute computes the graph overview, restricting the degree-counting walk to
// edges of kind edgeType ("call" nodes care about call edges; callers
// wanting something else can pass any graph.EdgeType).
func Compute(g *graph.Graph, edgeType graph.EdgeType, topN int) Overview {
	if topN <= 0 {
		topN = DefaultTopN
	}

	inDeg := map[string]int{}
	outDeg := map[string]int{}
	for _, e := range g.Edges() {
		if e.Type != edgeType {
			continue
		}
		outDeg[e.Source]++
		inDeg[e.Target]++
	}

	var entrypoints, leaves []string
	callable := func(n graph.Node) bool {
		return n.Type == graph.KindFunction || n.Type == graph.KindMethod
	}
	perFile := map[string]*FileSummary{}

	for _, n := range g.Nodes() {
		if callable(n) {
			if inDeg[n.ID] == 0 && outDeg[n.ID] > 0 {
				entrypoints = append(entrypoints, n.ID)
			}
			if outDeg[n.ID] == 0 && inDeg[n.ID] > 0 {
				leaves = append(leaves, n.ID)
			}
		}

		file := n.File
		if n.Type == graph.KindFile {
			file = n.Path
		}
		if file == "" {
			continue
		}
		fs, ok := perFile[file]
		if !ok {
			fs = &FileSummary{File: file}
			perFile[file] = fs
		}
		switch n.Type {
		case graph.KindFunction:
			fs.Functions++
		case graph.KindMethod:
			fs.Methods++
		case graph.KindClass:
			fs.Classes++
		}
	}
	sort.Strings(entrypoints)
	sort.Strings(leaves)

	return Overview{
		TotalNodes:  len(g.Nodes()),
		TotalEdges:  len(g.Edges()),
		Entrypoints: entrypoints,
		Leaves:      leaves,
		TopHotspots: topCounts(inDeg, topN),
		TopHubs:     topCounts(outDeg, topN),
		PerFile:     sortedFileSummaries(perFile),
	}
}

func topCounts(degree map[string]int, topN int) []Count {
	counts := make([]Count, 0, len(degree))
	for id, d := range degree {
		if d == 0 {
			continue
		}
		counts = append(counts, Count{ID: id, Degree: d})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Degree != counts[j].Degree {
			return counts[i].Degree > counts[j].Degree
		}
		return counts[i].ID < counts[j].ID
	})
	if len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}

func sortedFileSummaries(m map[string]*FileSummary) []FileSummary {
	out := make([]FileSummary, 0, len(m))
	for _, fs := range m {
		out = append(out, *fs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}
