package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/codegraph/graph"
)

func buildSample() *graph.Graph {
	g := graph.New()
	g.AddNode(graph.Node{ID: "file:a.py", Type: graph.KindFile, Path: "a.py"})
	g.AddNode(graph.Node{ID: "func:a.py:entry", Type: graph.KindFunction, File: "a.py", Name: "entry", Qualname: "entry"})
	g.AddNode(graph.Node{ID: "func:a.py:mid", Type: graph.KindFunction, File: "a.py", Name: "mid", Qualname: "mid"})
	g.AddNode(graph.Node{ID: "func:a.py:leaf", Type: graph.KindFunction, File: "a.py", Name: "leaf", Qualname: "leaf"})
	g.AddNode(graph.Node{ID: "class:a.py:C", Type: graph.KindClass, File: "a.py", Name: "C"})
	g.AddNode(graph.Node{ID: "func:a.py:C.m", Type: graph.KindMethod, File: "a.py", Name: "m", Qualname: "C.m", ClassName: "C"})

	g.AddEdge("file:a.py", "func:a.py:entry", graph.Contains)
	g.AddEdge("file:a.py", "func:a.py:mid", graph.Contains)
	g.AddEdge("file:a.py", "func:a.py:leaf", graph.Contains)
	g.AddEdge("file:a.py", "class:a.py:C", graph.Contains)
	g.AddEdge("class:a.py:C", "func:a.py:C.m", graph.Contains)

	g.AddEdge("func:a.py:entry", "func:a.py:mid", graph.Call)
	g.AddEdge("func:a.py:mid", "func:a.py:leaf", graph.Call)
	g.AddEdge("func:a.py:mid", "func:a.py:C.m", graph.Call)
	return g
}

func TestCompute_EntrypointsAndLeaves(t *testing.T) {
	g := buildSample()
	ov := Compute(g, graph.Call, 10)

	assert.Equal(t, []string{"func:a.py:entry"}, ov.Entrypoints)
	assert.ElementsMatch(t, []string{"func:a.py:leaf", "func:a.py:C.m"}, ov.Leaves)
}

func TestCompute_IsolatedNodeIsNeitherEntrypointNorLeaf(t *testing.T) {
	g := buildSample()
	g.AddNode(graph.Node{ID: "func:a.py:unused", Type: graph.KindFunction, File: "a.py", Name: "unused", Qualname: "unused"})
	ov := Compute(g, graph.Call, 10)

	assert.NotContains(t, ov.Entrypoints, "func:a.py:unused")
	assert.NotContains(t, ov.Leaves, "func:a.py:unused")
}

func TestCompute_HotspotsAndHubs(t *testing.T) {
	g := buildSample()
	ov := Compute(g, graph.Call, 10)

	require_ := assert.New(t)
	require_.NotEmpty(ov.TopHotspots)
	// C.m, leaf and mid all have in-degree 1; ties are ordered by id.
	require_.Equal("func:a.py:C.m", ov.TopHotspots[0].ID)
	require_.Equal(1, ov.TopHotspots[0].Degree)

	require_.NotEmpty(ov.TopHubs)
	require_.Equal("func:a.py:mid", ov.TopHubs[0].ID)
	require_.Equal(2, ov.TopHubs[0].Degree)
}

func TestCompute_PerFile(t *testing.T) {
	g := buildSample()
	ov := Compute(g, graph.Call, 10)

	assert.Len(t, ov.PerFile, 1)
	assert.Equal(t, "a.py", ov.PerFile[0].File)
	assert.Equal(t, 3, ov.PerFile[0].Functions)
	assert.Equal(t, 1, ov.PerFile[0].Methods)
	assert.Equal(t, 1, ov.PerFile[0].Classes)
}

func TestCompute_TopNTruncates(t *testing.T) {
	g := buildSample()
	ov := Compute(g, graph.Call, 1)
	assert.Len(t, ov.TopHotspots, 1)
	assert.Len(t, ov.TopHubs, 1)
}
