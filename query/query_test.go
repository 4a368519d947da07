package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/codegraph/graph"
)

func sampleGraph() *graph.Graph {
	g := graph.New()
	g.AddNode(graph.Node{ID: "func:a.py:f", Type: graph.KindFunction, File: "a.py", Name: "f", Qualname: "f"})
	g.AddNode(graph.Node{ID: "func:a.py:g", Type: graph.KindFunction, File: "a.py", Name: "g", Qualname: "g"})
	g.AddNode(graph.Node{ID: "func:a.py:h", Type: graph.KindFunction, File: "a.py", Name: "h", Qualname: "h"})
	g.AddNode(graph.Node{ID: "func:a.py:isolated", Type: graph.KindFunction, File: "a.py", Name: "isolated", Qualname: "isolated"})
	g.AddEdge("func:a.py:f", "func:a.py:g", graph.Call)
	g.AddEdge("func:a.py:g", "func:a.py:h", graph.Call)
	return g
}

func TestCallersCallees(t *testing.T) {
	g := sampleGraph()
	assert.Equal(t, []string{"func:a.py:f"}, Callers(g, "func:a.py:g"))
	assert.Equal(t, []string{"func:a.py:g"}, Callees(g, "func:a.py:f"))
	assert.Empty(t, Callers(g, "func:a.py:f"))
	assert.Empty(t, Callees(g, "func:a.py:h"))
}

func TestDependenciesAndReverseDependencies(t *testing.T) {
	g := sampleGraph()
	assert.ElementsMatch(t, []string{"func:a.py:g", "func:a.py:h"}, Dependencies(g, "func:a.py:f"))
	assert.ElementsMatch(t, []string{"func:a.py:f", "func:a.py:g"}, ReverseDependencies(g, "func:a.py:h"))
	assert.Empty(t, Dependencies(g, "func:a.py:isolated"))
}

func TestPath(t *testing.T) {
	g := sampleGraph()
	assert.Equal(t, []string{"func:a.py:f", "func:a.py:g", "func:a.py:h"}, Path(g, "func:a.py:f", "func:a.py:h"))
	assert.Nil(t, Path(g, "func:a.py:h", "func:a.py:f"))
	assert.Equal(t, []string{"func:a.py:f"}, Path(g, "func:a.py:f", "func:a.py:f"))
}

func TestDependencies_AllEdgeTypes(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "file:a.py", Type: graph.KindFile, Path: "a.py"})
	g.AddNode(graph.Node{ID: "func:a.py:f", Type: graph.KindFunction, File: "a.py", Name: "f", Qualname: "f"})
	g.AddEdge("file:a.py", "func:a.py:f", graph.Contains)

	// Dependencies traverses "contains" edges too, not just "call": this is
	// the documented "all edges" behavior, not a narrower call-only reading.
	assert.Equal(t, []string{"func:a.py:f"}, Dependencies(g, "file:a.py"))
}
