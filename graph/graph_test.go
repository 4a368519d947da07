package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraph_AddNodeFirstWriteWins(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "file:a.py", Type: KindFile, Path: "a.py"})
	g.AddNode(Node{ID: "file:a.py", Type: KindFile, Path: "ignored.py"})

	n, ok := g.Node("file:a.py")
	assert.True(t, ok)
	assert.Equal(t, "a.py", n.Path)
	assert.Len(t, g.Nodes(), 1)
}

func TestGraph_AddEdgeDedup(t *testing.T) {
	g := New()
	g.AddEdge("func:a.py:f", "func:a.py:g", Call)
	g.AddEdge("func:a.py:f", "func:a.py:g", Call)
	g.AddEdge("func:a.py:f", "func:a.py:g", Import)

	assert.Len(t, g.Edges(), 2)
}

func TestGraph_JSONRoundTrip(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "file:b.py", Type: KindFile, Path: "b.py"})
	g.AddNode(Node{ID: "func:b.py:process", Type: KindFunction, File: "b.py", Name: "process", Qualname: "process"})
	g.AddEdge("file:b.py", "func:b.py:process", Contains)

	data, err := json.Marshal(g)
	assert.NoError(t, err)

	out := New()
	assert.NoError(t, json.Unmarshal(data, out))
	assert.Equal(t, g.Nodes(), out.Nodes())
	assert.Equal(t, g.Edges(), out.Edges())
}

func TestNode_Label(t *testing.T) {
	file := Node{Type: KindFile, Path: "utils/c.py"}
	assert.Equal(t, "utils/c.py", file.Label())

	method := Node{Type: KindMethod, File: "utils/c.py", Qualname: "Multiplier.mul"}
	assert.Equal(t, "utils/c.py:Multiplier.mul", method.Label())
}
