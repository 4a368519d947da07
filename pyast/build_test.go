package pyast

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/codegraph/graph"
)

func testdataRoot(t *testing.T, name string) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "..", "testdata", name)
}

func edgeExists(g *graph.Graph, src, dst string, typ graph.EdgeType) bool {
	for _, e := range g.Edges() {
		if e.Source == src && e.Target == dst && e.Type == typ {
			return true
		}
	}
	return false
}

func TestBuild_FunctionGranularity_Scenarios(t *testing.T) {
	a := New()
	g, err := a.Build(context.Background(), BuildParams{
		Root:        testdataRoot(t, "fixture"),
		Granularity: GranularityFunction,
	})
	require.NoError(t, err)

	// Scenario: alias call (b.process -> utils/e.py:log via "import utils.e as e").
	assert.True(t, edgeExists(g, "func:b.py:process", "func:utils/e.py:log", graph.Call), "alias call not resolved")

	// Scenario: imported-function alias (add_nums -> utils/c.py:add).
	assert.True(t, edgeExists(g, "func:b.py:process", "func:utils/c.py:add", graph.Call))
	assert.True(t, edgeExists(g, "func:b.py:process", "func:utils/c.py:multiply", graph.Call))

	// Scenario: method call through a local variable typed by constructor
	// assignment (d = Divider(); d.divide(...)).
	assert.True(t, edgeExists(g, "func:b.py:process", "func:a.py:Divider.divide", graph.Call))

	// Scenario: chained constructor call (AuditLogger().audit(...)).
	assert.True(t, edgeExists(g, "func:b.py:process", "func:utils/e.py:AuditLogger.audit", graph.Call))
	assert.True(t, edgeExists(g, "func:b.py:entry", "func:utils/d.py:User.login", graph.Call))

	// Scenario: method-to-free-function call within the same file
	// (AuditLogger.audit -> log, Divider.divide -> log).
	assert.True(t, edgeExists(g, "func:utils/e.py:AuditLogger.audit", "func:utils/e.py:log", graph.Call))
	assert.True(t, edgeExists(g, "func:a.py:Divider.divide", "func:utils/e.py:log", graph.Call))

	// Scenario: function-to-method call via local constructor type
	// (multiply -> Multiplier.mul).
	assert.True(t, edgeExists(g, "func:utils/c.py:multiply", "func:utils/c.py:Multiplier.mul", graph.Call))
	assert.True(t, edgeExists(g, "func:utils/c.py:Multiplier.mul", "func:utils/e.py:log", graph.Call))

	// b.entry calls process directly (bare function call, no receiver).
	assert.True(t, edgeExists(g, "func:b.py:entry", "func:b.py:process", graph.Call))
}

func TestBuild_ContainsEdgesAndNodeShape(t *testing.T) {
	a := New()
	g, err := a.Build(context.Background(), BuildParams{Root: testdataRoot(t, "fixture")})
	require.NoError(t, err)

	assert.True(t, g.HasNode("file:utils/e.py"))
	assert.True(t, g.HasNode("class:utils/e.py:AuditLogger"))
	assert.True(t, g.HasNode("func:utils/e.py:AuditLogger.audit"))

	n, ok := g.Node("func:utils/e.py:AuditLogger.audit")
	require.True(t, ok)
	assert.Equal(t, graph.KindMethod, n.Type)
	assert.Equal(t, "audit", n.Name)
	assert.Equal(t, "AuditLogger.audit", n.Qualname)
	assert.Equal(t, "AuditLogger", n.ClassName)

	assert.True(t, edgeExists(g, "file:utils/e.py", "class:utils/e.py:AuditLogger", graph.Contains))
	assert.True(t, edgeExists(g, "class:utils/e.py:AuditLogger", "func:utils/e.py:AuditLogger.audit", graph.Contains))
	assert.True(t, edgeExists(g, "file:utils/e.py", "func:utils/e.py:AuditLogger.audit", graph.Contains))
}

func TestBuild_LastResort_DeclinesOnAmbiguity(t *testing.T) {
	a := New()
	g, err := a.Build(context.Background(), BuildParams{Root: testdataRoot(t, "fixture2")})
	require.NoError(t, err)

	for _, e := range g.Edges() {
		if e.Source == "func:caller.py:dispatch" {
			t.Fatalf("expected no call edge from dispatch, got %+v", e)
		}
	}
}

func TestBuild_LastResort_FiresOnUniqueMatch(t *testing.T) {
	a := New()
	g, err := a.Build(context.Background(), BuildParams{Root: testdataRoot(t, "fixture3")})
	require.NoError(t, err)

	assert.True(t, edgeExists(g, "func:caller.py:dispatch", "func:widget.py:Widget.refresh_unique", graph.Call))
}

func TestBuild_FileGranularity(t *testing.T) {
	a := New()
	g, err := a.Build(context.Background(), BuildParams{
		Root:        testdataRoot(t, "fixture"),
		Granularity: GranularityFile,
	})
	require.NoError(t, err)

	assert.True(t, g.HasNode("file:b.py"))
	assert.True(t, g.HasNode("file:utils/c.py"))
	assert.True(t, edgeExists(g, "file:b.py", "file:utils/e.py", graph.Import))
	assert.True(t, edgeExists(g, "file:b.py", "file:utils/c.py", graph.Import))
	assert.True(t, edgeExists(g, "file:b.py", "file:a.py", graph.Import))
	assert.True(t, edgeExists(g, "file:b.py", "file:utils/d.py", graph.Import))
	assert.True(t, edgeExists(g, "file:a.py", "file:utils/e.py", graph.Import))

	// File granularity never produces contains/call edges.
	for _, e := range g.Edges() {
		assert.Equal(t, graph.Import, e.Type)
	}
}

func TestBuild_DeterministicAcrossRuns(t *testing.T) {
	a := New()
	g1, err := a.Build(context.Background(), BuildParams{Root: testdataRoot(t, "fixture")})
	require.NoError(t, err)
	g2, err := a.Build(context.Background(), BuildParams{Root: testdataRoot(t, "fixture")})
	require.NoError(t, err)

	assert.Equal(t, g1.Nodes(), g2.Nodes())
	assert.ElementsMatch(t, g1.Edges(), g2.Edges())
}
