package pyast

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/codegraph/graph"
)

// classRegistry maps a bare class name to the set of relpaths that define a
// class of that name, used by resolveClassToRel's disambiguation rules.
type classRegistry map[string]map[string]bool

func newClassRegistry() classRegistry { return classRegistry{} }

func (r classRegistry) add(name, rel string) {
	m := r[name]
	if m == nil {
		m = map[string]bool{}
		r[name] = m
	}
	m[rel] = true
}

// collector is pass 1: it walks a file's syntax tree and materializes file,
// class, function and method nodes plus their "contains" edges. It never
// looks at call sites; that is pass 2's job (see resolve.go), and the two
// passes must not interleave across files — every file's nodes must exist
// before any file's calls are resolved.
type collector struct {
	rel        string
	src        []byte
	g          *graph.Graph
	classes    classRegistry
	classStack []string
}

func collectNodes(root *sitter.Node, src []byte, rel string, g *graph.Graph, classes classRegistry) {
	c := &collector{rel: rel, src: src, g: g, classes: classes}
	fileID := "file:" + rel
	g.AddNode(graph.Node{ID: fileID, Type: graph.KindFile, Path: rel})
	c.walk(root)
}

func (c *collector) walk(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "decorated_definition":
		c.walk(n.ChildByFieldName("definition"))
		return
	case "class_definition":
		c.visitClass(n)
		return
	case "function_definition":
		c.visitFunction(n)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c.walk(n.Child(i))
	}
}

func (c *collector) visitClass(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	className := nameNode.Content(c.src)
	c.classes.add(className, c.rel)

	fileID := "file:" + c.rel
	classID := "class:" + c.rel + ":" + className
	c.g.AddNode(graph.Node{ID: classID, Type: graph.KindClass, File: c.rel, Name: className})
	c.g.AddEdge(fileID, classID, graph.Contains)

	c.classStack = append(c.classStack, className)
	if body := n.ChildByFieldName("body"); body != nil {
		c.walk(body)
	}
	c.classStack = c.classStack[:len(c.classStack)-1]
}

func (c *collector) visitFunction(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(c.src)
	fileID := "file:" + c.rel

	if len(c.classStack) > 0 {
		cls := c.classStack[len(c.classStack)-1]
		qual := cls + "." + name
		funcID := "func:" + c.rel + ":" + qual
		c.g.AddNode(graph.Node{ID: funcID, Type: graph.KindMethod, File: c.rel, Name: name, Qualname: qual, ClassName: cls})
		classID := "class:" + c.rel + ":" + cls
		c.g.AddEdge(classID, funcID, graph.Contains)
		c.g.AddEdge(fileID, funcID, graph.Contains)
	} else {
		funcID := "func:" + c.rel + ":" + name
		c.g.AddNode(graph.Node{ID: funcID, Type: graph.KindFunction, File: c.rel, Name: name, Qualname: name})
		c.g.AddEdge(fileID, funcID, graph.Contains)
	}

	// Nested function/class definitions are still walked (a method or
	// function can itself contain classes or functions), but qualnames are
	// not namespaced by the enclosing function: only the class stack
	// participates in qualname construction, matching the reference
	// implementation's documented limitation.
	if body := n.ChildByFieldName("body"); body != nil {
		c.walk(body)
	}
}
