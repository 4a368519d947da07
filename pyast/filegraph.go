package pyast

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/codegraph/graph"
)

// buildFileGraph constructs the file-granularity import graph: one node per
// file, one "import" edge per import statement that resolves to another
// in-project file. Imports of modules outside the project are dropped
// (include_external has no file-granularity analogue since external modules
// have no file node to point at).
func buildFileGraph(files []fileInfo) *graph.Graph {
	g := graph.New()
	moduleToFile := map[string]string{}

	for _, f := range files {
		moduleToFile[relToModule(f.rel)] = f.rel
		g.AddNode(graph.Node{ID: "file:" + f.rel, Type: graph.KindFile, Path: f.rel})
	}

	for _, f := range files {
		fileID := "file:" + f.rel
		collectFileImports(f.root, f.src, func(module string) {
			if target, ok := moduleToFile[module]; ok {
				g.AddEdge(fileID, "file:"+target, graph.Import)
			}
		})
	}

	return g
}

// collectFileImports walks a file's syntax tree and reports every module
// named by an "import X" or "from X import ..." statement.
func collectFileImports(root *sitter.Node, src []byte, report func(module string)) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "import_statement":
			for i := 0; i < int(n.ChildCount()); i++ {
				ch := n.Child(i)
				switch ch.Type() {
				case "dotted_name":
					report(ch.Content(src))
				case "aliased_import":
					if nameNode := ch.ChildByFieldName("name"); nameNode != nil {
						report(nameNode.Content(src))
					}
				}
			}
		case "import_from_statement":
			if moduleNode := n.ChildByFieldName("module_name"); moduleNode != nil && moduleNode.Type() == "dotted_name" {
				report(moduleNode.Content(src))
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
}
