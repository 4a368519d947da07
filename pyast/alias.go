package pyast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// aliases holds the per-file import tables used to resolve call targets.
// modAlias maps a bound module name to its dotted module path (e.g. "e" ->
// "utils.e" for "import utils.e as e"). funcAlias maps a bound symbol name
// to its fully dotted origin (e.g. "add_nums" -> "utils.c.add" for
// "from utils.c import add as add_nums").
type aliases struct {
	modAlias  map[string]string
	funcAlias map[string]string
}

func extractAliases(root *sitter.Node, src []byte) aliases {
	a := aliases{modAlias: map[string]string{}, funcAlias: map[string]string{}}
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "import_statement":
			collectImportStatement(n, src, a.modAlias)
		case "import_from_statement":
			collectImportFromStatement(n, src, a.funcAlias)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return a
}

// collectImportStatement handles "import x.y" and "import x.y as z".
func collectImportStatement(n *sitter.Node, src []byte, modAlias map[string]string) {
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		switch ch.Type() {
		case "dotted_name":
			name := ch.Content(src)
			modAlias[name] = name
		case "aliased_import":
			nameNode := ch.ChildByFieldName("name")
			aliasNode := ch.ChildByFieldName("alias")
			if nameNode == nil || aliasNode == nil {
				continue
			}
			modAlias[aliasNode.Content(src)] = nameNode.Content(src)
		}
	}
}

// collectImportFromStatement handles "from pkg import a, b as c". Every
// relative import ("from . import x", "from .m import x") is skipped: only
// an absolute dotted module name is recorded.
func collectImportFromStatement(n *sitter.Node, src []byte, funcAlias map[string]string) {
	moduleNode := n.ChildByFieldName("module_name")
	if moduleNode == nil || moduleNode.Type() != "dotted_name" {
		return
	}
	module := moduleNode.Content(src)
	moduleStart := moduleNode.StartByte()

	seenImport := false
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch.StartByte() == moduleStart && ch.Type() == "dotted_name" {
			continue
		}
		if !seenImport {
			if ch.Type() == "import" {
				seenImport = true
			}
			continue
		}
		switch ch.Type() {
		case "dotted_name":
			name := ch.Content(src)
			funcAlias[name] = module + "." + name
		case "aliased_import":
			nameNode := ch.ChildByFieldName("name")
			aliasNode := ch.ChildByFieldName("alias")
			if nameNode == nil || aliasNode == nil {
				continue
			}
			funcAlias[aliasNode.Content(src)] = module + "." + nameNode.Content(src)
		}
	}
}
