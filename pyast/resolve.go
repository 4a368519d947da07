package pyast

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/codegraph/graph"
	"github.com/viant/codegraph/semantic"
)

// localType records that a local variable was last assigned the result of
// constructing a known class, so "var.method()" can be resolved without a
// semantic engine (Strategy C).
type localType struct {
	rel   string
	class string
}

// callTarget is a candidate callee before it is turned into a node id.
type callTarget struct {
	rel  string
	name string
}

// resolveOpts configures pass 2.
type resolveOpts struct {
	IncludeExternal bool
	UseSemantic     bool
	Semantic        semantic.Resolver
}

type callResolver struct {
	ctx         context.Context
	rel         string
	projectRoot string
	src         []byte
	g           *graph.Graph
	classes     classRegistry
	al          aliases
	opts        resolveOpts

	currentClass string
	currentFunc  string
	localTypes   map[string]localType
}

// resolveCalls is pass 2: for every call expression in this file, resolve
// its target through the strategy cascade and, if the target is a known
// node, add a "call" edge. Must run only after every file's pass 1 has
// completed, since Strategy D and class-location resolution consult the
// whole graph and the whole class registry. projectRoot is the absolute
// analysis root, passed through to the semantic resolver unchanged.
func resolveCalls(ctx context.Context, root *sitter.Node, rel, projectRoot string, src []byte, g *graph.Graph, classes classRegistry, al aliases, opts resolveOpts) {
	r := &callResolver{
		ctx:         ctx,
		rel:         rel,
		projectRoot: projectRoot,
		src:         src,
		g:           g,
		classes:     classes,
		al:          al,
		opts:        opts,
		localTypes:  map[string]localType{},
	}
	r.walk(root)
}

func (r *callResolver) walk(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "decorated_definition":
		r.walk(n.ChildByFieldName("definition"))
		return
	case "class_definition":
		r.visitClass(n)
		return
	case "function_definition":
		r.visitFunction(n)
		return
	case "assignment":
		r.captureCtorAssignment(n)
	case "call":
		r.visitCall(n)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		r.walk(n.Child(i))
	}
}

func (r *callResolver) visitClass(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		if body := n.ChildByFieldName("body"); body != nil {
			r.walk(body)
		}
		return
	}
	prev := r.currentClass
	r.currentClass = nameNode.Content(r.src)
	if body := n.ChildByFieldName("body"); body != nil {
		r.walk(body)
	}
	r.currentClass = prev
}

func (r *callResolver) visitFunction(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		if body := n.ChildByFieldName("body"); body != nil {
			r.walk(body)
		}
		return
	}
	name := nameNode.Content(r.src)

	prevFunc := r.currentFunc
	prevTypes := r.localTypes

	if r.currentClass != "" {
		r.currentFunc = r.currentClass + "." + name
	} else {
		r.currentFunc = name
	}
	r.localTypes = map[string]localType{}

	if body := n.ChildByFieldName("body"); body != nil {
		r.walk(body)
	}

	r.localTypes = prevTypes
	r.currentFunc = prevFunc
}

// ctorClassName extracts the bare class name a call expression constructs,
// e.g. "Divider" for both "Divider(...)" and "mod.Divider(...)".
func ctorClassName(fnNode *sitter.Node, src []byte) string {
	if fnNode == nil {
		return ""
	}
	switch fnNode.Type() {
	case "identifier":
		return fnNode.Content(src)
	case "attribute":
		if attr := fnNode.ChildByFieldName("attribute"); attr != nil {
			return attr.Content(src)
		}
	}
	return ""
}

func (r *callResolver) captureCtorAssignment(n *sitter.Node) {
	target := n.ChildByFieldName("left")
	value := n.ChildByFieldName("right")
	if target == nil || value == nil {
		return
	}
	if target.Type() != "identifier" || value.Type() != "call" {
		return
	}
	fnNode := value.ChildByFieldName("function")
	clsName := ctorClassName(fnNode, r.src)
	if clsName == "" {
		return
	}
	rel, cls, ok := resolveClassToRel(clsName, r.rel, r.al.funcAlias, r.classes)
	if !ok {
		return
	}
	r.localTypes[target.Content(r.src)] = localType{rel: rel, class: cls}
}

func (r *callResolver) visitCall(n *sitter.Node) {
	if r.currentFunc == "" {
		return
	}
	fnNode := n.ChildByFieldName("function")
	if fnNode == nil {
		return
	}
	callerID := "func:" + r.rel + ":" + r.currentFunc

	targets := resolveFallback(fnNode, r.src, r.al)

	if len(targets) == 0 && r.opts.UseSemantic && r.opts.Semantic != nil {
		targets = r.resolveSemantic(fnNode)
	}

	// A bare name that no import alias or semantic definition resolved is
	// looked up among this file's own top-level functions.
	if len(targets) == 0 && fnNode.Type() == "identifier" {
		targets = []callTarget{{rel: r.rel, name: fnNode.Content(r.src)}}
	}

	// Strategy C: receiver-type inference for "obj.method()".
	if len(targets) == 0 && fnNode.Type() == "attribute" {
		methodName := ""
		if attr := fnNode.ChildByFieldName("attribute"); attr != nil {
			methodName = attr.Content(r.src)
		}
		recv := fnNode.ChildByFieldName("object")

		switch {
		case recv != nil && recv.Type() == "identifier":
			if lt, ok := r.localTypes[recv.Content(r.src)]; ok {
				targets = []callTarget{{rel: lt.rel, name: lt.class + "." + methodName}}
			}
		case recv != nil && recv.Type() == "call":
			ctorFn := recv.ChildByFieldName("function")
			clsName := ctorClassName(ctorFn, r.src)
			if clsName != "" {
				if rel, cls, ok := resolveClassToRel(clsName, r.rel, r.al.funcAlias, r.classes); ok {
					targets = []callTarget{{rel: rel, name: cls + "." + methodName}}
				}
			}
		}
	}

	// Strategy D: last resort, unique-method-name match only.
	if len(targets) == 0 && fnNode.Type() == "attribute" {
		methodName := ""
		if attr := fnNode.ChildByFieldName("attribute"); attr != nil {
			methodName = attr.Content(r.src)
		}
		if methodName != "" {
			var cands []graph.Node
			for _, nd := range r.g.Nodes() {
				if nd.Type == graph.KindMethod && nd.Name == methodName {
					cands = append(cands, nd)
				}
			}
			if len(cands) == 1 {
				targets = []callTarget{{rel: cands[0].File, name: cands[0].Qualname}}
			}
		}
	}

	for _, t := range targets {
		calleeID := "func:" + t.rel + ":" + t.name
		if r.g.HasNode(calleeID) {
			r.g.AddEdge(callerID, calleeID, graph.Call)
		}
	}
}

func (r *callResolver) resolveSemantic(fnNode *sitter.Node) []callTarget {
	line := int(fnNode.StartPoint().Row)
	col := int(fnNode.StartPoint().Column)
	if fnNode.Type() == "attribute" {
		if attr := fnNode.ChildByFieldName("attribute"); attr != nil {
			line = int(attr.StartPoint().Row)
			col = int(attr.StartPoint().Column)
		}
	}
	defs, err := r.opts.Semantic.Infer(r.ctx, r.src, r.rel, r.projectRoot, line, col)
	if err != nil {
		return nil
	}
	var out []callTarget
	for _, d := range defs {
		if d.ModulePath == "" {
			if r.opts.IncludeExternal {
				out = append(out, callTarget{rel: "<external>:" + d.Name, name: d.Name})
			}
			continue
		}
		name := d.Name
		if d.FullName != "" && d.ModuleName != "" && len(d.FullName) > len(d.ModuleName)+1 && d.FullName[:len(d.ModuleName)+1] == d.ModuleName+"." {
			name = d.FullName[len(d.ModuleName)+1:]
		}
		out = append(out, callTarget{rel: d.ModulePath, name: name})
	}
	return out
}

// resolveFallback is Strategy A: direct syntactic resolution through import
// aliases, with no class-registry or type-inference fallback. For
// "alias.attr(...)" where alias is a symbol alias ("from m import X"), the
// target is X itself and attr is ignored.
func resolveFallback(fnNode *sitter.Node, src []byte, al aliases) []callTarget {
	switch fnNode.Type() {
	case "identifier":
		name := fnNode.Content(src)
		if full, ok := al.funcAlias[name]; ok {
			if module, real, ok := splitModuleAndName(full); ok {
				return []callTarget{{rel: moduleToRel(module), name: real}}
			}
		}
		return nil
	case "attribute":
		obj := fnNode.ChildByFieldName("object")
		attr := fnNode.ChildByFieldName("attribute")
		if obj == nil || attr == nil || obj.Type() != "identifier" {
			return nil
		}
		aliasName := obj.Content(src)
		name := attr.Content(src)

		if module, ok := al.modAlias[aliasName]; ok {
			return []callTarget{{rel: moduleToRel(module), name: name}}
		}
		if full, ok := al.funcAlias[aliasName]; ok {
			if module, real, ok := splitModuleAndName(full); ok {
				return []callTarget{{rel: moduleToRel(module), name: real}}
			}
		}
	}
	return nil
}

// resolveClassToRel is Strategy C's class-location rule: an imported class
// name resolves through funcAlias; otherwise the class registry must show
// exactly one definition site, or the current file itself must be one of
// several candidates, or resolution gives up rather than guess.
func resolveClassToRel(className, currentRel string, funcAlias map[string]string, classes classRegistry) (rel, cls string, ok bool) {
	if full, isAlias := funcAlias[className]; isAlias {
		if module, real, split := splitModuleAndName(full); split {
			return moduleToRel(module), real, true
		}
	}
	hits := classes[className]
	if len(hits) == 1 {
		for rel := range hits {
			return rel, className, true
		}
	}
	if hits[currentRel] {
		return currentRel, className, true
	}
	return "", "", false
}
