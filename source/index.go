// Package source parses every discovered Python file into a tree-sitter
// syntax tree and keeps the small per-file index the rest of the analyzer
// pipeline walks: relative path, raw bytes, and parsed tree.
package source

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/viant/codegraph/discover"
)

// File is one successfully parsed source file.
type File struct {
	RelPath string
	Bytes   []byte
	Tree    *sitter.Tree
}

// Root returns the file's syntax tree root node.
func (f *File) Root() *sitter.Node { return f.Tree.RootNode() }

// Index holds every file parsed from a project root. Files that fail to
// read or parse are silently dropped (counted in Skipped), matching the
// reference implementation's bare except-and-continue loop: a handful of
// unparseable files must never abort the whole build.
type Index struct {
	byPath  map[string]*File
	ordered []string
	Skipped int
}

// Get returns the parsed file for a relative path, if present.
func (ix *Index) Get(relPath string) (*File, bool) {
	f, ok := ix.byPath[relPath]
	return f, ok
}

// Files returns every parsed file, ordered by relative path.
func (ix *Index) Files() []*File {
	out := make([]*File, 0, len(ix.ordered))
	for _, rel := range ix.ordered {
		out = append(out, ix.byPath[rel])
	}
	return out
}

// Len returns the number of successfully parsed files.
func (ix *Index) Len() int { return len(ix.ordered) }

func newParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return p
}

// Build discovers and parses every Python file under root. A file that can't
// be read or fails to parse is skipped rather than aborting the build.
func Build(ctx context.Context, w *discover.Walker, root string) (*Index, error) {
	files, err := w.Find(ctx, root)
	if err != nil {
		return nil, err
	}

	parser := newParser()
	ix := &Index{byPath: map[string]*File{}}

	for _, f := range files {
		data, err := w.Read(ctx, f)
		if err != nil {
			ix.Skipped++
			continue
		}
		tree, err := parser.ParseCtx(ctx, nil, data)
		if err != nil || tree == nil || tree.RootNode() == nil {
			ix.Skipped++
			continue
		}
		ix.byPath[f.RelPath] = &File{RelPath: f.RelPath, Bytes: data, Tree: tree}
		ix.ordered = append(ix.ordered, f.RelPath)
	}

	return ix, nil
}
