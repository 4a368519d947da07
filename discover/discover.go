// Package discover finds Python source files under a project root, honoring
// the same directory-exclusion rules the reference implementation applies
// before handing anything to the parser.
package discover

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// ExcludedDirs names directories that are never descended into, regardless of
// nesting depth. Matches the reference implementation's build-graph
// exclusion set exactly (not the narrower cache-signature set, which lacks
// "site-packages"). Signature applies this same set.
var ExcludedDirs = map[string]bool{
	".venv":         true,
	"venv":          true,
	"env":           true,
	"__pycache__":   true,
	".git":          true,
	"site-packages": true,
	"node_modules":  true,
	"dist":          true,
	"build":         true,
}

// skipDir reports whether a directory with this name should never be
// descended into: it's in ExcludedDirs, or it's a dotdir (matching the
// reference's "not d.startswith('.')" rule; "." itself is never passed here).
func skipDir(name string) bool {
	if ExcludedDirs[name] {
		return true
	}
	return strings.HasPrefix(name, ".")
}

// File is one discovered source file.
type File struct {
	// AbsURL is the afs URL used to download the file's contents.
	AbsURL string
	// RelPath is the path relative to the scanned root, always forward-slashed.
	RelPath string
}

// Walker discovers Python files under a root using an afs.Service, matching
// the filesystem abstraction the rest of this module's teacher lineage uses
// for directory traversal.
type Walker struct {
	fs afs.Service
}

// NewWalker returns a Walker backed by the default local/afs-schemed
// filesystem service.
func NewWalker() *Walker {
	return &Walker{fs: afs.New()}
}

// Find walks root and returns every ".py" file not under an excluded
// directory, sorted by relative path for determinism.
func (w *Walker) Find(ctx context.Context, root string) ([]File, error) {
	var files []File
	visitor := storage.OnVisit(func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		name := info.Name()
		if info.IsDir() {
			if parent == "" && name == "." {
				return true, nil
			}
			if skipDir(name) {
				return false, nil
			}
			return true, nil
		}
		if !strings.HasSuffix(name, ".py") {
			return true, nil
		}
		rel := filepath.ToSlash(filepath.Join(parent, name))
		files = append(files, File{
			AbsURL:  url.Join(baseURL, parent, name),
			RelPath: rel,
		})
		return true, nil
	})

	if err := w.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("discover: walk %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// Read downloads the contents of a discovered file.
func (w *Walker) Read(ctx context.Context, f File) ([]byte, error) {
	data, err := w.fs.DownloadWithURL(ctx, f.AbsURL)
	if err != nil {
		return nil, fmt.Errorf("discover: read %s: %w", f.RelPath, err)
	}
	return data, nil
}

// Stamp is the (relpath, mtime, size) triple used for cache signatures.
type Stamp struct {
	RelPath string
	ModTime int64
	Size    int64
}

// Signature computes a deterministic, sorted list of file stamps for every
// in-scope ".py" file under root. Two signatures are equal iff no file was
// added, removed, resized, or touched since the last computation (mirrors
// the reference cache's staleness check).
func (w *Walker) Signature(ctx context.Context, root string) ([]Stamp, error) {
	var stamps []Stamp
	visitor := storage.OnVisit(func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		name := info.Name()
		if info.IsDir() {
			if parent == "" && name == "." {
				return true, nil
			}
			if skipDir(name) {
				return false, nil
			}
			return true, nil
		}
		if !strings.HasSuffix(name, ".py") {
			return true, nil
		}
		rel := filepath.ToSlash(filepath.Join(parent, name))
		stamps = append(stamps, Stamp{RelPath: rel, ModTime: info.ModTime().Unix(), Size: info.Size()})
		return true, nil
	})

	if err := w.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("discover: signature %s: %w", root, err)
	}

	sort.Slice(stamps, func(i, j int) bool { return stamps[i].RelPath < stamps[j].RelPath })
	return stamps, nil
}
