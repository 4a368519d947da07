package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/codegraph/discover"
)

func fixtureRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "..", "testdata", "fixture")
}

func TestBuild_ParsesAllFiles(t *testing.T) {
	w := discover.NewWalker()
	ix, err := Build(context.Background(), w, fixtureRoot(t))
	require.NoError(t, err)

	assert.Equal(t, 5, ix.Len())
	assert.Equal(t, 0, ix.Skipped)

	f, ok := ix.Get("b.py")
	require.True(t, ok)
	assert.Equal(t, "module", f.Root().Type())
}

func TestBuild_FilesOrderedByRelPath(t *testing.T) {
	w := discover.NewWalker()
	ix, err := Build(context.Background(), w, fixtureRoot(t))
	require.NoError(t, err)

	var rels []string
	for _, f := range ix.Files() {
		rels = append(rels, f.RelPath)
	}
	assert.Equal(t, []string{"a.py", "b.py", "utils/c.py", "utils/d.py", "utils/e.py"}, rels)
}
