package pyast

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSnippet(t *testing.T, src string) (*sitter.Node, []byte) {
	t.Helper()
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, []byte(src))
	require.NoError(t, err)
	return tree.RootNode(), []byte(src)
}

func TestExtractAliases(t *testing.T) {
	root, src := parseSnippet(t, `
import utils.e as e
from utils.c import add as add_nums, multiply
from utils.e import AuditLogger
from a import Divider
`)

	al := extractAliases(root, src)

	assert.Equal(t, "utils.e", al.modAlias["e"])
	assert.Equal(t, "utils.c.add", al.funcAlias["add_nums"])
	assert.Equal(t, "utils.c.multiply", al.funcAlias["multiply"])
	assert.Equal(t, "utils.e.AuditLogger", al.funcAlias["AuditLogger"])
	assert.Equal(t, "a.Divider", al.funcAlias["Divider"])
}

func TestExtractAliases_PlainImportNoAlias(t *testing.T) {
	root, src := parseSnippet(t, "import os\n")
	al := extractAliases(root, src)
	assert.Equal(t, "os", al.modAlias["os"])
}

func TestExtractAliases_RelativeImportIgnored(t *testing.T) {
	root, src := parseSnippet(t, "from . import sibling\n")
	al := extractAliases(root, src)
	assert.Empty(t, al.funcAlias)
}

func TestResolveClassToRel(t *testing.T) {
	classes := newClassRegistry()
	classes.add("Widget", "widget.py")

	rel, cls, ok := resolveClassToRel("Widget", "caller.py", map[string]string{}, classes)
	assert.True(t, ok)
	assert.Equal(t, "widget.py", rel)
	assert.Equal(t, "Widget", cls)

	_, _, ok = resolveClassToRel("Unknown", "caller.py", map[string]string{}, classes)
	assert.False(t, ok)

	funcAlias := map[string]string{"Admin": "utils.d.Admin"}
	rel, cls, ok = resolveClassToRel("Admin", "caller.py", funcAlias, classes)
	assert.True(t, ok)
	assert.Equal(t, "utils/d.py", rel)
	assert.Equal(t, "Admin", cls)
}
