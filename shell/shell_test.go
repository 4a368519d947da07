package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejectControlChars(t *testing.T) {
	assert.NoError(t, RejectControlChars("/home/user/project/a.py"))
	assert.Error(t, RejectControlChars("/home/user/\x1b[31mproject/a.py"))
	assert.Error(t, RejectControlChars("a.py\x00"))
	assert.Error(t, RejectControlChars("a.py\x7f"))
}

func TestNormalizeResolveCalls(t *testing.T) {
	for _, v := range []string{"fast", "no_jedi", "nojedi", "fallback", "fallback_only", "FAST", " fast "} {
		assert.Equal(t, "fallback_only", NormalizeResolveCalls(v), v)
	}
	for _, v := range []string{"jedi", "", "whatever"} {
		assert.Equal(t, "jedi", NormalizeResolveCalls(v), v)
	}
}

func TestNormalizeQueryType(t *testing.T) {
	cases := map[string]string{
		"outgoing":             "callees",
		"calls":                "callees",
		"callees":              "callees",
		"incoming":             "callers",
		"used_by":              "callers",
		"callers":              "callers",
		"reachable":            "dependencies",
		"dependencies":         "dependencies",
		"rev_deps":             "reverse_dependencies",
		"reverse_dependencies": "reverse_dependencies",
		"path":                 "path",
		"  PATH  ":             "path",
	}
	for in, want := range cases {
		got, ok := NormalizeQueryType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := NormalizeQueryType("bogus")
	assert.False(t, ok)
}

func TestNormalizeDirection(t *testing.T) {
	cases := map[string]string{
		"out":      "out",
		"outgoing": "out",
		"callees":  "out",
		"in":       "in",
		"incoming": "in",
		"callers":  "in",
		"both":     "both",
		"  OUT  ":  "out",
		"":         "both",
		"bogus":    "both",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDirection(in), in)
	}
}
