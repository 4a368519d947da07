// Package shell implements the user-facing normalization rules a host
// surface must apply before calling the core: control-character rejection
// on paths and the resolve_calls / query_type synonym tables.
package shell

import (
	"fmt"
	"strings"
)

// RejectControlChars fails a path containing any raw ASCII control
// character (0x00-0x1f, 0x7f), which would otherwise smuggle terminal
// escapes or path-traversal tricks through a shell surface.
func RejectControlChars(path string) error {
	for i, r := range path {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("shell: path contains control character at byte %d", i)
		}
	}
	return nil
}

// resolveCallsSynonyms maps every accepted spelling of the "skip Strategy B"
// mode to its canonical value. Anything else normalizes to "jedi".
var resolveCallsSynonyms = map[string]bool{
	"fast":          true,
	"no_jedi":       true,
	"nojedi":        true,
	"fallback":      true,
	"fallback_only": true,
}

// NormalizeResolveCalls maps a user-supplied resolve_calls value to one of
// the two canonical core values, "jedi" or "fallback_only".
func NormalizeResolveCalls(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if resolveCallsSynonyms[v] {
		return "fallback_only"
	}
	return "jedi"
}

var queryTypeSynonyms = map[string]string{
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
}

// NormalizeQueryType maps a user-supplied query_type value to one of the
// five canonical core values, or returns false when the value (after
// normalization) is not recognized at all.
func NormalizeQueryType(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	canon, ok := queryTypeSynonyms[v]
	return canon, ok
}

var directionSynonyms = map[string]string{
	"out":      "out",
	"outgoing": "out",
	"callees":  "out",
	"in":       "in",
	"incoming": "in",
	"callers":  "in",
	"both":     "both",
}

// NormalizeDirection maps a user-supplied export direction value to one of
// "out", "in", or "both". Anything unrecognized (including empty) normalizes
// to "both".
func NormalizeDirection(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if canon, ok := directionSynonyms[v]; ok {
		return canon
	}
	return "both"
}
