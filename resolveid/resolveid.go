// Package resolveid turns a user-supplied, possibly-partial node reference
// into a concrete graph node id: an exact id, a bare file path, a
// "relpath:symbol" pair, or a suffix match against every known id.
package resolveid

import (
	"sort"
	"strings"

	"github.com/viant/codegraph/graph"
)

var recognizedPrefixes = []string{"file:", "class:", "func:"}

func hasRecognizedPrefix(query string) bool {
	for _, p := range recognizedPrefixes {
		if strings.HasPrefix(query, p) {
			return true
		}
	}
	return false
}

// Resolve finds the single node id best matching query, or false if none (or
// more than one, ambiguously) match.
func Resolve(g *graph.Graph, query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}

	// 1. Exact id.
	if g.HasNode(query) {
		return query, true
	}

	// 2. A query carrying one of our own id prefixes that didn't match
	// exactly is not a partial reference worth guessing at further.
	if hasRecognizedPrefix(query) {
		return "", false
	}

	// 3. Bare file reference.
	if strings.HasSuffix(query, ".py") {
		id := "file:" + query
		if g.HasNode(id) {
			return id, true
		}
	}

	// 4. "relpath:symbol" - try func: then class:.
	if idx := strings.LastIndex(query, ":"); idx > 0 {
		rel, symbol := query[:idx], query[idx+1:]
		for _, id := range []string{"func:" + rel + ":" + symbol, "class:" + rel + ":" + symbol} {
			if g.HasNode(id) {
				return id, true
			}
		}
	}

	// 5. Deterministic suffix match: any node id ending in ":query" or whose
	// final ":"-segment equals query, preferring an exact, unambiguous hit.
	var candidates []string
	for _, n := range g.Nodes() {
		if strings.HasSuffix(n.ID, ":"+query) || n.Name == query || n.Qualname == query {
			candidates = append(candidates, n.ID)
		}
	}
	sort.Strings(candidates)
	candidates = uniq(candidates)
	if len(candidates) == 1 {
		return candidates[0], true
	}
	return "", false
}

// Suggest returns up to limit node ids whose id, name, or qualname contains
// query as a substring, sorted for determinism.
func Suggest(g *graph.Graph, query string, limit int) []string {
	if limit <= 0 {
		limit = 10
	}
	query = strings.ToLower(strings.TrimSpace(query))
	var matches []string
	for _, n := range g.Nodes() {
		if query == "" ||
			strings.Contains(strings.ToLower(n.ID), query) ||
			strings.Contains(strings.ToLower(n.Name), query) ||
			strings.Contains(strings.ToLower(n.Qualname), query) {
			matches = append(matches, n.ID)
		}
	}
	sort.Strings(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func uniq(s []string) []string {
	out := s[:0]
	var last string
	for i, v := range s {
		if i == 0 || v != last {
			out = append(out, v)
			last = v
		}
	}
	return out
}
