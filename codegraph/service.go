// Package codegraph is the top-level facade: it wires file discovery,
// parsing, graph construction, caching, queries, statistics, export, node-id
// resolution, and the optional classifier behind one entry point, mirroring
// the reference implementation's graph_service module. Every public method
// returns a structured failure instead of panicking or propagating an
// internal error type, matching the host-tool-server error contract.
package codegraph

import (
	"context"
	"fmt"
	"os"

	"github.com/viant/codegraph/cache"
	"github.com/viant/codegraph/classify"
	"github.com/viant/codegraph/discover"
	"github.com/viant/codegraph/export"
	"github.com/viant/codegraph/graph"
	"github.com/viant/codegraph/inspector/repository"
	"github.com/viant/codegraph/pyast"
	"github.com/viant/codegraph/query"
	"github.com/viant/codegraph/resolveid"
	"github.com/viant/codegraph/semantic"
	"github.com/viant/codegraph/shell"
	"github.com/viant/codegraph/stats"
)

// Failure is a structured, non-fatal error: bad input, an unknown id, or a
// collaborator that failed. It never corrupts the cache or aborts a build in
// progress.
type Failure struct {
	Code        string
	Message     string
	Suggestions []string
}

func (f *Failure) Error() string { return fmt.Sprintf("%s: %s", f.Code, f.Message) }

func fail(code, format string, args ...any) *Failure {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Service is the facade over one process's worth of cached graphs.
type Service struct {
	analyzer *pyast.Analyzer
	cache    *cache.Cache
	walker   *discover.Walker
	detector *repository.Detector
	classify classify.Classifier
}

// Option configures a Service.
type Option func(*Service)

// WithSemanticResolver wires the optional Strategy B name-inference engine
// into the analyzer used for every build.
func WithSemanticResolver(r semantic.Resolver) Option {
	return func(s *Service) { s.analyzer = pyast.New(pyast.WithSemanticResolver(r), pyast.WithWalker(s.walker)) }
}

// WithClassifier wires the optional LLM call-certainty classifier used by
// ClassifyCallees. Defaults to classify.Null.
func WithClassifier(c classify.Classifier) Option {
	return func(s *Service) { s.classify = c }
}

// WithCacheCapacity overrides the default LRU cache size.
func WithCacheCapacity(n int) Option {
	return func(s *Service) { s.cache = cache.New(s.walker, n) }
}

// New returns a Service with an empty cache.
func New(opts ...Option) *Service {
	w := discover.NewWalker()
	s := &Service{
		walker:   w,
		analyzer: pyast.New(pyast.WithWalker(w)),
		cache:    cache.New(w, cache.DefaultMaxEntries),
		detector: repository.New(),
		classify: classify.Null{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildRequest mirrors the external build parameters.
type BuildRequest struct {
	RootPath        string
	Granularity     string // "function" | "file"
	IncludeExternal bool
	ResolveCalls    string // raw, pre-synonym-normalization value
	ForceRebuild    bool
}

// BuildResult reports the graph id and size for a completed build.
type BuildResult struct {
	GraphID string
	Nodes   int
	Edges   int
	Cached  bool
}

// BuildGraph normalizes ResolveCalls and returns the cached or newly built
// graph for req.RootPath. An empty RootPath is defaulted to the detected
// project root of the current working directory; an explicit RootPath is
// used exactly as given (the detector never overrides a caller-supplied
// root, since it anchors on the nearest marker of ANY recognized project
// type and would otherwise walk past a Python subtree up to, say, an
// enclosing Go module's go.mod).
func (s *Service) BuildGraph(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	if err := shell.RejectControlChars(req.RootPath); err != nil {
		return nil, fail("invalid_path", "%v", err)
	}
	root := req.RootPath
	if root == "" {
		root = s.defaultRoot()
	}

	granularity := pyast.GranularityFunction
	if req.Granularity == string(pyast.GranularityFile) {
		granularity = pyast.GranularityFile
	}
	resolveMode := pyast.ResolveMode(shell.NormalizeResolveCalls(req.ResolveCalls))

	key := cache.Key{
		Root:            root,
		Granularity:     string(granularity),
		IncludeExternal: req.IncludeExternal,
		ResolveCalls:    string(resolveMode),
	}
	builder := func(ctx context.Context, key cache.Key) (*graph.Graph, error) {
		return s.analyzer.Build(ctx, pyast.BuildParams{
			Root:            key.Root,
			Granularity:     pyast.Granularity(key.Granularity),
			IncludeExternal: key.IncludeExternal,
			ResolveCalls:    pyast.ResolveMode(key.ResolveCalls),
		})
	}

	entry, cached, err := s.cache.BuildOrGet(ctx, key, builder, req.ForceRebuild)
	if err != nil {
		return nil, fail("build_failed", "%v", err)
	}
	return &BuildResult{
		GraphID: entry.GraphID,
		Nodes:   len(entry.Graph.Nodes()),
		Edges:   len(entry.Graph.Edges()),
		Cached:  cached,
	}, nil
}

// defaultRoot anchors an unspecified build root on the nearest detected
// project root above the current working directory. It falls back to "."
// when the working directory cannot be determined, and to the working
// directory itself when detection fails or no marker is found.
func (s *Service) defaultRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	project, err := s.detector.DetectProject(wd)
	if err != nil || project == nil || project.RootPath == "" {
		return wd
	}
	return project.RootPath
}

func (s *Service) graphFor(graphID string) (*graph.Graph, error) {
	entry, ok := s.cache.Get(graphID)
	if !ok {
		return nil, fail("unknown_graph_id", "no cached graph with id %q", graphID)
	}
	return entry.Graph, nil
}

// GraphOverview returns graph-wide statistics for a previously built graph.
func (s *Service) GraphOverview(graphID string, topN int) (*stats.Overview, error) {
	g, err := s.graphFor(graphID)
	if err != nil {
		return nil, err
	}
	ov := stats.Compute(g, graph.Call, topN)
	return &ov, nil
}

// SearchNodes returns node ids matching a free-text query.
func (s *Service) SearchNodes(graphID, q string, limit int) ([]string, error) {
	g, err := s.graphFor(graphID)
	if err != nil {
		return nil, err
	}
	return resolveid.Suggest(g, q, limit), nil
}

// QueryResult is the outcome of QueryGraph.
type QueryResult struct {
	TargetID    string
	ResolvedIDs []string
}

// QueryGraph resolves targetRef to a node id and runs the requested query.
// pathTarget is required (and resolved the same way) when queryType
// normalizes to "path".
func (s *Service) QueryGraph(graphID, queryType, targetRef, pathTarget string) (*QueryResult, error) {
	g, err := s.graphFor(graphID)
	if err != nil {
		return nil, err
	}
	canon, ok := shell.NormalizeQueryType(queryType)
	if !ok {
		return nil, fail("unknown_query_type", "unrecognized query_type %q", queryType)
	}

	targetID, ok := resolveid.Resolve(g, targetRef)
	if !ok {
		return nil, &Failure{
			Code:        "unknown_target_id",
			Message:     fmt.Sprintf("no node matches %q", targetRef),
			Suggestions: resolveid.Suggest(g, targetRef, 5),
		}
	}

	switch canon {
	case "callers":
		return &QueryResult{TargetID: targetID, ResolvedIDs: query.Callers(g, targetID)}, nil
	case "callees":
		return &QueryResult{TargetID: targetID, ResolvedIDs: query.Callees(g, targetID)}, nil
	case "dependencies":
		return &QueryResult{TargetID: targetID, ResolvedIDs: query.Dependencies(g, targetID)}, nil
	case "reverse_dependencies":
		return &QueryResult{TargetID: targetID, ResolvedIDs: query.ReverseDependencies(g, targetID)}, nil
	case "path":
		if pathTarget == "" {
			return nil, fail("missing_path_target", "query_type %q requires a path_target", canon)
		}
		destID, ok := resolveid.Resolve(g, pathTarget)
		if !ok {
			return nil, &Failure{
				Code:        "unknown_target_id",
				Message:     fmt.Sprintf("no node matches %q", pathTarget),
				Suggestions: resolveid.Suggest(g, pathTarget, 5),
			}
		}
		return &QueryResult{TargetID: targetID, ResolvedIDs: query.Path(g, targetID, destID)}, nil
	default:
		return nil, fail("unknown_query_type", "unrecognized query_type %q", queryType)
	}
}

// ExportResult is the outcome of ExportCallGraph.
type ExportResult struct {
	Source    string
	Truncated bool
	NodeCount int
	EdgeCount int
}

// ExportCallGraph resolves focusRef to a node id and renders its bounded
// neighborhood as "mermaid" or "dot" (default "mermaid"). direction selects
// which edges the subgraph BFS follows: "out", "in", or "both" (default).
func (s *Service) ExportCallGraph(graphID, focusRef, format string, depth, maxNodes int, direction string) (*ExportResult, error) {
	g, err := s.graphFor(graphID)
	if err != nil {
		return nil, err
	}
	focusID, ok := resolveid.Resolve(g, focusRef)
	if !ok {
		return nil, &Failure{
			Code:        "unknown_target_id",
			Message:     fmt.Sprintf("no node matches %q", focusRef),
			Suggestions: resolveid.Suggest(g, focusRef, 5),
		}
	}
	dir := export.Direction(shell.NormalizeDirection(direction))
	sg := export.Collect(g, focusID, depth, maxNodes, dir)

	var rendered string
	switch format {
	case "dot":
		rendered = export.DOT(sg)
	default:
		rendered = export.Mermaid(sg)
	}
	return &ExportResult{
		Source:    rendered,
		Truncated: sg.Truncated,
		NodeCount: len(sg.Nodes),
		EdgeCount: len(sg.Edges),
	}, nil
}

// ClassifyCallees resolves targetRef, looks up its direct callees, and asks
// the configured Classifier to rate each one's certainty.
func (s *Service) ClassifyCallees(ctx context.Context, graphID, targetRef, targetSource string) (map[string]classify.Certainty, error) {
	g, err := s.graphFor(graphID)
	if err != nil {
		return nil, err
	}
	targetID, ok := resolveid.Resolve(g, targetRef)
	if !ok {
		return nil, &Failure{
			Code:        "unknown_target_id",
			Message:     fmt.Sprintf("no node matches %q", targetRef),
			Suggestions: resolveid.Suggest(g, targetRef, 5),
		}
	}
	if s.classify == nil {
		return nil, fail("classifier_unavailable", "no classifier configured")
	}
	callees := query.Callees(g, targetID)
	result, err := s.classify.Classify(ctx, targetSource, callees, targetID)
	if err != nil {
		return nil, fail("classifier_failed", "%v", err)
	}
	return result, nil
}

// ListCachedGraphs exposes the cache's resident entries, most-recently-used
// first.
func (s *Service) ListCachedGraphs() []cache.Listing { return s.cache.List() }

// ClearGraphCache evicts one entry (graphID != "") or every entry.
func (s *Service) ClearGraphCache(graphID string) int { return s.cache.Clear(graphID) }
