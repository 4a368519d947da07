// Command codegraph is a thin demonstration CLI over codegraph.Service: it is
// not the out-of-scope tool-server shell, just wiring over the service from a
// terminal. Each invocation constructs a new codegraph.Service with an empty
// in-process cache, so a graph id printed by "build" is not known to a later
// "query", "stats", "export" or "cache" invocation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/codegraph/codegraph"
)

var (
	graphID         string
	granularity     string
	includeExternal bool
	resolveCalls    string
	forceRebuild    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "codegraph: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "codegraph",
		Short: "Build and query a call-and-containment graph for a Python project",
	}
	root.AddCommand(buildCmd(), queryCmd(), statsCmd(), exportCmd(), cacheCmd())
	return root
}

func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [root]",
		Short: "Build (or reuse) a graph for root and print its graph id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := codegraph.New()
			res, err := svc.BuildGraph(context.Background(), codegraph.BuildRequest{
				RootPath:        args[0],
				Granularity:     granularity,
				IncludeExternal: includeExternal,
				ResolveCalls:    resolveCalls,
				ForceRebuild:    forceRebuild,
			})
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}
	cmd.Flags().StringVar(&granularity, "granularity", "function", "\"function\" or \"file\"")
	cmd.Flags().BoolVar(&includeExternal, "include-external", false, "part of the cache key; external definitions from the semantic resolver never become graph nodes or edges")
	cmd.Flags().StringVar(&resolveCalls, "resolve-calls", "jedi", "\"jedi\" or \"fallback_only\" (and accepted synonyms)")
	cmd.Flags().BoolVar(&forceRebuild, "force", false, "bypass the cache and rebuild")
	return cmd
}

func queryCmd() *cobra.Command {
	var pathTarget string
	cmd := &cobra.Command{
		Use:   "query [query-type] [target]",
		Short: "Run callers|callees|dependencies|reverse_dependencies|path against a built graph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := codegraph.New()
			res, err := svc.QueryGraph(graphID, args[0], args[1], pathTarget)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}
	cmd.Flags().StringVar(&graphID, "graph-id", "", "graph id returned by \"build\" (required)")
	cmd.Flags().StringVar(&pathTarget, "path-target", "", "destination reference, required for query-type \"path\"")
	cmd.MarkFlagRequired("graph-id")
	return cmd
}

func statsCmd() *cobra.Command {
	var topN int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print fan-in/fan-out statistics for a built graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := codegraph.New()
			ov, err := svc.GraphOverview(graphID, topN)
			if err != nil {
				return err
			}
			return printJSON(ov)
		},
	}
	cmd.Flags().StringVar(&graphID, "graph-id", "", "graph id returned by \"build\" (required)")
	cmd.Flags().IntVar(&topN, "top", 10, "how many hotspots/hubs to list")
	cmd.MarkFlagRequired("graph-id")
	return cmd
}

func exportCmd() *cobra.Command {
	var focus, format, direction string
	var depth, maxNodes int
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a bounded subgraph around a focus node as mermaid or dot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := codegraph.New()
			res, err := svc.ExportCallGraph(graphID, focus, format, depth, maxNodes, direction)
			if err != nil {
				return err
			}
			fmt.Println(res.Source)
			if res.Truncated {
				fmt.Fprintf(os.Stderr, "codegraph: output truncated at %d nodes\n", maxNodes)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&graphID, "graph-id", "", "graph id returned by \"build\" (required)")
	cmd.Flags().StringVar(&focus, "focus", "", "focus node reference; an empty value matches no node and the export fails with unknown_target_id")
	cmd.Flags().StringVar(&format, "format", "mermaid", "\"mermaid\" or \"dot\"")
	cmd.Flags().StringVar(&direction, "direction", "both", "\"out\", \"in\", or \"both\"")
	cmd.Flags().IntVar(&depth, "depth", 2, "BFS depth around the focus node")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 50, "truncate the subgraph beyond this many nodes")
	cmd.MarkFlagRequired("graph-id")
	return cmd
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Inspect or clear the in-process graph cache"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(codegraph.New().ListCachedGraphs())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear [graph-id]",
		Short: "Evict one cached graph, or all of them with no argument",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			n := codegraph.New().ClearGraphCache(id)
			fmt.Printf("cleared %d entr(y/ies)\n", n)
			return nil
		},
	})
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
