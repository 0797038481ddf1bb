package cmd

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// FindingType represents the kind of route finding.
type FindingType string

// Severity represents the severity level of a finding.
type Severity string

// Finding is a problem noticed while deriving routes.
type Finding struct {
	Type     FindingType `json:"type"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Path     string      `json:"path"`
}

// RouteEntry is one published route and the file it comes from.
type RouteEntry struct {
	Route string `json:"route"`
	File  string `json:"file"`
	Title string `json:"title,omitempty"`
}

// RoutesResult holds the outcome of a routes listing.
type RoutesResult struct {
	Routes   []RouteEntry
	Findings []Finding
}

// RoutesLister defines the interface for listing derived routes.
type RoutesLister interface {
	Routes(ctx context.Context) (*RoutesResult, error)
}

// treeNode represents a route in the hierarchical tree for display.
type treeNode struct {
	Route    string      `json:"route"`
	File     string      `json:"file"`
	Title    string      `json:"title,omitempty"`
	Depth    int         `json:"depth"`
	Children []*treeNode `json:"children"`
}

// routesJSONResponse is the top-level JSON structure for routes output.
type routesJSONResponse struct {
	Routes   []RouteEntry `json:"routes"`
	Findings []Finding    `json:"findings"`
}

// routesTreeJSONResponse is the top-level JSON structure for routes --tree output.
type routesTreeJSONResponse struct {
	Tree     []*treeNode `json:"tree"`
	Findings []Finding   `json:"findings"`
}

// NewRoutesCmd creates the routes command with the given lister.
func NewRoutesCmd(lister RoutesLister) *cobra.Command {
	var jsonOutput bool
	var tree bool
	var depth int

	cmd := &cobra.Command{
		Use:          "routes",
		Short:        "List every route the site publishes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lister == nil {
				return ErrNotConfigured
			}
			result, err := lister.Routes(cmd.Context())
			if err != nil {
				return err
			}

			entries := filterByDepth(result.Routes, depth)
			if entries == nil {
				entries = []RouteEntry{}
			}
			findings := result.Findings
			if findings == nil {
				findings = []Finding{}
			}

			switch {
			case jsonOutput && tree:
				writeJSON(cmd.OutOrStdout(), routesTreeJSONResponse{Tree: buildTree(entries), Findings: findings})
				return nil
			case jsonOutput:
				writeJSON(cmd.OutOrStdout(), routesJSONResponse{Routes: entries, Findings: findings})
				return nil
			}

			if tree {
				renderTreeText(cmd.OutOrStdout(), buildTree(entries))
			} else {
				renderRoutesText(cmd.OutOrStdout(), entries)
			}
			for _, f := range findings {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s [%s] %s: %s\n", f.Path, f.Severity, f.Type, f.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&tree, "tree", false, "Display routes as a tree")
	cmd.Flags().IntVar(&depth, "depth", 0, "Maximum route depth (0 = unlimited)")

	return cmd
}

// routeDepth returns the number of path segments in route.
func routeDepth(route string) int {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return 0
	}
	return strings.Count(trimmed, "/") + 1
}

// filterByDepth drops routes deeper than maxDepth. Zero keeps everything.
func filterByDepth(entries []RouteEntry, maxDepth int) []RouteEntry {
	if maxDepth <= 0 {
		return entries
	}
	filtered := []RouteEntry{}
	for _, e := range entries {
		if routeDepth(e.Route) <= maxDepth {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// buildTree nests each route under its nearest listed ancestor. Entries must
// be sorted so that ancestors precede descendants.
func buildTree(entries []RouteEntry) []*treeNode {
	nodeMap := make(map[string]*treeNode)
	roots := []*treeNode{}

	for _, e := range entries {
		tn := &treeNode{
			Route:    e.Route,
			File:     e.File,
			Title:    e.Title,
			Depth:    routeDepth(e.Route),
			Children: []*treeNode{},
		}
		nodeMap[e.Route] = tn

		if parent := nearestAncestor(nodeMap, e.Route); parent != nil {
			parent.Children = append(parent.Children, tn)
			continue
		}
		roots = append(roots, tn)
	}
	return roots
}

func nearestAncestor(nodeMap map[string]*treeNode, route string) *treeNode {
	if !strings.HasPrefix(route, "/") {
		return nil
	}
	for r := route; r != "/"; {
		r = path.Dir(r)
		if n, ok := nodeMap[r]; ok {
			return n
		}
	}
	return nil
}

// renderRoutesText writes one aligned line per route.
func renderRoutesText(w io.Writer, entries []RouteEntry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Route, e.File, e.Title)
	}
	tw.Flush()
}

func label(n *treeNode) string {
	if n.Title == "" {
		return n.Route
	}
	return fmt.Sprintf("%s (%s)", n.Route, n.Title)
}

// renderTreeText writes the tree display with box-drawing characters.
func renderTreeText(w io.Writer, roots []*treeNode) {
	for _, root := range roots {
		fmt.Fprintln(w, label(root))
		renderChildren(w, root.Children, "")
	}
}

// renderChildren recursively renders child nodes with tree-drawing prefixes.
func renderChildren(w io.Writer, children []*treeNode, prefix string) {
	for i, child := range children {
		isLast := i == len(children)-1
		connector := "├── "
		if isLast {
			connector = "└── "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, label(child))

		childPrefix := prefix + "│   "
		if isLast {
			childPrefix = prefix + "    "
		}
		renderChildren(w, child.Children, childPrefix)
	}
}
