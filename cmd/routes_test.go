package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// mockRoutesLister is a test double for RoutesLister.
type mockRoutesLister struct {
	result *RoutesResult
	err    error
}

func (m *mockRoutesLister) Routes(ctx context.Context) (*RoutesResult, error) {
	return m.result, m.err
}

// newTestRoutesCmd creates a routes command wired to the given lister,
// capturing stdout and stderr into the returned buffers.
func newTestRoutesCmd(lister RoutesLister, args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := NewRoutesCmd(lister)
	cmd.SetArgs(args)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd, stdout, stderr
}

// siteRoutes returns a small site with nested sections and one gap.
func siteRoutes() *RoutesResult {
	return &RoutesResult{
		Routes: []RouteEntry{
			{Route: "/bestiary/dragons/red", File: "bestiary/dragons/red.mdx", Title: "Red Dragon"},
			{Route: "/docs", File: "content/index.mdx", Title: "Rules"},
			{Route: "/docs/combat", File: "content/combat/index.mdx", Title: "Combat"},
			{Route: "/docs/combat/grapple", File: "content/combat/grapple.mdx"},
			{Route: "/docs/spells", File: "content/spells.mdx", Title: "Spells"},
		},
		Findings: []Finding{
			{Type: "route_collision", Severity: "warning", Message: "route /docs/combat is produced by 2 files", Path: "content/combat.mdx"},
		},
	}
}

func TestRoutesCmd_Text(t *testing.T) {
	cmd, stdout, stderr := newTestRoutesCmd(&mockRoutesLister{result: siteRoutes()})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), stdout.String())
	}
	if got := strings.Fields(lines[1]); len(got) != 3 || got[0] != "/docs" || got[1] != "content/index.mdx" || got[2] != "Rules" {
		t.Errorf("line 2 fields = %q", got)
	}
	if got := strings.Fields(lines[3]); len(got) != 2 || got[0] != "/docs/combat/grapple" {
		t.Errorf("untitled route fields = %q", got)
	}
	if !strings.Contains(stderr.String(), "content/combat.mdx [warning] route_collision:") {
		t.Errorf("collision warning missing from stderr: %q", stderr.String())
	}
}

func TestRoutesCmd_Tree(t *testing.T) {
	cmd, stdout, _ := newTestRoutesCmd(&mockRoutesLister{result: siteRoutes()}, "--tree")

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "/bestiary/dragons/red (Red Dragon)\n" +
		"/docs (Rules)\n" +
		"├── /docs/combat (Combat)\n" +
		"│   └── /docs/combat/grapple\n" +
		"└── /docs/spells (Spells)\n"
	if stdout.String() != want {
		t.Errorf("tree =\n%s\nwant\n%s", stdout.String(), want)
	}
}

func TestRoutesCmd_Depth(t *testing.T) {
	cmd, stdout, _ := newTestRoutesCmd(&mockRoutesLister{result: siteRoutes()}, "--depth", "2", "--json")

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		Routes []RouteEntry `json:"routes"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\nraw: %s", err, stdout.String())
	}
	var got []string
	for _, r := range out.Routes {
		got = append(got, r.Route)
	}
	want := []string{"/docs", "/docs/combat", "/docs/spells"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("routes = %v, want %v", got, want)
	}
}

func TestRoutesCmd_JSON(t *testing.T) {
	cmd, stdout, stderr := newTestRoutesCmd(&mockRoutesLister{result: siteRoutes()}, "--json")

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		Routes   []RouteEntry `json:"routes"`
		Findings []Finding    `json:"findings"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\nraw: %s", err, stdout.String())
	}
	if len(out.Routes) != 5 {
		t.Errorf("routes = %d, want 5", len(out.Routes))
	}
	if len(out.Findings) != 1 || out.Findings[0].Type != "route_collision" {
		t.Errorf("findings = %+v", out.Findings)
	}
	if stderr.Len() != 0 {
		t.Errorf("JSON mode should keep findings out of stderr, got %q", stderr.String())
	}
}

func TestRoutesCmd_JSONTree(t *testing.T) {
	cmd, stdout, _ := newTestRoutesCmd(&mockRoutesLister{result: siteRoutes()}, "--json", "--tree")

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		Tree []*treeNode `json:"tree"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\nraw: %s", err, stdout.String())
	}
	if len(out.Tree) != 2 {
		t.Fatalf("tree roots = %d, want 2", len(out.Tree))
	}
	docs := out.Tree[1]
	if docs.Route != "/docs" || len(docs.Children) != 2 || docs.Children[0].Children[0].Route != "/docs/combat/grapple" {
		t.Errorf("unexpected /docs subtree: %+v", docs)
	}
}

func TestRoutesCmd_EmptySiteJSON(t *testing.T) {
	cmd, stdout, _ := newTestRoutesCmd(&mockRoutesLister{result: &RoutesResult{}}, "--json")

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"routes":[],"findings":[]}` + "\n"
	if stdout.String() != want {
		t.Errorf("output = %q, want %q", stdout.String(), want)
	}
}

func TestRoutesCmd_ListerError(t *testing.T) {
	listErr := errors.New("listing content: permission denied")
	cmd, _, _ := newTestRoutesCmd(&mockRoutesLister{err: listErr})

	if err := cmd.Execute(); !errors.Is(err, listErr) {
		t.Errorf("error = %v, want %v", err, listErr)
	}
}

func TestRouteDepth(t *testing.T) {
	tests := []struct {
		route string
		want  int
	}{
		{"/", 0},
		{"/docs", 1},
		{"/docs/combat", 2},
		{"/docs/combat/grapple", 3},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			if got := routeDepth(tt.route); got != tt.want {
				t.Errorf("routeDepth(%q) = %d, want %d", tt.route, got, tt.want)
			}
		})
	}
}

func TestBuildTree_RootRouteParentsEverything(t *testing.T) {
	roots := buildTree([]RouteEntry{
		{Route: "/"},
		{Route: "/about"},
		{Route: "/about/team"},
	})

	if len(roots) != 1 || roots[0].Route != "/" {
		t.Fatalf("roots = %+v, want single / root", roots)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Children[0].Route != "/about/team" {
		t.Errorf("unexpected tree under /: %+v", roots[0].Children)
	}
}
