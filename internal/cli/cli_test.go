package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cdmlens/cdmlens/pkg/graph"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"plan":       false,
		"render":     false,
		"import":     false,
		"export":     false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func testGraphFile(t *testing.T) string {
	t.Helper()
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "obj-1", Label: "Customer", Category: graph.CategoryObject},
			{ID: "obj-2", Label: "Account", Category: graph.CategoryObject},
		},
		Edges: []graph.Edge{
			{ID: "e1", From: "obj-1", To: "obj-2", Label: "owns"},
			{ID: "e2", From: "obj-1", To: "obj-2", Label: "manages"},
		},
	}
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteFile(g, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlanCommandWritesPlanFile(t *testing.T) {
	input := testGraphFile(t)
	output := filepath.Join(t.TempDir(), "graph.plan.json")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"plan", input, "-o", output, "--no-cache", "-m", "relationship-emphasis"})
	root.SetOut(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("plan command failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("plan output not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("plan output is empty")
	}
}

func TestPlanCommandRejectsBadMode(t *testing.T) {
	input := testGraphFile(t)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"plan", input, "--no-cache", "-m", "diagonal"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRenderCommandWritesDOT(t *testing.T) {
	input := testGraphFile(t)
	output := filepath.Join(t.TempDir(), "graph.dot")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-f", "dot", "-o", output, "--no-cache"})
	root.SetOut(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("render command failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("render output not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("render output is empty")
	}
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	input := testGraphFile(t)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-f", "gif", "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("expected error for unknown format")
	}
}
