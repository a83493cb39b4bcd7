package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lmarchetti/cardflow/pkg/board"
)

func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

// runCommand executes the root command with args against a fresh CLI.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	root := testCLI().RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestBoardNewAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")

	if err := runCommand(t, "board", "new", path, "--name", "sprint"); err != nil {
		t.Fatalf("board new: %v", err)
	}

	b, err := board.ReadBoardFile(path)
	if err != nil {
		t.Fatalf("read created board: %v", err)
	}
	if b.Name != "sprint" {
		t.Errorf("Name = %q, want %q", b.Name, "sprint")
	}
	if len(b.Cards) != 0 {
		t.Errorf("new board has %d cards, want 0", len(b.Cards))
	}

	if err := runCommand(t, "board", "show", path); err != nil {
		t.Errorf("board show: %v", err)
	}
}

func TestCardAddPlacesInGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := runCommand(t, "board", "new", path); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := runCommand(t, "card", "add", path, "--title", "note"); err != nil {
			t.Fatalf("card add: %v", err)
		}
	}

	b, err := board.ReadBoardFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Cards) != 2 {
		t.Fatalf("board has %d cards, want 2", len(b.Cards))
	}
	if b.Cards[0].Position.X != 32 || b.Cards[1].Position.X != 352 {
		t.Errorf("cards at X %v and %v, want 32 and 352",
			b.Cards[0].Position.X, b.Cards[1].Position.X)
	}
}

func TestCardResizeShiftsNeighbor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := runCommand(t, "board", "new", path); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := runCommand(t, "card", "add", path); err != nil {
			t.Fatal(err)
		}
	}

	b, err := board.ReadBoardFile(path)
	if err != nil {
		t.Fatal(err)
	}

	err = runCommand(t, "card", "resize", path, b.Cards[0].ID, "-W", "472", "-H", "220")
	if err != nil {
		t.Fatalf("card resize: %v", err)
	}

	got, err := board.ReadBoardFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cards[1].Position.X != 544 {
		t.Errorf("neighbor X = %v, want 544", got.Cards[1].Position.X)
	}
}

func TestCardBranchAndLineageDOT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.json")
	if err := runCommand(t, "board", "new", path); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, "card", "add", path, "--title", "trunk"); err != nil {
		t.Fatal(err)
	}

	b, err := board.ReadBoardFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "card", "branch", path, b.Cards[0].ID, "--title", "fork"); err != nil {
		t.Fatalf("card branch: %v", err)
	}

	dotPath := filepath.Join(dir, "lineage.dot")
	if err := runCommand(t, "lineage", path, "-f", "dot", "-o", dotPath); err != nil {
		t.Fatalf("lineage: %v", err)
	}

	dot, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), "->") {
		t.Error("lineage DOT should contain an edge")
	}
}

func TestArrangeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := runCommand(t, "board", "new", path); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := runCommand(t, "card", "add", path); err != nil {
			t.Fatal(err)
		}
	}

	if err := runCommand(t, "arrange", path, "--no-cache"); err != nil {
		t.Fatalf("arrange: %v", err)
	}

	b, err := board.ReadBoardFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Fifth card wraps to the first column, one row down.
	if b.Cards[4].Position.X != 32 || b.Cards[4].Position.Y != 292 {
		t.Errorf("card 4 at (%v, %v), want (32, 292)",
			b.Cards[4].Position.X, b.Cards[4].Position.Y)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.json")
	if err := runCommand(t, "board", "new", path); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, "card", "add", path, "--title", "only"); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "render", path); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "board.svg"))
	if err != nil {
		t.Fatalf("read rendered SVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output does not look like SVG")
	}
}

func TestNextCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := runCommand(t, "board", "new", path); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, "next", path); err != nil {
		t.Errorf("next: %v", err)
	}
}

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want string
	}{
		{"board.json", ".svg", "board.svg"},
		{"dir/board.json", ".dot", "dir/board.dot"},
		{"noext", ".svg", "noext.svg"},
	}
	for _, tt := range tests {
		if got := replaceExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("replaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}
