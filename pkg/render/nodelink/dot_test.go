package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/graph"
	"github.com/matzehuels/cfgexplorer/pkg/render"
)

func branchFunction() *graph.FunctionDoc {
	return &graph.FunctionDoc{
		Name:      "demo::pick",
		ShortName: "pick",
		Blocks: []graph.BlockDoc{
			{ID: 0, Role: graph.RoleBranchPoint, Summary: "compare",
				Statements: []graph.StatementDoc{{Source: "_2 = Gt(copy _1, const 0_i32)"}},
				Terminator: graph.TerminatorDoc{Kind: "SwitchInt", Source: "switchInt(move _2)", Edges: []graph.EdgeDoc{
					{Target: 1, Label: "true", Kind: graph.EdgeBranch},
					{Target: 2, Label: "unwind", Kind: graph.EdgeCleanup},
				}}},
			{ID: 1, Role: graph.RoleExit, Predecessors: []int{0}},
			{ID: 2, Role: graph.RoleCleanup, Predecessors: []int{0}},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(branchFunction(), DefaultOptions())
	theme := render.DefaultTheme()

	for _, want := range []string{
		`digraph "pick" {`,
		`bb0 [label="bb0 (branchpoint)\ncompare"`,
		`color="` + theme.BranchPointBorder + `"`,
		`bb0 -> bb1 [label="true"];`,
		`bb0 -> bb2 [label="unwind", color="` + theme.EdgeCleanup + `", style=dashed];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "Gt(copy") {
		t.Error("compact labels should not list statements")
	}
}

func TestToDOTDetailed(t *testing.T) {
	opts := DefaultOptions()
	opts.Detailed = true
	dot := ToDOT(branchFunction(), opts)
	if !strings.Contains(dot, `_2 = Gt(copy _1, const 0_i32)\nswitchInt(move _2)`) {
		t.Errorf("detailed label missing statements:\n%s", dot)
	}
}

func TestToDOTHighlight(t *testing.T) {
	opts := DefaultOptions()
	opts.Path = []int{0}
	opts.Current = 1
	theme := render.DefaultTheme()

	dot := ToDOT(branchFunction(), opts)
	for _, want := range []string{
		`bb1 [label="bb1 (exit)", fillcolor="` + theme.Current + `"`,
		`bb0 [label="bb0 (branchpoint)\ncompare", fillcolor="` + theme.Visited + `"`,
		`bb0 -> bb1 [label="true", color="` + theme.EdgeTaken + `", penwidth=2];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestHighlight(t *testing.T) {
	w, ok := Options{Path: []int{0, 1}, Current: 3}.highlight()
	if !ok {
		t.Fatal("highlight disabled with Current = 3")
	}
	tests := []struct {
		from, to int
		want     bool
	}{
		{0, 1, true},
		{1, 3, true},
		{0, 3, false},
		{3, 0, false},
	}
	for _, tt := range tests {
		if got := w.Taken(tt.from, tt.to); got != tt.want {
			t.Errorf("Taken(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
	if _, ok := (Options{Path: []int{0}, Current: -1}).highlight(); ok {
		t.Error("Current < 0 should disable highlighting")
	}
}

func TestToDOTNoHighlight(t *testing.T) {
	opts := DefaultOptions()
	opts.Path = []int{0}
	dot := ToDOT(branchFunction(), opts)
	theme := render.DefaultTheme()
	for _, unwanted := range []string{theme.Visited, theme.EdgeTaken} {
		if strings.Contains(dot, `"`+unwanted+`"`) {
			t.Errorf("DOT without a current block uses %s:\n%s", unwanted, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox = %s, want %s", got, want)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}

func TestRenderFormats(t *testing.T) {
	ctx := context.Background()
	dot := ToDOT(branchFunction(), DefaultOptions())

	got, err := Render(ctx, dot, FormatDOT, 1)
	if err != nil || string(got) != dot {
		t.Errorf("Render(dot) = %q, %v", got, err)
	}
	if _, err := Render(ctx, dot, "gif", 1); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(branchFunction(), DefaultOptions()))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.HasPrefix(string(svg), "<") || !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Errorf("unexpected SVG: %.200s", svg)
	}
}
