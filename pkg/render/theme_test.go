package render

import (
	"image/color"
	"testing"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

func TestDefaultThemeValid(t *testing.T) {
	if err := DefaultTheme().Validate(); err != nil {
		t.Fatalf("default theme invalid: %v", err)
	}
}

func TestThemeValidate(t *testing.T) {
	th := DefaultTheme()
	th.EdgeCleanup = "red"
	err := th.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() = %v, want INVALID_INPUT", err)
	}
}

func TestThemeMerge(t *testing.T) {
	partial := Theme{Background: "#000000", ExitBorder: "#123456"}
	merged := partial.Merge(DefaultTheme())

	if merged.Background != "#000000" || merged.ExitBorder != "#123456" {
		t.Errorf("Merge overwrote set fields: %+v", merged)
	}
	if merged.Node != DefaultTheme().Node || merged.CleanupBorder != DefaultTheme().CleanupBorder {
		t.Errorf("Merge left fields empty: %+v", merged)
	}
	if err := merged.Validate(); err != nil {
		t.Errorf("merged theme invalid: %v", err)
	}
}

func TestRoleBorder(t *testing.T) {
	th := DefaultTheme()
	tests := []struct {
		role graph.BlockRole
		want string
	}{
		{graph.RoleEntry, "#50fa7b"},
		{graph.RoleExit, "#bd93f9"},
		{graph.RoleBranchPoint, "#ffb86c"},
		{graph.RoleMergePoint, "#8be9fd"},
		{graph.RoleCleanup, "#ff5555"},
		{graph.RoleLinear, "#555555"},
	}
	for _, tt := range tests {
		if got := th.RoleBorder(tt.role); got != tt.want {
			t.Errorf("RoleBorder(%v) = %s, want %s", tt.role, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		hex   string
		alpha float64
		want  color.NRGBA
	}{
		{"#1a1a2e", 1, color.NRGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}},
		{"#fff", 1, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#000000", 0.35, color.NRGBA{A: 89}},
		{"#000000", 2, color.NRGBA{A: 0xff}},
		{"nope", 1, color.NRGBA{R: 0xff, B: 0xff, A: 0xff}},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.hex, tt.alpha); got != tt.want {
			t.Errorf("ParseColor(%q, %v) = %+v, want %+v", tt.hex, tt.alpha, got, tt.want)
		}
	}
}
