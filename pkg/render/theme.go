package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

// Theme holds every color the renderer uses.
type Theme struct {
	Background   string `toml:"background" json:"background"`
	Node         string `toml:"node" json:"node"`
	Visited      string `toml:"visited" json:"visited"`
	Current      string `toml:"current" json:"current"`
	Text         string `toml:"text" json:"text"`
	TextDark     string `toml:"text_dark" json:"text_dark"`
	Edge         string `toml:"edge" json:"edge"`
	EdgeTaken    string `toml:"edge_taken" json:"edge_taken"`
	EdgeCleanup  string `toml:"edge_cleanup" json:"edge_cleanup"`
	EdgeSelected string `toml:"edge_selected" json:"edge_selected"`

	EntryBorder       string `toml:"entry_border" json:"entry_border"`
	ExitBorder        string `toml:"exit_border" json:"exit_border"`
	BranchPointBorder string `toml:"branchpoint_border" json:"branchpoint_border"`
	MergePointBorder  string `toml:"mergepoint_border" json:"mergepoint_border"`
	LinearBorder      string `toml:"linear_border" json:"linear_border"`
	CleanupBorder     string `toml:"cleanup_border" json:"cleanup_border"`
}

// DefaultTheme returns the built-in dark palette.
func DefaultTheme() Theme {
	return Theme{
		Background:   "#1a1a2e",
		Node:         "#3a3a5e",
		Visited:      "#2a4a6e",
		Current:      "#50fa7b",
		Text:         "#eeeeee",
		TextDark:     "#1a1a2e",
		Edge:         "#555555",
		EdgeTaken:    "#50fa7b",
		EdgeCleanup:  "#ff5555",
		EdgeSelected: "#8be9fd",

		EntryBorder:       "#50fa7b",
		ExitBorder:        "#bd93f9",
		BranchPointBorder: "#ffb86c",
		MergePointBorder:  "#8be9fd",
		LinearBorder:      "#555555",
		CleanupBorder:     "#ff5555",
	}
}

// RoleBorder returns the border color for a block role.
func (t Theme) RoleBorder(r graph.BlockRole) string {
	switch r {
	case graph.RoleEntry:
		return t.EntryBorder
	case graph.RoleExit:
		return t.ExitBorder
	case graph.RoleBranchPoint:
		return t.BranchPointBorder
	case graph.RoleMergePoint:
		return t.MergePointBorder
	case graph.RoleCleanup:
		return t.CleanupBorder
	default:
		return t.LinearBorder
	}
}

// Merge returns t with every empty field taken from base.
func (t Theme) Merge(base Theme) Theme {
	dst, src := t.fields(), base.fields()
	for i := range dst {
		if *dst[i].value == "" {
			*dst[i].value = *src[i].value
		}
	}
	return t
}

// Validate checks that every color is a hex color.
func (t Theme) Validate() error {
	for _, f := range t.fields() {
		if err := errors.ValidateColor(f.name, *f.value); err != nil {
			return err
		}
	}
	return nil
}

type themeField struct {
	name  string
	value *string
}

func (t *Theme) fields() []themeField {
	return []themeField{
		{"background", &t.Background},
		{"node", &t.Node},
		{"visited", &t.Visited},
		{"current", &t.Current},
		{"text", &t.Text},
		{"text_dark", &t.TextDark},
		{"edge", &t.Edge},
		{"edge_taken", &t.EdgeTaken},
		{"edge_cleanup", &t.EdgeCleanup},
		{"edge_selected", &t.EdgeSelected},
		{"entry_border", &t.EntryBorder},
		{"exit_border", &t.ExitBorder},
		{"branchpoint_border", &t.BranchPointBorder},
		{"mergepoint_border", &t.MergePointBorder},
		{"linear_border", &t.LinearBorder},
		{"cleanup_border", &t.CleanupBorder},
	}
}

// ParseColor converts a hex color to an NRGBA value with the given alpha.
// Invalid colors fall back to opaque magenta so mistakes are visible.
func ParseColor(hex string, alpha float64) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{R: 0xff, B: 0xff, A: 0xff}
	}
	r, g, b := c.RGB255()
	a := uint8(clamp01(alpha)*255 + 0.5)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
