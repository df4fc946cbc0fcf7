package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/cfgexplorer/pkg/config"
	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

func newTestModel(t *testing.T) *ExploreModel {
	t.Helper()
	doc, err := graph.ReadFile(testDoc)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewExploreModel(doc, 0, config.Default().TUI)
	if err != nil {
		t.Fatalf("NewExploreModel: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTranslateKey(t *testing.T) {
	tests := map[string]string{
		"left":  "ArrowLeft",
		"down":  "ArrowDown",
		"enter": "Enter",
		"esc":   "Escape",
		"j":     "j",
		"3":     "3",
	}
	for in, want := range tests {
		if got := translateKey(in); got != want {
			t.Errorf("translateKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExploreNavigation(t *testing.T) {
	m := newTestModel(t)
	ex := m.Explorer()

	m.Update(runes("j"))
	if ex.SelectedEdge() != 1 {
		t.Fatalf("selected edge = %d, want 1", ex.SelectedEdge())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cur, _ := ex.Current(); cur != 2 {
		t.Fatalf("current = %d, want 2", cur)
	}

	view := m.View()
	for _, want := range []string{"bb2", "return other", "demo::pick"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cur, _ := ex.Current(); cur != 0 || len(ex.Path()) != 0 {
		t.Errorf("after esc: current %d, path %v", cur, ex.Path())
	}
}

func TestExploreHostKeys(t *testing.T) {
	m := newTestModel(t)
	ex := m.Explorer()

	scale := ex.Viewport().Scale
	m.Update(runes("+"))
	if ex.Viewport().Scale <= scale {
		t.Error("+ should zoom in")
	}
	m.Update(runes("f"))
	if ex.Viewport().Scale != scale {
		t.Errorf("f should refit to scale %v, got %v", scale, ex.Viewport().Scale)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if ex.SelectedFunction() != 1 {
		t.Errorf("tab: function %d, want 1", ex.SelectedFunction())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if ex.SelectedFunction() != 0 {
		t.Errorf("tab should wrap to 0, got %d", ex.SelectedFunction())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if ex.SelectedFunction() != 1 {
		t.Errorf("shift+tab: function %d, want 1", ex.SelectedFunction())
	}

	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestExplorePicker(t *testing.T) {
	m := newTestModel(t)

	m.Update(runes("/"))
	if m.picker == nil {
		t.Fatal("/ should open the function picker")
	}
	m.Update(runes("spin"))
	if !strings.Contains(m.View(), "Select Function") {
		t.Error("picker view not shown")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.picker != nil {
		t.Fatal("enter should close the picker")
	}
	if got := m.Explorer().SelectedFunction(); got != 1 {
		t.Errorf("picked function %d, want 1", got)
	}

	m.Update(runes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.picker != nil || m.Explorer().SelectedFunction() != 1 {
		t.Error("esc should close the picker without selecting")
	}
}

func TestExploreMouse(t *testing.T) {
	m := newTestModel(t)
	ex := m.Explorer()

	before := ex.Viewport()
	m.Update(tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m.Update(tea.MouseMsg{X: 12, Y: 11, Action: tea.MouseActionMotion})
	m.Update(tea.MouseMsg{X: 12, Y: 11, Action: tea.MouseActionRelease})

	cell := m.cells.CellSize()
	after := ex.Viewport()
	if after.Offset.X != before.Offset.X+2*cell.Width || after.Offset.Y != before.Offset.Y+cell.Height {
		t.Errorf("drag moved offset %v -> %v", before.Offset, after.Offset)
	}

	m.Update(tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if ex.Viewport().Scale >= after.Scale {
		t.Error("wheel down should zoom out")
	}
}

func TestExploreClick(t *testing.T) {
	tests := []struct {
		name  string
		block int
		move  bool
		want  int
	}{
		{"click jumps", 1, false, 1},
		{"click other branch", 2, false, 2},
		{"drag does not jump", 1, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			ex := m.Explorer()
			n, _ := ex.Layout().Node(tt.block)
			c := ex.Viewport().ToScreen(n.Rect().Center())
			cell := m.cells.CellSize()
			x, y := int(c.X/cell.Width), int(c.Y/cell.Height)

			m.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
			if tt.move {
				m.Update(tea.MouseMsg{X: x + 1, Y: y, Action: tea.MouseActionMotion})
				m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
			}
			m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease})

			if got, _ := ex.Current(); got != tt.want {
				t.Errorf("current = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFunctionListFilter(t *testing.T) {
	rows := []functionRow{{Index: 0, Name: "pick"}, {Index: 1, Name: "spin", Full: "demo::spin"}, {Index: 2, Name: "main"}}
	m := NewFunctionListModel(rows, 2)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}

	next, _ := m.Update(runes("demo"))
	m = next.(FunctionListModel)
	if got := m.visible(); len(got) != 1 || got[0].Index != 1 {
		t.Errorf("filter demo = %+v", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(FunctionListModel)
	if m.Filter != "dem" {
		t.Errorf("filter after backspace = %q", m.Filter)
	}
}
