package navigation

import (
	"slices"
	"testing"

	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

// branch is bb0 -> {bb1 "true", bb2 "false"} with both targets exits.
func branch() *graph.FunctionDoc {
	return &graph.FunctionDoc{
		Name: "pick",
		Blocks: []graph.BlockDoc{
			{ID: 0, Role: graph.RoleBranchPoint, Terminator: graph.TerminatorDoc{Edges: []graph.EdgeDoc{
				{Target: 1, Label: "true", Kind: graph.EdgeBranch},
				{Target: 2, Label: "false", Kind: graph.EdgeOtherwise},
			}}},
			{ID: 1, Role: graph.RoleExit},
			{ID: 2, Role: graph.RoleExit},
		},
	}
}

// loop is bb0 -> bb1 -> {bb2, bb3}, bb2 -> bb1.
func loop() *graph.FunctionDoc {
	edges := func(ts ...int) graph.TerminatorDoc {
		var td graph.TerminatorDoc
		for _, t := range ts {
			td.Edges = append(td.Edges, graph.EdgeDoc{Target: t})
		}
		return td
	}
	return &graph.FunctionDoc{
		Name: "spin",
		Blocks: []graph.BlockDoc{
			{ID: 0, Terminator: edges(1)},
			{ID: 1, Terminator: edges(2, 3)},
			{ID: 2, Terminator: edges(1)},
			{ID: 3},
		},
	}
}

func TestStart(t *testing.T) {
	fn := branch()
	fn.EntryBlock = 2
	s := Start(fn)
	if s.Current() != 2 || s.SelectedEdge() != 0 || s.Depth() != 0 {
		t.Errorf("Start = (%d, %d, %v)", s.Current(), s.SelectedEdge(), s.Path())
	}
}

func TestBranchScenario(t *testing.T) {
	s := Start(branch())

	if s.Current() != 0 || s.SelectedEdge() != 0 {
		t.Fatalf("initial = (%d, %d), want (0, 0)", s.Current(), s.SelectedEdge())
	}
	if !s.FollowEdge(1) {
		t.Fatal("FollowEdge(1) returned false")
	}
	if s.Current() != 2 || !slices.Equal(s.Path(), []int{0}) {
		t.Errorf("after FollowEdge(1) = (%d, %v), want (2, [0])", s.Current(), s.Path())
	}
	if !s.GoBack() {
		t.Fatal("GoBack returned false")
	}
	if s.Current() != 0 || s.Depth() != 0 {
		t.Errorf("after GoBack = (%d, %v), want (0, [])", s.Current(), s.Path())
	}
}

func TestGoTo(t *testing.T) {
	tests := []struct {
		name     string
		target   int
		record   bool
		wantOK   bool
		wantCur  int
		wantPath []int
	}{
		{"Recorded", 2, true, true, 2, []int{0}},
		{"Unrecorded", 2, false, true, 2, nil},
		{"SameBlockNotPushed", 0, true, true, 0, nil},
		{"OutOfRange", 3, true, false, 0, nil},
		{"Negative", -1, true, false, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Start(branch())
			s.SelectNextEdge()
			ok := s.GoTo(tt.target, tt.record)
			if ok != tt.wantOK {
				t.Errorf("GoTo() = %v, want %v", ok, tt.wantOK)
			}
			if s.Current() != tt.wantCur {
				t.Errorf("Current() = %d, want %d", s.Current(), tt.wantCur)
			}
			if !slices.Equal(s.Path(), tt.wantPath) {
				t.Errorf("Path() = %v, want %v", s.Path(), tt.wantPath)
			}
			if ok && s.SelectedEdge() != 0 {
				t.Errorf("SelectedEdge() = %d, want 0 after move", s.SelectedEdge())
			}
			if !ok && s.SelectedEdge() != 1 {
				t.Errorf("no-op GoTo changed selection to %d", s.SelectedEdge())
			}
		})
	}
}

func TestGoBackRestoresPrior(t *testing.T) {
	s := Start(loop())
	s.FollowEdge(0) // 0 -> 1
	s.FollowEdge(0) // 1 -> 2
	before := s.Current()

	s.GoTo(3, true)
	if !s.GoBack() || s.Current() != before {
		t.Errorf("GoBack after GoTo(3) landed on %d, want %d", s.Current(), before)
	}

	for s.GoBack() {
	}
	if s.Current() != 0 {
		t.Errorf("exhausted GoBack at %d, want 0", s.Current())
	}
	for range 3 {
		if s.GoBack() {
			t.Error("GoBack on empty path should be a no-op")
		}
	}
	if s.Current() != 0 {
		t.Errorf("Current() = %d after no-op GoBack, want 0", s.Current())
	}
}

func TestReset(t *testing.T) {
	s := Start(loop())
	s.FollowEdge(0)
	s.FollowEdge(1)
	s.Reset()
	if s.Current() != 0 || s.Depth() != 0 || s.SelectedEdge() != 0 {
		t.Errorf("after Reset = (%d, %d, %v)", s.Current(), s.SelectedEdge(), s.Path())
	}
}

func TestFollowEdgeOutOfRange(t *testing.T) {
	s := Start(branch())
	for _, i := range []int{2, 5, -1} {
		if s.FollowEdge(i) {
			t.Errorf("FollowEdge(%d) should be a no-op", i)
		}
	}
	if s.Current() != 0 || s.Depth() != 0 {
		t.Errorf("state changed: (%d, %v)", s.Current(), s.Path())
	}

	s.FollowEdge(0)
	if s.FollowEdge(0) {
		t.Error("FollowEdge on an exit block should be a no-op")
	}
}

func TestEdgeCycling(t *testing.T) {
	s := Start(branch())

	if !s.SelectNextEdge() || s.SelectedEdge() != 1 {
		t.Errorf("next = %d, want 1", s.SelectedEdge())
	}
	if !s.SelectNextEdge() || s.SelectedEdge() != 0 {
		t.Errorf("next wraps to %d, want 0", s.SelectedEdge())
	}
	if !s.SelectPrevEdge() || s.SelectedEdge() != 1 {
		t.Errorf("prev wraps to %d, want 1", s.SelectedEdge())
	}

	// next then prev is the identity for every starting index.
	for start := range 2 {
		s.selected = start
		s.SelectNextEdge()
		s.SelectPrevEdge()
		if s.SelectedEdge() != start {
			t.Errorf("next+prev from %d = %d", start, s.SelectedEdge())
		}
	}

	s.GoTo(1, true)
	if s.SelectNextEdge() || s.SelectPrevEdge() {
		t.Error("cycling on a block without edges should be a no-op")
	}
	if s.SelectedEdge() != 0 {
		t.Errorf("SelectedEdge() = %d on edgeless block", s.SelectedEdge())
	}
}

func TestSelectedTarget(t *testing.T) {
	s := Start(branch())
	s.SelectNextEdge()
	if tgt, ok := s.Walk().SelectedTarget(); !ok || tgt != 2 {
		t.Errorf("SelectedTarget() = %d, %v, want 2", tgt, ok)
	}
	s.FollowEdge(0)
	if _, ok := s.Walk().SelectedTarget(); ok {
		t.Error("exit block has no selected target")
	}
}

func TestWalkTaken(t *testing.T) {
	s := Start(loop())
	s.FollowEdge(0) // 0 -> 1
	s.FollowEdge(0) // 1 -> 2
	s.FollowEdge(0) // 2 -> 1
	// path = [0, 1, 2], current = 1

	tests := []struct {
		from, to int
		want     bool
	}{
		{0, 1, true},
		{1, 2, true},
		{2, 1, true},
		{1, 3, false},
		{1, 0, false},
	}
	w := s.Walk()
	for _, tt := range tests {
		if got := w.Taken(tt.from, tt.to); got != tt.want {
			t.Errorf("Taken(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
	if !w.Visited(2) || w.Visited(3) {
		t.Errorf("Visited: 2=%v 3=%v", w.Visited(2), w.Visited(3))
	}

	fresh := Start(loop()).Walk()
	if fresh.Taken(0, 1) {
		t.Error("no edge is taken on an empty path")
	}
}

func TestPathIsCopy(t *testing.T) {
	s := Start(branch())
	s.FollowEdge(0)
	p := s.Path()
	p[0] = 99
	if s.Path()[0] != 0 {
		t.Error("Path() must return a copy")
	}
}

func TestWalkSnapshot(t *testing.T) {
	s := Start(branch())
	s.SelectNextEdge()
	w := s.Walk()
	if w.Function != s.Function() || w.Current != 0 || w.SelectedEdge != 1 || len(w.Path) != 0 {
		t.Fatalf("Walk() = %+v", w)
	}

	s.FollowEdge(1)
	if w.Current != 0 || len(w.Path) != 0 {
		t.Errorf("snapshot changed after navigation: %+v", w)
	}
	if w := s.Walk(); w.Current != 2 || len(w.Path) != 1 || w.Path[0] != 0 {
		t.Errorf("Walk() after follow = %+v", w)
	}
}

func TestWalkWithoutFunction(t *testing.T) {
	if _, ok := (Walk{}).SelectedTarget(); ok {
		t.Error("empty walk has no selected target")
	}
}
