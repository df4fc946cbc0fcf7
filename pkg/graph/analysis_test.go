package graph

import (
	"slices"
	"testing"
)

func chain(roles []BlockRole, edges map[int][]int) *FunctionDoc {
	fn := &FunctionDoc{Name: "f"}
	for i, r := range roles {
		b := BlockDoc{ID: i, Role: r}
		for _, t := range edges[i] {
			b.Terminator.Edges = append(b.Terminator.Edges, EdgeDoc{Target: t})
		}
		fn.Blocks = append(fn.Blocks, b)
	}
	return fn
}

func TestLoopBlocks(t *testing.T) {
	tests := []struct {
		name  string
		fn    *FunctionDoc
		loops []int
	}{
		{
			name: "Acyclic",
			fn: chain([]BlockRole{RoleEntry, RoleLinear, RoleExit},
				map[int][]int{0: {1}, 1: {2}}),
			loops: nil,
		},
		{
			name: "SelfLoop",
			fn: chain([]BlockRole{RoleEntry, RoleLinear},
				map[int][]int{0: {1}, 1: {1}}),
			loops: []int{1},
		},
		{
			name: "WhileLoop",
			fn: chain([]BlockRole{RoleEntry, RoleBranchPoint, RoleLinear, RoleExit},
				map[int][]int{0: {1}, 1: {2, 3}, 2: {1}}),
			loops: []int{1, 2},
		},
		{
			name:  "Empty",
			fn:    &FunctionDoc{},
			loops: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn.LoopBlocks(); !slices.Equal(got, tt.loops) {
				t.Errorf("LoopBlocks() = %v, want %v", got, tt.loops)
			}
		})
	}
}

func TestASCII(t *testing.T) {
	fn := chain([]BlockRole{RoleEntry, RoleLinear, RoleExit, RoleCleanup},
		map[int][]int{0: {1, 3}, 1: {2}})

	want := "bb0 (entry) ──▶ bb1, bb3\n" +
		"bb1 ──▶ bb2\n" +
		"bb2 (exit)\n" +
		"bb3 (cleanup)\n"
	if got := fn.ASCII(); got != want {
		t.Errorf("ASCII() =\n%s\nwant:\n%s", got, want)
	}
}
