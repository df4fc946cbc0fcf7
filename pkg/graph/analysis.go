package graph

import (
	"strings"
)

// LoopBlocks returns the ids of blocks that can reach themselves through one
// or more edges, in ascending order.
func (f *FunctionDoc) LoopBlocks() []int {
	var loops []int
	for start := range f.Blocks {
		if f.reaches(start, start) {
			loops = append(loops, start)
		}
	}
	return loops
}

// reaches reports whether target is reachable from from's successors.
func (f *FunctionDoc) reaches(from, target int) bool {
	visited := make(map[int]bool, len(f.Blocks))
	stack := f.Successors(from)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == target {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		stack = append(stack, f.Successors(cur)...)
	}
	return false
}

// ASCII renders the graph as one line per block:
//
//	bb0 (entry) ──▶ bb1, bb2
//
// The role suffix is omitted for linear blocks and blocks without edges end
// after their name.
func (f *FunctionDoc) ASCII() string {
	var sb strings.Builder
	for _, b := range f.Blocks {
		sb.WriteString(BlockLabel(b.ID))
		if b.Role != RoleLinear {
			sb.WriteString(" (")
			sb.WriteString(b.Role.String())
			sb.WriteString(")")
		}
		if len(b.Terminator.Edges) > 0 {
			sb.WriteString(" ──▶ ")
			for i, e := range b.Terminator.Edges {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(BlockLabel(e.Target))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
