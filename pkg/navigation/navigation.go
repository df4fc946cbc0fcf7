// Package navigation tracks the explorer's position within one function.
//
// A [State] holds the current block, the selected outgoing edge and the path
// of previously visited blocks. It is a pure state machine: every transition
// with an out-of-range argument is a silent no-op, never an error. Each
// transition returns whether anything changed so the caller can decide to
// re-center and re-render.
//
// The selected edge index is always valid for the current block: it is 0
// when the block has no edges and otherwise less than the edge count.
package navigation

import (
	"slices"

	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

// State is the navigation state over one function.
type State struct {
	fn       *graph.FunctionDoc
	current  int
	selected int
	path     []int
}

// Start returns a state positioned at fn's entry block with an empty path.
func Start(fn *graph.FunctionDoc) *State {
	s := &State{fn: fn}
	s.current = fn.EntryBlock
	return s
}

// Function returns the function being navigated.
func (s *State) Function() *graph.FunctionDoc { return s.fn }

// Current returns the current block id.
func (s *State) Current() int { return s.current }

// SelectedEdge returns the selected outgoing edge index.
func (s *State) SelectedEdge() int { return s.selected }

// Path returns a copy of the visited-block stack, oldest first.
func (s *State) Path() []int { return slices.Clone(s.path) }

// Depth returns the number of blocks on the path.
func (s *State) Depth() int { return len(s.path) }

// Walk returns a snapshot of the state for painting and export.
func (s *State) Walk() Walk {
	return Walk{Function: s.fn, Path: s.Path(), Current: s.current, SelectedEdge: s.selected}
}

// GoTo moves to target. When record is set and target differs from the
// current block, the current block is pushed onto the path. The selected
// edge resets to 0. Returns false without changing anything if target is
// out of range.
func (s *State) GoTo(target int, record bool) bool {
	if _, ok := s.fn.Block(target); !ok {
		return false
	}
	if record && target != s.current {
		s.path = append(s.path, s.current)
	}
	s.current = target
	s.selected = 0
	return true
}

// GoBack pops the path into the current block. Returns false when the path
// is empty.
func (s *State) GoBack() bool {
	if len(s.path) == 0 {
		return false
	}
	s.current = s.path[len(s.path)-1]
	s.path = s.path[:len(s.path)-1]
	s.selected = 0
	return true
}

// Reset clears the path and returns to the entry block.
func (s *State) Reset() bool {
	s.path = s.path[:0]
	s.selected = 0
	return s.GoTo(s.fn.EntryBlock, false)
}

// FollowEdge moves along the current block's i-th outgoing edge, recording
// the current block on the path. Returns false if there is no such edge.
func (s *State) FollowEdge(i int) bool {
	e, ok := s.fn.Edge(s.current, i)
	if !ok {
		return false
	}
	return s.GoTo(e.Target, true)
}

// SelectNextEdge cycles the selection forward. Returns false when the
// current block has no edges.
func (s *State) SelectNextEdge() bool {
	n := s.fn.EdgeCount(s.current)
	if n == 0 {
		return false
	}
	s.selected = (s.selected + 1) % n
	return true
}

// SelectPrevEdge cycles the selection backward. Returns false when the
// current block has no edges.
func (s *State) SelectPrevEdge() bool {
	n := s.fn.EdgeCount(s.current)
	if n == 0 {
		return false
	}
	s.selected = (s.selected + n - 1) % n
	return true
}

// =============================================================================
// Walk
// =============================================================================

// Walk is a read-only view of a navigation: the blocks left behind, the
// block being viewed and its selected outgoing edge. Renderers read every
// highlight from it.
type Walk struct {
	Function     *graph.FunctionDoc
	Path         []int
	Current      int
	SelectedEdge int
}

// Visited reports whether id is on the path.
func (w Walk) Visited(id int) bool { return slices.Contains(w.Path, id) }

// SelectedTarget returns the target block of the selected edge.
func (w Walk) SelectedTarget() (int, bool) {
	e, ok := w.Function.Edge(w.Current, w.SelectedEdge)
	if !ok {
		return 0, false
	}
	return e.Target, true
}

// Taken reports whether from→to occurs consecutively in the path followed
// by the current block.
func (w Walk) Taken(from, to int) bool {
	for i, id := range w.Path {
		next := w.Current
		if i+1 < len(w.Path) {
			next = w.Path[i+1]
		}
		if id == from && next == to {
			return true
		}
	}
	return false
}
