// Package layout computes node positions and edge routes for a function's
// control-flow graph.
//
// # Overview
//
// [Compute] is a pure function of a [graph.FunctionDoc]: identical input
// always yields an identical [GraphLayout]. The result is computed once per
// function selection and cached by the caller; navigation and rendering only
// read it.
//
// # Algorithm
//
//  1. Build successor lists from each block's outgoing edges.
//  2. Breadth-first search from the entry block assigns each reachable block
//     a layer equal to its BFS distance. The first discovery wins.
//  3. Every unreached block is placed in one extra layer below the deepest
//     discovered layer, so disconnected blocks still get a position.
//  4. Within a layer, blocks are ordered by ascending id.
//  5. Each row is centered on x = 0 and rows are [VerticalSpacing] apart.
//  6. Edges are routed as polylines. Forward edges (target strictly below
//     the source) use four points through a horizontal midline; back and
//     same-level edges use six points detouring to the right of both nodes
//     by [BackEdgeOffset].
//  7. The bounding box is the min/max over all node rectangles.
//
// Back-edge routing is not collision-free when many back edges share a
// region; the fixed offset is a deliberate approximation.
//
// # Coordinates
//
// Graph space has y growing downward. A [Node]'s X/Y is its top-left corner.
//
// # Export
//
// [GraphLayout.Marshal] and [GraphLayout.WriteFile] produce a JSON view of a
// layout for inspection and tooling.
package layout
