package layout

import (
	"math"

	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

// Compute lays out fn's blocks and routes its edges.
//
// A function with zero blocks yields an empty layout with a zero bounding
// box. Edges whose target does not exist are skipped; documents that passed
// [graph.CrateDocument.Validate] never contain them.
func Compute(fn *graph.FunctionDoc) *GraphLayout {
	if fn == nil || len(fn.Blocks) == 0 {
		return &GraphLayout{Nodes: []Node{}, Edges: []Edge{}}
	}

	layers := AssignLayers(fn)
	nodes := positionNodes(fn, layers)
	return &GraphLayout{
		Nodes:  nodes,
		Edges:  routeEdges(fn, nodes),
		Bounds: computeBounds(nodes),
	}
}

// AssignLayers returns the layer of every block, indexed by block id.
//
// The entry block is layer 0 and every reachable block sits one layer below
// the block that discovered it in breadth-first order. All unreachable
// blocks share the layer below the deepest reachable one. If the entry block
// is out of range nothing is reachable and every block is placed in layer 0.
func AssignLayers(fn *graph.FunctionDoc) []int {
	n := len(fn.Blocks)
	layers := make([]int, n)
	seen := make([]bool, n)

	maxLayer := -1
	if fn.EntryBlock >= 0 && fn.EntryBlock < n {
		queue := []int{fn.EntryBlock}
		seen[fn.EntryBlock] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			maxLayer = max(maxLayer, layers[cur])

			for _, e := range fn.Blocks[cur].Terminator.Edges {
				if e.Target < 0 || e.Target >= n || seen[e.Target] {
					continue
				}
				seen[e.Target] = true
				layers[e.Target] = layers[cur] + 1
				queue = append(queue, e.Target)
			}
		}
	}

	for id := range layers {
		if !seen[id] {
			layers[id] = maxLayer + 1
		}
	}
	return layers
}

// positionNodes centers each layer's row on x = 0. Iterating ids in
// ascending order yields the within-layer ordering directly.
func positionNodes(fn *graph.FunctionDoc, layers []int) []Node {
	rows := make(map[int][]int)
	for id, layer := range layers {
		rows[layer] = append(rows[layer], id)
	}

	nodes := make([]Node, len(fn.Blocks))
	for layer, ids := range rows {
		rowWidth := float64(len(ids))*(NodeWidth+HorizontalSpacing) - HorizontalSpacing
		startX := -rowWidth / 2
		for pos, id := range ids {
			nodes[id] = Node{
				ID:     id,
				X:      startX + float64(pos)*(NodeWidth+HorizontalSpacing),
				Y:      float64(layer) * VerticalSpacing,
				Width:  NodeWidth,
				Height: NodeHeight,
				Layer:  layer,
				Role:   fn.Blocks[id].Role,
			}
		}
	}
	return nodes
}

func routeEdges(fn *graph.FunctionDoc, nodes []Node) []Edge {
	edges := make([]Edge, 0, len(nodes))
	for _, b := range fn.Blocks {
		if b.ID < 0 || b.ID >= len(nodes) {
			continue
		}
		from := nodes[b.ID]
		for _, e := range b.Terminator.Edges {
			if e.Target < 0 || e.Target >= len(nodes) {
				continue
			}
			to := nodes[e.Target]

			var points []Point
			if to.Y <= from.Y {
				points = routeBackEdge(from, to)
			} else {
				points = routeForwardEdge(from, to)
			}
			edges = append(edges, Edge{
				From:   b.ID,
				To:     e.Target,
				Label:  e.Label,
				Kind:   e.Kind,
				Points: points,
			})
		}
	}
	return edges
}

// routeForwardEdge runs from the source's bottom center to the target's top
// center through a horizontal segment halfway between them.
func routeForwardEdge(from, to Node) []Point {
	sx, sy := from.CenterX(), from.Bottom()
	tx, ty := to.CenterX(), to.Y
	midY := (sy + ty) / 2
	return []Point{
		{sx, sy},
		{sx, midY},
		{tx, midY},
		{tx, ty},
	}
}

// routeBackEdge leaves the source downward, runs right of both nodes and
// enters the target from below.
func routeBackEdge(from, to Node) []Point {
	sx, sb := from.CenterX(), from.Bottom()
	tx, tb := to.CenterX(), to.Bottom()
	right := math.Max(from.X, to.X) + from.Width + BackEdgeOffset
	return []Point{
		{sx, sb},
		{sx, sb + BackEdgeOffset},
		{right, sb + BackEdgeOffset},
		{right, tb + BackEdgeOffset},
		{tx, tb + BackEdgeOffset},
		{tx, tb},
	}
}

func computeBounds(nodes []Node) Rect {
	if len(nodes) == 0 {
		return Rect{}
	}
	b := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, n := range nodes {
		r := n.Rect()
		b.MinX = math.Min(b.MinX, r.MinX)
		b.MinY = math.Min(b.MinY, r.MinY)
		b.MaxX = math.Max(b.MaxX, r.MaxX)
		b.MaxY = math.Max(b.MaxY, r.MaxY)
	}
	return b
}
