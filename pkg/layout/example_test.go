package layout_test

import (
	"fmt"

	"github.com/matzehuels/cfgexplorer/pkg/graph"
	"github.com/matzehuels/cfgexplorer/pkg/layout"
)

func ExampleCompute() {
	fn := &graph.FunctionDoc{
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

	l := layout.Compute(fn)
	for _, n := range l.Nodes {
		fmt.Printf("bb%d layer=%d x=%.0f y=%.0f\n", n.ID, n.Layer, n.X, n.Y)
	}
	fmt.Printf("bounds: %.0f,%.0f to %.0f,%.0f\n", l.Bounds.MinX, l.Bounds.MinY, l.Bounds.MaxX, l.Bounds.MaxY)
	// Output:
	// bb0 layer=0 x=-30 y=0
	// bb1 layer=1 x=-100 y=100
	// bb2 layer=1 x=40 y=100
	// bounds: -100,0 to 100,135
}
