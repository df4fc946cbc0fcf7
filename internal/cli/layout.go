package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgexplorer/pkg/layout"
)

// layoutCommand creates the layout command, which prints the computed
// positions of one function's blocks and edges.
func (c *CLI) layoutCommand() *cobra.Command {
	var function int
	var output string

	cmd := &cobra.Command{
		Use:   "layout [doc.json]",
		Short: "Compute a function's layout and write it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.Context(), args[0], function, output)
		},
	}

	functionFlag(cmd, &function)
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")

	return cmd
}

func runLayout(ctx context.Context, input string, function int, output string) error {
	logger := loggerFromContext(ctx)

	doc, err := loadDocument(ctx, input)
	if err != nil {
		return err
	}
	fn, err := doc.function(function)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	l := layout.Compute(fn)
	prog.debug("Computed layout")
	logger.Debugf("%s: %d nodes, %d edges (%d back), %d layers",
		fn.DisplayName(), len(l.Nodes), len(l.Edges), l.BackEdgeCount(), l.LayerCount())

	data, err := l.Marshal()
	if err != nil {
		return err
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	if output != "-" {
		printFile(output)
	}
	return nil
}
