package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

// =============================================================================
// ascii
// =============================================================================

// asciiCommand prints one function's blocks and successors as plain text.
func (c *CLI) asciiCommand() *cobra.Command {
	var function int

	cmd := &cobra.Command{
		Use:   "ascii [doc.json]",
		Short: "Print a function's CFG as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fn, err := doc.function(function)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), fn.ASCII())
			return nil
		},
	}

	functionFlag(cmd, &function)
	return cmd
}

// =============================================================================
// functions
// =============================================================================

// functionsCommand lists the functions of a document.
func (c *CLI) functionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "functions [doc.json]",
		Short: "List the functions in a document",
		Args:  cobra.ExactArgs(1),

		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render(doc.Name))
			fmt.Fprintln(cmd.OutOrStdout(), functionTable(documentRows(doc.CrateDocument), -1).Render())
			return nil
		},
	}
}

// =============================================================================
// info
// =============================================================================

// infoCommand prints a markdown report of a function or one of its blocks.
func (c *CLI) infoCommand() *cobra.Command {
	var function, block int
	var raw bool

	cmd := &cobra.Command{
		Use:   "info [doc.json]",
		Short: "Describe a function or block as a formatted report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := infoMarkdown(cmd.Context(), args[0], function, block)
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			out, err := renderMarkdown(md)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	functionFlag(cmd, &function)
	cmd.Flags().IntVarP(&block, "block", "b", -1, "describe a single block")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")

	return cmd
}

func infoMarkdown(ctx context.Context, input string, function, block int) (string, error) {
	doc, err := loadDocument(ctx, input)
	if err != nil {
		return "", err
	}
	fn, err := doc.function(function)
	if err != nil {
		return "", err
	}
	if block < 0 {
		return functionMarkdown(doc.Name, fn), nil
	}
	if err := errors.ValidateIndex("block", block, len(fn.Blocks)); err != nil {
		return "", fmt.Errorf("%s: %w", fn.DisplayName(), err)
	}
	b, _ := fn.Block(block)
	return blockMarkdown(fn, b), nil
}

// renderMarkdown styles markdown for the terminal.
func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", fmt.Errorf("init markdown renderer: %w", err)
	}
	return r.Render(md)
}

// functionMarkdown summarizes a function: its blocks, loops and locals.
func functionMarkdown(crate string, fn *graph.FunctionDoc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", fn.DisplayName())
	fmt.Fprintf(&b, "`%s` in crate **%s**, entry `%s`.\n\n", fn.Name, crate, graph.BlockLabel(fn.EntryBlock))

	if loops := fn.LoopBlocks(); len(loops) > 0 {
		labels := make([]string, len(loops))
		for i, id := range loops {
			labels[i] = "`" + graph.BlockLabel(id) + "`"
		}
		fmt.Fprintf(&b, "Loop headers: %s\n\n", strings.Join(labels, ", "))
	}

	b.WriteString("## Blocks\n\n")
	if len(fn.Blocks) == 0 {
		b.WriteString("_No blocks._\n\n")
	} else {
		b.WriteString("| Block | Role | Terminator | Successors | Summary |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, blk := range fn.Blocks {
			succ := make([]string, len(blk.Terminator.Edges))
			for i, e := range blk.Terminator.Edges {
				succ[i] = graph.BlockLabel(e.Target)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				graph.BlockLabel(blk.ID), blk.Role, blk.Terminator.Kind,
				strings.Join(succ, ", "), escapeCell(blk.Summary))
		}
		b.WriteString("\n")
	}

	if len(fn.Locals) > 0 {
		b.WriteString("## Locals\n\n")
		b.WriteString("| Local | Name | Type | Assignments |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, l := range fn.Locals {
			name := ""
			if l.SourceName != nil {
				name = *l.SourceName
			}
			fmt.Fprintf(&b, "| `%s` | %s | `%s` | %d |\n", l.Name, name, escapeCell(l.Type), len(l.Assignments))
		}
	}
	return b.String()
}

// blockMarkdown details a single block.
func blockMarkdown(fn *graph.FunctionDoc, blk *graph.BlockDoc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s · %s\n\n", graph.BlockLabel(blk.ID), fn.DisplayName())
	fmt.Fprintf(&b, "**%s**", blk.Role)
	if blk.Summary != "" {
		fmt.Fprintf(&b, ": %s", blk.Summary)
	}
	b.WriteString("\n\n")

	if len(blk.Statements) > 0 {
		b.WriteString("## Statements\n\n")
		for _, s := range blk.Statements {
			fmt.Fprintf(&b, "- `%s`", s.Source)
			if s.Annotation != "" {
				fmt.Fprintf(&b, ": %s", s.Annotation)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n```\n%s\n```\n\n", blk.Terminator.Kind, blk.Terminator.Source)
	if blk.Terminator.Annotation != "" {
		fmt.Fprintf(&b, "%s\n\n", blk.Terminator.Annotation)
	}
	for i, e := range blk.Terminator.Edges {
		fmt.Fprintf(&b, "%d. `%s` %s (%s)", i+1, graph.BlockLabel(e.Target), e.Label, e.Kind)
		if e.Annotation != "" {
			fmt.Fprintf(&b, ": %s", e.Annotation)
		}
		b.WriteString("\n")
	}

	if len(blk.Predecessors) > 0 {
		preds := make([]string, len(blk.Predecessors))
		for i, id := range blk.Predecessors {
			preds[i] = "`" + graph.BlockLabel(id) + "`"
		}
		fmt.Fprintf(&b, "\nReached from %s.\n", strings.Join(preds, ", "))
	}
	return b.String()
}

// escapeCell makes s safe inside a markdown table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
