package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgexplorer/pkg/explorer"
)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var function int

	cmd := &cobra.Command{
		Use:   "explore [doc.json]",
		Short: "Walk a function's CFG interactively in the terminal",
		Long: `Explore opens a terminal UI showing one function's control-flow graph.

Keys:
  j/k, ↓/↑     select next/previous outgoing edge
  l, →, ⏎      follow the selected edge
  1-9          follow edge n
  h, ←, ⌫      go back
  esc          return to the entry block
  +/-, wheel   zoom
  f            fit to view
  tab          next function (shift+tab previous)
  /            pick a function by name
  q            quit

Drag with the mouse to pan.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], function)
		},
	}

	functionFlag(cmd, &function)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input string, function int) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	doc, err := loadDocument(ctx, input)
	if err != nil {
		return err
	}
	if _, err := doc.function(function); err != nil {
		return err
	}

	// The TUI owns the terminal; explorer logs would tear the frame.
	m, err := NewExploreModel(doc.CrateDocument, function, cfg.TUI, explorer.WithTheme(cfg.Theme))
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return ctx.Err()
}
