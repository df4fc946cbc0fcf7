package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cfgexplorer.

To load completions:

Bash:
  $ source <(cfgexplorer completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ cfgexplorer completion bash > /etc/bash_completion.d/cfgexplorer
  # macOS:
  $ cfgexplorer completion bash > $(brew --prefix)/etc/bash_completion.d/cfgexplorer

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ cfgexplorer completion zsh > "${fpath[1]}/_cfgexplorer"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ cfgexplorer completion fish | source

  # To load completions for each session, execute once:
  $ cfgexplorer completion fish > ~/.config/fish/completions/cfgexplorer.fish

PowerShell:
  PS> cfgexplorer completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> cfgexplorer completion powershell > cfgexplorer.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeDocument offers JSON files for the crate document argument.
func completeDocument(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFunction lists the function indexes of the document named by the
// first argument, described by their display names.
func completeFunction(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	doc, err := graph.ReadFile(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	out := make([]string, len(doc.Functions))
	for i := range doc.Functions {
		out[i] = fmt.Sprintf("%d\t%s", i, doc.Functions[i].DisplayName())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
