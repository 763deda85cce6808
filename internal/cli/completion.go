package cli

import (
	"github.com/spf13/cobra"
)

// diagramExtensions are offered when completing a diagram argument.
var diagramExtensions = []string{"box", "txt", "json", "hcl"}

// completeDiagramFiles completes the single diagram argument of render,
// layout, check, dot and view with files of a readable format.
func completeDiagramFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return diagramExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completionCommand prints shell completion scripts to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for boxroute.

Diagram arguments complete to .box, .txt, .json and .hcl files.

  $ source <(boxroute completion bash)
  $ boxroute completion zsh > "${fpath[1]}/_boxroute"
  $ boxroute completion fish > ~/.config/fish/completions/boxroute.fish
  PS> boxroute completion powershell | Out-String | Invoke-Expression

Start a new shell after installing a script.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.Stdout, true)
			case "zsh":
				return root.GenZshCompletion(c.Stdout)
			case "fish":
				return root.GenFishCompletion(c.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(c.Stdout)
			}
		},
	}
}
