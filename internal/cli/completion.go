package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// sceneExtensions are the snapshot file types offered by shell completion.
var sceneExtensions = []string{"json", "yaml", "yml"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rtexport. Scene arguments complete
to .json, .yaml and .yml files.

Bash:
  $ source <(rtexport completion bash)

Zsh:
  $ rtexport completion zsh > "${fpath[1]}/_rtexport"

Fish:
  $ rtexport completion fish > ~/.config/fish/completions/rtexport.fish

PowerShell:
  PS> rtexport completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}

	return cmd
}

// completeScenes makes every subcommand taking a [scene] argument complete
// snapshot files, and --config complete TOML files.
func completeScenes(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		if !strings.Contains(cmd.Use, "[scene]") {
			continue
		}
		cmd.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return sceneExtensions, cobra.ShellCompDirectiveFilterFileExt
		}
		if cmd.Flags().Lookup("config") != nil {
			_ = cmd.RegisterFlagCompletionFunc("config", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
				return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
			})
		}
	}
}
