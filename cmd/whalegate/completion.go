package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for whalegate.

To load completions:

Bash:
  $ source <(whalegate completion bash)
  # To load permanently:
  $ whalegate completion bash > /etc/bash_completion.d/whalegate

Zsh:
  $ whalegate completion zsh > "${fpath[1]}/_whalegate"
  $ compinit

Fish:
  $ whalegate completion fish | source
  # To load permanently:
  $ whalegate completion fish > ~/.config/fish/completions/whalegate.fish

PowerShell:
  PS> whalegate completion powershell | Out-String | Invoke-Expression
  # To load permanently, add to your PowerShell profile
`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
