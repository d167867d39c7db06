package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell.

Bash:
  $ source <(pcbgen completion bash)

  # Or install it permanently:
  # Linux:
  $ pcbgen completion bash > /etc/bash_completion.d/pcbgen
  # macOS:
  $ pcbgen completion bash > $(brew --prefix)/etc/bash_completion.d/pcbgen

Zsh:
  # Make sure compinit runs in your ~/.zshrc first:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # Then install the script:
  $ pcbgen completion zsh > "${fpath[1]}/_pcbgen"

  # Open a new shell to pick it up.

Fish:
  $ pcbgen completion fish | source

  # Or install it permanently:
  $ pcbgen completion fish > ~/.config/fish/completions/pcbgen.fish

PowerShell:
  PS> pcbgen completion powershell | Out-String | Invoke-Expression

  # Or add it to your profile:
  PS> pcbgen completion powershell > pcbgen.ps1
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
